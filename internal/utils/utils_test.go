package utils_test

import (
	"testing"

	"github.com/jrsteele09/go-vk-client/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{"offline", "email"}, utils.SplitList(" offline, ,email,"))
	require.Empty(t, utils.SplitList(""))
}

func TestSortedJoin(t *testing.T) {
	items := []string{"wall", "email", "offline"}
	require.Equal(t, "email,offline,wall", utils.SortedJoin(items, ","))
	require.Equal(t, []string{"wall", "email", "offline"}, items)
}

func TestValueOk(t *testing.T) {
	v, ok := utils.ValueOk[int64](nil)
	require.False(t, ok)
	require.Zero(t, v)

	v, ok = utils.ValueOk(utils.Ptr(int64(42)))
	require.True(t, ok)
	require.Equal(t, int64(42), v)
}
