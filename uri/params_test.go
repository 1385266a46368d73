package uri_test

import (
	"testing"

	"github.com/jrsteele09/go-vk-client/uri"
	"github.com/stretchr/testify/require"
)

func TestParams(t *testing.T) {
	p := uri.NewParams("b", "2", "a", "1", "dangling")
	require.Len(t, p, 2)
	require.True(t, p.Has("a"))
	require.False(t, p.Has("dangling"))

	p = p.Set("b", "3")
	require.Equal(t, uri.Params{{Key: "b", Value: "3"}, {Key: "a", Value: "1"}}, p)

	p = p.SetDefault("a", "ignored").SetDefault("c", "4")
	require.Equal(t, "1", p.Get("a"))
	require.Equal(t, "4", p.Get("c"))

	p = p.PrependDefault("client_id", "123")
	require.Equal(t, "client_id", p[0].Key)

	sorted := p.Sorted()
	require.Equal(t, []string{"a", "b", "c", "client_id"}, []string{sorted[0].Key, sorted[1].Key, sorted[2].Key, sorted[3].Key})
	require.Equal(t, "client_id", p[0].Key)

	p = p.Delete("b")
	require.False(t, p.Has("b"))
	require.Equal(t, map[string]string{"client_id": "123", "a": "1", "c": "4"}, p.Map())
}

func TestFromMap(t *testing.T) {
	p := uri.FromMap(map[string]string{"owner_id": "1", "count": "10"})
	require.Equal(t, uri.Params{{Key: "count", Value: "10"}, {Key: "owner_id", Value: "1"}}, p)
}
