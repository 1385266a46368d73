package sqlitestore_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	vkerrors "github.com/jrsteele09/go-vk-client/internal/errors"
	"github.com/jrsteele09/go-vk-client/internal/utils"
	"github.com/jrsteele09/go-vk-client/sessions"
	"github.com/jrsteele09/go-vk-client/sessions/sqlitestore"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, now *time.Time) *sqlitestore.Store {
	t.Helper()

	store, err := sqlitestore.NewStore(t.TempDir(), sqlitestore.WithNowTime(func() time.Time { return *now }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_SetGet(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := newTestStore(t, &now)
	require.Equal(t, "sessions.db", filepath.Base(store.Path()))

	missing, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, missing.Authenticated())

	in := &sessions.Session{UserID: utils.Ptr(int64(1)), AccessToken: "tok", ExpiresIn: utils.Ptr(int64(86400)), Email: "a@b.c"}
	require.NoError(t, store.Set(ctx, "k", in, time.Hour))

	out, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, in, out)

	in.AccessToken = "newer"
	require.NoError(t, store.Set(ctx, "k", in, time.Hour))
	out, err = store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "newer", out.AccessToken)
}

func TestStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := newTestStore(t, &now)

	require.NoError(t, store.Set(ctx, "short", &sessions.Session{AccessToken: "tok"}, time.Minute))
	require.NoError(t, store.Set(ctx, "forever", &sessions.Session{AccessToken: "tok"}, 0))

	now = now.Add(time.Minute)
	out, err := store.Get(ctx, "short")
	require.NoError(t, err)
	require.False(t, out.Authenticated())

	require.NoError(t, store.DeleteExpiredSessions(ctx))
	out, err = store.Get(ctx, "forever")
	require.NoError(t, err)
	require.True(t, out.Authenticated())

	require.NoError(t, store.Delete(ctx, "forever"))
	out, err = store.Get(ctx, "forever")
	require.NoError(t, err)
	require.False(t, out.Authenticated())
}

func TestStore_InvalidInput(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	store := newTestStore(t, &now)

	_, err := store.Get(ctx, "")
	require.ErrorIs(t, err, vkerrors.ErrEmptySessionKey)
	require.ErrorIs(t, store.Set(ctx, "k", nil, 0), vkerrors.ErrNilSession)
}
