package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/scienceol/labportal/internal/testutil"
	"github.com/scienceol/labportal/pkg/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := testutil.NewSessionStore(t)

	id, err := store.Create(ctx, &session.Data{UserID: 7, Username: "analyst", IsStaff: true})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.EqualValues(t, 7, got.UserID)
	assert.Equal(t, "analyst", got.Username)
	assert.True(t, got.IsStaff)
	assert.False(t, got.CreatedAt.IsZero())

	mr.FastForward(2 * time.Hour)
	got, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionMissingAndDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := testutil.NewSessionStore(t)

	got, err := store.Get(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = store.Get(ctx, "unknown")
	require.NoError(t, err)
	assert.Nil(t, got)

	id, err := store.Create(ctx, &session.Data{UserID: 1})
	require.NoError(t, err)
	require.NoError(t, store.AddFlash(ctx, id, "hi"))
	require.NoError(t, store.Delete(ctx, id))

	got, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
	msgs, err := store.PopFlashes(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestFlashesPopOnce(t *testing.T) {
	ctx := context.Background()
	store, _ := testutil.NewSessionStore(t)

	id, err := store.Create(ctx, &session.Data{UserID: 1})
	require.NoError(t, err)
	require.NoError(t, store.AddFlash(ctx, id, "Record created."))
	require.NoError(t, store.AddFlash(ctx, id, "Saved view updated."))

	msgs, err := store.PopFlashes(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Record created.", "Saved view updated."}, msgs)

	msgs, err = store.PopFlashes(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
