package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-marketplace-be/pkg/chatflow"
)

func newRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore(rdb, time.Hour)
}

func sampleSession() *chatflow.Session {
	sess := chatflow.NewSession("sess-1")
	sess.Context.Name = "Rahul"
	sess.CurrentStep = chatflow.StepAskLoanAmount
	return sess
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession()))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", got.SessionId)
	assert.Equal(t, "Rahul", got.Context.Name)
	assert.Equal(t, chatflow.StepAskLoanAmount, got.CurrentStep)
}

func TestRedisStoreGetMissing(t *testing.T) {
	store := newRedisStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreDelete(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession()))
	require.NoError(t, store.Delete(ctx, "sess-1"))

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent session is not an error.
	assert.NoError(t, store.Delete(ctx, "sess-1"))
}

func TestRedisStoreSessionsExpire(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(rdb, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession()))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession()))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "Rahul", got.Context.Name)

	require.NoError(t, store.Delete(ctx, "sess-1"))
	_, err = store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreGetReturnsIsolatedCopy(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession()))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	got.Context.LoanPurpose = "leaked purpose"
	got.CurrentStep = chatflow.StepEligibilityCheck

	reloaded, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, reloaded.Context.LoanPurpose, "unsaved mutation must not be visible on reload")
	assert.Equal(t, chatflow.StepAskLoanAmount, reloaded.CurrentStep)
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
