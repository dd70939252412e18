package storage

import (
	"context"
	"testing"
	"time"

	"github.com/pudottapommin/ephemeral-messages-service/pkg/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryInsertGet(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	m := messages.Message{ID: "a1", Payload: []byte("XYZ"), ExpiresAt: now.Add(time.Minute), CreatedAt: now}
	require.NoError(t, b.Insert(ctx, m))

	got, err := b.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, m, *got)

	_, err = b.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestMemoryInsertCollisionIsRaw(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	// collision fires even when the stored record is already expired;
	// reconciling that is the Store's job, not the backend's
	expired := messages.Message{ID: "a1", Payload: []byte("old"), ExpiresAt: now.Add(-time.Minute), CreatedAt: now.Add(-time.Hour)}
	require.NoError(t, b.Insert(ctx, expired))
	err := b.Insert(ctx, messages.Message{ID: "a1", Payload: []byte("new"), ExpiresAt: now.Add(time.Minute), CreatedAt: now})
	assert.ErrorIs(t, err, ErrRecordExists)
}

func TestMemoryGetReturnsRawExpired(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	expired := messages.Message{ID: "a1", Payload: []byte("old"), ExpiresAt: now.Add(-time.Minute), CreatedAt: now.Add(-time.Hour)}
	require.NoError(t, b.Insert(ctx, expired))

	got, err := b.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, expired.Payload, got.Payload)
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	require.NoError(t, b.Insert(ctx, messages.Message{ID: "a1", ExpiresAt: now.Add(time.Minute), CreatedAt: now}))
	assert.NoError(t, b.Delete(ctx, "a1"))
	assert.ErrorIs(t, b.Delete(ctx, "a1"), ErrRecordNotFound)
}

func TestMemoryFetchDelete(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	m := messages.Message{ID: "a1", Payload: []byte("secret"), ExpiresAt: now.Add(time.Minute), CreatedAt: now}
	require.NoError(t, b.Insert(ctx, m))

	fd, ok := b.(fetchDeleter)
	require.True(t, ok)

	got, err := fd.FetchDelete(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, m.Payload, got.Payload)

	_, err = fd.FetchDelete(ctx, "a1")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestMemoryDeleteExpired(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	require.NoError(t, b.Insert(ctx, messages.Message{ID: "gone1", ExpiresAt: now.Add(-time.Minute), CreatedAt: now.Add(-time.Hour)}))
	require.NoError(t, b.Insert(ctx, messages.Message{ID: "gone2", ExpiresAt: now, CreatedAt: now.Add(-time.Hour)}))
	require.NoError(t, b.Insert(ctx, messages.Message{ID: "kept", ExpiresAt: now.Add(time.Minute), CreatedAt: now}))

	count, err := b.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = b.Get(ctx, "gone1")
	assert.ErrorIs(t, err, ErrRecordNotFound)
	_, err = b.Get(ctx, "kept")
	assert.NoError(t, err)

	count, err = b.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMemoryPayloadIsolation(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	payload := []byte("mutable")
	require.NoError(t, b.Insert(ctx, messages.Message{ID: "a1", Payload: payload, ExpiresAt: now.Add(time.Minute), CreatedAt: now}))
	payload[0] = 'X'

	got, err := b.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, []byte("mutable"), got.Payload)

	got.Payload[0] = 'Y'
	again, err := b.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, []byte("mutable"), again.Payload)
}
