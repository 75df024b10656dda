package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testPhotos() []flashbooth.Photo {
	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return []flashbooth.Photo{
		{ID: "p1", DataURL: "data:image/jpeg;base64,aGVsbG8=", Timestamp: ts},
		{ID: "p2", DataURL: "data:image/jpeg;base64,d29ybGQ=", Timestamp: ts.Add(time.Second)},
	}
}

func TestMemoryStore_SaveLoad(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	saved, err := store.Save(ctx, testPhotos(), "Strike a pose!")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(saved.ID, "session_"), "unexpected id %q", saved.ID)

	loaded, err := store.Load(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
	assert.Equal(t, "Strike a pose!", loaded.Caption)
	assert.Len(t, loaded.Photos, 2)
}

func TestMemoryStore_UniqueIDs(t *testing.T) {
	store := NewMemoryStore(0)
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		sess, err := store.Save(context.Background(), nil, "")
		require.NoError(t, err)
		assert.False(t, seen[sess.ID], "duplicate id %s", sess.ID)
		seen[sess.ID] = true
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(24*time.Hour, WithClock(clock.Now))
	ctx := context.Background()

	sess, err := store.Save(ctx, testPhotos(), "caption")
	require.NoError(t, err)

	clock.Advance(24 * time.Hour)
	_, err = store.Load(ctx, sess.ID)
	require.NoError(t, err, "session is still valid at exactly the TTL")

	clock.Advance(time.Millisecond)
	_, err = store.Load(ctx, sess.ID)
	assert.True(t, errors.Is(err, flashbooth.ErrSessionNotFound))
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sess, err := store.Save(ctx, testPhotos(), "bye")
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, sess.ID))

	_, err = store.Load(ctx, sess.ID)
	assert.True(t, errors.Is(err, flashbooth.ErrSessionNotFound))

	err = store.Delete(ctx, sess.ID)
	assert.True(t, errors.Is(err, flashbooth.ErrSessionNotFound))
}

func TestMemoryStore_LoadUnknown(t *testing.T) {
	_, err := NewMemoryStore(time.Hour).Load(context.Background(), "session_missing")
	assert.True(t, errors.Is(err, flashbooth.ErrSessionNotFound))
	assert.Equal(t, flashbooth.ExitSessionNotFound, flashbooth.ExitCodeForError(err))
}

func TestMemoryStore_IsolatesCallerSlices(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()
	photos := testPhotos()

	sess, err := store.Save(ctx, photos, "")
	require.NoError(t, err)
	photos[0].ID = "mutated"

	loaded, err := store.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "p1", loaded.Photos[0].ID)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryStore(time.Hour).Save(ctx, testPhotos(), "")
	assert.ErrorIs(t, err, context.Canceled)
}
