package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestGetOrSet_TTL(t *testing.T) {
	clock := newFakeClock()
	c := New(1000*time.Millisecond, 10, WithClock(clock.Now))
	ctx := context.Background()

	calls := 0
	loader := func(ctx context.Context) (int, error) {
		calls++
		return calls * 10, nil
	}

	v, err := GetOrSet(ctx, c, "k", loader)
	require.NoError(t, err)
	assert.Equal(t, 10, v)
	assert.Equal(t, 1, calls)

	clock.Advance(500 * time.Millisecond)
	v, err = GetOrSet(ctx, c, "k", loader)
	require.NoError(t, err)
	assert.Equal(t, 10, v, "within TTL the cached value is returned")
	assert.Equal(t, 1, calls)

	clock.Advance(501 * time.Millisecond)
	v, err = GetOrSet(ctx, c, "k", loader)
	require.NoError(t, err)
	assert.Equal(t, 20, v, "after TTL the loader runs again")
	assert.Equal(t, 2, calls)
}

func TestGet_ExpiredEntryIsRemoved(t *testing.T) {
	clock := newFakeClock()
	c := New(time.Second, 10, WithClock(clock.Now))

	c.Set("a", "x")
	clock.Advance(time.Second)
	_, ok := c.Get("a")
	assert.True(t, ok, "expiry instant itself is still valid")

	clock.Advance(time.Millisecond)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestSet_EvictsOldestInserted(t *testing.T) {
	c := New(time.Minute, 3)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	// Reading "a" does not protect it; eviction is by insertion order
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("d", 4)

	_, ok = c.Get("a")
	assert.False(t, ok)
	for _, key := range []string{"b", "c", "d"} {
		_, ok := c.Get(key)
		assert.True(t, ok, key)
	}
	assert.Equal(t, 3, c.Len())
}

func TestSet_ExistingKeyUpdatesInPlace(t *testing.T) {
	c := New(time.Minute, 2)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 10)

	assert.Equal(t, 2, c.Len())
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, v)

	// "a" kept its original insertion slot, so it goes first
	c.Set("c", 3)
	_, ok = c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)
}

func TestGetOrSet_LoaderErrorNotCached(t *testing.T) {
	c := New(time.Minute, 10)
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := GetOrSet(ctx, c, "k", func(ctx context.Context) (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())

	v, err := GetOrSet(ctx, c, "k", func(ctx context.Context) (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestDeleteByPrefixAndClear(t *testing.T) {
	c := New(time.Minute, 10)
	c.Set("folders:roots:all", 1)
	c.Set("folders:roots:count", 2)
	c.Set("files:all:all", 3)

	c.DeleteByPrefix("folders:")
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("files:all:all")
	assert.True(t, ok)

	c.Set("tree:full", 4)
	c.Clear()
	assert.Equal(t, 0, c.Len())

	// Still usable after Clear
	c.Set("x", 5)
	assert.Equal(t, 1, c.Len())
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New(time.Minute, 50)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (i+j)%80)
				_, _ = GetOrSet(ctx, c, key, func(ctx context.Context) (int, error) { return j, nil })
				if j%25 == 0 {
					c.DeleteByPrefix("k1")
				}
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 50)
}
