package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore 模拟不可用的存储
type failingStore struct {
	err error
}

func (s failingStore) Get(context.Context, string) (string, bool, error) { return "", false, s.err }
func (s failingStore) Set(context.Context, string, string) error         { return s.err }
func (s failingStore) Delete(context.Context, string) error              { return s.err }
func (s failingStore) Keys(context.Context) ([]string, error)            { return nil, s.err }

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestCache(t *testing.T) (*Cache, *MemoryStore, *fakeClock) {
	t.Helper()
	store := NewMemoryStore()
	clock := &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	return New(store, WithClock(clock.Now)), store, clock
}

func TestCache_PutThenGet(t *testing.T) {
	c, store, clock := newTestCache(t)
	ctx := context.Background()

	c.Put(ctx, "index_zh", json.RawMessage(`{"A":"https://a"}`))

	data, ok := c.Get(ctx, "index_zh")
	require.True(t, ok)
	assert.JSONEq(t, `{"A":"https://a"}`, string(data))

	raw, ok, err := store.Get(ctx, "index_zh")
	require.NoError(t, err)
	require.True(t, ok)

	var entry Entry
	require.NoError(t, json.Unmarshal([]byte(raw), &entry))
	assert.Equal(t, clock.now.UnixMilli(), entry.Timestamp, "时间戳应为写入时刻")
}

func TestCache_ExpiryIsLazy(t *testing.T) {
	tests := []struct {
		name   string
		age    time.Duration
		wantOK bool
	}{
		{"fresh", time.Hour, true},
		{"just under 24h", 24*time.Hour - time.Millisecond, true},
		{"exactly 24h", 24 * time.Hour, false},
		{"25 hours old", 25 * time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, store, clock := newTestCache(t)
			ctx := context.Background()

			stored := clock.now.Add(-tt.age)
			raw, err := json.Marshal(Entry{Data: json.RawMessage(`{"ok":true}`), Timestamp: stored.UnixMilli()})
			require.NoError(t, err)
			require.NoError(t, store.Set(ctx, "library_x", string(raw)))

			_, ok := c.Get(ctx, "library_x")
			assert.Equal(t, tt.wantOK, ok)

			// 过期条目不会被主动删除
			_, stillThere, _ := store.Get(ctx, "library_x")
			assert.True(t, stillThere)
		})
	}
}

func TestCache_MalformedEntriesAreMisses(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{broken"},
		{"null data", `{"data":null,"timestamp":1}`},
		{"missing data", `{"timestamp":1}`},
		{"empty string", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, store, _ := newTestCache(t)
			ctx := context.Background()
			require.NoError(t, store.Set(ctx, "index_en", tt.raw))

			_, ok := c.Get(ctx, "index_en")
			assert.False(t, ok)
		})
	}
}

func TestCache_StoreFailuresAreSwallowed(t *testing.T) {
	c := New(failingStore{err: errors.New("storage unavailable")})
	ctx := context.Background()

	_, ok := c.Get(ctx, "index_zh")
	assert.False(t, ok)

	assert.NotPanics(t, func() {
		c.Put(ctx, "index_zh", json.RawMessage(`{}`))
	})
	assert.Equal(t, 0, c.DeletePrefixed(ctx, "index_"))
	assert.Nil(t, c.List(ctx, "index_"))
}

func TestCache_NilIsSafe(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	c.Put(ctx, "k", json.RawMessage(`{}`))
	assert.Equal(t, 0, c.DeletePrefixed(ctx, "k"))
}

func TestCache_DeletePrefixed(t *testing.T) {
	c, store, _ := newTestCache(t)
	ctx := context.Background()

	c.Put(ctx, "index_zh", json.RawMessage(`{}`))
	c.Put(ctx, "index_en", json.RawMessage(`{}`))
	c.Put(ctx, "library_https://a", json.RawMessage(`{}`))
	require.NoError(t, store.Set(ctx, "user_theme", "dark"))

	removed := c.DeletePrefixed(ctx, "index_", "library_")
	assert.Equal(t, 3, removed)

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"user_theme"}, keys)

	// 幂等
	assert.Equal(t, 0, c.DeletePrefixed(ctx, "index_", "library_"))
}

func TestCache_List(t *testing.T) {
	c, store, clock := newTestCache(t)
	ctx := context.Background()

	c.Put(ctx, "index_zh", json.RawMessage(`{"A":"a"}`))
	clock.now = clock.now.Add(30 * time.Hour)
	c.Put(ctx, "index_en", json.RawMessage(`{"B":"b"}`))
	require.NoError(t, store.Set(ctx, "library_bad", "{"))
	require.NoError(t, store.Set(ctx, "other", "x"))

	infos := c.List(ctx, "index_", "library_")
	require.Len(t, infos, 3)

	byKey := map[string]EntryInfo{}
	for _, info := range infos {
		byKey[info.Key] = info
	}
	assert.True(t, byKey["index_zh"].Expired)
	assert.False(t, byKey["index_en"].Expired)
	assert.True(t, byKey["library_bad"].Corrupt)
}
