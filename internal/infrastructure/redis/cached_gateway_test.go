package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/abuabdirohman4/better-habit/internal/apperror"
	"github.com/abuabdirohman4/better-habit/internal/infrastructure/memory"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeRedis struct {
	mu      sync.Mutex
	data    map[string]string
	deletes int
	down    bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return redis.NewStringResult("", errors.New("connection refused"))
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return redis.NewStatusResult("", errors.New("connection refused"))
	}
	f.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	for _, k := range keys {
		delete(f.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

const sheetID = "sheet-1"

func setup(t *testing.T) (*CachedGateway, *memory.Gateway, *fakeRedis) {
	t.Helper()
	backend := memory.NewGateway()
	backend.CreateSheet(sheetID, "Habits", []string{"id", "displayName", "isActive"})
	require.NoError(t, backend.AppendRows(context.Background(), sheetID, "Habits!A:C", [][]string{{"1", "Run", "true"}}))

	cache := newFakeRedis()
	return NewCachedGateway(backend, cache, time.Minute, zaptest.NewLogger(t)), backend, cache
}

func TestCachedGateway_ServesRepeatedReadsFromCache(t *testing.T) {
	ctx := context.Background()
	gw, backend, _ := setup(t)

	first, err := gw.ReadTable(ctx, sheetID, "Habits")
	require.NoError(t, err)
	second, err := gw.ReadTable(ctx, sheetID, "Habits")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, backend.Reads())
}

func TestCachedGateway_WritesInvalidate(t *testing.T) {
	ctx := context.Background()
	gw, backend, cache := setup(t)

	_, err := gw.ReadTable(ctx, sheetID, "Habits")
	require.NoError(t, err)

	require.NoError(t, gw.AppendRows(ctx, sheetID, "Habits!A:C", [][]string{{"2", "Read", "true"}}))
	assert.Equal(t, 2, cache.deletes)

	rows, err := gw.ReadTable(ctx, sheetID, "Habits")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, 2, backend.Reads())
}

func TestCachedGateway_FallsThroughWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	gw, backend, cache := setup(t)
	cache.down = true

	rows, err := gw.ReadTable(ctx, sheetID, "Habits")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = gw.ReadTable(ctx, sheetID, "Habits")
	require.NoError(t, err)
	assert.Equal(t, 2, backend.Reads())
}

func TestCachedGateway_DoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	gw, _, cache := setup(t)

	_, err := gw.ReadTable(ctx, sheetID, "Missing")
	assert.ErrorIs(t, err, apperror.ErrSheetNotFound)
	assert.Empty(t, cache.data)
}
