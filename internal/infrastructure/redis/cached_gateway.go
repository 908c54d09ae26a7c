package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abuabdirohman4/better-habit/internal/domain/repository"
	"github.com/abuabdirohman4/better-habit/internal/infrastructure/sheet"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Client is the subset of *redis.Client the cache needs
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CachedGateway serves repeated table reads from Redis for a short TTL.
// Every write drops the sheet's entry before and after reaching the backend.
type CachedGateway struct {
	next   repository.SheetGateway
	client Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewCachedGateway wraps next with a read cache
func NewCachedGateway(next repository.SheetGateway, client Client, ttl time.Duration, log *zap.Logger) *CachedGateway {
	return &CachedGateway{next: next, client: client, ttl: ttl, log: log}
}

var _ repository.SheetGateway = (*CachedGateway)(nil)

// tableKey generates Redis key for a cached sheet
func (c *CachedGateway) tableKey(spreadsheetID, sheetName string) string {
	return fmt.Sprintf("sheet:%s:%s", spreadsheetID, sheetName)
}

func (c *CachedGateway) ReadTable(ctx context.Context, spreadsheetID, sheetName string) ([]repository.Row, error) {
	key := c.tableKey(spreadsheetID, sheetName)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var rows []repository.Row
		if jsonErr := json.Unmarshal(data, &rows); jsonErr == nil {
			return rows, nil
		}
		c.log.Warn("discarding corrupt cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.log.Warn("sheet cache read failed", zap.String("key", key), zap.Error(err))
	}

	rows, err := c.next.ReadTable(ctx, spreadsheetID, sheetName)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(rows); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.Warn("sheet cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return rows, nil
}

func (c *CachedGateway) AppendRows(ctx context.Context, spreadsheetID, rangeRef string, rows [][]string) error {
	return c.invalidating(ctx, spreadsheetID, rangeRef, func() error {
		return c.next.AppendRows(ctx, spreadsheetID, rangeRef, rows)
	})
}

func (c *CachedGateway) OverwriteRange(ctx context.Context, spreadsheetID, rangeRef string, rows [][]string) error {
	return c.invalidating(ctx, spreadsheetID, rangeRef, func() error {
		return c.next.OverwriteRange(ctx, spreadsheetID, rangeRef, rows)
	})
}

func (c *CachedGateway) invalidating(ctx context.Context, spreadsheetID, rangeRef string, write func() error) error {
	r, err := sheet.ParseRange(rangeRef)
	if err != nil {
		return write()
	}
	key := c.tableKey(spreadsheetID, r.Sheet)

	c.drop(ctx, key)
	err = write()
	c.drop(ctx, key)
	return err
}

func (c *CachedGateway) drop(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Warn("sheet cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}
