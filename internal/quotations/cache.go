package quotations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheVersionKey = "quotations:version"

// Cache fronts the listing endpoint with a versioned Redis cache and holds
// rendered PDF bytes. A nil Cache (or client) degrades to pass-through.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Version returns the current cache version, initialising it when missing.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// Bump invalidates all versioned entries after a write.
func (c *Cache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, cacheVersionKey).Err()
}

// FetchRecent loads the recent listing from cache or populates it.
func (c *Cache) FetchRecent(ctx context.Context, limit int, loader func(context.Context) ([]Quotation, error)) ([]Quotation, error) {
	if c == nil || c.client == nil {
		return loader(ctx)
	}

	ver, err := c.Version(ctx)
	if err != nil {
		return loader(ctx)
	}
	key := fmt.Sprintf("quotations:recent:%d:%d", limit, ver)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var cached []Quotation
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	fresh, err := loader(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(fresh); err == nil {
		_ = c.client.Set(ctx, key, data, c.ttl).Err()
	}
	return fresh, nil
}

// GetPDF returns cached document bytes, or nil on a miss. The rendered
// document is immutable for a given quotation, so the key is unversioned.
func (c *Cache) GetPDF(ctx context.Context, number string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, pdfKey(number)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return raw, err
}

// SetPDF stores rendered document bytes with the cache TTL.
func (c *Cache) SetPDF(ctx context.Context, number string, data []byte) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, pdfKey(number), data, c.ttl).Err()
}

func pdfKey(number string) string {
	return "quotations:pdf:" + number
}
