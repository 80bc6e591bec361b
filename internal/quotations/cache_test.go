package quotations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func testCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute), mr
}

func TestCacheVersionInitialisesToOne(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	ver, err := c.Version(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), ver)

	require.NoError(t, c.Bump(ctx))
	ver, err = c.Version(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), ver)
}

func TestFetchRecentPopulatesAndServes(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	calls := 0
	loader := func(context.Context) ([]Quotation, error) {
		calls++
		return []Quotation{{Number: "ITBIZ-QT-1001"}}, nil
	}

	qs, err := c.FetchRecent(ctx, 50, loader)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	require.Equal(t, 1, calls)

	// second read hits the cache
	qs, err = c.FetchRecent(ctx, 50, loader)
	require.NoError(t, err)
	require.Equal(t, "ITBIZ-QT-1001", qs[0].Number)
	require.Equal(t, 1, calls)
}

func TestFetchRecentBumpInvalidates(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	calls := 0
	loader := func(context.Context) ([]Quotation, error) {
		calls++
		return []Quotation{{Number: "ITBIZ-QT-1001"}}, nil
	}

	_, err := c.FetchRecent(ctx, 50, loader)
	require.NoError(t, err)
	require.NoError(t, c.Bump(ctx))
	_, err = c.FetchRecent(ctx, 50, loader)
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestFetchRecentLoaderError(t *testing.T) {
	c, _ := testCache(t)
	wantErr := errors.New("db down")
	_, err := c.FetchRecent(context.Background(), 50, func(context.Context) ([]Quotation, error) {
		return nil, wantErr
	})
	require.ErrorIs(t, err, wantErr)
}

func TestPDFCacheRoundTrip(t *testing.T) {
	c, _ := testCache(t)
	ctx := context.Background()

	got, err := c.GetPDF(ctx, "ITBIZ-QT-1001")
	require.NoError(t, err)
	require.Nil(t, got)

	require.NoError(t, c.SetPDF(ctx, "ITBIZ-QT-1001", []byte("%PDF-stub")))
	got, err = c.GetPDF(ctx, "ITBIZ-QT-1001")
	require.NoError(t, err)
	require.Equal(t, []byte("%PDF-stub"), got)
}

func TestNilCachePassesThrough(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	qs, err := c.FetchRecent(ctx, 50, func(context.Context) ([]Quotation, error) {
		return []Quotation{{Number: "ITBIZ-QT-1001"}}, nil
	})
	require.NoError(t, err)
	require.Len(t, qs, 1)

	require.NoError(t, c.Bump(ctx))
	require.NoError(t, c.SetPDF(ctx, "ITBIZ-QT-1001", []byte("x")))
	got, err := c.GetPDF(ctx, "ITBIZ-QT-1001")
	require.NoError(t, err)
	require.Nil(t, got)
}
