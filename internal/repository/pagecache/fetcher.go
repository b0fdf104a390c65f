// Package pagecache layers a short-TTL key-value cache over the page
// fetcher so hot pages are not re-scraped on every chat request.
// Entries expire quickly because pricing and coupon data change often;
// cache outages degrade to live fetches, never to request failures.
package pagecache

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/fundedfolk/supportbot/internal/db"
	"github.com/fundedfolk/supportbot/internal/domain"
	"github.com/fundedfolk/supportbot/internal/metrics"
)

const cacheKeyPrefix = domain.KeyPrefix + "page_cache:"

// PageFetcher is the fetching contract this cache decorates.
type PageFetcher interface {
	FetchPage(ctx context.Context, path string) (string, error)
	FetchPricing(ctx context.Context) (string, error)
	FetchCoupons(ctx context.Context) (string, error)
}

// store is the subset of db.KVStore the page cache needs.
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Fetcher caches successful fetch results; failures pass through
// uncached so a transient outage never sticks for the TTL.
type Fetcher struct {
	inner  PageFetcher
	store  store
	ttl    time.Duration
	logger *zap.Logger
}

// NewFetcher wraps inner with a cache. ttl bounds how stale served
// content can be.
func NewFetcher(inner PageFetcher, s store, ttl time.Duration, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{inner: inner, store: s, ttl: ttl, logger: logger}
}

// FetchPage implements PageFetcher.
func (f *Fetcher) FetchPage(ctx context.Context, path string) (string, error) {
	return f.cached(ctx, "page:"+path, path, func() (string, error) {
		return f.inner.FetchPage(ctx, path)
	})
}

// FetchPricing implements PageFetcher.
func (f *Fetcher) FetchPricing(ctx context.Context) (string, error) {
	return f.cached(ctx, "pricing", "/api/pricing", func() (string, error) {
		return f.inner.FetchPricing(ctx)
	})
}

// FetchCoupons implements PageFetcher.
func (f *Fetcher) FetchCoupons(ctx context.Context) (string, error) {
	return f.cached(ctx, "coupons", "/api/pricing-details", func() (string, error) {
		return f.inner.FetchCoupons(ctx)
	})
}

func (f *Fetcher) cached(ctx context.Context, name, path string, fetch func() (string, error)) (string, error) {
	key := cacheKeyPrefix + name

	data, err := f.store.Get(ctx, key)
	if err == nil {
		metrics.ScrapeFetchesTotal.WithLabelValues(path, "cached").Inc()
		return string(data), nil
	}
	if !errors.Is(err, db.ErrKeyNotFound) {
		f.logger.Warn("page cache get failed", zap.String("key", name), zap.Error(err))
	}

	content, err := fetch()
	if err != nil {
		return "", err
	}

	if err := f.store.SetWithTTL(ctx, key, []byte(content), f.ttl); err != nil {
		f.logger.Warn("page cache put failed", zap.String("key", name), zap.Error(err))
	}
	return content, nil
}
