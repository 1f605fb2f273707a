package neows

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
)

// CachedCatalog wraps a Catalog with an in-memory LRU of found records.
// Concurrent misses for the same key share one upstream call.
type CachedCatalog struct {
	inner   domain.Catalog
	cache   *lru.Cache[string, domain.NEO] // nil when disabled
	group   singleflight.Group
	metrics *observability.Metrics
}

// NewCachedCatalog creates a cache decorator around a catalog. A size of 0
// disables caching but keeps request deduplication.
func NewCachedCatalog(inner domain.Catalog, size int, metrics *observability.Metrics) (*CachedCatalog, error) {
	c := &CachedCatalog{inner: inner, metrics: metrics}
	if size > 0 {
		cache, err := lru.New[string, domain.NEO](size)
		if err != nil {
			return nil, fmt.Errorf("create catalog cache: %w", err)
		}
		c.cache = cache
	}
	return c, nil
}

func (c *CachedCatalog) FetchByID(ctx context.Context, id string) (domain.NEO, error) {
	return c.lookup(ctx, "fetch", "id:"+id, func(ctx context.Context) (domain.NEO, error) {
		return c.inner.FetchByID(ctx, id)
	})
}

func (c *CachedCatalog) SearchByName(ctx context.Context, fragment string, maxPages int) (domain.NEO, error) {
	key := fmt.Sprintf("q:%s|%d", strings.ToLower(fragment), maxPages)
	return c.lookup(ctx, "search", key, func(ctx context.Context) (domain.NEO, error) {
		return c.inner.SearchByName(ctx, fragment, maxPages)
	})
}

// Len reports the number of cached records.
func (c *CachedCatalog) Len() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

// lookup serves key from the cache or loads it once for all concurrent
// callers. The shared load is detached from any one caller's cancellation;
// each caller still stops waiting when its own context ends.
func (c *CachedCatalog) lookup(ctx context.Context, method, key string, load func(context.Context) (domain.NEO, error)) (domain.NEO, error) {
	if c.cache != nil {
		if neo, ok := c.cache.Get(key); ok {
			c.metrics.CatalogCache.WithLabelValues(method, "hit").Inc()
			return neo, nil
		}
	}
	c.metrics.CatalogCache.WithLabelValues(method, "miss").Inc()

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		neo, err := load(shared)
		if err != nil {
			return domain.NEO{}, err
		}
		// Errors and not-found answers are never cached so they can be retried.
		if c.cache != nil {
			c.cache.Add(key, neo)
		}
		return neo, nil
	})

	select {
	case <-ctx.Done():
		return domain.NEO{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.NEO{}, res.Err
		}
		return res.Val.(domain.NEO), nil
	}
}
