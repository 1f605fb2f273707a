package neows

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
)

// --- mock for cache tests ---

type countingCatalog struct {
	fetchCalls  atomic.Int32
	searchCalls atomic.Int32
	delay       time.Duration
	neo         domain.NEO
	err         error
}

func (m *countingCatalog) FetchByID(ctx context.Context, id string) (domain.NEO, error) {
	m.fetchCalls.Add(1)
	if err := m.wait(ctx); err != nil {
		return domain.NEO{}, err
	}
	if m.err != nil {
		return domain.NEO{}, m.err
	}
	neo := m.neo
	neo.ID = id
	return neo, nil
}

func (m *countingCatalog) SearchByName(ctx context.Context, _ string, _ int) (domain.NEO, error) {
	m.searchCalls.Add(1)
	if err := m.wait(ctx); err != nil {
		return domain.NEO{}, err
	}
	if m.err != nil {
		return domain.NEO{}, m.err
	}
	return m.neo, nil
}

func (m *countingCatalog) wait(ctx context.Context) error {
	if m.delay == 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.delay):
		return nil
	}
}

func newTestCache(t *testing.T, inner domain.Catalog, size int) *CachedCatalog {
	t.Helper()
	c, err := NewCachedCatalog(inner, size, observability.NewMetricsForTesting())
	require.NoError(t, err)
	return c
}

func TestCachedCatalog_FetchCacheHit(t *testing.T) {
	inner := &countingCatalog{neo: domain.NEO{Name: "433 Eros"}}
	cached := newTestCache(t, inner, 10)

	n1, err := cached.FetchByID(context.Background(), "433")
	require.NoError(t, err)
	n2, err := cached.FetchByID(context.Background(), "433")
	require.NoError(t, err)

	assert.Equal(t, n1, n2)
	assert.Equal(t, int32(1), inner.fetchCalls.Load(), "should only call inner once")
	assert.InDelta(t, 1, testutil.ToFloat64(cached.metrics.CatalogCache.WithLabelValues("fetch", "hit")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(cached.metrics.CatalogCache.WithLabelValues("fetch", "miss")), 0)
}

func TestCachedCatalog_SearchKeyIgnoresCase(t *testing.T) {
	inner := &countingCatalog{neo: domain.NEO{ID: "2101955", Name: "101955 Bennu"}}
	cached := newTestCache(t, inner, 10)

	_, err := cached.SearchByName(context.Background(), "Bennu", 100)
	require.NoError(t, err)
	_, err = cached.SearchByName(context.Background(), "BENNU", 100)
	require.NoError(t, err)
	assert.Equal(t, int32(1), inner.searchCalls.Load())

	// A different page budget is a different question.
	_, err = cached.SearchByName(context.Background(), "bennu", 5)
	require.NoError(t, err)
	assert.Equal(t, int32(2), inner.searchCalls.Load())
}

func TestCachedCatalog_ErrorsNotCached(t *testing.T) {
	for _, sentinel := range []error{domain.ErrNotFound, domain.ErrCatalogUnavailable} {
		t.Run(sentinel.Error(), func(t *testing.T) {
			inner := &countingCatalog{err: sentinel}
			cached := newTestCache(t, inner, 10)

			_, err := cached.FetchByID(context.Background(), "1")
			require.ErrorIs(t, err, sentinel)
			_, err = cached.FetchByID(context.Background(), "1")
			require.ErrorIs(t, err, sentinel)

			assert.Equal(t, int32(2), inner.fetchCalls.Load())
			assert.Equal(t, 0, cached.Len())
		})
	}
}

func TestCachedCatalog_Eviction(t *testing.T) {
	inner := &countingCatalog{}
	cached := newTestCache(t, inner, 2)

	for _, id := range []string{"1", "2", "3"} {
		_, err := cached.FetchByID(context.Background(), id)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, cached.Len())

	_, err := cached.FetchByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, int32(4), inner.fetchCalls.Load(), "1 should have been evicted")
}

func TestCachedCatalog_SizeZeroDisables(t *testing.T) {
	inner := &countingCatalog{}
	cached := newTestCache(t, inner, 0)

	_, _ = cached.FetchByID(context.Background(), "1")
	_, _ = cached.FetchByID(context.Background(), "1")

	assert.Equal(t, int32(2), inner.fetchCalls.Load())
	assert.Equal(t, 0, cached.Len())
}

func TestCachedCatalog_ConcurrentMissesShareOneCall(t *testing.T) {
	inner := &countingCatalog{delay: 100 * time.Millisecond}
	cached := newTestCache(t, inner, 10)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cached.FetchByID(context.Background(), "65803")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), inner.fetchCalls.Load())
}

func TestCachedCatalog_PassesThroughWrappedErrors(t *testing.T) {
	inner := &countingCatalog{err: errors.Join(errors.New("dial tcp: refused"), domain.ErrCatalogUnavailable)}
	cached := newTestCache(t, inner, 10)

	_, err := cached.SearchByName(context.Background(), "eros", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.Contains(t, err.Error(), "refused")
}

func TestCachedCatalog_CanceledCallerDoesNotFailOthers(t *testing.T) {
	inner := &countingCatalog{delay: 150 * time.Millisecond, neo: domain.NEO{Name: "433 Eros"}}
	cached := newTestCache(t, inner, 10)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := cached.FetchByID(ctx, "2000433")
		first <- err
	}()

	// Join the in-flight load, then walk away from the first caller.
	time.Sleep(30 * time.Millisecond)
	second := make(chan error, 1)
	go func() {
		_, err := cached.FetchByID(context.Background(), "2000433")
		second <- err
	}()
	time.Sleep(30 * time.Millisecond)
	cancel()

	require.ErrorIs(t, <-first, context.Canceled)
	require.NoError(t, <-second)
	assert.Equal(t, int32(1), inner.fetchCalls.Load())
	assert.Equal(t, 1, cached.Len())
}

func TestCachedCatalog_CanceledCallerReturnsContextError(t *testing.T) {
	inner := &countingCatalog{delay: time.Second}
	cached := newTestCache(t, inner, 10)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := cached.SearchByName(ctx, "eros", 1)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, domain.ErrCatalogUnavailable)
}
