package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-kit/log"

	tours "go-tour-compare"
)

// cachingService decorates a catalog.Service with a cache of resolved
// tours. The cachingService is concurrency safe and will periodically
// refresh cached values. Listings are passed through uncached since the
// CMS invalidates them on publish.
type cachingService struct {
	// next the service being decorated with a cache
	next Service

	// ctx bounds the lifetime of the cache, not of any one request.
	// Refresh goroutines run until it is cancelled.
	ctx context.Context

	// cache maps (id, locale) to resolved tours
	cache map[cacheKey]tours.Tour

	// updateFrequency how often to refresh cached values
	updateFrequency time.Duration

	// lock synchronizes access to cache to make it concurrency safe
	lock sync.RWMutex

	logger log.Logger
}

type cacheKey struct {
	id     tours.TourID
	locale string
}

// NewCachingService returns a new caching Service. ctx is the lifecycle
// of the cache itself: entries outlive the requests that seeded them and
// keep refreshing until ctx is cancelled.
func NewCachingService(ctx context.Context, updateFrequency time.Duration, s Service) Service {
	if ctx == nil {
		ctx = context.Background()
	}
	return &cachingService{
		next:            s,
		ctx:             ctx,
		cache:           map[cacheKey]tours.Tour{},
		updateFrequency: updateFrequency,
		lock:            sync.RWMutex{},
		logger:          log.NewNopLogger(),
	}
}

// Tour looks up a tour and caches the result
func (s *cachingService) Tour(ctx context.Context, id tours.TourID, locale string) (tours.Tour, error) {
	key := cacheKey{id: id, locale: locale}

	s.lock.RLock()
	tour, ok := s.cache[key]
	s.lock.RUnlock()

	if !ok {
		// Note there is a race condition here in that multiple requests for a tour that isn't yet cached
		// will result in multiple concurrent attempts to refresh. This should be harmless, unless the
		// content API throttles the requests. To avoid running multiple go routines to periodically
		// refresh the same tour, refreshNow reports the first time the key is cached.
		tour, firstTime, err := s.refreshNow(ctx, key)
		if err != nil {
			return tours.Tour{}, fmt.Errorf("refreshing cache [%v]: %w", id, err)
		}
		if firstTime {
			go s.refreshPeriodically(key)
		}
		return tour, nil
	}

	return tour, nil
}

// Tours passes through to the decorated service.
func (s *cachingService) Tours(ctx context.Context, locale string) ([]tours.Tour, error) {
	return s.next.Tours(ctx, locale)
}

// refreshNow refreshes a cached entry immediately
func (s *cachingService) refreshNow(ctx context.Context, key cacheKey) (tours.Tour, bool, error) {
	tour, err := s.next.Tour(ctx, key.id, key.locale)
	if err != nil {
		return tours.Tour{}, false, fmt.Errorf("refresh [%v]: %w", key.id, err)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	_, ok := s.cache[key]
	s.cache[key] = tour
	return tour, !ok, nil
}

// refreshPeriodically refreshes a cached entry on a given schedule
// until the cache's lifecycle context ends. This is expected to be
// called from a go-routine for each cached tour.
func (s *cachingService) refreshPeriodically(key cacheKey) {
	for {
		select {
		case <-time.After(s.updateFrequency):
			_, _, err := s.refreshNow(s.ctx, key)
			if err != nil {
				// Don't return, just log and hope this is a transient error
				s.logger.Log("msg", "periodic refresh failed", "tour", key.id, "locale", key.locale, "error", err)
			}
		case <-s.ctx.Done():
			s.uncache(key)
			return
		}
	}
}

// uncache safely removes a tour from the cache
func (s *cachingService) uncache(key cacheKey) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.cache, key)
}
