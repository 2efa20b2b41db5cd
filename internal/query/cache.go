package query

import (
	"context"
	"sync"
	"time"

	"github.com/nmoreaux/instalens-go/internal/metrics"
	"go.uber.org/zap"
)

// Key identifies one cached resource: the resource name plus a canonical
// rendering of its parameters.
type Key struct {
	Resource string
	Params   string
}

func (k Key) String() string {
	if k.Params == "" {
		return k.Resource
	}
	return k.Resource + ":" + k.Params
}

// Entry is a cached value with its fetch time. Values are stored as JSON so
// every Store backend handles them uniformly.
type Entry struct {
	Value     []byte    `json:"value"`
	FetchedAt time.Time `json:"fetchedAt"`
}

func (e *Entry) Fresh(ttl time.Duration, now time.Time) bool {
	if e == nil {
		return false
	}
	return now.Sub(e.FetchedAt) < ttl
}

// Store is the persistence behind the cache. Get returns (nil, nil) for a
// missing key.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// FetchFunc produces the fresh value for a key.
type FetchFunc func(ctx context.Context) ([]byte, error)

type call struct {
	done  chan struct{}
	value []byte
	err   error
}

// Cache is the single shared source of truth for "is this fresh". Staleness
// is time-based per key; concurrent fetchers of the same key are collapsed
// into one in-flight request. All values pass through the Store, so a Redis
// store shares warm data across processes while the default memory store
// keeps everything local.
type Cache struct {
	store  Store
	logger *zap.Logger

	mu       sync.Mutex
	inflight map[string]*call

	// now is swappable for tests.
	now func() time.Time
}

func NewCache(store Store, logger *zap.Logger) *Cache {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Cache{
		store:    store,
		logger:   logger,
		inflight: make(map[string]*call),
		now:      time.Now,
	}
}

// Fetch returns the cached value while it is fresh, otherwise runs fn once
// and caches its result. Concurrent calls for the same key share one fn run.
func (c *Cache) Fetch(ctx context.Context, key Key, ttl time.Duration, fn FetchFunc) ([]byte, error) {
	return c.fetch(ctx, key, ttl, fn, false)
}

// Refetch bypasses the staleness check and always runs fn, still coalescing
// with any fetch already in flight for the key.
func (c *Cache) Refetch(ctx context.Context, key Key, ttl time.Duration, fn FetchFunc) ([]byte, error) {
	return c.fetch(ctx, key, ttl, fn, true)
}

func (c *Cache) fetch(ctx context.Context, key Key, ttl time.Duration, fn FetchFunc, force bool) ([]byte, error) {
	k := key.String()

	if !force {
		entry, err := c.store.Get(ctx, k)
		if err != nil {
			c.logger.Warn("Cache store read failed", zap.String("key", k), zap.Error(err))
		}
		if entry.Fresh(ttl, c.now()) {
			metrics.CacheHits.WithLabelValues(key.Resource).Inc()
			return entry.Value, nil
		}
	}

	metrics.CacheMisses.WithLabelValues(key.Resource).Inc()

	c.mu.Lock()
	if existing, ok := c.inflight[k]; ok {
		c.mu.Unlock()
		select {
		case <-existing.done:
			return existing.value, existing.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	cl := &call{done: make(chan struct{})}
	c.inflight[k] = cl
	c.mu.Unlock()

	cl.value, cl.err = fn(ctx)

	if cl.err == nil {
		entry := &Entry{Value: cl.value, FetchedAt: c.now()}
		if err := c.store.Set(ctx, k, entry, ttl); err != nil {
			c.logger.Warn("Cache store write failed", zap.String("key", k), zap.Error(err))
		}
	}

	c.mu.Lock()
	delete(c.inflight, k)
	c.mu.Unlock()
	close(cl.done)

	return cl.value, cl.err
}

// Invalidate drops a key so the next Fetch refetches.
func (c *Cache) Invalidate(ctx context.Context, key Key) {
	if err := c.store.Delete(ctx, key.String()); err != nil {
		c.logger.Warn("Cache invalidate failed", zap.String("key", key.String()), zap.Error(err))
	}
}

// MemoryStore is the default in-process Store: a map guarded by an RWMutex.
// Freshness is judged by the Cache, so entries are only evicted on overwrite
// or explicit delete.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*Entry)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[key], nil
}

func (s *MemoryStore) Set(_ context.Context, key string, entry *Entry, _ time.Duration) error {
	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}
