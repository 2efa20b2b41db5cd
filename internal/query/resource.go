package query

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/nmoreaux/instalens-go/pkg/errors"
)

// Resource binds one service call to a cache key and a staleness window.
// It is the Go rendition of a data-fetching hook: Get serves cached data
// while fresh, Refetch forces a bypass, Peek exposes the last known good
// value, and LastError/IsLoading mirror the hook's error and loading flags.
type Resource[T any] struct {
	cache *Cache
	key   Key
	ttl   time.Duration
	fetch func(ctx context.Context) (T, error)

	mu      sync.RWMutex
	last    *T
	lastErr error
	loading int
}

func NewResource[T any](cache *Cache, resource, params string, ttl time.Duration, fetch func(ctx context.Context) (T, error)) *Resource[T] {
	return &Resource[T]{
		cache: cache,
		key:   Key{Resource: resource, Params: params},
		ttl:   ttl,
		fetch: fetch,
	}
}

func (r *Resource[T]) Key() Key {
	return r.key
}

// Get returns the resource value, from cache while fresh.
func (r *Resource[T]) Get(ctx context.Context) (T, error) {
	return r.resolve(ctx, false)
}

// Refetch bypasses the staleness check.
func (r *Resource[T]) Refetch(ctx context.Context) (T, error) {
	return r.resolve(ctx, true)
}

func (r *Resource[T]) resolve(ctx context.Context, force bool) (T, error) {
	r.mu.Lock()
	r.loading++
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.loading--
		r.mu.Unlock()
	}()

	fn := func(ctx context.Context) ([]byte, error) {
		value, err := r.fetch(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(value)
	}

	var raw []byte
	var err error
	if force {
		raw, err = r.cache.Refetch(ctx, r.key, r.ttl, fn)
	} else {
		raw, err = r.cache.Fetch(ctx, r.key, r.ttl, fn)
	}

	var out T
	if err == nil {
		err = json.Unmarshal(raw, &out)
		if err != nil {
			err = errors.NewCacheError("failed to decode cached value", "get", r.key.String(), err)
		}
	}

	r.mu.Lock()
	if err == nil {
		v := out
		r.last = &v
		r.lastErr = nil
	} else {
		r.lastErr = err
	}
	r.mu.Unlock()

	return out, err
}

// Peek returns the last successfully fetched value without touching the
// network. The UI shows this underneath a warning banner when a refresh
// fails, so the dashboard is never empty.
func (r *Resource[T]) Peek() (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.last == nil {
		var zero T
		return zero, false
	}
	return *r.last, true
}

func (r *Resource[T]) LastError() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

func (r *Resource[T]) IsLoading() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loading > 0
}
