package query

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestFetchCachesWhileFresh(t *testing.T) {
	cache := NewCache(NewMemoryStore(), zap.NewNop())
	key := Key{Resource: "dashboard"}

	var calls int32
	fn := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte(`{"followers": 42}`), nil
	}

	for i := 0; i < 3; i++ {
		value, err := cache.Fetch(context.Background(), key, time.Minute, fn)
		if err != nil {
			t.Fatalf("Fetch returned error: %v", err)
		}
		if string(value) != `{"followers": 42}` {
			t.Errorf("Unexpected cached value: %s", value)
		}
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("Expected 1 underlying call, got %d", got)
	}
}

func TestFetchRefetchesWhenStale(t *testing.T) {
	cache := NewCache(NewMemoryStore(), zap.NewNop())
	key := Key{Resource: "dashboard"}

	current := time.Now()
	cache.now = func() time.Time { return current }

	var calls int32
	fn := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte(`{}`), nil
	}

	if _, err := cache.Fetch(context.Background(), key, time.Minute, fn); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	current = current.Add(2 * time.Minute)

	if _, err := cache.Fetch(context.Background(), key, time.Minute, fn); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("Expected stale entry to refetch, got %d calls", got)
	}
}

func TestRefetchBypassesFreshEntry(t *testing.T) {
	cache := NewCache(NewMemoryStore(), zap.NewNop())
	key := Key{Resource: "dashboard"}

	var calls int32
	fn := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte(`{}`), nil
	}

	cache.Fetch(context.Background(), key, time.Minute, fn)
	cache.Refetch(context.Background(), key, time.Minute, fn)

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("Expected forced refetch, got %d calls", got)
	}
}

func TestConcurrentFetchersShareOneCall(t *testing.T) {
	cache := NewCache(NewMemoryStore(), zap.NewNop())
	key := Key{Resource: "media"}

	var calls int32
	release := make(chan struct{})
	fn := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []byte(`[]`), nil
	}

	const fetchers = 10
	var wg sync.WaitGroup
	started := make(chan struct{}, fetchers)

	for i := 0; i < fetchers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started <- struct{}{}
			value, err := cache.Fetch(context.Background(), key, time.Minute, fn)
			if err != nil {
				t.Errorf("Fetch returned error: %v", err)
			}
			if string(value) != `[]` {
				t.Errorf("Unexpected value: %s", value)
			}
		}()
	}

	for i := 0; i < fetchers; i++ {
		<-started
	}
	// Give the goroutines a moment to reach the in-flight wait.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("Expected concurrent fetchers to share one call, got %d", got)
	}
}

func TestFetchErrorNotCached(t *testing.T) {
	cache := NewCache(NewMemoryStore(), zap.NewNop())
	key := Key{Resource: "dashboard"}

	var calls int32
	fn := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return nil, fmt.Errorf("backend down")
	}

	for i := 0; i < 2; i++ {
		if _, err := cache.Fetch(context.Background(), key, time.Minute, fn); err == nil {
			t.Fatal("Expected fetch error")
		}
	}

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("Expected errors to bypass the cache, got %d calls", got)
	}
}

func TestInvalidateDropsEntry(t *testing.T) {
	cache := NewCache(NewMemoryStore(), zap.NewNop())
	key := Key{Resource: "dashboard"}

	var calls int32
	fn := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte(`{}`), nil
	}

	cache.Fetch(context.Background(), key, time.Minute, fn)
	cache.Invalidate(context.Background(), key)
	cache.Fetch(context.Background(), key, time.Minute, fn)

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("Expected invalidated key to refetch, got %d calls", got)
	}
}

func TestKeyString(t *testing.T) {
	if got := (Key{Resource: "media"}).String(); got != "media" {
		t.Errorf("Expected bare resource, got %q", got)
	}
	if got := (Key{Resource: "media", Params: "limit=10"}).String(); got != "media:limit=10" {
		t.Errorf("Expected resource:params, got %q", got)
	}
}
