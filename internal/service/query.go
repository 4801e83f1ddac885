package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	defaultStaleTime  = 5 * time.Minute
	defaultGCTime     = 10 * time.Minute
	defaultRetry      = 2
	defaultRetryDelay = time.Second
	maxRetryDelay     = 30 * time.Second
)

// QueryOptions controls caching and retry for a QueryCache
type QueryOptions struct {
	StaleTime  time.Duration // Data younger than this is served without a refetch
	GCTime     time.Duration // Data older than this is evicted
	Retry      int           // Extra attempts after the first failure
	RetryDelay time.Duration // Backoff base; doubles per attempt up to 30s
}

// DefaultQueryOptions returns the default policy: 5m stale, 10m retention,
// 2 retries with a 1s backoff base
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		StaleTime:  defaultStaleTime,
		GCTime:     defaultGCTime,
		Retry:      defaultRetry,
		RetryDelay: defaultRetryDelay,
	}
}

func (o QueryOptions) normalized() QueryOptions {
	if o.StaleTime < 0 {
		o.StaleTime = 0
	}
	if o.GCTime < o.StaleTime {
		o.GCTime = o.StaleTime
	}
	if o.Retry < 0 {
		o.Retry = 0
	}
	if o.RetryDelay < 0 {
		o.RetryDelay = 0
	}
	return o
}

// QueryState is a non-blocking snapshot of one cache key
type QueryState[T any] struct {
	Data      T
	HasData   bool
	IsLoading bool
	Err       error // Last failure; cleared by the next success
	FetchedAt time.Time
	Stale     bool
}

// QueryFunc loads the value for a key
type QueryFunc[T any] func(ctx context.Context) (T, error)

type queryEntry[T any] struct {
	data      T
	hasData   bool
	fetchedAt time.Time
	err       error
	loading   bool
}

// QueryCache is a keyed in-memory cache with stale-while-revalidate,
// bounded retry and de-duplication of in-flight loads.
//
// The shared load for a key runs under the cache's own lifetime context,
// so a caller that gives up waiting does not cancel it for the others.
// Close cancels every in-flight load.
type QueryCache[T any] struct {
	opts   QueryOptions
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*queryEntry[T]
	gens    map[string]uint64 // Bumped on invalidation; stale loads do not store

	group  singleflight.Group
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewQueryCache creates a cache with the given policy
func NewQueryCache[T any](opts QueryOptions, logger *slog.Logger) *QueryCache[T] {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &QueryCache[T]{
		opts:    opts.normalized(),
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]*queryEntry[T]),
		gens:    make(map[string]uint64),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Fetch returns the value for key. Fresh data is returned as is; stale data
// is returned immediately while one background refresh runs; missing or
// evicted data is loaded synchronously. Concurrent loads of one key share a
// single call of fn.
func (c *QueryCache[T]) Fetch(ctx context.Context, key string, fn QueryFunc[T]) (T, error) {
	now := c.now()

	c.mu.Lock()
	e := c.liveEntry(key, now)
	if e != nil && e.hasData {
		data := e.data
		stale := now.Sub(e.fetchedAt) >= c.opts.StaleTime
		c.mu.Unlock()

		if stale {
			c.logger.Debug("serving stale query", "key", key)
			c.refresh(key, fn)
		} else {
			c.logger.Debug("query cache hit", "key", key)
		}
		return data, nil
	}
	c.mu.Unlock()

	return c.await(ctx, key, fn)
}

// State returns the current snapshot for key without blocking
func (c *QueryCache[T]) State(key string) QueryState[T] {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.liveEntry(key, now)
	if e == nil {
		return QueryState[T]{}
	}
	return QueryState[T]{
		Data:      e.data,
		HasData:   e.hasData,
		IsLoading: e.loading,
		Err:       e.err,
		FetchedAt: e.fetchedAt,
		Stale:     e.hasData && now.Sub(e.fetchedAt) >= c.opts.StaleTime,
	}
}

// Invalidate drops key so the next Fetch loads it again. A load already in
// flight still answers its waiters but does not repopulate the cache.
func (c *QueryCache[T]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.gens[key]++
	c.mu.Unlock()

	c.group.Forget(key)
	c.logger.Debug("invalidated query", "key", key)
}

// InvalidateAll drops every key
func (c *QueryCache[T]) InvalidateAll() {
	c.mu.Lock()
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	c.mu.Unlock()

	for _, key := range keys {
		c.Invalidate(key)
	}
}

// Prune evicts every entry past its retention window and returns how many
// were removed
func (c *QueryCache[T]) Prune() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if e.loading {
			continue
		}
		if !e.hasData || now.Sub(e.fetchedAt) >= c.opts.GCTime {
			delete(c.entries, key)
			removed++
		}
	}
	if removed > 0 {
		c.logger.Debug("pruned queries", "count", removed)
	}
	return removed
}

// Wait blocks until background refreshes have finished
func (c *QueryCache[T]) Wait() {
	c.wg.Wait()
}

// Close cancels in-flight loads and waits for background refreshes
func (c *QueryCache[T]) Close() {
	c.cancel()
	c.wg.Wait()
}

// liveEntry returns the entry for key, evicting it first if it has outlived
// the retention window. Caller must hold c.mu.
func (c *QueryCache[T]) liveEntry(key string, now time.Time) *queryEntry[T] {
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if e.hasData && !e.loading && now.Sub(e.fetchedAt) >= c.opts.GCTime {
		delete(c.entries, key)
		c.logger.Debug("evicted query", "key", key)
		return nil
	}
	return e
}

// await joins (or starts) the shared load for key and waits for it or for
// ctx, whichever comes first
func (c *QueryCache[T]) await(ctx context.Context, key string, fn QueryFunc[T]) (T, error) {
	ch := c.group.DoChan(key, func() (any, error) {
		return c.load(key, fn)
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// refresh starts one background load for key unless one is running
func (c *QueryCache[T]) refresh(key string, fn QueryFunc[T]) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		if e.loading {
			c.mu.Unlock()
			return
		}
		e.loading = true
	}
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		res := <-c.group.DoChan(key, func() (any, error) {
			return c.load(key, fn)
		})
		if res.Err != nil {
			c.logger.Warn("background refresh failed", "key", key, "error", res.Err)
		}
	}()
}

// load runs fn with retry and stores the outcome
func (c *QueryCache[T]) load(key string, fn QueryFunc[T]) (T, error) {
	c.mu.Lock()
	gen := c.gens[key]
	e, ok := c.entries[key]
	if !ok {
		e = &queryEntry[T]{}
		c.entries[key] = e
	}
	e.loading = true
	c.mu.Unlock()

	start := c.now()
	data, err := c.withRetry(c.ctx, key, fn)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gens[key] != gen {
		c.logger.Debug("discarding superseded query result", "key", key)
		return data, err
	}
	e.loading = false
	if err != nil {
		e.err = err
		c.logger.Error("query failed", "key", key, "error", err)
		return data, err
	}
	e.data = data
	e.hasData = true
	e.err = nil
	e.fetchedAt = c.now()
	c.logger.Debug("query loaded", "key", key, "elapsed", e.fetchedAt.Sub(start))
	return data, nil
}

// withRetry calls fn until it succeeds or the retry budget is spent.
// The last error is returned unchanged.
func (c *QueryCache[T]) withRetry(ctx context.Context, key string, fn QueryFunc[T]) (T, error) {
	var zero T
	for attempt := 0; ; attempt++ {
		data, err := fn(ctx)
		if err == nil {
			return data, nil
		}
		if ctx.Err() != nil || attempt >= c.opts.Retry {
			return zero, err
		}

		delay := backoff(c.opts.RetryDelay, attempt)
		c.logger.Warn("query attempt failed, retrying",
			"key", key, "attempt", attempt+1, "delay", delay, "error", err)

		select {
		case <-ctx.Done():
			return zero, err
		case <-time.After(delay):
		}
	}
}

// backoff returns min(base*2^attempt, 30s)
func backoff(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	delay := base
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= maxRetryDelay {
			return maxRetryDelay
		}
	}
	return min(delay, maxRetryDelay)
}
