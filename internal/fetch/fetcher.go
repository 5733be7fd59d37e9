// Package fetch provides the component-facing data loading primitives: a
// cached, retrying fetcher, a mutation wrapper with lifecycle callbacks, and
// an accumulating pager. They adapt the web client's data hooks to plain Go
// call sites.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alumniconnect/client-go/internal/kvstore"
)

// Defaults applied when Options fields are zero.
const (
	DefaultTTL        = 5 * time.Minute
	DefaultRetryCount = 3
	DefaultRetryDelay = time.Second
)

// cacheEntry is the persisted cache record under each cache key.
type cacheEntry struct {
	Value     json.RawMessage `json:"value"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// Options configures a Fetcher.
type Options struct {
	// TTL is how long cached values are served without refetching.
	TTL time.Duration
	// RetryCount is the number of retries after the initial attempt.
	RetryCount int
	// RetryDelay is the base backoff; attempt n waits n*RetryDelay.
	RetryDelay time.Duration
	Logger     *slog.Logger
}

// Fetcher serves values from a durable cache, refetching with linear-backoff
// retries once entries go stale. Results of superseded fetches are discarded
// rather than applied, so a slow response never overwrites a newer one.
type Fetcher struct {
	kv    kvstore.Store
	opts  Options
	mu    sync.Mutex
	seqs  map[string]uint64
	clock func() time.Time
}

// New creates a fetcher over the given storage.
func New(kv kvstore.Store, opts Options) *Fetcher {
	if opts.TTL == 0 {
		opts.TTL = DefaultTTL
	}
	if opts.RetryCount == 0 {
		opts.RetryCount = DefaultRetryCount
	}
	if opts.RetryDelay == 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Fetcher{
		kv:    kv,
		opts:  opts,
		seqs:  make(map[string]uint64),
		clock: time.Now,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do returns the cached value under key when fresh, otherwise invokes fn with
// retries and caches the result. fromCache reports whether the value was
// served without calling fn.
func (f *Fetcher) Do(ctx context.Context, key string, fn func(ctx context.Context) (json.RawMessage, error)) (value json.RawMessage, fromCache bool, err error) {
	if cached, ok := f.fresh(ctx, key); ok {
		return cached, true, nil
	}
	value, err = f.fetch(ctx, key, fn)
	return value, false, err
}

// Refresh bypasses the cache and refetches unconditionally.
func (f *Fetcher) Refresh(ctx context.Context, key string, fn func(ctx context.Context) (json.RawMessage, error)) (json.RawMessage, error) {
	return f.fetch(ctx, key, fn)
}

// OnFocus is the window-focus refetch hook: it refetches only when the cache
// entry for key has gone stale, and serves the cache otherwise.
func (f *Fetcher) OnFocus(ctx context.Context, key string, fn func(ctx context.Context) (json.RawMessage, error)) (json.RawMessage, bool, error) {
	return f.Do(ctx, key, fn)
}

// Invalidate drops the cache entry for key.
func (f *Fetcher) Invalidate(ctx context.Context, key string) error {
	return f.kv.Delete(ctx, key)
}

// InvalidatePrefix drops every cache entry whose key starts with prefix,
// used after mutations that stale a family of list caches.
func (f *Fetcher) InvalidatePrefix(ctx context.Context, prefix string) error {
	keys, err := f.kv.Keys(ctx)
	if err != nil {
		return fmt.Errorf("listing cache keys: %w", err)
	}
	for _, key := range keys {
		if strings.HasPrefix(key, prefix) {
			if err := f.kv.Delete(ctx, key); err != nil {
				return fmt.Errorf("dropping cache entry %q: %w", key, err)
			}
		}
	}
	return nil
}

func (f *Fetcher) fresh(ctx context.Context, key string) (json.RawMessage, bool) {
	entry, ok, err := kvstore.GetJSON[cacheEntry](ctx, f.kv, key)
	if err != nil {
		f.opts.Logger.Warn("ignoring unreadable cache entry", "key", key, "error", err)
		return nil, false
	}
	if !ok || f.clock().Sub(entry.FetchedAt) >= f.opts.TTL {
		return nil, false
	}
	return entry.Value, true
}

func (f *Fetcher) fetch(ctx context.Context, key string, fn func(ctx context.Context) (json.RawMessage, error)) (json.RawMessage, error) {
	seq := f.nextSeq(key)

	var lastErr error
	for attempt := 0; attempt <= f.opts.RetryCount; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, time.Duration(attempt)*f.opts.RetryDelay); err != nil {
				return nil, err
			}
		}

		value, err := fn(ctx)
		if err != nil {
			lastErr = err
			f.opts.Logger.Warn("fetch attempt failed", "key", key, "attempt", attempt+1, "error", err)
			continue
		}

		// Only the latest fetch for a key may touch the cache; results of
		// superseded fetches are returned to their caller but go inert.
		if f.isLatest(key, seq) {
			entry := cacheEntry{Value: value, FetchedAt: f.clock()}
			if err := kvstore.SetJSON(ctx, f.kv, key, entry); err != nil {
				f.opts.Logger.Warn("failed to cache fetch result", "key", key, "error", err)
			}
		}
		return value, nil
	}
	return nil, fmt.Errorf("fetch %q failed after %d attempts: %w", key, f.opts.RetryCount+1, lastErr)
}

func (f *Fetcher) nextSeq(key string) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seqs[key]++
	return f.seqs[key]
}

func (f *Fetcher) isLatest(key string, seq uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seqs[key] == seq
}

// Get is the typed convenience wrapper around Fetcher.Do.
func Get[T any](ctx context.Context, f *Fetcher, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	raw, _, err := f.Do(ctx, key, func(ctx context.Context) (json.RawMessage, error) {
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(value)
	})
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("decoding cached %q: %w", key, err)
	}
	return out, nil
}
