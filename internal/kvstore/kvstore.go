// Package kvstore provides the durable key-value storage used across the
// client: the fetch cache, the pending RSVP queue, and the cached session
// profile all live behind the Store interface so backends can be swapped
// without touching call sites.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Well-known storage keys shared across the client.
const (
	KeyPendingRSVPs = "pendingRsvps"
	KeyUserRSVPs    = "userRsvps"
	KeySyncStatus   = "syncStatus"
	KeySessionUser  = "alumniConnect_user"
	KeyUseMockAPI   = "useMockApi"
)

// Store is a minimal key-value interface. Get reports presence separately
// from errors so an absent key is never an error condition.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// GetJSON reads and decodes the value under key. Absent keys return ok=false
// with a zero value and no error.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var out T
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return out, false, fmt.Errorf("reading %q: %w", key, err)
	}
	if !ok {
		return out, false, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false, fmt.Errorf("decoding %q: %w", key, err)
	}
	return out, true, nil
}

// GetJSONDefault reads the value under key, falling back to def when the key
// is absent or the stored value cannot be decoded. Failures are logged, not
// propagated.
func GetJSONDefault[T any](ctx context.Context, s Store, key string, def T, logger *slog.Logger) T {
	out, ok, err := GetJSON[T](ctx, s, key)
	if err != nil {
		if logger != nil {
			logger.Warn("falling back to default for corrupt storage entry", "key", key, "error", err)
		}
		return def
	}
	if !ok {
		return def
	}
	return out
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}
