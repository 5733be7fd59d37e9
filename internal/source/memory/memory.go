// Package memory implements source.Source over an in-process fixture set,
// the mock-mode counterpart of the REST client. Listing runs the full
// collection pipeline (filter, sort, paginate) over the seeded records.
package memory

import (
	"context"
	"sync"

	"github.com/alumniconnect/client-go/internal/collection"
	"github.com/alumniconnect/client-go/internal/source"
	"github.com/google/uuid"
)

// Collection is a mutex-guarded entity set.
type Collection[T source.Entity[T]] struct {
	searchFields []string
	exactKeys    []string

	mu    sync.RWMutex
	items []T
}

// Option configures a Collection.
type Option[T source.Entity[T]] func(*Collection[T])

// WithExactKeys marks criteria keys that must match field values exactly
// (status fields, ids) rather than by substring.
func WithExactKeys[T source.Entity[T]](keys ...string) Option[T] {
	return func(c *Collection[T]) { c.exactKeys = keys }
}

// New seeds a collection. searchFields are the fields consulted by the
// free-text "search" criterion.
func New[T source.Entity[T]](seed []T, searchFields []string, opts ...Option[T]) *Collection[T] {
	c := &Collection[T]{
		searchFields: searchFields,
		items:        make([]T, len(seed)),
	}
	copy(c.items, seed)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collection[T]) List(_ context.Context, page, limit int, criteria collection.Criteria) (collection.Page[T], error) {
	c.mu.RLock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	c.mu.RUnlock()

	filters, sortBy, sortDir := source.SplitCriteria(criteria)
	items = collection.Filter(items, filters, c.searchFields, collection.Options{ExactKeys: c.exactKeys})
	if sortBy != "" {
		items = collection.Sort(items, sortBy, sortDir)
	}
	return collection.Paginate(items, page, limit), nil
}

func (c *Collection[T]) Get(_ context.Context, id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.GetID() == id {
			return item, nil
		}
	}
	var zero T
	return zero, source.ErrNotFound
}

func (c *Collection[T]) Create(_ context.Context, item T) (T, error) {
	if item.GetID() == "" {
		item = item.WithID(uuid.NewString())
	}
	c.mu.Lock()
	c.items = append(c.items, item)
	c.mu.Unlock()
	return item, nil
}

func (c *Collection[T]) Update(_ context.Context, id string, item T) (T, error) {
	item = item.WithID(id)
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.items {
		if existing.GetID() == id {
			c.items[i] = item
			return item, nil
		}
	}
	var zero T
	return zero, source.ErrNotFound
}

func (c *Collection[T]) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.items {
		if existing.GetID() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return source.ErrNotFound
}

func (c *Collection[T]) Bulk(ctx context.Context, op source.BulkOp, ids []string) (int, error) {
	var status string
	switch op {
	case source.BulkDelete:
		return c.bulkDelete(ids), nil
	case source.BulkActivate:
		status = "active"
	case source.BulkDeactivate:
		status = "inactive"
	default:
		return 0, source.ErrInvalidInput
	}

	affected := 0
	for _, id := range ids {
		if _, err := c.SetStatus(ctx, id, status); err == nil {
			affected++
		}
	}
	return affected, nil
}

func (c *Collection[T]) bulkDelete(ids []string) int {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0]
	affected := 0
	for _, item := range c.items {
		if _, ok := wanted[item.GetID()]; ok {
			affected++
			continue
		}
		kept = append(kept, item)
	}
	c.items = kept
	return affected
}

func (c *Collection[T]) SetStatus(_ context.Context, id, status string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.items {
		if existing.GetID() == id {
			updated := existing.WithStatus(status)
			c.items[i] = updated
			return updated, nil
		}
	}
	var zero T
	return zero, source.ErrNotFound
}
