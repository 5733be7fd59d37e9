package fetch

import (
	"context"
	"sync"

	"github.com/alumniconnect/client-go/internal/collection"
)

// ListFunc loads one page of records.
type ListFunc[T any] func(ctx context.Context, page, limit int) (collection.Page[T], error)

// Pager accumulates successive pages of a listing, the infinite-query
// analog. It is not safe to share a Pager across listings with different
// filters; build a new one when the criteria change.
type Pager[T any] struct {
	fn    ListFunc[T]
	limit int

	mu      sync.Mutex
	items   []T
	next    int
	total   int
	hasMore bool
}

// NewPager creates a pager loading limit records per page.
func NewPager[T any](fn ListFunc[T], limit int) *Pager[T] {
	return &Pager[T]{fn: fn, limit: limit, next: 1, hasMore: true}
}

// LoadMore fetches the next page and appends it, returning just the newly
// loaded records. Once the listing is exhausted it returns nil without
// calling the list function again.
func (p *Pager[T]) LoadMore(ctx context.Context) ([]T, error) {
	p.mu.Lock()
	if !p.hasMore {
		p.mu.Unlock()
		return nil, nil
	}
	page := p.next
	p.mu.Unlock()

	result, err := p.fn(ctx, page, p.limit)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = append(p.items, result.Items...)
	p.total = result.Total
	p.next = page + 1
	p.hasMore = result.HasNext
	return result.Items, nil
}

// Items returns all records accumulated so far.
func (p *Pager[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

// HasMore reports whether another page is available.
func (p *Pager[T]) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

// Total returns the total record count reported by the last page.
func (p *Pager[T]) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// Reset discards accumulated records so the next LoadMore starts from the
// first page.
func (p *Pager[T]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = nil
	p.next = 1
	p.total = 0
	p.hasMore = true
}
