// Package source defines the polymorphic data-source contract every entity
// service talks to. Two implementations exist: an in-memory fixture source
// (source/memory) and a REST client (source/rest). The implementation is
// chosen once at composition time; consumers cannot tell which one is active.
package source

import (
	"context"

	"github.com/alumniconnect/client-go/internal/collection"
)

// Criteria keys with pipeline meaning rather than field-filter meaning.
const (
	KeySortBy  = "sortBy"
	KeySortDir = "sortDir"
)

// BulkOp names a bulk operation applied to a set of ids.
type BulkOp string

const (
	BulkActivate   BulkOp = "activate"
	BulkDeactivate BulkOp = "deactivate"
	BulkDelete     BulkOp = "delete"
)

// Entity is the minimal structural contract the generic source needs:
// identity and a status field, with copy-on-write setters so value-typed
// records stay immutable in caller hands.
type Entity[T any] interface {
	GetID() string
	WithID(id string) T
	GetStatus() string
	WithStatus(status string) T
}

// Source provides list/get/create/update/delete/bulk access to one entity
// collection.
type Source[T Entity[T]] interface {
	List(ctx context.Context, page, limit int, criteria collection.Criteria) (collection.Page[T], error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id string, item T) (T, error)
	Delete(ctx context.Context, id string) error
	Bulk(ctx context.Context, op BulkOp, ids []string) (int, error)
	SetStatus(ctx context.Context, id, status string) (T, error)
}

// SplitCriteria separates pipeline directives (sort) from field filters.
func SplitCriteria(criteria collection.Criteria) (filters collection.Criteria, sortBy string, sortDir collection.Direction) {
	filters = collection.Criteria{}
	sortDir = collection.Ascending
	for key, value := range criteria {
		switch key {
		case KeySortBy:
			sortBy = value
		case KeySortDir:
			if value == string(collection.Descending) {
				sortDir = collection.Descending
			}
		default:
			filters[key] = value
		}
	}
	return filters, sortBy, sortDir
}
