// Package catalog provides the generic entity service every dashboard
// section shares: paged listing through the collection pipeline, CRUD, bulk
// operations, and status transitions. Entity packages embed Service and add
// their section-specific operations on top.
package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alumniconnect/client-go/internal/collection"
	"github.com/alumniconnect/client-go/internal/source"
)

// Shared status vocabulary for activate/deactivate transitions.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// DefaultLimit is used when a caller passes a non-positive page size.
const DefaultLimit = 20

// Service is the uniform surface over one entity collection. The data source
// behind it may be the fixture set or the REST backend; callers cannot tell.
type Service[T source.Entity[T]] struct {
	name   string
	src    source.Source[T]
	logger *slog.Logger
}

// NewService creates a service for the named section.
func NewService[T source.Entity[T]](name string, src source.Source[T], logger *slog.Logger) *Service[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service[T]{name: name, src: src, logger: logger}
}

// Name returns the section name this service serves.
func (s *Service[T]) Name() string { return s.name }

// List returns one page of records matching criteria. Page and limit are
// clamped to sane values rather than erroring.
func (s *Service[T]) List(ctx context.Context, page, limit int, criteria collection.Criteria) (collection.Page[T], error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	result, err := s.src.List(ctx, page, limit, criteria)
	if err != nil {
		return collection.Page[T]{}, fmt.Errorf("listing %s: %w", s.name, err)
	}
	return result, nil
}

// Get returns one record by id.
func (s *Service[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if id == "" {
		return zero, source.ErrInvalidInput
	}
	item, err := s.src.Get(ctx, id)
	if err != nil {
		return zero, fmt.Errorf("getting %s %q: %w", s.name, id, err)
	}
	return item, nil
}

// Create stores a new record and returns it with its assigned id.
func (s *Service[T]) Create(ctx context.Context, item T) (T, error) {
	created, err := s.src.Create(ctx, item)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("creating %s: %w", s.name, err)
	}
	s.logger.Info("created", "section", s.name, "id", created.GetID())
	return created, nil
}

// Update replaces the record under id.
func (s *Service[T]) Update(ctx context.Context, id string, item T) (T, error) {
	var zero T
	if id == "" {
		return zero, source.ErrInvalidInput
	}
	updated, err := s.src.Update(ctx, id, item)
	if err != nil {
		return zero, fmt.Errorf("updating %s %q: %w", s.name, id, err)
	}
	return updated, nil
}

// Delete removes the record under id.
func (s *Service[T]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return source.ErrInvalidInput
	}
	if err := s.src.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting %s %q: %w", s.name, id, err)
	}
	s.logger.Info("deleted", "section", s.name, "id", id)
	return nil
}

// Bulk applies op to ids and returns the number of affected records.
func (s *Service[T]) Bulk(ctx context.Context, op source.BulkOp, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	affected, err := s.src.Bulk(ctx, op, ids)
	if err != nil {
		return 0, fmt.Errorf("bulk %s on %s: %w", op, s.name, err)
	}
	s.logger.Info("bulk operation applied", "section", s.name, "op", string(op), "affected", affected)
	return affected, nil
}

// BulkAction adapts Bulk to the store's bulk-action dispatch signature.
func (s *Service[T]) BulkAction(ctx context.Context, action string, ids []string) error {
	_, err := s.Bulk(ctx, source.BulkOp(action), ids)
	return err
}

// Activate transitions the record to active status.
func (s *Service[T]) Activate(ctx context.Context, id string) (T, error) {
	return s.setStatus(ctx, id, StatusActive)
}

// Deactivate transitions the record to inactive status.
func (s *Service[T]) Deactivate(ctx context.Context, id string) (T, error) {
	return s.setStatus(ctx, id, StatusInactive)
}

func (s *Service[T]) setStatus(ctx context.Context, id, status string) (T, error) {
	var zero T
	if id == "" {
		return zero, source.ErrInvalidInput
	}
	updated, err := s.src.SetStatus(ctx, id, status)
	if err != nil {
		return zero, fmt.Errorf("setting %s %q to %s: %w", s.name, id, status, err)
	}
	return updated, nil
}
