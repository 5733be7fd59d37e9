package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/alumniconnect/client-go/internal/collection"
	"github.com/alumniconnect/client-go/internal/source"
)

// Source is a mock for source.Source.
type Source[T source.Entity[T]] struct {
	mock.Mock
}

func (m *Source[T]) List(ctx context.Context, page, limit int, criteria collection.Criteria) (collection.Page[T], error) {
	args := m.Called(ctx, page, limit, criteria)
	if result, ok := args.Get(0).(collection.Page[T]); ok {
		return result, args.Error(1)
	}
	return collection.Page[T]{}, args.Error(1)
}

func (m *Source[T]) Get(ctx context.Context, id string) (T, error) {
	args := m.Called(ctx, id)
	if item, ok := args.Get(0).(T); ok {
		return item, args.Error(1)
	}
	var zero T
	return zero, args.Error(1)
}

func (m *Source[T]) Create(ctx context.Context, item T) (T, error) {
	args := m.Called(ctx, item)
	if created, ok := args.Get(0).(T); ok {
		return created, args.Error(1)
	}
	var zero T
	return zero, args.Error(1)
}

func (m *Source[T]) Update(ctx context.Context, id string, item T) (T, error) {
	args := m.Called(ctx, id, item)
	if updated, ok := args.Get(0).(T); ok {
		return updated, args.Error(1)
	}
	var zero T
	return zero, args.Error(1)
}

func (m *Source[T]) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Source[T]) Bulk(ctx context.Context, op source.BulkOp, ids []string) (int, error) {
	args := m.Called(ctx, op, ids)
	return args.Int(0), args.Error(1)
}

func (m *Source[T]) SetStatus(ctx context.Context, id, status string) (T, error) {
	args := m.Called(ctx, id, status)
	if updated, ok := args.Get(0).(T); ok {
		return updated, args.Error(1)
	}
	var zero T
	return zero, args.Error(1)
}
