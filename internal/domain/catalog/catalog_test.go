package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alumniconnect/client-go/internal/collection"
	"github.com/alumniconnect/client-go/internal/domain/catalog"
	"github.com/alumniconnect/client-go/internal/domain/chapter"
	"github.com/alumniconnect/client-go/internal/source"
	"github.com/alumniconnect/client-go/internal/source/mocks"
)

func newService(src source.Source[chapter.Chapter]) *catalog.Service[chapter.Chapter] {
	return catalog.NewService("chapters", src, nil)
}

func TestListClampsPageAndLimit(t *testing.T) {
	src := &mocks.Source[chapter.Chapter]{}
	src.On("List", mock.Anything, 1, catalog.DefaultLimit, collection.Criteria(nil)).
		Return(collection.Page[chapter.Chapter]{Page: 1}, nil)

	_, err := newService(src).List(context.Background(), 0, -5, nil)
	require.NoError(t, err)
	src.AssertExpectations(t)
}

func TestGetRequiresID(t *testing.T) {
	src := &mocks.Source[chapter.Chapter]{}

	_, err := newService(src).Get(context.Background(), "")
	require.ErrorIs(t, err, source.ErrInvalidInput)
	src.AssertNotCalled(t, "Get")
}

func TestGetWrapsSourceError(t *testing.T) {
	src := &mocks.Source[chapter.Chapter]{}
	src.On("Get", mock.Anything, "c1").Return(nil, source.ErrNotFound)

	_, err := newService(src).Get(context.Background(), "c1")
	require.ErrorIs(t, err, source.ErrNotFound)
	require.Contains(t, err.Error(), "chapters")
}

func TestBulkSkipsEmptySelection(t *testing.T) {
	src := &mocks.Source[chapter.Chapter]{}

	affected, err := newService(src).Bulk(context.Background(), source.BulkDelete, nil)
	require.NoError(t, err)
	require.Zero(t, affected)
	src.AssertNotCalled(t, "Bulk")
}

func TestBulkActionDispatches(t *testing.T) {
	src := &mocks.Source[chapter.Chapter]{}
	src.On("Bulk", mock.Anything, source.BulkActivate, []string{"c1", "c2"}).Return(2, nil)

	err := newService(src).BulkAction(context.Background(), "activate", []string{"c1", "c2"})
	require.NoError(t, err)
	src.AssertExpectations(t)
}

func TestActivateDeactivate(t *testing.T) {
	src := &mocks.Source[chapter.Chapter]{}
	src.On("SetStatus", mock.Anything, "c1", catalog.StatusActive).
		Return(chapter.Chapter{ID: "c1", Status: catalog.StatusActive}, nil)
	src.On("SetStatus", mock.Anything, "c1", catalog.StatusInactive).
		Return(chapter.Chapter{ID: "c1", Status: catalog.StatusInactive}, nil)

	activated, err := newService(src).Activate(context.Background(), "c1")
	require.NoError(t, err)
	require.Equal(t, catalog.StatusActive, activated.Status)

	deactivated, err := newService(src).Deactivate(context.Background(), "c1")
	require.NoError(t, err)
	require.Equal(t, catalog.StatusInactive, deactivated.Status)
}
