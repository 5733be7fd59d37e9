package opportunity_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alumniconnect/client-go/internal/domain/catalog"
	"github.com/alumniconnect/client-go/internal/domain/opportunity"
	"github.com/alumniconnect/client-go/internal/source/memory"
)

func newService(seed ...opportunity.Opportunity) *opportunity.Service {
	col := memory.New(seed, opportunity.SearchFields(), memory.WithExactKeys[opportunity.Opportunity](opportunity.ExactKeys()...))
	return opportunity.NewService(col, nil)
}

func TestOpenListsActiveNewestFirst(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	svc := newService(
		opportunity.Opportunity{ID: "o1", Title: "Backend Engineer", Status: catalog.StatusActive, PostedAt: base},
		opportunity.Opportunity{ID: "o2", Title: "Data Analyst", Status: catalog.StatusInactive, PostedAt: base.AddDate(0, 0, 3)},
		opportunity.Opportunity{ID: "o3", Title: "Product Intern", Status: catalog.StatusActive, PostedAt: base.AddDate(0, 0, 2)},
	)

	page, err := svc.Open(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.Equal(t, "o3", page.Items[0].ID)
	require.Equal(t, "o1", page.Items[1].ID)
}

func TestOpenPaginates(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	svc := newService(
		opportunity.Opportunity{ID: "o1", Title: "First", Status: catalog.StatusActive, PostedAt: base.AddDate(0, 0, 3)},
		opportunity.Opportunity{ID: "o2", Title: "Second", Status: catalog.StatusActive, PostedAt: base.AddDate(0, 0, 2)},
		opportunity.Opportunity{ID: "o3", Title: "Third", Status: catalog.StatusActive, PostedAt: base.AddDate(0, 0, 1)},
	)

	page, err := svc.Open(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, "o3", page.Items[0].ID)
	require.Equal(t, 3, page.Total)
}
