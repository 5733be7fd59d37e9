package partner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alumniconnect/client-go/internal/collection"
	"github.com/alumniconnect/client-go/internal/domain/catalog"
	"github.com/alumniconnect/client-go/internal/domain/partner"
	"github.com/alumniconnect/client-go/internal/source"
	"github.com/alumniconnect/client-go/internal/source/memory"
)

func newService(seed ...partner.Partner) *catalog.Service[partner.Partner] {
	col := memory.New(seed, partner.SearchFields(), memory.WithExactKeys[partner.Partner](partner.ExactKeys()...))
	return partner.NewService(col, nil)
}

func TestListFiltersByIndustry(t *testing.T) {
	svc := newService(
		partner.Partner{ID: "p1", Name: "Northwind", Industry: "logistics", Status: catalog.StatusActive},
		partner.Partner{ID: "p2", Name: "Contoso", Industry: "software", Status: catalog.StatusActive},
	)

	page, err := svc.List(context.Background(), 1, 10, collection.Criteria{"industry": "software"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, "p2", page.Items[0].ID)
}

func TestListSearchesContactFields(t *testing.T) {
	svc := newService(
		partner.Partner{ID: "p1", Name: "Northwind", ContactName: "Dana Whitfield", Status: catalog.StatusActive},
		partner.Partner{ID: "p2", Name: "Contoso", ContactName: "Ravi Menon", Status: catalog.StatusActive},
	)

	page, err := svc.List(context.Background(), 1, 10, collection.Criteria{collection.SearchKey: "whitfield"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, "p1", page.Items[0].ID)
}

func TestBulkDeactivate(t *testing.T) {
	svc := newService(
		partner.Partner{ID: "p1", Name: "Northwind", Status: catalog.StatusActive},
		partner.Partner{ID: "p2", Name: "Contoso", Status: catalog.StatusActive},
	)
	ctx := context.Background()

	affected, err := svc.Bulk(ctx, source.BulkDeactivate, []string{"p1", "p2"})
	require.NoError(t, err)
	require.Equal(t, 2, affected)

	got, err := svc.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, catalog.StatusInactive, got.Status)
}
