package collection_test

import (
	"testing"

	"github.com/alumniconnect/client-go/internal/collection"
	"github.com/stretchr/testify/require"
)

func TestPaginate_MiddlePage(t *testing.T) {
	page := collection.Paginate([]int{1, 2, 3, 4, 5}, 2, 2)

	require.Equal(t, []int{3, 4}, page.Items)
	require.Equal(t, 5, page.Total)
	require.Equal(t, 2, page.Page)
	require.Equal(t, 2, page.Limit)
	require.Equal(t, 3, page.TotalPages)
	require.True(t, page.HasNext)
	require.True(t, page.HasPrev)
}

func TestPaginate_FirstAndLastPages(t *testing.T) {
	first := collection.Paginate([]int{1, 2, 3, 4, 5}, 1, 2)
	require.Equal(t, []int{1, 2}, first.Items)
	require.False(t, first.HasPrev)
	require.True(t, first.HasNext)

	last := collection.Paginate([]int{1, 2, 3, 4, 5}, 3, 2)
	require.Equal(t, []int{5}, last.Items)
	require.True(t, last.HasPrev)
	require.False(t, last.HasNext)
}

func TestPaginate_OutOfRangePages(t *testing.T) {
	page := collection.Paginate([]int{1, 2, 3}, 9, 2)
	require.Empty(t, page.Items)
	require.Equal(t, 3, page.Total)

	page = collection.Paginate([]int{1, 2, 3}, 0, 2)
	require.Empty(t, page.Items)

	page = collection.Paginate([]int{1, 2, 3}, -1, 2)
	require.Empty(t, page.Items)
}

func TestPaginate_ZeroLimit(t *testing.T) {
	page := collection.Paginate([]int{1, 2, 3}, 1, 0)
	require.Empty(t, page.Items)
	require.Equal(t, 3, page.Total)
	require.Equal(t, 0, page.TotalPages)
	require.False(t, page.HasNext)
}

func TestPaginate_EmptyInput(t *testing.T) {
	page := collection.Paginate([]int{}, 1, 10)
	require.Empty(t, page.Items)
	require.Equal(t, 0, page.Total)
	require.Equal(t, 0, page.TotalPages)
	require.False(t, page.HasNext)
	require.False(t, page.HasPrev)
}

func TestPaginate_RoundTrip(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	for _, limit := range []int{1, 4, 7, 23, 50} {
		first := collection.Paginate(items, 1, limit)
		var rebuilt []int
		for p := 1; p <= first.TotalPages; p++ {
			window := collection.Paginate(items, p, limit)
			require.Equal(t, len(items), window.Total)
			rebuilt = append(rebuilt, window.Items...)
		}
		require.Equal(t, items, rebuilt, "limit %d", limit)
	}
}
