package collection

// Page is one window of a paginated record set plus derived metadata.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int   `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// Paginate slices items to the 1-based page window [(page-1)*limit, page*limit).
// Out-of-range pages, including page <= 0 and limit <= 0, yield an empty slice
// rather than an error; callers clamp if they want different behavior.
func Paginate[T any](items []T, page, limit int) Page[T] {
	total := len(items)
	result := Page[T]{
		Items: []T{},
		Total: total,
		Page:  page,
		Limit: limit,
	}
	if limit <= 0 {
		return result
	}

	result.TotalPages = (total + limit - 1) / limit
	result.HasNext = page < result.TotalPages
	result.HasPrev = page > 1 && result.TotalPages > 0

	start := (page - 1) * limit
	if page <= 0 || start >= total {
		return result
	}
	end := start + limit
	if end > total {
		end = total
	}
	result.Items = make([]T, end-start)
	copy(result.Items, items[start:end])
	return result
}
