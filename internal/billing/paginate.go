package billing

// Page is one slice of a paginated sequence
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalPages int
	TotalCount int
}

// Paginate returns the items of the 1-based page. An empty input has zero
// pages. A page outside 1..TotalPages yields an empty slice, not an error.
// Items shares the backing array of items.
func Paginate[T any](items []T, pageSize, page int) (Page[T], error) {
	if pageSize < 1 {
		return Page[T]{}, ErrInvalidPageSize
	}

	total := len(items)
	result := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   pageSize,
		TotalPages: total / pageSize,
		TotalCount: total,
	}

	if total%pageSize != 0 {
		result.TotalPages++
	}

	if page < 1 || page > result.TotalPages {
		return result, nil
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	result.Items = items[start:end]
	return result, nil
}
