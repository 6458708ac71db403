package handlers

// pageToLimitOffset converts 1-based page parameters to storage limit/offset.
func pageToLimitOffset(page, pageSize int) (limit, offset int) {
	return pageSize, (page - 1) * pageSize
}

// PaginatedResponse is the list payload: one page of items plus paging math.
type PaginatedResponse[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func newPaginatedResponse[T any](items []T, page, pageSize, total int) PaginatedResponse[T] {
	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return PaginatedResponse[T]{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
