package listview

import "fmt"

// Result is one page of a list view.
type Result[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// TotalPages returns ceil(total / pageSize).
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate returns the 1-indexed page of records. It never clamps: a page size
// below 1, a page below 1, or a page past the last page is an error. An empty
// record set yields an empty first page.
func Paginate[T any](records []T, page, pageSize int) (Result[T], error) {
	if pageSize <= 0 {
		return Result[T]{}, fmt.Errorf("%w: page size must be positive, got %d", ErrInvalidConfiguration, pageSize)
	}
	if page < 1 {
		return Result[T]{}, fmt.Errorf("%w: page must be at least 1, got %d", ErrInvalidConfiguration, page)
	}

	total := len(records)
	totalPages := TotalPages(total, pageSize)
	if total == 0 {
		if page != 1 {
			return Result[T]{}, fmt.Errorf("%w: page %d requested from an empty list", ErrInvalidConfiguration, page)
		}
		return Result[T]{Items: []T{}, Page: 1, PageSize: pageSize}, nil
	}
	if page > totalPages {
		return Result[T]{}, fmt.Errorf("%w: page %d out of range, last page is %d", ErrInvalidConfiguration, page, totalPages)
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	return Result[T]{
		Items:      records[start:end:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}
