package kernel

// PaginationOptions describes the requested page of a listing.
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

func (p PaginationOptions) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page carries the pagination metadata returned alongside a listing.
type Page struct {
	Number int   `json:"number"`
	Size   int   `json:"size"`
	Total  int64 `json:"total"`
	Pages  int   `json:"pages"`
}

// Paginated wraps a page of items with its metadata.
type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
	Empty bool `json:"empty"`
}

// NewPaginated builds a Paginated result, computing the page count from the
// total and requested page size.
func NewPaginated[T any](items []T, opts PaginationOptions, total int64) *Paginated[T] {
	pages := 0
	if opts.PageSize > 0 {
		pages = int((total + int64(opts.PageSize) - 1) / int64(opts.PageSize))
	}

	return &Paginated[T]{
		Items: items,
		Page: Page{
			Number: opts.Page,
			Size:   opts.PageSize,
			Total:  total,
			Pages:  pages,
		},
		Empty: len(items) == 0,
	}
}
