package ports

const (
	DefaultPerPage = 5
	MaxPerPage     = 100
)

// PageRequest is a 1-based page selector.
type PageRequest struct {
	Page    int
	PerPage int
}

// Normalize applies defaults and caps PerPage at MaxPerPage.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset is the number of rows to skip for this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Page is one page of a listing plus the totals needed to render pagination.
type Page[T any] struct {
	Items      []T
	Total      int64
	Page       int
	PerPage    int
	TotalPages int
}

// NewPage assembles a Page from a query result.
func NewPage[T any](items []T, total int64, req PageRequest) *Page[T] {
	pages := 0
	if req.PerPage > 0 {
		pages = int((total + int64(req.PerPage) - 1) / int64(req.PerPage))
	}
	return &Page[T]{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		PerPage:    req.PerPage,
		TotalPages: pages,
	}
}
