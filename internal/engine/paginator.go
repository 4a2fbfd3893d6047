package engine

import (
	"github.com/glaucia86/mercado-libre-clone/internal/domain"
	"github.com/glaucia86/mercado-libre-clone/pkg/pagination"
)

// Page is one window of an ordered product collection.
type Page struct {
	Items       []*domain.Product
	Total       int
	HasNext     bool
	HasPrevious bool
}

// Paginate slices an ordered collection by offset and limit. The offset
// is clamped to zero and the limit to [1, MaxLimit]; an offset past the
// end yields an empty page.
func Paginate(products []*domain.Product, offset, limit int) Page {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 1
	}
	if limit > pagination.MaxLimit {
		limit = pagination.MaxLimit
	}

	total := len(products)

	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return Page{
		Items:       products[start:end],
		Total:       total,
		HasNext:     offset+limit < total,
		HasPrevious: offset > 0,
	}
}
