package engine

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/glaucia86/mercado-libre-clone/internal/domain"
)

// SortProducts orders products by the given field and direction. The
// sort is stable and non-mutating: the input slice is left untouched and
// a new ordering is returned. Unknown fields keep the original order.
//
// The relevance field never reaches this function; the orchestrator
// normalizes it to createdAt first.
func SortProducts(products []*domain.Product, field, direction string, now time.Time) []*domain.Product {
	sorted := make([]*domain.Product, len(products))
	copy(sorted, products)

	var less func(a, b *domain.Product) bool
	switch field {
	case SortByPrice:
		less = func(a, b *domain.Product) bool {
			return a.FinalPrice(now) < b.FinalPrice(now)
		}
	case SortByRating:
		less = func(a, b *domain.Product) bool {
			return a.Rating.Average < b.Rating.Average
		}
	case SortByCreatedAt:
		less = func(a, b *domain.Product) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	case SortByTitle:
		// Collator instances are not safe for concurrent use, so build
		// one per sort.
		collator := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
		less = func(a, b *domain.Product) bool {
			return collator.CompareString(a.Title, b.Title) < 0
		}
	case SortByPopularity:
		less = func(a, b *domain.Product) bool {
			return a.Rating.Count < b.Rating.Count
		}
	default:
		return sorted
	}

	if direction == SortDesc {
		asc := less
		less = func(a, b *domain.Product) bool { return asc(b, a) }
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})

	return sorted
}
