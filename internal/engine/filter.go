package engine

import (
	"strings"
	"time"

	"github.com/glaucia86/mercado-libre-clone/internal/domain"
)

// Matches evaluates the filter predicates against a single product. All
// set predicates must hold; nil fields impose no constraint.
func Matches(p *domain.Product, f *FilterSpec, now time.Time) bool {
	if f.Category != nil && *f.Category != "" {
		if p.Category != *f.Category {
			return false
		}
	}

	if f.Subcategory != nil && *f.Subcategory != "" {
		if p.Subcategory != *f.Subcategory {
			return false
		}
	}

	if f.SellerID != nil && *f.SellerID != "" {
		if p.SellerID != *f.SellerID {
			return false
		}
	}

	// Price bounds apply to the discounted price, not the list price.
	if f.MinPrice != nil || f.MaxPrice != nil {
		final := p.FinalPrice(now)
		if f.MinPrice != nil && final < *f.MinPrice {
			return false
		}
		if f.MaxPrice != nil && final > *f.MaxPrice {
			return false
		}
	}

	if f.Condition != nil && *f.Condition != "" {
		if p.Condition != *f.Condition {
			return false
		}
	}

	if f.IsActive != nil {
		if p.IsActive != *f.IsActive {
			return false
		}
	}

	if f.HasDiscount != nil {
		hasDiscount := p.Discount != nil && p.Savings(now) > 0
		if hasDiscount != *f.HasDiscount {
			return false
		}
	}

	if f.InStock != nil {
		if p.IsAvailable() != *f.InStock {
			return false
		}
	}

	if len(f.Tags) > 0 && !hasAnyTag(p, f.Tags) {
		return false
	}

	if f.MinRating != nil {
		if p.Rating.Average < *f.MinRating {
			return false
		}
	}

	if query := strings.TrimSpace(f.Query); query != "" {
		if !strings.Contains(searchText(p), strings.ToLower(query)) {
			return false
		}
	}

	return true
}

// FilterProducts returns the products matching the filter, preserving
// input order.
func FilterProducts(products []*domain.Product, f *FilterSpec, now time.Time) []*domain.Product {
	matched := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, f, now) {
			matched = append(matched, p)
		}
	}
	return matched
}

// hasAnyTag reports whether the product carries at least one of the
// wanted tags.
func hasAnyTag(p *domain.Product, wanted []string) bool {
	for _, w := range wanted {
		for _, tag := range p.Tags {
			if strings.EqualFold(tag, w) {
				return true
			}
		}
	}
	return false
}

// searchText builds the lowercase haystack for free-text search: title,
// description, category, subcategory, tags, and "name value"
// specification pairs.
func searchText(p *domain.Product) string {
	var b strings.Builder
	b.Grow(len(p.Title) + len(p.Description) + 64)

	b.WriteString(p.Title)
	b.WriteByte(' ')
	b.WriteString(p.Description)
	b.WriteByte(' ')
	b.WriteString(p.Category)
	b.WriteByte(' ')
	b.WriteString(p.Subcategory)

	for _, tag := range p.Tags {
		b.WriteByte(' ')
		b.WriteString(tag)
	}

	for _, spec := range p.Specifications {
		b.WriteByte(' ')
		b.WriteString(spec.Name)
		b.WriteByte(' ')
		b.WriteString(spec.Value)
	}

	return strings.ToLower(b.String())
}
