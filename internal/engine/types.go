// Package engine implements the catalog query engine: predicate
// filtering, sorting, pagination, and facet/price aggregation over the
// immutable in-memory catalog. All operations are pure and synchronous,
// so concurrent queries need no locking.
package engine

import (
	"github.com/glaucia86/mercado-libre-clone/pkg/pagination"
)

// Sort field constants. These names are the stable external contract;
// the transport layer maps query parameters onto them.
const (
	SortByPrice      = "price"
	SortByRating     = "rating"
	SortByCreatedAt  = "createdAt"
	SortByTitle      = "title"
	SortByPopularity = "popularity"
	SortByRelevance  = "relevance"
)

// Sort direction constants.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ValidSortFields returns the sort fields accepted from callers.
func ValidSortFields() []string {
	return []string{SortByPrice, SortByRating, SortByCreatedAt, SortByTitle, SortByPopularity, SortByRelevance}
}

// IsValidSortField checks whether the given field is accepted from callers.
func IsValidSortField(field string) bool {
	for _, f := range ValidSortFields() {
		if f == field {
			return true
		}
	}
	return false
}

// IsValidSortDirection checks whether the given direction is valid.
func IsValidSortDirection(direction string) bool {
	return direction == SortAsc || direction == SortDesc
}

// FilterSpec describes the predicates of a catalog query. All set fields
// are AND-combined; nil fields impose no constraint.
type FilterSpec struct {
	Query       string   `json:"query,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Subcategory *string  `json:"subcategory,omitempty"`
	SellerID    *string  `json:"sellerId,omitempty"`
	MinPrice    *float64 `json:"minPrice,omitempty"`
	MaxPrice    *float64 `json:"maxPrice,omitempty"`
	Condition   *string  `json:"condition,omitempty"`
	IsActive    *bool    `json:"isActive,omitempty"`
	HasDiscount *bool    `json:"hasDiscount,omitempty"`
	InStock     *bool    `json:"inStock,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	MinRating   *float64 `json:"minRating,omitempty"`
}

// SortSpec names a sort field and direction.
type SortSpec struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// QuerySpec is a full catalog query: filters, sorting, pagination, and
// the optional facet/metadata sections.
type QuerySpec struct {
	Filters         FilterSpec `json:"filters"`
	Sort            SortSpec   `json:"sorting"`
	Page            int        `json:"page"`
	Limit           int        `json:"limit"`
	IncludeFacets   bool       `json:"includeFacets"`
	IncludeMetadata bool       `json:"includeMetadata"`
}

// SellerSummary is the seller projection embedded in list items.
type SellerSummary struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"displayName"`
	Reputation  float64 `json:"reputation"`
}

// ProductSummary is the list-item projection of a product.
type ProductSummary struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	OriginalPrice float64       `json:"originalPrice"`
	FinalPrice    float64       `json:"finalPrice"`
	Savings       float64       `json:"savings,omitempty"`
	Currency      string        `json:"currency"`
	Condition     string        `json:"condition"`
	ThumbnailURL  string        `json:"thumbnailUrl,omitempty"`
	Seller        SellerSummary `json:"seller"`
	RatingAverage float64       `json:"ratingAverage"`
	RatingCount   int           `json:"ratingCount"`
	StockLevel    string        `json:"stockLevel"`
	FreeShipping  bool          `json:"freeShipping"`
	Tags          []string      `json:"tags,omitempty"`
	CreatedAt     string        `json:"createdAt"`
}

// FacetValue is one selectable value inside a facet, annotated with its
// item count and whether the current query already selects it.
type FacetValue struct {
	Value    string `json:"value"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

// Facets groups the filter dimensions offered to search UIs.
type Facets struct {
	Categories  []FacetValue `json:"categories"`
	PriceRanges []FacetValue `json:"priceRanges"`
	Sellers     []FacetValue `json:"sellers"`
}

// PriceRange is a closed interval of final prices.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// TagCount pairs a tag with its occurrence count in the filtered set.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// AvailabilityCounts summarizes stock status across the filtered set.
type AvailabilityCounts struct {
	InStock      int `json:"inStock"`
	LowStock     int `json:"lowStock"`
	OutOfStock   int `json:"outOfStock"`
	WithDiscount int `json:"withDiscount"`
}

// SearchMetadata describes the whole filtered set, independent of the
// returned page.
type SearchMetadata struct {
	TotalResults   int                `json:"totalResults"`
	AppliedFilters FilterSpec         `json:"appliedFilters"`
	AveragePrice   float64            `json:"averagePrice"`
	MedianPrice    float64            `json:"medianPrice"`
	PriceRange     PriceRange         `json:"priceRange"`
	Percentiles    map[string]float64 `json:"percentiles"`
	PopularTags    []TagCount         `json:"popularTags"`
	Availability   AvailabilityCounts `json:"availability"`
}

// SortingInfo echoes the applied sort and lists the available presets.
// Requested preserves the caller's field when normalization substituted
// a concrete one (relevance is served as createdAt).
type SortingInfo struct {
	Applied   SortSpec   `json:"applied"`
	Requested string     `json:"requested,omitempty"`
	Available []SortSpec `json:"available"`
}

// Result is the full response envelope of a catalog query.
type Result struct {
	Items      []ProductSummary `json:"items"`
	Pagination pagination.Meta  `json:"pagination"`
	Facets     *Facets          `json:"facets,omitempty"`
	Metadata   *SearchMetadata  `json:"metadata,omitempty"`
	Sorting    SortingInfo      `json:"sorting"`
}
