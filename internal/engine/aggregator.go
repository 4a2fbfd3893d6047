package engine

import (
	"sort"
	"strconv"
	"time"

	"github.com/glaucia86/mercado-libre-clone/internal/domain"
)

// Facet and tag list sizes. Bounding facet cardinality keeps response
// size independent of catalog size.
const (
	maxCategoryFacets = 10
	maxSellerFacets   = 5
	maxPopularTags    = 10
	priceRangeBuckets = 4
)

// percentileLevels is the fixed percentile table reported in search
// metadata.
var percentileLevels = map[string]float64{
	"p25": 25,
	"p50": 50,
	"p75": 75,
	"p90": 90,
	"p95": 95,
}

// Aggregation holds the single-pass statistics of a filtered set. It is
// always computed from the full filtered set, never from a page.
type Aggregation struct {
	Total          int
	CategoryCounts map[string]int
	SellerCounts   map[string]int
	TagCounts      map[string]int
	Availability   AvailabilityCounts

	// prices holds every final price, sorted ascending after the scan.
	prices   []float64
	priceSum float64
}

// Aggregate scans the filtered set once, collecting frequency maps,
// availability counts, and final-price statistics.
func Aggregate(products []*domain.Product, now time.Time) *Aggregation {
	agg := &Aggregation{
		Total:          len(products),
		CategoryCounts: make(map[string]int),
		SellerCounts:   make(map[string]int),
		TagCounts:      make(map[string]int),
		prices:         make([]float64, 0, len(products)),
	}

	for _, p := range products {
		agg.CategoryCounts[p.Category]++
		agg.SellerCounts[p.SellerID]++
		for _, tag := range p.Tags {
			agg.TagCounts[tag]++
		}

		final := p.FinalPrice(now)
		agg.prices = append(agg.prices, final)
		agg.priceSum += final

		if p.IsAvailable() {
			agg.Availability.InStock++
		} else {
			agg.Availability.OutOfStock++
		}
		if p.Stock.Available > 0 && p.Stock.Available <= p.Stock.Threshold {
			agg.Availability.LowStock++
		}
		if p.Discount != nil && p.Savings(now) > 0 {
			agg.Availability.WithDiscount++
		}
	}

	// Percentiles and the median need ordered prices; the sort is bounded
	// by the filtered-set size, not the page size.
	sort.Float64s(agg.prices)

	return agg
}

// MinPrice returns the lowest final price in the set, or 0 when empty.
func (a *Aggregation) MinPrice() float64 {
	if len(a.prices) == 0 {
		return 0
	}
	return a.prices[0]
}

// MaxPrice returns the highest final price in the set, or 0 when empty.
func (a *Aggregation) MaxPrice() float64 {
	if len(a.prices) == 0 {
		return 0
	}
	return a.prices[len(a.prices)-1]
}

// AveragePrice returns the mean final price, or 0 when the set is empty.
func (a *Aggregation) AveragePrice() float64 {
	if len(a.prices) == 0 {
		return 0
	}
	return domain.Round2(a.priceSum / float64(len(a.prices)))
}

// MedianPrice returns the 50th percentile of final prices.
func (a *Aggregation) MedianPrice() float64 {
	return a.Percentile(50)
}

// Percentile returns the given percentile of final prices using linear
// interpolation between the two nearest ranks.
func (a *Aggregation) Percentile(level float64) float64 {
	n := len(a.prices)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return a.prices[0]
	}

	rank := (level / 100) * float64(n-1)
	lower := int(rank)
	if lower >= n-1 {
		return a.prices[n-1]
	}
	frac := rank - float64(lower)
	return domain.Round2(a.prices[lower] + frac*(a.prices[lower+1]-a.prices[lower]))
}

// Percentiles returns the fixed percentile table for search metadata.
func (a *Aggregation) Percentiles() map[string]float64 {
	table := make(map[string]float64, len(percentileLevels))
	for key, level := range percentileLevels {
		table[key] = a.Percentile(level)
	}
	return table
}

// PopularTags returns the most frequent tags, ties broken
// alphabetically for determinism.
func (a *Aggregation) PopularTags() []TagCount {
	tags := make([]TagCount, 0, len(a.TagCounts))
	for tag, count := range a.TagCounts {
		tags = append(tags, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})
	if len(tags) > maxPopularTags {
		tags = tags[:maxPopularTags]
	}
	return tags
}

// BuildFacets derives the facet lists from the aggregation. Values
// matching the currently applied filter are annotated as selected.
// Seller facet values are the seller IDs; display names resolve through
// the catalog on the detail endpoints.
func (a *Aggregation) BuildFacets(f *FilterSpec) *Facets {
	facets := &Facets{
		Categories:  topCounts(a.CategoryCounts, maxCategoryFacets, facetSelection(f.Category)),
		PriceRanges: a.priceRangeFacets(f),
		Sellers:     topCounts(a.SellerCounts, maxSellerFacets, facetSelection(f.SellerID)),
	}
	return facets
}

// facetSelection returns the selected facet value, or "" when the filter
// leaves the dimension unconstrained.
func facetSelection(applied *string) string {
	if applied == nil {
		return ""
	}
	return *applied
}

// topCounts converts a frequency map into a facet list ordered by count
// descending, ties broken by value for determinism.
func topCounts(counts map[string]int, max int, selected string) []FacetValue {
	values := make([]FacetValue, 0, len(counts))
	for value, count := range counts {
		values = append(values, FacetValue{
			Value:    value,
			Count:    count,
			Selected: value == selected,
		})
	}
	sort.Slice(values, func(i, j int) bool {
		if values[i].Count != values[j].Count {
			return values[i].Count > values[j].Count
		}
		return values[i].Value < values[j].Value
	})
	if len(values) > max {
		values = values[:max]
	}
	return values
}

// priceRangeFacets splits [min, max] into equal-width buckets and counts
// final prices per bucket. A bucket is selected when it intersects the
// applied price filter.
func (a *Aggregation) priceRangeFacets(f *FilterSpec) []FacetValue {
	if len(a.prices) == 0 {
		return []FacetValue{}
	}

	min, max := a.MinPrice(), a.MaxPrice()
	width := (max - min) / priceRangeBuckets
	if width == 0 {
		// All prices identical: a single degenerate bucket.
		return []FacetValue{{
			Value:    formatPriceRange(min, max),
			Count:    len(a.prices),
			Selected: rangeIntersectsFilter(min, max, f),
		}}
	}

	values := make([]FacetValue, 0, priceRangeBuckets)
	for i := 0; i < priceRangeBuckets; i++ {
		lo := min + float64(i)*width
		hi := lo + width

		count := 0
		for _, price := range a.prices {
			if price >= lo && (price < hi || (i == priceRangeBuckets-1 && price <= hi)) {
				count++
			}
		}

		values = append(values, FacetValue{
			Value:    formatPriceRange(lo, hi),
			Count:    count,
			Selected: rangeIntersectsFilter(lo, hi, f),
		})
	}
	return values
}

func rangeIntersectsFilter(lo, hi float64, f *FilterSpec) bool {
	if f.MinPrice == nil && f.MaxPrice == nil {
		return false
	}
	if f.MinPrice != nil && hi < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && lo > *f.MaxPrice {
		return false
	}
	return true
}

func formatPriceRange(lo, hi float64) string {
	return formatAmount(lo) + "-" + formatAmount(hi)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(domain.Round2(v), 'f', 2, 64)
}
