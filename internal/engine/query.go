package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glaucia86/mercado-libre-clone/internal/catalog"
	"github.com/glaucia86/mercado-libre-clone/internal/domain"
	apperrors "github.com/glaucia86/mercado-libre-clone/pkg/errors"
	"github.com/glaucia86/mercado-libre-clone/pkg/pagination"
)

// Engine executes catalog queries: filter, aggregate, sort, paginate.
// It holds no mutable state of its own; all reads go through the
// immutable catalog, so a single Engine serves concurrent requests.
type Engine struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// New creates a query engine over the given catalog.
func New(c *catalog.Catalog, logger *slog.Logger) *Engine {
	return &Engine{
		catalog: c,
		logger:  logger,
	}
}

// Query runs a full catalog query. The pipeline order is fixed: filter
// the whole catalog, aggregate over the filtered set, then sort and
// paginate. Aggregation before pagination keeps facet counts and
// metadata describing the entire result set rather than one page.
func (e *Engine) Query(ctx context.Context, spec QuerySpec) (*Result, error) {
	start := time.Now()

	if err := validateSpec(&spec); err != nil {
		return nil, err
	}

	params := pagination.Normalize(spec.Page, spec.Limit)
	applied, requested := normalizeSort(spec.Sort)

	// A single timestamp keeps discount expiry consistent across
	// filtering, aggregation, and projection within one query.
	now := time.Now().UTC()

	filtered := FilterProducts(e.catalog.Products(), &spec.Filters, now)

	var agg *Aggregation
	if spec.IncludeFacets || spec.IncludeMetadata {
		agg = Aggregate(filtered, now)
	}

	sorted := SortProducts(filtered, applied.Field, applied.Direction, now)
	page := Paginate(sorted, params.Offset, params.Limit)

	result := &Result{
		Items:      e.projectItems(page.Items, now),
		Pagination: pagination.NewMeta(page.Total, params),
		Sorting: SortingInfo{
			Applied:   applied,
			Requested: requested,
			Available: availableSorts(),
		},
	}

	if spec.IncludeFacets {
		result.Facets = agg.BuildFacets(&spec.Filters)
	}
	if spec.IncludeMetadata {
		result.Metadata = &SearchMetadata{
			TotalResults:   agg.Total,
			AppliedFilters: spec.Filters,
			AveragePrice:   agg.AveragePrice(),
			MedianPrice:    agg.MedianPrice(),
			PriceRange:     PriceRange{Min: agg.MinPrice(), Max: agg.MaxPrice()},
			Percentiles:    agg.Percentiles(),
			PopularTags:    agg.PopularTags(),
			Availability:   agg.Availability,
		}
	}

	duration := time.Since(start)
	observeQuery(applied.Field, duration)

	e.logger.DebugContext(ctx, "catalog query executed",
		slog.Int("total", page.Total),
		slog.Int("returned", len(result.Items)),
		slog.String("sort_field", applied.Field),
		slog.Duration("duration", duration),
	)

	return result, nil
}

// validateSpec rejects queries whose numeric bounds are inconsistent.
// Out-of-range page and limit values are clamped, not rejected, so they
// are not checked here.
func validateSpec(spec *QuerySpec) error {
	f := &spec.Filters

	if f.MinPrice != nil && *f.MinPrice < 0 {
		return apperrors.InvalidRange("minPrice must not be negative")
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return apperrors.InvalidRange("maxPrice must not be negative")
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return apperrors.InvalidRange(
			fmt.Sprintf("minPrice %.2f exceeds maxPrice %.2f", *f.MinPrice, *f.MaxPrice))
	}
	if f.MinRating != nil && (*f.MinRating < 0 || *f.MinRating > 5) {
		return apperrors.InvalidRange("minRating must be between 0 and 5")
	}
	if f.Condition != nil && *f.Condition != "" && !domain.IsValidCondition(*f.Condition) {
		return apperrors.InvalidInput(fmt.Sprintf("unknown condition %q", *f.Condition))
	}
	if spec.Sort.Field != "" && !IsValidSortField(spec.Sort.Field) {
		return apperrors.InvalidInput(fmt.Sprintf("unknown sort field %q", spec.Sort.Field))
	}
	if spec.Sort.Direction != "" && !IsValidSortDirection(spec.Sort.Direction) {
		return apperrors.InvalidInput(fmt.Sprintf("unknown sort direction %q", spec.Sort.Direction))
	}

	return nil
}

// normalizeSort fills in defaults and resolves the relevance preset.
// With no text ranking signal, relevance is served as newest-first; the
// caller's original field is echoed back so clients see what they asked
// for.
func normalizeSort(s SortSpec) (applied SortSpec, requested string) {
	field := s.Field
	if field == "" {
		field = SortByRelevance
	}

	direction := s.Direction
	if direction == "" {
		direction = defaultDirection(field)
	}

	if field == SortByRelevance {
		return SortSpec{Field: SortByCreatedAt, Direction: SortDesc}, SortByRelevance
	}
	return SortSpec{Field: field, Direction: direction}, field
}

// defaultDirection picks the direction users expect when none is given:
// cheapest first for price, best or newest first for everything else.
func defaultDirection(field string) string {
	if field == SortByPrice || field == SortByTitle {
		return SortAsc
	}
	return SortDesc
}

func availableSorts() []SortSpec {
	return []SortSpec{
		{Field: SortByRelevance, Direction: SortDesc},
		{Field: SortByPrice, Direction: SortAsc},
		{Field: SortByPrice, Direction: SortDesc},
		{Field: SortByRating, Direction: SortDesc},
		{Field: SortByCreatedAt, Direction: SortDesc},
		{Field: SortByTitle, Direction: SortAsc},
		{Field: SortByPopularity, Direction: SortDesc},
	}
}

// projectItems builds the list-item projections for one page. Seller
// lookups resolve through the catalog; a dangling seller reference
// cannot happen on loaded catalogs because the loader rejects it.
func (e *Engine) projectItems(products []*domain.Product, now time.Time) []ProductSummary {
	items := make([]ProductSummary, 0, len(products))
	for _, p := range products {
		items = append(items, e.projectItem(p, now))
	}
	return items
}

func (e *Engine) projectItem(p *domain.Product, now time.Time) ProductSummary {
	item := ProductSummary{
		ID:            p.ID,
		Title:         p.Title,
		OriginalPrice: p.Price,
		FinalPrice:    p.FinalPrice(now),
		Savings:       p.Savings(now),
		Currency:      p.Currency,
		Condition:     p.Condition,
		RatingAverage: p.Rating.Average,
		RatingCount:   p.Rating.Count,
		StockLevel:    p.StockLevel(),
		Tags:          p.Tags,
		CreatedAt:     p.CreatedAt.UTC().Format(time.RFC3339),
	}

	if img := p.PrimaryImage(); img != nil {
		item.ThumbnailURL = img.URL
	}

	if seller := e.catalog.GetSeller(p.SellerID); seller != nil {
		item.Seller = SellerSummary{
			ID:          seller.ID,
			DisplayName: seller.DisplayName,
			Reputation:  seller.ReputationScore(now),
		}
		item.FreeShipping = seller.ShippingPolicy.HasFreeShipping &&
			item.FinalPrice >= seller.ShippingPolicy.FreeShippingMinimum
	}

	return item
}
