// Package service implements the business logic over the loaded catalog:
// listing, detail projection, installment plans, and similar-product
// lookup.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/glaucia86/mercado-libre-clone/internal/catalog"
	"github.com/glaucia86/mercado-libre-clone/internal/domain"
	"github.com/glaucia86/mercado-libre-clone/internal/engine"
	apperrors "github.com/glaucia86/mercado-libre-clone/pkg/errors"
)

// DefaultSimilarLimit caps similar-product responses when the caller
// does not ask for a specific count.
const DefaultSimilarLimit = 10

// CatalogService implements the business logic for catalog operations.
type CatalogService struct {
	catalog *catalog.Catalog
	engine  *engine.Engine
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(c *catalog.Catalog, eng *engine.Engine, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		catalog: c,
		engine:  eng,
		logger:  logger,
		tracer:  otel.Tracer("catalog-service"),
	}
}

// SellerDetail is the seller projection on product detail responses.
type SellerDetail struct {
	domain.Seller
	Reputation float64 `json:"reputation"`
}

// PaymentOption is one accepted payment method on a product detail,
// priced against the product's final price.
type PaymentOption struct {
	ID           string                     `json:"id"`
	Type         string                     `json:"type"`
	Provider     string                     `json:"provider,omitempty"`
	DisplayName  string                     `json:"displayName,omitempty"`
	LogoURL      string                     `json:"logoUrl,omitempty"`
	RiskScore    int                        `json:"riskScore"`
	Installments []domain.InstallmentOption `json:"installments,omitempty"`
}

// ProductDetail is the full product projection: the entity plus derived
// pricing, the resolved seller, and priced payment options.
type ProductDetail struct {
	domain.Product
	FinalPrice     float64         `json:"finalPrice"`
	Savings        float64         `json:"savings"`
	StockLevel     string          `json:"stockLevel"`
	Available      bool            `json:"available"`
	Seller         *SellerDetail   `json:"seller,omitempty"`
	PaymentOptions []PaymentOption `json:"paymentOptions"`
}

// InstallmentPlan is the amortization schedule for paying a product
// through one payment method.
type InstallmentPlan struct {
	ProductID       string                     `json:"productId"`
	PaymentMethodID string                     `json:"paymentMethodId"`
	Amount          float64                    `json:"amount"`
	Currency        string                     `json:"currency"`
	Fees            *domain.FeeBreakdown       `json:"fees"`
	Options         []domain.InstallmentOption `json:"options"`
}

// ListProducts executes a catalog query.
func (s *CatalogService) ListProducts(ctx context.Context, spec engine.QuerySpec) (*engine.Result, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListProducts")
	defer span.End()

	result, err := s.engine.Query(ctx, spec)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("catalog.results_total", result.Pagination.Total),
		attribute.Int("catalog.results_returned", len(result.Items)),
	)

	return result, nil
}

// GetProduct returns the full detail projection for one product.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*ProductDetail, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetProduct",
		trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	product := s.catalog.GetProduct(id)
	if product == nil {
		return nil, apperrors.NotFound("product", id)
	}

	now := time.Now().UTC()
	finalPrice := product.FinalPrice(now)

	detail := &ProductDetail{
		Product:    *product,
		FinalPrice: finalPrice,
		Savings:    product.Savings(now),
		StockLevel: product.StockLevel(),
		Available:  product.IsAvailable(),
	}

	if seller := s.catalog.GetSeller(product.SellerID); seller != nil {
		detail.Seller = &SellerDetail{
			Seller:     *seller,
			Reputation: seller.ReputationScore(now),
		}
	}

	methods := s.catalog.PaymentMethodsFor(product)
	detail.PaymentOptions = make([]PaymentOption, 0, len(methods))
	for _, m := range methods {
		detail.PaymentOptions = append(detail.PaymentOptions, PaymentOption{
			ID:           m.ID,
			Type:         m.Type,
			Provider:     m.Provider,
			DisplayName:  m.DisplayName,
			LogoURL:      m.LogoURL,
			RiskScore:    m.RiskScore(),
			Installments: m.CalculateInstallmentOptions(finalPrice),
		})
	}

	s.logger.DebugContext(ctx, "product detail resolved",
		slog.String("product_id", id),
		slog.Int("payment_options", len(detail.PaymentOptions)),
	)

	return detail, nil
}

// GetInstallmentPlan computes the amortization schedule for paying the
// given product's final price through the given payment method.
func (s *CatalogService) GetInstallmentPlan(ctx context.Context, productID, paymentMethodID string) (*InstallmentPlan, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetInstallmentPlan",
		trace.WithAttributes(
			attribute.String("product.id", productID),
			attribute.String("payment_method.id", paymentMethodID),
		))
	defer span.End()

	if paymentMethodID == "" {
		return nil, apperrors.InvalidInput("paymentMethodId is required")
	}

	product := s.catalog.GetProduct(productID)
	if product == nil {
		return nil, apperrors.NotFound("product", productID)
	}

	method := s.findProductMethod(product, paymentMethodID)
	if method == nil {
		return nil, apperrors.NotFound("payment method", paymentMethodID)
	}

	now := time.Now().UTC()
	amount := product.FinalPrice(now)

	fees, err := method.CalculateTransactionFees(amount)
	if err != nil {
		var limitsErr *domain.AmountOutOfLimitsError
		if errors.As(err, &limitsErr) {
			return nil, apperrors.AmountOutOfLimits(limitsErr.Amount, limitsErr.Min, limitsErr.Max)
		}
		return nil, apperrors.Internal(err)
	}

	plan := &InstallmentPlan{
		ProductID:       product.ID,
		PaymentMethodID: method.ID,
		Amount:          amount,
		Currency:        method.Currency,
		Fees:            fees,
		Options:         method.CalculateInstallmentOptions(amount),
	}

	s.logger.DebugContext(ctx, "installment plan computed",
		slog.String("product_id", productID),
		slog.String("payment_method_id", paymentMethodID),
		slog.Int("options", len(plan.Options)),
	)

	return plan, nil
}

// GetSimilar returns products from the same category as the given one,
// best rated first, excluding the product itself.
func (s *CatalogService) GetSimilar(ctx context.Context, productID string, limit int) (*engine.Result, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetSimilar",
		trace.WithAttributes(attribute.String("product.id", productID)))
	defer span.End()

	product := s.catalog.GetProduct(productID)
	if product == nil {
		return nil, apperrors.NotFound("product", productID)
	}

	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	category := product.Category
	result, err := s.engine.Query(ctx, engine.QuerySpec{
		Filters: engine.FilterSpec{Category: &category},
		Sort:    engine.SortSpec{Field: engine.SortByRating, Direction: engine.SortDesc},
		// One extra slot absorbs the product itself before exclusion.
		Limit: limit + 1,
	})
	if err != nil {
		return nil, err
	}

	items := make([]engine.ProductSummary, 0, limit)
	for _, item := range result.Items {
		if item.ID == productID {
			continue
		}
		items = append(items, item)
		if len(items) == limit {
			break
		}
	}
	result.Items = items
	result.Pagination.Total = len(items)
	result.Pagination.TotalPages = 1
	result.Pagination.Limit = limit
	result.Pagination.HasNext = false

	return result, nil
}

// ItemCount returns the number of loaded products.
func (s *CatalogService) ItemCount() int {
	return s.catalog.ItemCount()
}

// IsLoaded reports whether the catalog dataset has been loaded.
func (s *CatalogService) IsLoaded() bool {
	return s.catalog.IsLoaded()
}

func (s *CatalogService) findProductMethod(p *domain.Product, methodID string) *domain.PaymentMethod {
	for _, id := range p.PaymentMethodIDs {
		if id == methodID {
			return s.catalog.GetPaymentMethod(id)
		}
	}
	return nil
}
