package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glaucia86/mercado-libre-clone/internal/catalog"
	"github.com/glaucia86/mercado-libre-clone/internal/domain"
	"github.com/glaucia86/mercado-libre-clone/internal/engine"
	apperrors "github.com/glaucia86/mercado-libre-clone/pkg/errors"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService() *CatalogService {
	c := newTestCatalog()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewCatalogService(c, engine.New(c, logger), logger)
}

func newTestCatalog() *catalog.Catalog {
	until := time.Now().UTC().AddDate(1, 0, 0)

	seller := &domain.Seller{
		ID:          "SELLER-001",
		Username:    "loja_central",
		DisplayName: "Loja Central",
		Email:       "contato@lojacentral.com.br",
		Rating: domain.SellerRating{
			Average: 4.5, Count: 1200,
			PositivePercentage: 92, NeutralPercentage: 5, NegativePercentage: 3,
		},
		Metrics: domain.SellerMetrics{
			OnTimeDeliveryRate:       96,
			CustomerSatisfactionRate: 93,
			DisputeResolutionRate:    90,
		},
		ShippingPolicy: domain.ShippingPolicy{
			HasFreeShipping:     true,
			FreeShippingMinimum: 200,
			Methods:             []domain.ShippingMethod{{Name: "standard"}},
		},
		JoinedAt: testNow.AddDate(-4, 0, 0),
	}

	creditCard := &domain.PaymentMethod{
		ID:       "PM-CREDIT",
		Type:     domain.PaymentTypeCreditCard,
		Provider: "visa",
		Currency: "BRL",
		Installments: domain.Installments{
			Enabled: true,
			Max:     12,
		},
		Fees: domain.Fees{
			ProcessingFee:      2.5,
			PlatformFee:        1.0,
			AcquirerFee:        0.5,
			TotalFeePercentage: 4.0,
			FixedFee:           0.39,
		},
		Limits: domain.Limits{MinAmount: 10, MaxAmount: 50000},
		Security: domain.Security{
			Requires3DSecure: true,
			FraudDetection:   true,
			Tokenization:     true,
		},
	}

	pix := &domain.PaymentMethod{
		ID:       "PM-PIX",
		Type:     domain.PaymentTypePix,
		Currency: "BRL",
		Fees:     domain.Fees{TotalFeePercentage: 0.99, ProcessingFee: 0.99},
		Limits:   domain.Limits{MinAmount: 1, MaxAmount: 5000},
		Security: domain.Security{FraudDetection: true},
	}

	products := []*domain.Product{
		{
			ID:               "MLB-100",
			Title:            "Smartphone Alpha",
			Price:            1200,
			Currency:         "BRL",
			Images:           []domain.Image{{URL: "https://img.example.com/mlb-100.jpg", IsPrimary: true}},
			Category:         "electronics",
			Condition:        domain.ConditionNew,
			SellerID:         "SELLER-001",
			PaymentMethodIDs: []string{"PM-CREDIT", "PM-PIX"},
			Rating:           domain.Rating{Average: 4.7, Count: 340},
			Stock:            domain.Stock{Available: 25, Threshold: 5},
			Discount:         &domain.Discount{Percentage: 10, ValidUntil: &until},
			CreatedAt:        testNow.AddDate(0, -2, 0),
			IsActive:         true,
		},
		{
			ID:               "MLB-101",
			Title:            "Smartphone Beta",
			Price:            900,
			Currency:         "BRL",
			Category:         "electronics",
			Condition:        domain.ConditionNew,
			SellerID:         "SELLER-001",
			PaymentMethodIDs: []string{"PM-PIX"},
			Rating:           domain.Rating{Average: 4.1, Count: 120},
			Stock:            domain.Stock{Available: 8, Threshold: 3},
			CreatedAt:        testNow.AddDate(0, -1, 0),
			IsActive:         true,
		},
		{
			ID:               "MLB-200",
			Title:            "Cafeteira Gamma",
			Price:            300,
			Currency:         "BRL",
			Category:         "home",
			Condition:        domain.ConditionNew,
			SellerID:         "SELLER-001",
			PaymentMethodIDs: []string{"PM-PIX"},
			Rating:           domain.Rating{Average: 4.9, Count: 80},
			Stock:            domain.Stock{Available: 12, Threshold: 2},
			CreatedAt:        testNow.AddDate(0, 0, -7),
			IsActive:         true,
		},
	}

	return catalog.NewFromEntities(products, []*domain.Seller{seller},
		[]*domain.PaymentMethod{creditCard, pix})
}

func TestCatalogService_GetProduct(t *testing.T) {
	s := newTestService()

	detail, err := s.GetProduct(context.Background(), "MLB-100")

	require.NoError(t, err)
	assert.Equal(t, "MLB-100", detail.ID)
	assert.Equal(t, 1200.0, detail.Price)
	assert.Equal(t, 1080.0, detail.FinalPrice)
	assert.Equal(t, 120.0, detail.Savings)
	assert.True(t, detail.Available)
	assert.Equal(t, "high", detail.StockLevel)

	require.NotNil(t, detail.Seller)
	assert.Equal(t, "Loja Central", detail.Seller.DisplayName)
	assert.Positive(t, detail.Seller.Reputation)

	require.Len(t, detail.PaymentOptions, 2)
	credit := detail.PaymentOptions[0]
	assert.Equal(t, "PM-CREDIT", credit.ID)
	assert.Equal(t, 0, credit.RiskScore)
	assert.NotEmpty(t, credit.Installments)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	s := newTestService()

	_, err := s.GetProduct(context.Background(), "MLB-999")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalogService_GetProduct_EmptyID(t *testing.T) {
	s := newTestService()

	_, err := s.GetProduct(context.Background(), "")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCatalogService_ListProducts(t *testing.T) {
	s := newTestService()

	result, err := s.ListProducts(context.Background(), engine.QuerySpec{})

	require.NoError(t, err)
	assert.Len(t, result.Items, 3)
	assert.Equal(t, 3, result.Pagination.Total)
}

func TestCatalogService_GetInstallmentPlan(t *testing.T) {
	s := newTestService()

	plan, err := s.GetInstallmentPlan(context.Background(), "MLB-100", "PM-CREDIT")

	require.NoError(t, err)
	assert.Equal(t, "MLB-100", plan.ProductID)
	assert.Equal(t, "PM-CREDIT", plan.PaymentMethodID)
	assert.Equal(t, 1080.0, plan.Amount)
	assert.Equal(t, "BRL", plan.Currency)

	require.NotNil(t, plan.Fees)
	assert.Equal(t, 43.59, plan.Fees.TotalFees)

	// Quantities 2 through 12; six interest-free, six at 2.5% monthly.
	require.Len(t, plan.Options, 11)
	first := plan.Options[0]
	assert.Equal(t, 2, first.Quantity)
	assert.Equal(t, 540.0, first.Amount)
	assert.True(t, first.RecommendedByMerchant)
	last := plan.Options[len(plan.Options)-1]
	assert.Equal(t, 12, last.Quantity)
	assert.Equal(t, 0.025, last.InterestRate)
	assert.False(t, last.RecommendedByMerchant)
}

func TestCatalogService_GetInstallmentPlan_UnknownProduct(t *testing.T) {
	s := newTestService()

	_, err := s.GetInstallmentPlan(context.Background(), "MLB-999", "PM-CREDIT")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalogService_GetInstallmentPlan_MethodNotAcceptedByProduct(t *testing.T) {
	s := newTestService()

	// PM-CREDIT exists in the catalog but MLB-101 does not accept it.
	_, err := s.GetInstallmentPlan(context.Background(), "MLB-101", "PM-CREDIT")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalogService_GetInstallmentPlan_MissingMethodID(t *testing.T) {
	s := newTestService()

	_, err := s.GetInstallmentPlan(context.Background(), "MLB-100", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCatalogService_GetInstallmentPlan_AmountOutOfLimits(t *testing.T) {
	pix := &domain.PaymentMethod{
		ID:       "PM-PIX",
		Type:     domain.PaymentTypePix,
		Currency: "BRL",
		Fees:     domain.Fees{TotalFeePercentage: 0.99, ProcessingFee: 0.99},
		Limits:   domain.Limits{MinAmount: 1, MaxAmount: 5000},
	}
	expensive := &domain.Product{
		ID:               "MLB-900",
		Title:            "Notebook Omega",
		Price:            8000,
		Currency:         "BRL",
		Category:         "computers",
		Condition:        domain.ConditionNew,
		SellerID:         "SELLER-001",
		PaymentMethodIDs: []string{"PM-PIX"},
		Stock:            domain.Stock{Available: 5, Threshold: 1},
		CreatedAt:        testNow,
		IsActive:         true,
	}
	c := catalog.NewFromEntities([]*domain.Product{expensive}, nil, []*domain.PaymentMethod{pix})
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	s := NewCatalogService(c, engine.New(c, logger), logger)

	_, err := s.GetInstallmentPlan(context.Background(), "MLB-900", "PM-PIX")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAmountOutOfLimits)
}

func TestCatalogService_GetSimilar(t *testing.T) {
	s := newTestService()

	result, err := s.GetSimilar(context.Background(), "MLB-100", 5)

	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "MLB-101", result.Items[0].ID)
}

func TestCatalogService_GetSimilar_UnknownProduct(t *testing.T) {
	s := newTestService()

	_, err := s.GetSimilar(context.Background(), "MLB-999", 5)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalogService_Passthroughs(t *testing.T) {
	s := newTestService()

	assert.Equal(t, 3, s.ItemCount())
	assert.True(t, s.IsLoaded())
}
