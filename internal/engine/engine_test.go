package engine

import (
	"io"
	"log/slog"
	"time"

	"github.com/glaucia86/mercado-libre-clone/internal/catalog"
	"github.com/glaucia86/mercado-libre-clone/internal/domain"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

// makeProduct builds a valid active product with sensible defaults.
// Mutate tweaks the fields a test cares about.
func makeProduct(id string, price float64, mutate func(*domain.Product)) *domain.Product {
	p := &domain.Product{
		ID:          id,
		Title:       "Product " + id,
		Description: "generic description",
		Price:       price,
		Currency:    "BRL",
		Images: []domain.Image{
			{URL: "https://img.example.com/" + id + ".jpg", IsPrimary: true},
		},
		Category:    "electronics",
		Subcategory: "smartphones",
		Condition:   domain.ConditionNew,
		SellerID:    "SELLER-A",
		Rating:      domain.Rating{Average: 4.0, Count: 100},
		Stock:       domain.Stock{Available: 50, Threshold: 5},
		Tags:        []string{"tech"},
		CreatedAt:   testNow.AddDate(0, -1, 0),
		IsActive:    true,
	}
	if mutate != nil {
		mutate(p)
	}
	return p
}

func makeSeller(id, name string) *domain.Seller {
	return &domain.Seller{
		ID:          id,
		Username:    "user_" + id,
		DisplayName: name,
		Email:       id + "@example.com",
		Rating: domain.SellerRating{
			Average: 4.5, Count: 200,
			PositivePercentage: 90, NeutralPercentage: 6, NegativePercentage: 4,
		},
		Metrics: domain.SellerMetrics{
			OnTimeDeliveryRate:       95,
			CustomerSatisfactionRate: 92,
			DisputeResolutionRate:    88,
		},
		ShippingPolicy: domain.ShippingPolicy{
			HasFreeShipping:     true,
			FreeShippingMinimum: 100,
			Methods:             []domain.ShippingMethod{{Name: "standard"}},
		},
		JoinedAt: testNow.AddDate(-3, 0, 0),
	}
}

// catalogWith wraps ad-hoc products in a loaded catalog backed by the
// standard test sellers.
func catalogWith(products ...*domain.Product) *catalog.Catalog {
	sellers := []*domain.Seller{
		makeSeller("SELLER-A", "Loja Alpha"),
		makeSeller("SELLER-B", "Loja Beta"),
	}
	return catalog.NewFromEntities(products, sellers, nil)
}

// testCatalog builds a small fixed catalog covering both sellers,
// discounts, low stock, and distinct categories.
func testCatalog() *catalog.Catalog {
	until := time.Now().UTC().AddDate(1, 0, 0)

	products := []*domain.Product{
		makeProduct("P-1", 1000, func(p *domain.Product) {
			p.Title = "Smartphone Alpha"
			p.Rating = domain.Rating{Average: 4.8, Count: 500}
			p.Discount = &domain.Discount{Percentage: 10, ValidUntil: &until}
			p.Tags = []string{"tech", "promo"}
			p.CreatedAt = testNow.AddDate(0, 0, -10)
		}),
		makeProduct("P-2", 500, func(p *domain.Product) {
			p.Title = "Smartphone Beta"
			p.Rating = domain.Rating{Average: 4.2, Count: 300}
			p.CreatedAt = testNow.AddDate(0, 0, -20)
		}),
		makeProduct("P-3", 2000, func(p *domain.Product) {
			p.Title = "Notebook Gamma"
			p.Category = "computers"
			p.Subcategory = "notebooks"
			p.SellerID = "SELLER-B"
			p.Condition = domain.ConditionRefurbished
			p.Rating = domain.Rating{Average: 3.9, Count: 80}
			p.Tags = []string{"tech", "work"}
			p.CreatedAt = testNow.AddDate(0, 0, -5)
		}),
		makeProduct("P-4", 150, func(p *domain.Product) {
			p.Title = "Fone Delta"
			p.Category = "electronics"
			p.Subcategory = "audio"
			p.Rating = domain.Rating{Average: 4.2, Count: 150}
			p.Stock = domain.Stock{Available: 3, Threshold: 5}
			p.Tags = []string{"audio", "promo"}
			p.CreatedAt = testNow.AddDate(0, 0, -30)
		}),
		makeProduct("P-5", 800, func(p *domain.Product) {
			p.Title = "Monitor Epsilon"
			p.Category = "computers"
			p.Subcategory = "monitors"
			p.SellerID = "SELLER-B"
			p.Rating = domain.Rating{Average: 4.5, Count: 220}
			p.IsActive = false
			p.CreatedAt = testNow.AddDate(0, 0, -15)
		}),
	}

	sellers := []*domain.Seller{
		makeSeller("SELLER-A", "Loja Alpha"),
		makeSeller("SELLER-B", "Loja Beta"),
	}

	return catalog.NewFromEntities(products, sellers, nil)
}
