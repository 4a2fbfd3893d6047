package domain

import (
	"fmt"
	"math"
	"time"
)

// Product condition constants.
const (
	ConditionNew         = "new"
	ConditionUsed        = "used"
	ConditionRefurbished = "refurbished"
)

// Stock level classification constants.
const (
	StockLevelOut    = "out_of_stock"
	StockLevelLow    = "low"
	StockLevelMedium = "medium"
	StockLevelHigh   = "high"
)

// Product represents a single catalog listing. Products are built once at
// load time and never mutated afterwards; seller and payment methods are
// referenced by ID and resolved through the owning catalog.
type Product struct {
	ID               string          `json:"id" validate:"required"`
	Title            string          `json:"title" validate:"required"`
	Description      string          `json:"description"`
	Price            float64         `json:"price" validate:"gt=0"`
	Currency         string          `json:"currency" validate:"required,len=3"`
	Images           []Image         `json:"images"`
	Category         string          `json:"category" validate:"required"`
	Subcategory      string          `json:"subcategory"`
	Condition        string          `json:"condition" validate:"required"`
	SellerID         string          `json:"sellerId" validate:"required"`
	PaymentMethodIDs []string        `json:"paymentMethodIds"`
	Rating           Rating          `json:"rating"`
	Specifications   []Specification `json:"specifications"`
	Stock            Stock           `json:"stock"`
	Dimensions       Dimensions      `json:"dimensions"`
	Tags             []string        `json:"tags"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	IsActive         bool            `json:"isActive"`
	Discount         *Discount       `json:"discount,omitempty"`
}

// Image is a product photo. Exactly one image per product is primary.
type Image struct {
	URL       string `json:"url" validate:"required"`
	AltText   string `json:"altText"`
	IsPrimary bool   `json:"isPrimary"`
	SortOrder int    `json:"sortOrder"`
}

// Rating holds the aggregated review score for a product.
type Rating struct {
	Average      float64     `json:"average" validate:"gte=0,lte=5"`
	Count        int         `json:"count" validate:"gte=0"`
	Distribution map[int]int `json:"distribution,omitempty"`
}

// Specification is a single name/value attribute grouped by category.
type Specification struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Category string `json:"category"`
}

// Stock holds inventory counters for a product.
type Stock struct {
	Available int `json:"available" validate:"gte=0"`
	Reserved  int `json:"reserved" validate:"gte=0"`
	Threshold int `json:"threshold" validate:"gte=0"`
}

// Dimensions holds the physical size of a product.
type Dimensions struct {
	WidthCm  float64 `json:"widthCm"`
	HeightCm float64 `json:"heightCm"`
	DepthCm  float64 `json:"depthCm"`
	WeightKg float64 `json:"weightKg"`
}

// Discount is an optional price reduction on a product. When Percentage is
// positive it takes priority over the flat Amount.
type Discount struct {
	Percentage float64    `json:"percentage" validate:"gte=0,lte=100"`
	Amount     float64    `json:"amount" validate:"gte=0"`
	ValidUntil *time.Time `json:"validUntil,omitempty"`
	Condition  string     `json:"condition,omitempty"`
}

// ValidConditions returns the set of valid product conditions.
func ValidConditions() []string {
	return []string{ConditionNew, ConditionUsed, ConditionRefurbished}
}

// IsValidCondition checks whether the given string is a valid product condition.
func IsValidCondition(condition string) bool {
	for _, c := range ValidConditions() {
		if c == condition {
			return true
		}
	}
	return false
}

// HasActiveDiscount reports whether the product carries a discount that has
// not expired at the given instant.
func (p *Product) HasActiveDiscount(now time.Time) bool {
	if p.Discount == nil {
		return false
	}
	if p.Discount.ValidUntil != nil && p.Discount.ValidUntil.Before(now) {
		return false
	}
	return true
}

// FinalPrice returns the list price after applying any unexpired discount,
// floored at zero. Percentage discounts take priority over flat amounts.
func (p *Product) FinalPrice(now time.Time) float64 {
	if !p.HasActiveDiscount(now) {
		return p.Price
	}

	final := p.Price
	if p.Discount.Percentage > 0 {
		final = p.Price - p.Price*(p.Discount.Percentage/100)
	} else if p.Discount.Amount > 0 {
		final = p.Price - p.Discount.Amount
	}

	if final < 0 {
		final = 0
	}
	return Round2(final)
}

// Savings returns the absolute amount saved against the list price.
func (p *Product) Savings(now time.Time) float64 {
	return Round2(p.Price - p.FinalPrice(now))
}

// IsAvailable reports whether the product can currently be purchased. Stock
// strictly at the threshold counts as unavailable.
func (p *Product) IsAvailable() bool {
	return p.IsActive && p.Stock.Available > 0 && p.Stock.Available > p.Stock.Threshold
}

// StockLevel classifies the current inventory position.
func (p *Product) StockLevel() string {
	if !p.IsAvailable() || p.Stock.Available == 0 {
		return StockLevelOut
	}
	switch {
	case p.Stock.Available <= p.Stock.Threshold:
		return StockLevelLow
	case p.Stock.Available <= 3*p.Stock.Threshold:
		return StockLevelMedium
	default:
		return StockLevelHigh
	}
}

// PrimaryImage returns the image marked primary. The loader guarantees
// exactly one exists.
func (p *Product) PrimaryImage() *Image {
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	return nil
}

// Validate checks the construction-time invariants of a product. It is
// called once by the loader; products are immutable afterwards.
func (p *Product) Validate(now time.Time) error {
	if !IsValidCondition(p.Condition) {
		return fmt.Errorf("product %s: invalid condition %q", p.ID, p.Condition)
	}

	primaries := 0
	for _, img := range p.Images {
		if img.IsPrimary {
			primaries++
		}
	}
	if primaries != 1 {
		return fmt.Errorf("product %s: expected exactly one primary image, got %d", p.ID, primaries)
	}

	if p.Discount != nil {
		if p.Discount.Percentage < 0 || p.Discount.Percentage > 100 {
			return fmt.Errorf("product %s: discount percentage %.2f outside [0,100]", p.ID, p.Discount.Percentage)
		}
		if p.Discount.Amount < 0 {
			return fmt.Errorf("product %s: negative discount amount", p.ID)
		}
		if p.Discount.ValidUntil != nil && p.Discount.ValidUntil.Before(now) {
			return fmt.Errorf("product %s: discount already expired at %s", p.ID, p.Discount.ValidUntil.Format(time.RFC3339))
		}
	}

	for star := range p.Rating.Distribution {
		if star < 1 || star > 5 {
			return fmt.Errorf("product %s: rating distribution star %d outside 1..5", p.ID, star)
		}
	}

	return nil
}

// Round2 rounds a monetary value to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
