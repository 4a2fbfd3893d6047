package domain

import (
	"fmt"
	"math"
	"time"
)

// percentSumTolerance is the allowed drift when rating percentages are
// required to sum to 100.
const percentSumTolerance = 0.01

// Seller represents a merchant account. One Seller instance exists per
// seller ID; all products from the same seller share it by reference.
type Seller struct {
	ID             string          `json:"id" validate:"required"`
	Username       string          `json:"username" validate:"required,min=3"`
	DisplayName    string          `json:"displayName" validate:"required,min=2"`
	Email          string          `json:"email" validate:"required,email"`
	Address        Address         `json:"address"`
	Rating         SellerRating    `json:"rating"`
	Metrics        SellerMetrics   `json:"metrics"`
	ShippingPolicy ShippingPolicy  `json:"shippingPolicy"`
	Certifications []Certification `json:"certifications"`
	BusinessInfo   BusinessInfo    `json:"businessInfo"`
	JoinedAt       time.Time       `json:"joinedAt"`
	LastActiveAt   time.Time       `json:"lastActiveAt"`
}

// Address is a seller's registered location.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// SellerRating aggregates buyer feedback. The positive, neutral, and
// negative percentages must sum to 100 within a small tolerance.
type SellerRating struct {
	Average            float64 `json:"average" validate:"gte=0,lte=5"`
	Count              int     `json:"count" validate:"gte=0"`
	PositivePercentage float64 `json:"positivePercentage" validate:"gte=0,lte=100"`
	NeutralPercentage  float64 `json:"neutralPercentage" validate:"gte=0,lte=100"`
	NegativePercentage float64 `json:"negativePercentage" validate:"gte=0,lte=100"`
}

// SellerMetrics holds operational performance counters.
type SellerMetrics struct {
	TotalSales               int     `json:"totalSales" validate:"gte=0"`
	TotalProducts            int     `json:"totalProducts" validate:"gte=0"`
	AvgResponseTimeHours     float64 `json:"avgResponseTimeHours" validate:"gte=0"`
	OnTimeDeliveryRate       float64 `json:"onTimeDeliveryRate" validate:"gte=0,lte=100"`
	CustomerSatisfactionRate float64 `json:"customerSatisfactionRate" validate:"gte=0,lte=100"`
	DisputeResolutionRate    float64 `json:"disputeResolutionRate" validate:"gte=0,lte=100"`
}

// ShippingPolicy describes how a seller ships orders.
type ShippingPolicy struct {
	HasFreeShipping     bool             `json:"hasFreeShipping"`
	FreeShippingMinimum float64          `json:"freeShippingMinimum" validate:"gte=0"`
	ProcessingTimeDays  int              `json:"processingTimeDays" validate:"gte=0"`
	Methods             []ShippingMethod `json:"methods" validate:"min=1"`
}

// ShippingMethod is a single delivery option offered by a seller.
type ShippingMethod struct {
	Name             string  `json:"name"`
	Cost             float64 `json:"cost"`
	EstimatedDaysMin int     `json:"estimatedDaysMin"`
	EstimatedDaysMax int     `json:"estimatedDaysMax"`
}

// Certification is a quality or compliance credential held by a seller.
type Certification struct {
	Type      string     `json:"type"`
	IssuedAt  time.Time  `json:"issuedAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// BusinessInfo holds the seller's legal registration data.
type BusinessInfo struct {
	LegalName  string `json:"legalName"`
	TaxID      string `json:"taxId"`
	Registered bool   `json:"registered"`
}

// IsActive reports whether a certification is currently valid.
func (c *Certification) IsActive(now time.Time) bool {
	if c.IssuedAt.After(now) {
		return false
	}
	return c.ExpiresAt == nil || c.ExpiresAt.After(now)
}

// ActiveCertifications counts certifications valid at the given instant.
func (s *Seller) ActiveCertifications(now time.Time) int {
	active := 0
	for i := range s.Certifications {
		if s.Certifications[i].IsActive(now) {
			active++
		}
	}
	return active
}

// ReputationScore computes a 0..100 composite score: 40% buyer rating
// scaled to 100, 40% operational averages, 20% active certifications at
// 25 points each, capped at 100.
func (s *Seller) ReputationScore(now time.Time) float64 {
	ratingComponent := s.Rating.Average * 20

	operational := (s.Metrics.OnTimeDeliveryRate +
		s.Metrics.CustomerSatisfactionRate +
		s.Metrics.DisputeResolutionRate) / 3

	certComponent := float64(25 * s.ActiveCertifications(now))

	score := 0.4*ratingComponent + 0.4*operational + 0.2*certComponent
	if score > 100 {
		score = 100
	}
	return Round2(score)
}

// Validate checks the construction-time invariants of a seller.
func (s *Seller) Validate(now time.Time) error {
	sum := s.Rating.PositivePercentage + s.Rating.NeutralPercentage + s.Rating.NegativePercentage
	if s.Rating.Count > 0 && math.Abs(sum-100) > percentSumTolerance {
		return fmt.Errorf("seller %s: rating percentages sum to %.2f, want 100", s.ID, sum)
	}

	for _, c := range s.Certifications {
		if c.IssuedAt.After(now) {
			return fmt.Errorf("seller %s: certification %q issued in the future", s.ID, c.Type)
		}
	}

	return nil
}
