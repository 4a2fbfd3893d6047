package domain

import (
	"fmt"
	"math"
)

// Payment type constants. The set is closed: every business-rule branch
// over payment types switches exhaustively so a new type forces a visible
// decision at each site.
const (
	PaymentTypeCreditCard     = "credit_card"
	PaymentTypeDebitCard      = "debit_card"
	PaymentTypeBankTransfer   = "bank_transfer"
	PaymentTypePix            = "pix"
	PaymentTypeBoleto         = "boleto"
	PaymentTypeDigitalWallet  = "digital_wallet"
	PaymentTypeCashOnDelivery = "cash_on_delivery"
)

// minInstallmentValue is the smallest per-installment amount offered; any
// quantity that would produce a smaller installment is dropped.
const minInstallmentValue = 5.0

// feeSumTolerance is the allowed drift when fee components are required to
// sum to the total fee percentage.
const feeSumTolerance = 0.01

// PaymentMethod represents a way to pay for a product. Instances are
// deduplicated by ID at load time and shared across products.
type PaymentMethod struct {
	ID             string         `json:"id" validate:"required"`
	Type           string         `json:"type" validate:"required"`
	Provider       string         `json:"provider"`
	DisplayName    string         `json:"displayName"`
	LogoURL        string         `json:"logoUrl"`
	Currency       string         `json:"currency" validate:"required,len=3"`
	Installments   Installments   `json:"installments"`
	Fees           Fees           `json:"fees"`
	Limits         Limits         `json:"limits"`
	Security       Security       `json:"security"`
	ProcessingTime ProcessingTime `json:"processingTime"`
	Countries      []string       `json:"countries"`
	CardBrands     []string       `json:"cardBrands,omitempty"`
}

// Installments configures whether and how far a payment method can be
// split into periodic payments.
type Installments struct {
	Enabled bool `json:"enabled"`
	Max     int  `json:"max"`
}

// Fees holds the percentage and fixed fee components of a payment method.
// The percentage components must sum to TotalFeePercentage.
type Fees struct {
	ProcessingFee      float64 `json:"processingFee" validate:"gte=0"`
	PlatformFee        float64 `json:"platformFee" validate:"gte=0"`
	AcquirerFee        float64 `json:"acquirerFee" validate:"gte=0"`
	TotalFeePercentage float64 `json:"totalFeePercentage" validate:"gte=0,lte=15"`
	FixedFee           float64 `json:"fixedFee" validate:"gte=0"`
}

// Limits bounds the transaction amounts a payment method accepts.
type Limits struct {
	MinAmount    float64  `json:"minAmount" validate:"gte=0"`
	MaxAmount    float64  `json:"maxAmount" validate:"gt=0"`
	DailyLimit   *float64 `json:"dailyLimit,omitempty"`
	MonthlyLimit *float64 `json:"monthlyLimit,omitempty"`
}

// Security describes the fraud controls a payment method supports.
type Security struct {
	Requires3DSecure bool   `json:"requires3dSecure"`
	FraudDetection   bool   `json:"fraudDetection"`
	Tokenization     bool   `json:"tokenization"`
	ComplianceLevel  string `json:"complianceLevel"`
}

// ProcessingTime holds the settlement characteristics of a payment method.
type ProcessingTime struct {
	AuthorizationSeconds int `json:"authorizationSeconds" validate:"gte=0,lte=30"`
	SettlementDays       int `json:"settlementDays" validate:"gte=0"`
	RefundDays           int `json:"refundDays" validate:"gte=0"`
	ChargebackWindowDays int `json:"chargebackWindowDays" validate:"gte=0"`
}

// FeeBreakdown is the result of a transaction fee calculation.
type FeeBreakdown struct {
	ProcessingFee float64 `json:"processingFee"`
	PlatformFee   float64 `json:"platformFee"`
	AcquirerFee   float64 `json:"acquirerFee"`
	FixedFee      float64 `json:"fixedFee"`
	TotalFees     float64 `json:"totalFees"`
	NetAmount     float64 `json:"netAmount"`
}

// InstallmentOption is one entry in an amortization schedule.
type InstallmentOption struct {
	Quantity              int     `json:"quantity"`
	Amount                float64 `json:"amount"`
	TotalAmount           float64 `json:"totalAmount"`
	InterestRate          float64 `json:"interestRate"`
	RecommendedByMerchant bool    `json:"recommendedByMerchant"`
}

// AmountOutOfLimitsError reports a transaction amount outside a payment
// method's configured bounds.
type AmountOutOfLimitsError struct {
	Amount float64
	Min    float64
	Max    float64
}

func (e *AmountOutOfLimitsError) Error() string {
	return fmt.Sprintf("amount %.2f outside limits [%.2f, %.2f]", e.Amount, e.Min, e.Max)
}

// ValidPaymentTypes returns the closed set of payment types.
func ValidPaymentTypes() []string {
	return []string{
		PaymentTypeCreditCard,
		PaymentTypeDebitCard,
		PaymentTypeBankTransfer,
		PaymentTypePix,
		PaymentTypeBoleto,
		PaymentTypeDigitalWallet,
		PaymentTypeCashOnDelivery,
	}
}

// IsValidPaymentType checks whether the given string is a valid payment type.
func IsValidPaymentType(t string) bool {
	for _, v := range ValidPaymentTypes() {
		if v == t {
			return true
		}
	}
	return false
}

// IsCardType reports whether the payment type is a card payment.
// Card types must support tokenization.
func IsCardType(t string) bool {
	switch t {
	case PaymentTypeCreditCard, PaymentTypeDebitCard:
		return true
	case PaymentTypeBankTransfer, PaymentTypePix, PaymentTypeBoleto,
		PaymentTypeDigitalWallet, PaymentTypeCashOnDelivery:
		return false
	default:
		return false
	}
}

// SupportsInstallments reports whether the payment type may offer
// installment plans at all.
func SupportsInstallments(t string) bool {
	switch t {
	case PaymentTypeCreditCard, PaymentTypeDigitalWallet:
		return true
	case PaymentTypeDebitCard, PaymentTypeBankTransfer, PaymentTypePix,
		PaymentTypeBoleto, PaymentTypeCashOnDelivery:
		return false
	default:
		return false
	}
}

// CalculateTransactionFees returns the fee breakdown for charging the given
// amount through this payment method. Amounts outside the configured limits
// produce an AmountOutOfLimitsError.
func (m *PaymentMethod) CalculateTransactionFees(amount float64) (*FeeBreakdown, error) {
	if amount < m.Limits.MinAmount || amount > m.Limits.MaxAmount {
		return nil, &AmountOutOfLimitsError{Amount: amount, Min: m.Limits.MinAmount, Max: m.Limits.MaxAmount}
	}

	totalFees := amount*(m.Fees.TotalFeePercentage/100) + m.Fees.FixedFee

	return &FeeBreakdown{
		ProcessingFee: Round2(amount * (m.Fees.ProcessingFee / 100)),
		PlatformFee:   Round2(amount * (m.Fees.PlatformFee / 100)),
		AcquirerFee:   Round2(amount * (m.Fees.AcquirerFee / 100)),
		FixedFee:      m.Fees.FixedFee,
		TotalFees:     Round2(totalFees),
		NetAmount:     Round2(amount - totalFees),
	}, nil
}

// installmentRate returns the monthly interest rate (as a decimal) for
// paying in the given number of installments. Credit cards are
// interest-free up to six installments.
func (m *PaymentMethod) installmentRate(quantity int) float64 {
	if quantity <= 6 {
		switch m.Type {
		case PaymentTypeCreditCard:
			return 0
		case PaymentTypeDebitCard, PaymentTypeBankTransfer, PaymentTypePix,
			PaymentTypeBoleto, PaymentTypeDigitalWallet, PaymentTypeCashOnDelivery:
			return 0.025
		default:
			return 0.025
		}
	}
	switch {
	case quantity <= 12:
		return 0.025
	case quantity <= 18:
		return 0.035
	default:
		return 0.045
	}
}

// CalculateInstallmentOptions returns the amortization schedule for the
// given amount: one option per installment quantity from 2 up to the
// configured maximum. Interest-bearing options use the standard annuity
// formula. Options whose per-installment amount would fall below the
// minimum installment value are dropped.
func (m *PaymentMethod) CalculateInstallmentOptions(amount float64) []InstallmentOption {
	if !m.Installments.Enabled || amount < m.Limits.MinAmount {
		return []InstallmentOption{}
	}

	options := make([]InstallmentOption, 0, m.Installments.Max)
	for quantity := 2; quantity <= m.Installments.Max; quantity++ {
		rate := m.installmentRate(quantity)

		var installment float64
		if rate == 0 {
			installment = amount / float64(quantity)
		} else {
			// Annuity formula: A = P * r(1+r)^n / ((1+r)^n - 1).
			factor := math.Pow(1+rate, float64(quantity))
			installment = amount * (rate * factor) / (factor - 1)
		}
		installment = Round2(installment)

		if installment < minInstallmentValue {
			continue
		}

		options = append(options, InstallmentOption{
			Quantity:              quantity,
			Amount:                installment,
			TotalAmount:           Round2(installment * float64(quantity)),
			InterestRate:          rate,
			RecommendedByMerchant: quantity <= 6 && rate == 0,
		})
	}
	return options
}

// RiskScore returns a 0..10 fraud risk score: a base per payment type,
// reduced by one for each enabled security feature.
func (m *PaymentMethod) RiskScore() int {
	var base int
	switch m.Type {
	case PaymentTypeCreditCard:
		base = 3
	case PaymentTypeDebitCard:
		base = 2
	case PaymentTypeBankTransfer:
		base = 1
	case PaymentTypePix:
		base = 1
	case PaymentTypeBoleto:
		base = 1
	case PaymentTypeDigitalWallet:
		base = 2
	case PaymentTypeCashOnDelivery:
		base = 4
	default:
		base = 5
	}

	if m.Security.Requires3DSecure {
		base--
	}
	if m.Security.FraudDetection {
		base--
	}
	if m.Security.Tokenization {
		base--
	}

	if base < 0 {
		base = 0
	}
	if base > 10 {
		base = 10
	}
	return base
}

// Validate checks the construction-time invariants of a payment method.
func (m *PaymentMethod) Validate() error {
	if !IsValidPaymentType(m.Type) {
		return fmt.Errorf("payment method %s: invalid type %q", m.ID, m.Type)
	}

	componentSum := m.Fees.ProcessingFee + m.Fees.PlatformFee + m.Fees.AcquirerFee
	if math.Abs(componentSum-m.Fees.TotalFeePercentage) > feeSumTolerance {
		return fmt.Errorf("payment method %s: fee components sum to %.2f, total is %.2f",
			m.ID, componentSum, m.Fees.TotalFeePercentage)
	}

	if IsCardType(m.Type) && !m.Security.Tokenization {
		return fmt.Errorf("payment method %s: card payments must support tokenization", m.ID)
	}

	if m.Installments.Enabled {
		if !SupportsInstallments(m.Type) {
			return fmt.Errorf("payment method %s: type %q does not support installments", m.ID, m.Type)
		}
		if m.Installments.Max < 2 || m.Installments.Max > 24 {
			return fmt.Errorf("payment method %s: max installments %d outside 2..24", m.ID, m.Installments.Max)
		}
	}

	if m.Limits.MaxAmount < m.Limits.MinAmount {
		return fmt.Errorf("payment method %s: max amount below min amount", m.ID)
	}
	if m.Limits.DailyLimit != nil && *m.Limits.DailyLimit > m.Limits.MaxAmount {
		return fmt.Errorf("payment method %s: daily limit exceeds max amount", m.ID)
	}
	if m.Limits.MonthlyLimit != nil && m.Limits.DailyLimit != nil && *m.Limits.MonthlyLimit < *m.Limits.DailyLimit {
		return fmt.Errorf("payment method %s: monthly limit below daily limit", m.ID)
	}

	return nil
}
