package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadFile("testdata/products.json")
	require.NoError(t, err)
	return c
}

func TestLoadFile_LoadsAllProducts(t *testing.T) {
	c := loadTestCatalog(t)

	assert.True(t, c.IsLoaded())
	assert.Equal(t, 3, c.ItemCount())
}

func TestLoadFile_DeduplicatesSellers(t *testing.T) {
	c := loadTestCatalog(t)

	// MLB-1001 and MLB-1002 both embed SELLER-001; only one instance
	// must exist and both products must resolve to it.
	assert.Equal(t, 2, c.SellerCount())

	p1 := c.GetProduct("MLB-1001")
	p2 := c.GetProduct("MLB-1002")
	require.NotNil(t, p1)
	require.NotNil(t, p2)

	s1 := c.GetSeller(p1.SellerID)
	s2 := c.GetSeller(p2.SellerID)
	assert.Same(t, s1, s2)
	assert.Equal(t, "TechStore Brasil", s1.DisplayName)
}

func TestLoadFile_DeduplicatesPaymentMethods(t *testing.T) {
	c := loadTestCatalog(t)

	// PM-PIX appears on two products, PM-VISA-CREDIT on two.
	assert.Equal(t, 2, c.PaymentMethodCount())

	m1 := c.GetPaymentMethod("PM-PIX")
	require.NotNil(t, m1)

	for _, p := range []string{"MLB-1001", "MLB-1003"} {
		methods := c.PaymentMethodsFor(c.GetProduct(p))
		found := false
		for _, m := range methods {
			if m == m1 {
				found = true
			}
		}
		assert.True(t, found, "product %s should share the PM-PIX instance", p)
	}
}

func TestLoadFile_PreservesDatasetOrder(t *testing.T) {
	c := loadTestCatalog(t)

	products := c.Products()
	require.Len(t, products, 3)
	assert.Equal(t, "MLB-1001", products[0].ID)
	assert.Equal(t, "MLB-1002", products[1].ID)
	assert.Equal(t, "MLB-1003", products[2].ID)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.json")
	assert.Error(t, err)
}

func TestLoad_RejectsMalformedJSON(t *testing.T) {
	_, err := Load(strings.NewReader("{not json"))
	assert.Error(t, err)
}

func TestLoad_RejectsDuplicateProductID(t *testing.T) {
	_, err := Load(strings.NewReader(`{"products": [
		` + minimalProductJSON("MLB-X") + `,
		` + minimalProductJSON("MLB-X") + `
	]}`))
	assert.ErrorContains(t, err, "duplicate product id")
}

func TestLoad_RejectsInvalidProduct(t *testing.T) {
	// Price of zero violates the positive-price invariant.
	bad := strings.Replace(minimalProductJSON("MLB-BAD"), `"price": 100`, `"price": 0`, 1)
	_, err := Load(strings.NewReader(`{"products": [` + bad + `]}`))
	assert.Error(t, err)
}

func TestLoad_RejectsCardWithoutTokenization(t *testing.T) {
	bad := strings.Replace(minimalProductJSON("MLB-TOK"), `"tokenization": true`, `"tokenization": false`, 1)
	_, err := Load(strings.NewReader(`{"products": [` + bad + `]}`))
	assert.ErrorContains(t, err, "tokenization")
}

func TestEmptyCatalog_NotLoaded(t *testing.T) {
	c := New()
	assert.False(t, c.IsLoaded())
	assert.Equal(t, 0, c.ItemCount())
	assert.Nil(t, c.GetProduct("anything"))
}

// minimalProductJSON builds the smallest dataset record that passes
// validation, for mutation in rejection tests.
func minimalProductJSON(id string) string {
	return `{
		"id": "` + id + `",
		"title": "Produto Teste",
		"price": 100,
		"currency": "BRL",
		"category": "test",
		"condition": "new",
		"isActive": true,
		"createdAt": "2025-01-01T00:00:00Z",
		"updatedAt": "2025-01-01T00:00:00Z",
		"images": [{"url": "https://cdn.example.com/x.jpg", "isPrimary": true}],
		"rating": {"average": 4.0, "count": 1},
		"stock": {"available": 10, "reserved": 0, "threshold": 2},
		"seller": {
			"id": "S-` + id + `",
			"username": "seller_teste",
			"displayName": "Seller Teste",
			"email": "seller@example.com",
			"rating": {"average": 4.0, "count": 10, "positivePercentage": 90, "neutralPercentage": 6, "negativePercentage": 4},
			"metrics": {"onTimeDeliveryRate": 90, "customerSatisfactionRate": 90, "disputeResolutionRate": 90},
			"shippingPolicy": {"methods": [{"name": "standard", "cost": 10}]},
			"joinedAt": "2022-01-01T00:00:00Z",
			"lastActiveAt": "2025-01-01T00:00:00Z"
		},
		"paymentMethods": [{
			"id": "PMX-` + id + `",
			"type": "credit_card",
			"currency": "BRL",
			"installments": {"enabled": true, "max": 12},
			"fees": {"processingFee": 2, "platformFee": 1, "acquirerFee": 1, "totalFeePercentage": 4, "fixedFee": 0},
			"limits": {"minAmount": 1, "maxAmount": 10000},
			"security": {"requires3dSecure": true, "fraudDetection": true, "tokenization": true, "complianceLevel": "pci"},
			"processingTime": {"authorizationSeconds": 5, "settlementDays": 14, "refundDays": 5, "chargebackWindowDays": 90}
		}]
	}`
}
