// Command seed generates a synthetic product dataset in the JSON layout
// the catalog loader expects. Generation is deterministic: the same
// count always produces the same dataset, so seeded environments stay
// reproducible across runs.
//
// Run: go run ./cmd/seed -count 500 -out data/products.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/glaucia86/mercado-libre-clone/internal/domain"
)

const randSeed = 424242

var (
	categories = map[string][]string{
		"electronics": {"smartphones", "notebooks", "games", "audio", "tv"},
		"home":        {"kitchen", "furniture", "decor", "garden"},
		"sports":      {"fitness", "cycling", "camping"},
		"fashion":     {"shoes", "watches", "bags"},
	}

	productNouns = []string{
		"Smartphone", "Notebook", "Fone Bluetooth", "Smart TV", "Console",
		"Cafeteira", "Liquidificador", "Jogo de Panelas", "Poltrona",
		"Bicicleta", "Esteira", "Barraca", "Tênis de Corrida", "Relógio",
		"Mochila", "Monitor", "Teclado Mecânico", "Caixa de Som",
	}

	productQualifiers = []string{
		"Pro", "Max", "Ultra", "Slim", "Plus", "Compact", "Premium",
		"Essential", "Turbo", "Classic",
	}

	conditions = []string{"new", "new", "new", "used", "refurbished"}

	tagPool = []string{
		"promo", "frete-gratis", "lancamento", "importado", "original",
		"garantia", "premium", "top", "oferta",
	}
)

type seller struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	DisplayName    string `json:"displayName"`
	Email          string `json:"email"`
	Address        any    `json:"address"`
	Rating         any    `json:"rating"`
	Metrics        any    `json:"metrics"`
	ShippingPolicy any    `json:"shippingPolicy"`
	Certifications any    `json:"certifications"`
	BusinessInfo   any    `json:"businessInfo"`
	JoinedAt       string `json:"joinedAt"`
	LastActiveAt   string `json:"lastActiveAt"`
}

func makeSellers(rng *rand.Rand, count int) []seller {
	sellers := make([]seller, 0, count)
	for i := 1; i <= count; i++ {
		positive := domain.Round2(80 + rng.Float64()*18)
		neutral := domain.Round2((100 - positive) * 0.6)
		// Derive the remainder from the rounded components so the
		// three percentages always sum to exactly 100.
		negative := domain.Round2(100 - positive - neutral)

		name := fmt.Sprintf("Loja %c%d", 'A'+rng.Intn(26), i)
		sellers = append(sellers, seller{
			ID:          fmt.Sprintf("SELLER-%03d", i),
			Username:    fmt.Sprintf("loja_%03d", i),
			DisplayName: name,
			Email:       fmt.Sprintf("vendas%03d@example.com.br", i),
			Address: map[string]string{
				"city": "São Paulo", "state": "SP", "country": "BR",
			},
			Rating: map[string]any{
				"average":            domain.Round2(3.5 + rng.Float64()*1.5),
				"count":              100 + rng.Intn(5000),
				"positivePercentage": positive,
				"neutralPercentage":  neutral,
				"negativePercentage": negative,
			},
			Metrics: map[string]any{
				"totalSales":               1000 + rng.Intn(40000),
				"totalProducts":            20 + rng.Intn(500),
				"avgResponseTimeHours":     domain.Round2(rng.Float64() * 12),
				"onTimeDeliveryRate":       domain.Round2(80 + rng.Float64()*19),
				"customerSatisfactionRate": domain.Round2(75 + rng.Float64()*24),
				"disputeResolutionRate":    domain.Round2(70 + rng.Float64()*29),
			},
			ShippingPolicy: map[string]any{
				"hasFreeShipping":     rng.Intn(2) == 0,
				"freeShippingMinimum": float64(50 + rng.Intn(200)),
				"processingTimeDays":  1 + rng.Intn(3),
				"methods": []map[string]any{
					{"name": "standard", "cost": float64(10 + rng.Intn(30)), "estimatedDaysMin": 2, "estimatedDaysMax": 9},
				},
			},
			Certifications: []map[string]string{},
			BusinessInfo: map[string]any{
				"legalName":  name + " Comercio Ltda",
				"taxId":      fmt.Sprintf("%02d.%03d.%03d/0001-%02d", rng.Intn(99), rng.Intn(999), rng.Intn(999), rng.Intn(99)),
				"registered": true,
			},
			JoinedAt:     time.Date(2017+rng.Intn(7), time.Month(1+rng.Intn(12)), 1+rng.Intn(28), 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
			LastActiveAt: "2025-01-10T12:00:00Z",
		})
	}
	return sellers
}

func makePaymentMethods() []map[string]any {
	return []map[string]any{
		{
			"id": "PM-VISA-CREDIT", "type": "credit_card", "provider": "visa",
			"displayName": "Visa Crédito", "currency": "BRL",
			"installments": map[string]any{"enabled": true, "max": 12},
			"fees":         map[string]any{"processingFee": 2.5, "platformFee": 1.0, "acquirerFee": 0.5, "totalFeePercentage": 4.0, "fixedFee": 0.39},
			"limits":       map[string]any{"minAmount": 10.0, "maxAmount": 50000.0},
			"security":     map[string]any{"requires3dSecure": true, "fraudDetection": true, "tokenization": true, "complianceLevel": "pci_dss_1"},
			"processingTime": map[string]any{
				"authorizationSeconds": 5, "settlementDays": 30, "refundDays": 7, "chargebackWindowDays": 120,
			},
			"countries": []string{"BR", "AR"}, "cardBrands": []string{"visa"},
		},
		{
			"id": "PM-PIX", "type": "pix", "provider": "bacen",
			"displayName": "Pix", "currency": "BRL",
			"installments": map[string]any{"enabled": false, "max": 0},
			"fees":         map[string]any{"processingFee": 0.5, "platformFee": 0.4, "acquirerFee": 0.09, "totalFeePercentage": 0.99, "fixedFee": 0.0},
			"limits":       map[string]any{"minAmount": 1.0, "maxAmount": 100000.0},
			"security":     map[string]any{"requires3dSecure": false, "fraudDetection": true, "tokenization": false, "complianceLevel": "bacen"},
			"processingTime": map[string]any{
				"authorizationSeconds": 2, "settlementDays": 0, "refundDays": 1, "chargebackWindowDays": 0,
			},
			"countries": []string{"BR"},
		},
		{
			"id": "PM-BOLETO", "type": "boleto", "provider": "bradesco",
			"displayName": "Boleto Bancário", "currency": "BRL",
			"installments": map[string]any{"enabled": false, "max": 0},
			"fees":         map[string]any{"processingFee": 1.5, "platformFee": 0.8, "acquirerFee": 0.2, "totalFeePercentage": 2.5, "fixedFee": 2.9},
			"limits":       map[string]any{"minAmount": 20.0, "maxAmount": 20000.0},
			"security":     map[string]any{"requires3dSecure": false, "fraudDetection": false, "tokenization": false, "complianceLevel": "febraban"},
			"processingTime": map[string]any{
				"authorizationSeconds": 10, "settlementDays": 2, "refundDays": 5, "chargebackWindowDays": 0,
			},
			"countries": []string{"BR"},
		},
		{
			"id": "PM-MP-WALLET", "type": "digital_wallet", "provider": "mercadopago",
			"displayName": "Carteira Mercado Pago", "currency": "BRL",
			"installments": map[string]any{"enabled": true, "max": 6},
			"fees":         map[string]any{"processingFee": 2.0, "platformFee": 0.9, "acquirerFee": 0.3, "totalFeePercentage": 3.2, "fixedFee": 0.0},
			"limits":       map[string]any{"minAmount": 5.0, "maxAmount": 30000.0},
			"security":     map[string]any{"requires3dSecure": false, "fraudDetection": true, "tokenization": true, "complianceLevel": "pci_dss_2"},
			"processingTime": map[string]any{
				"authorizationSeconds": 3, "settlementDays": 14, "refundDays": 3, "chargebackWindowDays": 60,
			},
			"countries": []string{"BR", "AR", "MX"},
		},
	}
}

// sortedCategories returns the category keys in a stable order; map
// iteration order would make generation non-deterministic.
func sortedCategories() []string {
	keys := make([]string, 0, len(categories))
	for k := range categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func makeProduct(rng *rand.Rand, index int, sellers []seller, methods []map[string]any, categoryKeys []string) map[string]any {
	category := categoryKeys[rng.Intn(len(categoryKeys))]
	subcats := categories[category]
	subcategory := subcats[rng.Intn(len(subcats))]

	title := fmt.Sprintf("%s %s %d",
		productNouns[rng.Intn(len(productNouns))],
		productQualifiers[rng.Intn(len(productQualifiers))],
		100+rng.Intn(900),
	)

	price := domain.Round2(30 + rng.Float64()*7000)
	created := time.Date(2024, time.Month(1+rng.Intn(12)), 1+rng.Intn(28), rng.Intn(24), 0, 0, 0, time.UTC)

	product := map[string]any{
		"id":          fmt.Sprintf("MLB-%04d", 1000+index),
		"title":       title,
		"description": "Produto " + title + " com garantia e nota fiscal.",
		"price":       price,
		"currency":    "BRL",
		"category":    category,
		"subcategory": subcategory,
		"condition":   conditions[rng.Intn(len(conditions))],
		"isActive":    rng.Intn(10) != 0,
		"createdAt":   created.Format(time.RFC3339),
		"updatedAt":   created.AddDate(0, 0, rng.Intn(60)).Format(time.RFC3339),
		"images": []map[string]any{
			{"url": fmt.Sprintf("https://cdn.example.com/%04d-main.jpg", 1000+index), "isPrimary": true, "sortOrder": 0},
		},
		"rating": map[string]any{
			"average": domain.Round2(2.5 + rng.Float64()*2.5),
			"count":   rng.Intn(2000),
		},
		"specifications": []map[string]string{
			{"name": "Garantia", "value": fmt.Sprintf("%d meses", 3+rng.Intn(22)), "category": "general"},
		},
		"stock": map[string]any{
			"available": rng.Intn(200),
			"reserved":  rng.Intn(10),
			"threshold": 2 + rng.Intn(8),
		},
		"dimensions": map[string]any{
			"widthCm": domain.Round2(5 + rng.Float64()*60), "heightCm": domain.Round2(5 + rng.Float64()*60),
			"depthCm": domain.Round2(1 + rng.Float64()*40), "weightKg": domain.Round2(0.1 + rng.Float64()*10),
		},
		"tags":           pickTags(rng),
		"seller":         sellers[rng.Intn(len(sellers))],
		"paymentMethods": pickMethods(rng, methods),
	}

	// Roughly a third of the catalog carries an active discount.
	if rng.Intn(3) == 0 {
		product["discount"] = map[string]any{
			"percentage": float64(5 + rng.Intn(40)),
			"amount":     0.0,
			"validUntil": "2030-01-01T00:00:00Z",
		}
	}

	return product
}

func pickTags(rng *rand.Rand) []string {
	n := 1 + rng.Intn(3)
	seen := make(map[string]bool, n)
	tags := make([]string, 0, n)
	for len(tags) < n {
		tag := tagPool[rng.Intn(len(tagPool))]
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

func pickMethods(rng *rand.Rand, methods []map[string]any) []map[string]any {
	// Every product accepts pix; cards and the rest are probabilistic.
	picked := []map[string]any{methods[1]}
	for i, m := range methods {
		if i == 1 {
			continue
		}
		if rng.Intn(3) != 0 {
			picked = append(picked, m)
		}
	}
	return picked
}

func main() {
	count := flag.Int("count", 500, "number of products to generate")
	sellerCount := flag.Int("sellers", 25, "number of distinct sellers")
	out := flag.String("out", "data/products.json", "output file path")
	flag.Parse()

	rng := rand.New(rand.NewSource(randSeed))

	sellers := makeSellers(rng, *sellerCount)
	methods := makePaymentMethods()
	categoryKeys := sortedCategories()

	products := make([]map[string]any, 0, *count)
	for i := 0; i < *count; i++ {
		products = append(products, makeProduct(rng, i, sellers, methods, categoryKeys))
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create output file: %v", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{"products": products}); err != nil {
		log.Fatalf("encode dataset: %v", err)
	}

	log.Printf("wrote %d products (%d sellers) to %s", *count, *sellerCount, *out)
}
