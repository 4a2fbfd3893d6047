package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/glaucia86/mercado-libre-clone/internal/domain"
	"github.com/glaucia86/mercado-libre-clone/pkg/validator"
)

// dataset is the on-disk shape of the product dump. Each product embeds
// its seller and payment-method documents; the loader deduplicates them
// by ID (first occurrence wins) and stores keys on the product instead.
type dataset struct {
	Products []datasetProduct `json:"products"`
}

type datasetProduct struct {
	domain.Product
	Seller         domain.Seller          `json:"seller"`
	PaymentMethods []domain.PaymentMethod `json:"paymentMethods"`
}

// LoadFile reads and loads a dataset from the given JSON file. It is
// called once at process start; the resulting catalog is immutable.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	return c, nil
}

// Load parses and validates a dataset from the given reader.
func Load(r io.Reader) (*Catalog, error) {
	var ds dataset
	dec := json.NewDecoder(r)
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	now := time.Now().UTC()
	c := New()

	for i := range ds.Products {
		rec := &ds.Products[i]
		product := rec.Product

		if _, exists := c.products[product.ID]; exists {
			return nil, fmt.Errorf("duplicate product id %q", product.ID)
		}

		// Deduplicate the embedded seller; the first document for a
		// seller ID defines it for the whole catalog.
		seller := rec.Seller
		if _, exists := c.sellers[seller.ID]; !exists {
			if err := validateSeller(&seller, now); err != nil {
				return nil, err
			}
			c.sellers[seller.ID] = &seller
		}
		product.SellerID = seller.ID

		product.PaymentMethodIDs = make([]string, 0, len(rec.PaymentMethods))
		for j := range rec.PaymentMethods {
			method := rec.PaymentMethods[j]
			if _, exists := c.paymentMethods[method.ID]; !exists {
				if err := validatePaymentMethod(&method); err != nil {
					return nil, err
				}
				c.paymentMethods[method.ID] = &method
			}
			product.PaymentMethodIDs = append(product.PaymentMethodIDs, method.ID)
		}

		if err := validateProduct(&product, now); err != nil {
			return nil, err
		}

		stored := product
		c.products[stored.ID] = &stored
		c.ordered = append(c.ordered, &stored)
	}

	c.loaded = true
	return c, nil
}

func validateProduct(p *domain.Product, now time.Time) error {
	if err := validator.Validate(p); err != nil {
		return fmt.Errorf("product %s: %w", p.ID, err)
	}
	return p.Validate(now)
}

func validateSeller(s *domain.Seller, now time.Time) error {
	if err := validator.Validate(s); err != nil {
		return fmt.Errorf("seller %s: %w", s.ID, err)
	}
	return s.Validate(now)
}

func validatePaymentMethod(m *domain.PaymentMethod) error {
	if err := validator.Validate(m); err != nil {
		return fmt.Errorf("payment method %s: %w", m.ID, err)
	}
	return m.Validate()
}
