// Package catalog holds the immutable in-memory product catalog. Sellers
// and payment methods are stored in independently keyed collections;
// products reference them by ID and lookups resolve through the Catalog.
package catalog

import (
	"github.com/glaucia86/mercado-libre-clone/internal/domain"
)

// Catalog is the arena-style store for the loaded dataset. It is built
// once by the loader and never mutated afterwards, so any number of
// concurrent readers may use it without locking.
type Catalog struct {
	products       map[string]*domain.Product
	sellers        map[string]*domain.Seller
	paymentMethods map[string]*domain.PaymentMethod

	// ordered preserves dataset order for deterministic iteration and
	// stable tie-breaking in sorts.
	ordered []*domain.Product

	loaded bool
}

// New creates an empty, unloaded catalog. Use Load or LoadFile to
// populate it.
func New() *Catalog {
	return &Catalog{
		products:       make(map[string]*domain.Product),
		sellers:        make(map[string]*domain.Seller),
		paymentMethods: make(map[string]*domain.PaymentMethod),
	}
}

// NewFromEntities builds a loaded catalog from already-constructed
// entities, bypassing dataset validation. Products keep their given
// order. Intended for programmatic seeding and test fixtures; file
// datasets go through Load.
func NewFromEntities(products []*domain.Product, sellers []*domain.Seller, methods []*domain.PaymentMethod) *Catalog {
	c := New()
	for _, s := range sellers {
		c.sellers[s.ID] = s
	}
	for _, m := range methods {
		c.paymentMethods[m.ID] = m
	}
	for _, p := range products {
		c.products[p.ID] = p
		c.ordered = append(c.ordered, p)
	}
	c.loaded = true
	return c
}

// GetProduct returns the product with the given ID, or nil when absent.
func (c *Catalog) GetProduct(id string) *domain.Product {
	return c.products[id]
}

// GetSeller returns the seller with the given ID, or nil when absent.
func (c *Catalog) GetSeller(id string) *domain.Seller {
	return c.sellers[id]
}

// GetPaymentMethod returns the payment method with the given ID, or nil
// when absent.
func (c *Catalog) GetPaymentMethod(id string) *domain.PaymentMethod {
	return c.paymentMethods[id]
}

// PaymentMethodsFor resolves the payment methods accepted by a product,
// in the product's declared order. Unknown IDs are skipped; the loader
// rejects them, so they can only appear on hand-built catalogs.
func (c *Catalog) PaymentMethodsFor(p *domain.Product) []*domain.PaymentMethod {
	methods := make([]*domain.PaymentMethod, 0, len(p.PaymentMethodIDs))
	for _, id := range p.PaymentMethodIDs {
		if m := c.paymentMethods[id]; m != nil {
			methods = append(methods, m)
		}
	}
	return methods
}

// Products returns all products in dataset order. The returned slice is
// shared and must not be modified by callers.
func (c *Catalog) Products() []*domain.Product {
	return c.ordered
}

// ItemCount returns the number of loaded products.
func (c *Catalog) ItemCount() int {
	return len(c.ordered)
}

// SellerCount returns the number of distinct sellers.
func (c *Catalog) SellerCount() int {
	return len(c.sellers)
}

// PaymentMethodCount returns the number of distinct payment methods.
func (c *Catalog) PaymentMethodCount() int {
	return len(c.paymentMethods)
}

// IsLoaded reports whether a dataset has been loaded.
func (c *Catalog) IsLoaded() bool {
	return c.loaded
}
