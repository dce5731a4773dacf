package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/speira/ecommerce-api/internal/shared/money"
)

var (
	ErrEmptyID       = errors.New("product id is required")
	ErrEmptyName     = errors.New("product name is required")
	ErrNegativePrice = errors.New("product price must be non-negative")
	ErrNegativeStock = errors.New("product stock must be non-negative")
)

// Product is a catalog entry. Stock is the number of units available for
// ordering; it is only ever reduced through conditional decrements.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       money.Cents
	Stock       int
	ImageURL    string
	Categories  []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct validates and constructs a catalog entry.
func NewProduct(id, name string, price money.Cents, stock int, now time.Time) (*Product, error) {
	product := &Product{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Price:     price,
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Validate enforces invariants on the entry.
func (p *Product) Validate() error {
	if p.ID == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}
