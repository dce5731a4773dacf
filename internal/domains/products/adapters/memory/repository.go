// Package memory provides the in-memory catalog adapter used by unit
// tests and local runs without Postgres.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/speira/ecommerce-api/internal/domains/products/domain"
	"github.com/speira/ecommerce-api/internal/domains/products/ports"
	"github.com/speira/ecommerce-api/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewRepository() *Repository {
	return &Repository{products: map[string]*domain.Product{}}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := cloneProduct(product)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[clone.ID] = clone
	return cloneProduct(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneProduct(product), nil
}

func (r *Repository) BatchGet(_ context.Context, ids []string) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.Product, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if product, ok := r.products[id]; ok {
			result = append(result, cloneProduct(product))
		}
	}
	return result, nil
}

func (r *Repository) List(_ context.Context, limit int, cursor *pagination.Cursor) ([]*domain.Product, *pagination.Cursor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.products))
	for id := range r.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	start := 0
	if cursor != nil {
		start = sort.SearchStrings(ids, cursor.LastID)
		if start < len(ids) && ids[start] == cursor.LastID {
			start++
		}
	}
	page := make([]*domain.Product, 0, limit)
	for _, id := range ids[start:] {
		if len(page) == limit {
			break
		}
		page = append(page, cloneProduct(r.products[id]))
	}
	var next *pagination.Cursor
	if len(page) == limit && start+limit < len(ids) {
		next = &pagination.Cursor{LastID: page[len(page)-1].ID}
	}
	return page, next, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// DecrementStock checks every condition before touching any stock so the
// batch lands all-or-nothing under the repository lock. Quantities are
// summed per product first, so repeated decrements for one product are
// checked against their combined demand rather than line by line.
func (r *Repository) DecrementStock(_ context.Context, decrements []ports.StockDecrement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	required := make(map[string]int, len(decrements))
	for _, dec := range decrements {
		required[dec.ProductID] += dec.Quantity
	}
	checked := make(map[string]struct{}, len(required))
	for _, dec := range decrements {
		if _, done := checked[dec.ProductID]; done {
			continue
		}
		checked[dec.ProductID] = struct{}{}
		product, ok := r.products[dec.ProductID]
		if !ok {
			return ports.ErrNotFound
		}
		if product.Stock < required[dec.ProductID] {
			return ports.ErrInsufficientStock
		}
	}
	for id, quantity := range required {
		r.products[id].Stock -= quantity
	}
	return nil
}

func cloneProduct(product *domain.Product) *domain.Product {
	clone := *product
	clone.Categories = append([]string{}, product.Categories...)
	return &clone
}
