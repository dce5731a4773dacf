// Package memory provides the in-memory orders adapters used by unit
// tests and local runs without Postgres.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/speira/ecommerce-api/internal/domains/orders/domain"
	"github.com/speira/ecommerce-api/internal/domains/orders/ports"
	"github.com/speira/ecommerce-api/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

var errKeyClaimed = errors.New("idempotency key already claimed")

// Repository is an in-memory order persistence adapter. The idempotency
// key index mirrors the unique index the relational adapter relies on.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	byKey  map[string]string
}

func NewRepository() *Repository {
	return &Repository{
		orders: map[string]*domain.Order{},
		byKey:  map[string]string{},
	}
}

// insert claims the idempotency key and stores the order, or fails with
// errKeyClaimed without storing anything.
func (r *Repository) insert(order *domain.Order) error {
	clone := cloneOrder(order)
	if err := clone.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, claimed := r.byKey[clone.IdempotencyKey]; claimed {
		return errKeyClaimed
	}
	r.byKey[clone.IdempotencyKey] = clone.ID
	r.orders[clone.ID] = clone
	return nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) GetByIdempotencyKey(_ context.Context, key string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byKey[key]
	if !ok {
		return nil, nil
	}
	return cloneOrder(r.orders[id]), nil
}

func (r *Repository) ListByUser(_ context.Context, userID string, limit int, cursor *pagination.Cursor) ([]*domain.Order, *pagination.Cursor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	owned := make([]*domain.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			owned = append(owned, order)
		}
	}
	// Most recent first, id as tiebreaker for a stable order.
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].CreatedAt.After(owned[j].CreatedAt)
		}
		return owned[i].ID > owned[j].ID
	})
	start := 0
	if cursor != nil {
		for i, order := range owned {
			if order.ID == cursor.LastID {
				start = i + 1
				break
			}
		}
	}
	page := make([]*domain.Order, 0, limit)
	for _, order := range owned[start:] {
		if len(page) == limit {
			break
		}
		page = append(page, cloneOrder(order))
	}
	var next *pagination.Cursor
	if len(page) == limit && start+limit < len(owned) {
		last := page[len(page)-1]
		next = &pagination.Cursor{
			LastID:        last.ID,
			LastCreatedAt: last.CreatedAt.Format(time.RFC3339Nano),
		}
	}
	return page, next, nil
}

func (r *Repository) List(_ context.Context, limit int, cursor *pagination.Cursor) ([]*domain.Order, *pagination.Cursor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.orders))
	for id := range r.orders {
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
	page := make([]*domain.Order, 0, limit)
	for _, id := range ids[start:] {
		if len(page) == limit {
			break
		}
		page = append(page, cloneOrder(r.orders[id]))
	}
	var next *pagination.Cursor
	if len(page) == limit && start+limit < len(ids) {
		next = &pagination.Cursor{LastID: page[len(page)-1].ID}
	}
	return page, next, nil
}

func (r *Repository) Update(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := cloneOrder(order)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[clone.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	r.orders[clone.ID] = clone
	return cloneOrder(clone), nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return ports.ErrNotFound
	}
	delete(r.byKey, order.IdempotencyKey)
	delete(r.orders, id)
	return nil
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = append([]domain.Item{}, order.Items...)
	return &clone
}
