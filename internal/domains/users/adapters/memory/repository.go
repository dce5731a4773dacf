// Package memory provides the in-memory users adapter used by unit
// tests and local runs without Postgres.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/speira/ecommerce-api/internal/domains/users/domain"
	"github.com/speira/ecommerce-api/internal/domains/users/ports"
	"github.com/speira/ecommerce-api/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory account persistence adapter.
type Repository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewRepository() *Repository {
	return &Repository{users: map[string]*domain.User{}}
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := *user
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[clone.ID] = &clone
	copied := clone
	return &copied, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *Repository) List(_ context.Context, limit int, cursor *pagination.Cursor) ([]*domain.User, *pagination.Cursor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.users))
	for id := range r.users {
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
	page := make([]*domain.User, 0, limit)
	for _, id := range ids[start:] {
		if len(page) == limit {
			break
		}
		clone := *r.users[id]
		page = append(page, &clone)
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
	if _, ok := r.users[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.users, id)
	return nil
}
