package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"child-care-tracker/internal/domain/children"
)

var (
	ErrNotFound = errors.New("not found")
)

type childRepo struct {
	mu   sync.RWMutex
	byID map[string]children.Child
}

func NewChildRepo() children.Repository {
	return &childRepo{
		byID: make(map[string]children.Child),
	}
}

func (r *childRepo) Create(ctx context.Context, c children.Child) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("child id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("child already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *childRepo) Update(ctx context.Context, c children.Child) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; !exists {
		return children.ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *childRepo) GetByID(ctx context.Context, id string) (children.Child, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return children.Child{}, children.ErrNotFound
	}
	return c, nil
}

func (r *childRepo) GetByExternalID(ctx context.Context, ownerUserID, externalID string) (children.Child, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.byID {
		if c.OwnerUserID == ownerUserID && c.ExternalID != "" && c.ExternalID == externalID {
			return c, nil
		}
	}
	return children.Child{}, children.ErrNotFound
}

func (r *childRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]children.Child, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]children.Child, 0)
	for _, c := range r.byID {
		if c.OwnerUserID == ownerUserID {
			out = append(out, c)
		}
	}

	// Orden estable por created_at asc
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
