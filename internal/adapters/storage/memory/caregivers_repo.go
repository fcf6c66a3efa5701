package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"child-care-tracker/internal/domain/caregivers"
)

type grantRepo struct {
	mu   sync.RWMutex
	byID map[string]caregivers.Grant
}

func NewGrantRepo() caregivers.Repository {
	return &grantRepo{
		byID: make(map[string]caregivers.Grant),
	}
}

func (r *grantRepo) Create(ctx context.Context, g caregivers.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g.ID == "" {
		return errors.New("grant id required")
	}
	if _, exists := r.byID[g.ID]; exists {
		return errors.New("grant already exists")
	}
	r.byID[g.ID] = copyGrant(g)
	return nil
}

func (r *grantRepo) Update(ctx context.Context, g caregivers.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[g.ID]; !exists {
		return ErrNotFound
	}
	r.byID[g.ID] = copyGrant(g)
	return nil
}

func (r *grantRepo) GetByID(ctx context.Context, id string) (caregivers.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.byID[id]
	if !ok {
		return caregivers.Grant{}, ErrNotFound
	}
	return copyGrant(g), nil
}

func (r *grantRepo) ListByChild(ctx context.Context, childID string) ([]caregivers.Grant, error) {
	return r.list(func(g caregivers.Grant) bool { return g.ChildID == childID }), nil
}

func (r *grantRepo) ListByGrantee(ctx context.Context, granteeUserID string) ([]caregivers.Grant, error) {
	return r.list(func(g caregivers.Grant) bool { return g.GranteeUserID == granteeUserID }), nil
}

// GetActiveGrant: si hubiera más de un activo (data sucia), gana el más reciente.
func (r *grantRepo) GetActiveGrant(ctx context.Context, childID, granteeUserID string) (caregivers.Grant, error) {
	items := r.list(func(g caregivers.Grant) bool {
		return g.ChildID == childID && g.GranteeUserID == granteeUserID && g.Status == caregivers.StatusActive
	})
	if len(items) == 0 {
		return caregivers.Grant{}, ErrNotFound
	}
	return items[len(items)-1], nil
}

// list devuelve copias ordenadas por updated_at asc.
func (r *grantRepo) list(keep func(caregivers.Grant) bool) []caregivers.Grant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]caregivers.Grant, 0)
	for _, g := range r.byID {
		if keep(g) {
			out = append(out, copyGrant(g))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].UpdatedAt.Before(out[j].UpdatedAt)
	})
	return out
}

func copyGrant(g caregivers.Grant) caregivers.Grant {
	g.Scopes = append([]caregivers.Scope(nil), g.Scopes...)
	return g
}
