package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"child-care-tracker/internal/domain/activities"
)

type activityRepo struct {
	mu   sync.RWMutex
	byID map[string]activities.Activity
}

func NewActivityRepo() activities.Repository {
	return &activityRepo{
		byID: make(map[string]activities.Activity),
	}
}

func (r *activityRepo) Create(ctx context.Context, a activities.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == "" {
		return errors.New("activity id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("activity already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *activityRepo) GetByID(ctx context.Context, id string) (activities.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return activities.Activity{}, activities.ErrNotFound
	}
	return a, nil
}

func (r *activityRepo) ListByChild(ctx context.Context, childID string, filter activities.ListFilter) ([]activities.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = activities.DefaultLimit
	}

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]activities.Activity, 0)

	for _, a := range r.byID {
		if a.ChildID != childID {
			continue
		}
		if len(filter.Types) > 0 && !hasType(filter.Types, a.Type) {
			continue
		}
		if filter.From != nil && a.OccurredAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && a.OccurredAt.After(*filter.To) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(a.Title+" "+a.Notes), q) {
			continue
		}
		out = append(out, a)
	}

	// occurred_at desc (más reciente primero)
	sort.Slice(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *activityRepo) Void(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return activities.ErrNotFound
	}
	a.Status = activities.StatusVoided
	r.byID[id] = a
	return nil
}

func hasType(types []activities.ActivityType, t activities.ActivityType) bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}
