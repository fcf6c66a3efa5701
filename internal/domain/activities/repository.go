package activities

import (
	"context"
	"time"
)

// Repository: GetByID y Void devuelven ErrNotFound si no existe.
type Repository interface {
	Create(ctx context.Context, a Activity) error
	GetByID(ctx context.Context, id string) (Activity, error)
	ListByChild(ctx context.Context, childID string, filter ListFilter) ([]Activity, error)
	Void(ctx context.Context, id string) error
}

// ListFilter: resultados por occurred_at desc. Limit <= 0 => DefaultLimit.
type ListFilter struct {
	Types []ActivityType
	From  *time.Time
	To    *time.Time
	Query string
	Limit int
}

const (
	DefaultLimit = 50
	MaxLimit     = 200
)
