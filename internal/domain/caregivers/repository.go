package caregivers

import "context"

type Repository interface {
	Create(ctx context.Context, g Grant) error
	Update(ctx context.Context, g Grant) error
	GetByID(ctx context.Context, id string) (Grant, error)
	ListByChild(ctx context.Context, childID string) ([]Grant, error)
	GetActiveGrant(ctx context.Context, childID, granteeUserID string) (Grant, error)
	ListByGrantee(ctx context.Context, granteeUserID string) ([]Grant, error)
}
