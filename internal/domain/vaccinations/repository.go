package vaccinations

import (
	"context"

	"child-care-tracker/internal/domain/children"
)

// CompletionRepository persiste las dosis aplicadas por (child, entry).
type CompletionRepository interface {
	ListByChild(ctx context.Context, childID string) ([]CompletionRecord, error)
	Upsert(ctx context.Context, rec CompletionRecord) error
	// Delete es idempotente.
	Delete(ctx context.Context, childID, entryID string) error
}

// ChildLookup evita depender del Service concreto de children.
type ChildLookup interface {
	GetByID(ctx context.Context, id string) (children.Child, error)
}
