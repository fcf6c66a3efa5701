package memory

import (
	"context"
	"sort"
	"sync"

	"child-care-tracker/internal/domain/vaccinations"
)

type completionKey struct {
	childID string
	entryID string
}

// completionRepo vive lo que vive el proceso (modo dev sin DB).
type completionRepo struct {
	mu    sync.RWMutex
	byKey map[completionKey]vaccinations.CompletionRecord
}

func NewCompletionRepo() vaccinations.CompletionRepository {
	return &completionRepo{
		byKey: make(map[completionKey]vaccinations.CompletionRecord),
	}
}

func (r *completionRepo) ListByChild(ctx context.Context, childID string) ([]vaccinations.CompletionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vaccinations.CompletionRecord, 0)
	for k, rec := range r.byKey {
		if k.childID == childID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryID < out[j].EntryID })
	return out, nil
}

func (r *completionRepo) Upsert(ctx context.Context, rec vaccinations.CompletionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byKey[completionKey{rec.ChildID, rec.EntryID}] = rec
	return nil
}

func (r *completionRepo) Delete(ctx context.Context, childID, entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byKey, completionKey{childID, entryID})
	return nil
}
