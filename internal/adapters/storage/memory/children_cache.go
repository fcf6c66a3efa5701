package memory

import (
	"context"
	"sync"

	"child-care-tracker/internal/domain/children"
)

// ChildrenCache es el cache de sync sin Redis (vive lo que vive el proceso).
type ChildrenCache struct {
	mu      sync.RWMutex
	byOwner map[string][]children.RemoteChild
}

func NewChildrenCache() *ChildrenCache {
	return &ChildrenCache{byOwner: make(map[string][]children.RemoteChild)}
}

func (c *ChildrenCache) Get(ctx context.Context, ownerUserID string) ([]children.RemoteChild, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items, ok := c.byOwner[ownerUserID]
	if !ok {
		return nil, false, nil
	}
	return append([]children.RemoteChild(nil), items...), true, nil
}

func (c *ChildrenCache) Put(ctx context.Context, ownerUserID string, items []children.RemoteChild) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byOwner[ownerUserID] = append([]children.RemoteChild{}, items...)
	return nil
}
