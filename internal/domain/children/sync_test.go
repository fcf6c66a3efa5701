package children

import (
	"context"
	"errors"
	"testing"
	"time"

	"child-care-tracker/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeBackend struct {
	items []RemoteChild
	err   error
	calls int
}

func (b *fakeBackend) ListChildren(ctx context.Context, token string) ([]RemoteChild, error) {
	b.calls++
	return b.items, b.err
}

type fakeCache struct {
	byOwner map[string][]RemoteChild
}

func (c *fakeCache) Get(ctx context.Context, ownerUserID string) ([]RemoteChild, bool, error) {
	items, ok := c.byOwner[ownerUserID]
	return items, ok, nil
}

func (c *fakeCache) Put(ctx context.Context, ownerUserID string, items []RemoteChild) error {
	c.byOwner[ownerUserID] = items
	return nil
}

func TestSync_RequiresToken(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewService(newTestRepo()).WithSync(backend, nil, nil)

	_, err := svc.SyncFromBackend(context.Background(), "parent-1", "  ")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, backend.calls)
}

func TestSync_NotConfigured(t *testing.T) {
	svc := NewService(newTestRepo())
	_, err := svc.SyncFromBackend(context.Background(), "parent-1", "tok")
	assert.ErrorIs(t, err, ErrBackendNotConfigured)
}

func TestSync_UpsertsByExternalID(t *testing.T) {
	repo := newTestRepo()
	cache := &fakeCache{byOwner: map[string][]RemoteChild{}}
	bd := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	backend := &fakeBackend{items: []RemoteChild{
		{ExternalID: "ext-1", Name: "Mia", BirthDate: &bd, Sex: "female"},
		{ExternalID: "ext-2", Name: "Leo", Age: "3 months", Sex: "weird"},
		{ExternalID: "", Name: "skipped"},
	}}
	svc := NewService(repo).WithSync(backend, cache, nil)

	res, err := svc.SyncFromBackend(context.Background(), "parent-1", "tok")
	require.NoError(t, err)
	assert.False(t, res.Stale)
	require.Len(t, res.Children, 2)
	assert.Equal(t, SexUnknown, res.Children[1].Sex)
	assert.Len(t, cache.byOwner["parent-1"], 3)

	// segunda sync: mismo ExternalID => update, no duplica
	backend.items = []RemoteChild{{ExternalID: "ext-1", Name: "Mia Rose", BirthDate: &bd}}
	res, err = svc.SyncFromBackend(context.Background(), "parent-1", "tok")
	require.NoError(t, err)
	require.Len(t, res.Children, 1)

	all, _ := repo.ListByOwner(context.Background(), "parent-1")
	assert.Len(t, all, 2)
	got, err := repo.GetByExternalID(context.Background(), "parent-1", "ext-1")
	require.NoError(t, err)
	assert.Equal(t, "Mia Rose", got.Name)
}

func TestSync_FallsBackToCache(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	cache := &fakeCache{byOwner: map[string][]RemoteChild{
		"parent-1": {{ExternalID: "ext-1", Name: "Mia"}},
	}}
	backend := &fakeBackend{err: errors.New("connection refused")}
	svc := NewService(newTestRepo()).WithSync(backend, cache, logger.NewWithZap(zap.New(core)))

	res, err := svc.SyncFromBackend(context.Background(), "parent-1", "tok")
	require.NoError(t, err)
	assert.True(t, res.Stale)
	require.Len(t, res.Children, 1)
	assert.Equal(t, "ext-1", res.Children[0].ExternalID)
	assert.Equal(t, 1, logs.FilterMessage("care backend unavailable, using cached children").Len())
}

func TestSync_NoCacheReturnsError(t *testing.T) {
	backend := &fakeBackend{err: errors.New("timeout")}
	svc := NewService(newTestRepo()).WithSync(backend, &fakeCache{byOwner: map[string][]RemoteChild{}}, nil)

	_, err := svc.SyncFromBackend(context.Background(), "parent-1", "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestSync_UpstreamUnauthorizedSkipsCache(t *testing.T) {
	cache := &fakeCache{byOwner: map[string][]RemoteChild{
		"parent-1": {{ExternalID: "ext-1", Name: "Mia"}},
	}}
	backend := &fakeBackend{err: ErrUnauthorized}
	svc := NewService(newTestRepo()).WithSync(backend, cache, nil)

	_, err := svc.SyncFromBackend(context.Background(), "parent-1", "expired")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
