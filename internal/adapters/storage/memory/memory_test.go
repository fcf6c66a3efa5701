package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"child-care-tracker/internal/domain/activities"
	"child-care-tracker/internal/domain/caregivers"
	"child-care-tracker/internal/domain/children"
	"child-care-tracker/internal/domain/vaccinations"
)

func TestChildRepo_ExternalIDLookup(t *testing.T) {
	repo := NewChildRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, children.Child{ID: "c-1", OwnerUserID: "u-1", Name: "Luna", ExternalID: "ext-1"}))
	require.NoError(t, repo.Create(ctx, children.Child{ID: "c-2", OwnerUserID: "u-1", Name: "Teo"}))
	assert.Error(t, repo.Create(ctx, children.Child{ID: "c-1"}))

	c, err := repo.GetByExternalID(ctx, "u-1", "ext-1")
	require.NoError(t, err)
	assert.Equal(t, "c-1", c.ID)

	_, err = repo.GetByExternalID(ctx, "u-1", "")
	assert.ErrorIs(t, err, children.ErrNotFound)
	_, err = repo.GetByExternalID(ctx, "u-2", "ext-1")
	assert.ErrorIs(t, err, children.ErrNotFound)

	assert.ErrorIs(t, repo.Update(ctx, children.Child{ID: "nope"}), children.ErrNotFound)
}

func TestGrantRepo_CopiesScopes(t *testing.T) {
	repo := NewGrantRepo()
	ctx := context.Background()

	scopes := []caregivers.Scope{caregivers.ScopeChildRead}
	require.NoError(t, repo.Create(ctx, caregivers.Grant{ID: "g-1", ChildID: "c-1", GranteeUserID: "n", Scopes: scopes, Status: caregivers.StatusActive}))
	scopes[0] = caregivers.ScopeActivitiesVoid

	g, err := repo.GetActiveGrant(ctx, "c-1", "n")
	require.NoError(t, err)
	assert.Equal(t, []caregivers.Scope{caregivers.ScopeChildRead}, g.Scopes)
}

func TestActivityRepo_FiltersAndOrder(t *testing.T) {
	repo := NewActivityRepo()
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	for i, typ := range []activities.ActivityType{activities.TypeSleep, activities.TypeFeeding, activities.TypeSleep} {
		require.NoError(t, repo.Create(ctx, activities.Activity{
			ID:         string(rune('a' + i)),
			ChildID:    "c-1",
			Type:       typ,
			OccurredAt: base.Add(time.Duration(i) * time.Hour),
			Title:      "entry",
		}))
	}

	got, err := repo.ListByChild(ctx, "c-1", activities.ListFilter{Types: []activities.ActivityType{activities.TypeSleep}, Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)

	assert.ErrorIs(t, repo.Void(ctx, "zzz"), activities.ErrNotFound)
}

func TestCompletionRepo_UpsertDelete(t *testing.T) {
	repo := NewCompletionRepo()
	ctx := context.Background()

	rec := vaccinations.CompletionRecord{ChildID: "c-1", EntryID: "hepb-1", CompletedDate: time.Now()}
	require.NoError(t, repo.Upsert(ctx, rec))
	rec.Notes = "again"
	require.NoError(t, repo.Upsert(ctx, rec))

	got, err := repo.ListByChild(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "again", got[0].Notes)

	require.NoError(t, repo.Delete(ctx, "c-1", "hepb-1"))
	require.NoError(t, repo.Delete(ctx, "c-1", "hepb-1"))
}

func TestChildrenCache_MissThenHit(t *testing.T) {
	c := NewChildrenCache()
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "u-1", []children.RemoteChild{{ExternalID: "ext-1", Name: "Luna"}}))
	items, ok, err := c.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, items, 1)
}
