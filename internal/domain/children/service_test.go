package children

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID map[string]Child
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Child{}}
}

func (r *testRepo) Create(ctx context.Context, c Child) error {
	if _, ok := r.byID[c.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) Update(ctx context.Context, c Child) error {
	if _, ok := r.byID[c.ID]; !ok {
		return ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Child, error) {
	c, ok := r.byID[id]
	if !ok {
		return Child{}, ErrNotFound
	}
	return c, nil
}

func (r *testRepo) GetByExternalID(ctx context.Context, ownerUserID, externalID string) (Child, error) {
	for _, c := range r.byID {
		if c.OwnerUserID == ownerUserID && c.ExternalID == externalID {
			return c, nil
		}
	}
	return Child{}, ErrNotFound
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Child, error) {
	out := make([]Child, 0)
	for _, c := range r.byID {
		if c.OwnerUserID == ownerUserID {
			out = append(out, c)
		}
	}
	return out, nil
}

func TestService_Create(t *testing.T) {
	svc := NewService(newTestRepo())
	bd := time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)

	c, err := svc.Create(context.Background(), "parent-1", CreateInput{
		Name:      " Mia ",
		Age:       "2 months",
		BirthDate: &bd,
	})
	require.NoError(t, err)

	assert.Equal(t, "Mia", c.Name)
	assert.Equal(t, SexUnknown, c.Sex)
	require.NotNil(t, c.BirthDate)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *c.BirthDate)

	owner, err := svc.OwnerOf(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "parent-1", owner)
}

func TestService_Create_Invalid(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Create(context.Background(), "", CreateInput{Name: "Mia"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), "parent-1", CreateInput{Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), "parent-1", CreateInput{Name: "Mia", Sex: "other"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_UpdateProfile(t *testing.T) {
	svc := NewService(newTestRepo())
	bd := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	c, err := svc.Create(context.Background(), "parent-1", CreateInput{Name: "Mia", BirthDate: &bd})
	require.NoError(t, err)

	name := "Mía"
	updated, err := svc.UpdateProfile(context.Background(), c.ID, UpdateProfileInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Mía", updated.Name)
	assert.NotNil(t, updated.BirthDate, "birth date untouched when absent")

	updated, err = svc.UpdateProfile(context.Background(), c.ID, UpdateProfileInput{
		BirthDate: BirthDatePatch{Present: true},
	})
	require.NoError(t, err)
	assert.Nil(t, updated.BirthDate, "explicit null clears")

	empty := ""
	_, err = svc.UpdateProfile(context.Background(), c.ID, UpdateProfileInput{Name: &empty})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateProfile(context.Background(), "missing", UpdateProfileInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}
