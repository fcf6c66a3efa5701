package sqlstore

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"child-care-tracker/internal/domain/activities"
	"child-care-tracker/internal/domain/caregivers"
	"child-care-tracker/internal/domain/children"
	"child-care-tracker/internal/domain/vaccinations"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestChildrenRepo_UpdateMissingReturnsNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewChildrenRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE children")).
		WithArgs("Luna", "3 months", "female", sqlmock.AnyArg(), "", "", sqlmock.AnyArg(), "c-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), children.Child{
		ID:        "c-1",
		Name:      "Luna",
		Age:       "3 months",
		Sex:       children.SexFemale,
		UpdatedAt: time.Now(),
	})
	assert.ErrorIs(t, err, children.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChildrenRepo_GetByIDNoRows(t *testing.T) {
	db, mock := newMock(t)
	repo := NewChildrenRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM children")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, children.ErrNotFound)
}

func TestChildrenRepo_GetByIDScansNullBirthDate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewChildrenRepo(db)

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "owner_user_id", "name", "age", "sex", "birth_date", "notes", "external_id", "created_at", "updated_at",
	}).AddRow("c-1", "u-1", "Luna", "10 days", "unknown", nil, "", "ext-9", now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM children")).WithArgs("c-1").WillReturnRows(rows)

	c, err := repo.GetByID(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Luna", c.Name)
	assert.Equal(t, children.SexUnknown, c.Sex)
	assert.Nil(t, c.BirthDate)
	assert.Equal(t, "ext-9", c.ExternalID)
}

func TestGrantsRepo_CreateJoinsScopes(t *testing.T) {
	db, mock := newMock(t)
	repo := NewGrantsRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO caregiver_grants")).
		WithArgs("g-1", "c-1", "owner", "nanny", "child:read,activities:read", "invited",
			sqlmock.AnyArg(), sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	now := time.Now()
	err := repo.Create(context.Background(), caregivers.Grant{
		ID:            "g-1",
		ChildID:       "c-1",
		OwnerUserID:   "owner",
		GranteeUserID: "nanny",
		Scopes:        []caregivers.Scope{caregivers.ScopeChildRead, caregivers.ScopeActivitiesRead},
		Status:        caregivers.StatusInvited,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGrantsRepo_ListByChildSplitsScopes(t *testing.T) {
	db, mock := newMock(t)
	repo := NewGrantsRepo(db)

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "child_id", "owner_user_id", "grantee_user_id", "scopes", "status", "created_at", "updated_at", "revoked_at",
	}).
		AddRow("g-1", "c-1", "owner", "nanny", "child:read, vaccinations:read", "active", now, now, nil).
		AddRow("g-2", "c-1", "owner", "grandma", "", "revoked", now, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE child_id = $1")).WithArgs("c-1").WillReturnRows(rows)

	got, err := repo.ListByChild(context.Background(), "c-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, []caregivers.Scope{caregivers.ScopeChildRead, caregivers.ScopeVaccinationsRead}, got[0].Scopes)
	assert.Nil(t, got[0].RevokedAt)
	assert.Empty(t, got[1].Scopes)
	require.NotNil(t, got[1].RevokedAt)
}

func TestActivitiesRepo_ListByChildBuildsFilters(t *testing.T) {
	db, mock := newMock(t)
	repo := NewActivitiesRepo(db)

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	expected := "child_id = $1 AND type IN ($2,$3) AND occurred_at >= $4 " +
		"AND (LOWER(title) LIKE $5 OR LOWER(notes) LIKE $5) ORDER BY occurred_at DESC LIMIT $6"

	mock.ExpectQuery(regexp.QuoteMeta(expected)).
		WithArgs("c-1", "SLEEP", "FEEDING", from, "%nap%", activities.DefaultLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.ListByChild(context.Background(), "c-1", activities.ListFilter{
		Types: []activities.ActivityType{activities.TypeSleep, activities.TypeFeeding},
		From:  &from,
		Query: " Nap ",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivitiesRepo_VoidMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewActivitiesRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE activities")).
		WithArgs("voided", "a-404").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Void(context.Background(), "a-404")
	assert.ErrorIs(t, err, activities.ErrNotFound)
}

func TestCompletionsRepo_UpsertUsesOnConflict(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCompletionsRepo(db)

	done := time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (child_id, entry_id) DO UPDATE")).
		WithArgs("c-1", "dtap-2", done, "left arm").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Upsert(context.Background(), vaccinations.CompletionRecord{
		ChildID:       "c-1",
		EntryID:       "dtap-2",
		CompletedDate: done,
		Notes:         "left arm",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
