package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"child-care-tracker/internal/domain/caregivers"
)

// GrantsRepo guarda los scopes como texto separado por comas (portable entre dialectos).
type GrantsRepo struct {
	db *sql.DB
}

func NewGrantsRepo(db *sql.DB) *GrantsRepo {
	return &GrantsRepo{db: db}
}

const grantColumns = `id, child_id, owner_user_id, grantee_user_id, scopes, status, created_at, updated_at, revoked_at`

func (r *GrantsRepo) Create(ctx context.Context, g caregivers.Grant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO caregiver_grants (`+grantColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		g.ID,
		g.ChildID,
		g.OwnerUserID,
		g.GranteeUserID,
		joinScopes(g.Scopes),
		string(g.Status),
		g.CreatedAt.UTC(),
		g.UpdatedAt.UTC(),
		toNullTime(g.RevokedAt),
	)
	return err
}

func (r *GrantsRepo) Update(ctx context.Context, g caregivers.Grant) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE caregiver_grants
		SET scopes = $1,
		    status = $2,
		    updated_at = $3,
		    revoked_at = $4
		WHERE id = $5
	`,
		joinScopes(g.Scopes),
		string(g.Status),
		g.UpdatedAt.UTC(),
		toNullTime(g.RevokedAt),
		g.ID,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GrantsRepo) GetByID(ctx context.Context, id string) (caregivers.Grant, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+grantColumns+`
		FROM caregiver_grants
		WHERE id = $1
	`, id)
	return scanGrant(row)
}

func (r *GrantsRepo) ListByChild(ctx context.Context, childID string) ([]caregivers.Grant, error) {
	return r.list(ctx, `
		SELECT `+grantColumns+`
		FROM caregiver_grants
		WHERE child_id = $1
		ORDER BY updated_at ASC, created_at ASC
	`, childID)
}

func (r *GrantsRepo) ListByGrantee(ctx context.Context, granteeUserID string) ([]caregivers.Grant, error) {
	return r.list(ctx, `
		SELECT `+grantColumns+`
		FROM caregiver_grants
		WHERE grantee_user_id = $1
		ORDER BY updated_at ASC, created_at ASC
	`, granteeUserID)
}

// GetActiveGrant: si hubiera más de un activo, gana el más reciente.
func (r *GrantsRepo) GetActiveGrant(ctx context.Context, childID, granteeUserID string) (caregivers.Grant, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+grantColumns+`
		FROM caregiver_grants
		WHERE child_id = $1 AND grantee_user_id = $2 AND status = $3
		ORDER BY updated_at DESC
		LIMIT 1
	`, childID, granteeUserID, string(caregivers.StatusActive))
	return scanGrant(row)
}

func (r *GrantsRepo) list(ctx context.Context, query string, args ...any) ([]caregivers.Grant, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]caregivers.Grant, 0)
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func scanGrant(s scanner) (caregivers.Grant, error) {
	var (
		g         caregivers.Grant
		scopes    string
		status    string
		createdAt time.Time
		updatedAt time.Time
		revokedAt sql.NullTime
	)
	err := s.Scan(
		&g.ID,
		&g.ChildID,
		&g.OwnerUserID,
		&g.GranteeUserID,
		&scopes,
		&status,
		&createdAt,
		&updatedAt,
		&revokedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return caregivers.Grant{}, ErrNotFound
		}
		return caregivers.Grant{}, err
	}

	g.Scopes = splitScopes(scopes)
	g.Status = caregivers.Status(status)
	g.CreatedAt = createdAt.UTC()
	g.UpdatedAt = updatedAt.UTC()
	g.RevokedAt = fromNullTime(revokedAt)
	return g, nil
}

func joinScopes(scopes []caregivers.Scope) string {
	parts := make([]string, 0, len(scopes))
	for _, s := range scopes {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ",")
}

func splitScopes(raw string) []caregivers.Scope {
	out := make([]caregivers.Scope, 0)
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, caregivers.Scope(p))
		}
	}
	return out
}
