package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"child-care-tracker/internal/domain/children"
)

type ChildrenRepo struct {
	db *sql.DB
}

func NewChildrenRepo(db *sql.DB) *ChildrenRepo {
	return &ChildrenRepo{db: db}
}

const childColumns = `id, owner_user_id, name, age, sex, birth_date, notes, external_id, created_at, updated_at`

func (r *ChildrenRepo) Create(ctx context.Context, c children.Child) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO children (`+childColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		c.ID,
		c.OwnerUserID,
		c.Name,
		c.Age,
		string(c.Sex),
		toNullTime(c.BirthDate),
		c.Notes,
		c.ExternalID,
		c.CreatedAt.UTC(),
		c.UpdatedAt.UTC(),
	)
	return err
}

func (r *ChildrenRepo) Update(ctx context.Context, c children.Child) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE children
		SET name = $1,
		    age = $2,
		    sex = $3,
		    birth_date = $4,
		    notes = $5,
		    external_id = $6,
		    updated_at = $7
		WHERE id = $8
	`,
		c.Name,
		c.Age,
		string(c.Sex),
		toNullTime(c.BirthDate),
		c.Notes,
		c.ExternalID,
		c.UpdatedAt.UTC(),
		c.ID,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return children.ErrNotFound
	}
	return nil
}

func (r *ChildrenRepo) GetByID(ctx context.Context, id string) (children.Child, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+childColumns+`
		FROM children
		WHERE id = $1
	`, id)
	return scanChild(row)
}

func (r *ChildrenRepo) GetByExternalID(ctx context.Context, ownerUserID, externalID string) (children.Child, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+childColumns+`
		FROM children
		WHERE owner_user_id = $1 AND external_id = $2
		ORDER BY created_at ASC
		LIMIT 1
	`, ownerUserID, externalID)
	return scanChild(row)
}

func (r *ChildrenRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]children.Child, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+childColumns+`
		FROM children
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]children.Child, 0)
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanChild(s scanner) (children.Child, error) {
	var (
		c         children.Child
		sex       string
		birthDate sql.NullTime
		createdAt time.Time
		updatedAt time.Time
	)
	err := s.Scan(
		&c.ID,
		&c.OwnerUserID,
		&c.Name,
		&c.Age,
		&sex,
		&birthDate,
		&c.Notes,
		&c.ExternalID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return children.Child{}, children.ErrNotFound
		}
		return children.Child{}, err
	}

	c.Sex = children.Sex(sex)
	if bd := fromNullTime(birthDate); bd != nil {
		d := bd.UTC()
		c.BirthDate = &d
	}
	c.CreatedAt = createdAt.UTC()
	c.UpdatedAt = updatedAt.UTC()
	return c, nil
}
