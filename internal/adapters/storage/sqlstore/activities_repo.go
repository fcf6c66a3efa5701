package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"child-care-tracker/internal/domain/activities"
)

type ActivitiesRepo struct {
	db *sql.DB
}

func NewActivitiesRepo(db *sql.DB) *ActivitiesRepo {
	return &ActivitiesRepo{db: db}
}

const activityColumns = `id, child_id, type, occurred_at, ended_at, recorded_at, title, notes, quantity, unit, actor_type, actor_id, source, status`

func (r *ActivitiesRepo) Create(ctx context.Context, a activities.Activity) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activities (`+activityColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		a.ID,
		a.ChildID,
		string(a.Type),
		a.OccurredAt.UTC(),
		toNullTime(a.EndedAt),
		a.RecordedAt.UTC(),
		a.Title,
		a.Notes,
		toNullFloat(a.Quantity),
		string(a.Unit),
		string(a.Actor.Type),
		a.Actor.ID,
		string(a.Source),
		string(a.Status),
	)
	return err
}

func (r *ActivitiesRepo) GetByID(ctx context.Context, id string) (activities.Activity, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+activityColumns+`
		FROM activities
		WHERE id = $1
	`, id)
	return scanActivity(row)
}

func (r *ActivitiesRepo) ListByChild(ctx context.Context, childID string, filter activities.ListFilter) ([]activities.Activity, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = activities.DefaultLimit
	}

	var (
		sb   strings.Builder
		args []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	sb.WriteString(`SELECT ` + activityColumns + ` FROM activities WHERE child_id = `)
	sb.WriteString(arg(childID))

	if len(filter.Types) > 0 {
		ph := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			ph = append(ph, arg(string(t)))
		}
		sb.WriteString(" AND type IN (" + strings.Join(ph, ",") + ")")
	}
	if filter.From != nil {
		sb.WriteString(" AND occurred_at >= " + arg(filter.From.UTC()))
	}
	if filter.To != nil {
		sb.WriteString(" AND occurred_at <= " + arg(filter.To.UTC()))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		like := arg("%" + strings.ToLower(q) + "%")
		sb.WriteString(" AND (LOWER(title) LIKE " + like + " OR LOWER(notes) LIKE " + like + ")")
	}
	sb.WriteString(" ORDER BY occurred_at DESC LIMIT " + arg(limit))

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]activities.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ActivitiesRepo) Void(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE activities
		SET status = $1
		WHERE id = $2
	`, string(activities.StatusVoided), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return activities.ErrNotFound
	}
	return nil
}

func scanActivity(s scanner) (activities.Activity, error) {
	var (
		a          activities.Activity
		typ        string
		occurredAt time.Time
		endedAt    sql.NullTime
		recordedAt time.Time
		quantity   sql.NullFloat64
		unit       string
		actorType  string
		source     string
		status     string
	)
	err := s.Scan(
		&a.ID,
		&a.ChildID,
		&typ,
		&occurredAt,
		&endedAt,
		&recordedAt,
		&a.Title,
		&a.Notes,
		&quantity,
		&unit,
		&actorType,
		&a.Actor.ID,
		&source,
		&status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return activities.Activity{}, activities.ErrNotFound
		}
		return activities.Activity{}, err
	}

	a.Type = activities.ActivityType(typ)
	a.OccurredAt = occurredAt.UTC()
	a.EndedAt = fromNullTime(endedAt)
	a.RecordedAt = recordedAt.UTC()
	if quantity.Valid {
		q := quantity.Float64
		a.Quantity = &q
	}
	a.Unit = activities.Unit(unit)
	a.Actor.Type = activities.ActorType(actorType)
	a.Source = activities.Source(source)
	a.Status = activities.Status(status)
	return a, nil
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
