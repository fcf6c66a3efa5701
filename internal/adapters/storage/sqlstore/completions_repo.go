package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"child-care-tracker/internal/domain/vaccinations"
)

type CompletionsRepo struct {
	db *sql.DB
}

func NewCompletionsRepo(db *sql.DB) *CompletionsRepo {
	return &CompletionsRepo{db: db}
}

func (r *CompletionsRepo) ListByChild(ctx context.Context, childID string) ([]vaccinations.CompletionRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT child_id, entry_id, completed_date, notes
		FROM vaccination_completions
		WHERE child_id = $1
		ORDER BY completed_date ASC, entry_id ASC
	`, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vaccinations.CompletionRecord, 0)
	for rows.Next() {
		var (
			rec  vaccinations.CompletionRecord
			done time.Time
		)
		if err := rows.Scan(&rec.ChildID, &rec.EntryID, &done, &rec.Notes); err != nil {
			return nil, err
		}
		rec.CompletedDate = done.UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Upsert reemplaza fecha y notas si la dosis ya estaba marcada.
func (r *CompletionsRepo) Upsert(ctx context.Context, rec vaccinations.CompletionRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vaccination_completions (child_id, entry_id, completed_date, notes)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (child_id, entry_id) DO UPDATE
		SET completed_date = excluded.completed_date,
		    notes = excluded.notes
	`, rec.ChildID, rec.EntryID, rec.CompletedDate.UTC(), rec.Notes)
	return err
}

func (r *CompletionsRepo) Delete(ctx context.Context, childID, entryID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM vaccination_completions
		WHERE child_id = $1 AND entry_id = $2
	`, childID, entryID)
	return err
}
