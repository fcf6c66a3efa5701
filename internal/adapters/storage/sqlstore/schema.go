package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// schema usa {{ts}} y {{float}} para los tipos que cambian por dialecto.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS children (
		id            TEXT PRIMARY KEY,
		owner_user_id TEXT NOT NULL,
		name          TEXT NOT NULL,
		age           TEXT NOT NULL DEFAULT '',
		sex           TEXT NOT NULL DEFAULT 'unknown',
		birth_date    {{ts}} NULL,
		notes         TEXT NOT NULL DEFAULT '',
		external_id   TEXT NOT NULL DEFAULT '',
		created_at    {{ts}} NOT NULL,
		updated_at    {{ts}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_children_owner ON children (owner_user_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_children_external ON children (owner_user_id, external_id)`,

	`CREATE TABLE IF NOT EXISTS caregiver_grants (
		id              TEXT PRIMARY KEY,
		child_id        TEXT NOT NULL,
		owner_user_id   TEXT NOT NULL,
		grantee_user_id TEXT NOT NULL,
		scopes          TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL,
		created_at      {{ts}} NOT NULL,
		updated_at      {{ts}} NOT NULL,
		revoked_at      {{ts}} NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_grants_child ON caregiver_grants (child_id)`,
	`CREATE INDEX IF NOT EXISTS idx_grants_grantee ON caregiver_grants (grantee_user_id)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id          TEXT PRIMARY KEY,
		child_id    TEXT NOT NULL,
		type        TEXT NOT NULL,
		occurred_at {{ts}} NOT NULL,
		ended_at    {{ts}} NULL,
		recorded_at {{ts}} NOT NULL,
		title       TEXT NOT NULL DEFAULT '',
		notes       TEXT NOT NULL DEFAULT '',
		quantity    {{float}} NULL,
		unit        TEXT NOT NULL DEFAULT '',
		actor_type  TEXT NOT NULL,
		actor_id    TEXT NOT NULL,
		source      TEXT NOT NULL,
		status      TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_child ON activities (child_id, occurred_at)`,

	`CREATE TABLE IF NOT EXISTS vaccination_completions (
		child_id       TEXT NOT NULL,
		entry_id       TEXT NOT NULL,
		completed_date {{ts}} NOT NULL,
		notes          TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (child_id, entry_id)
	)`,
}

// EnsureSchema crea tablas e índices si no existen. Idempotente.
func EnsureSchema(ctx context.Context, db *sql.DB, d Dialect) error {
	ts, float := "TIMESTAMPTZ", "DOUBLE PRECISION"
	if d == DialectSQLite {
		ts, float = "TIMESTAMP", "REAL"
	}
	r := strings.NewReplacer("{{ts}}", ts, "{{float}}", float)

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, r.Replace(stmt)); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
