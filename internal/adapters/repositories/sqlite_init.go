package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS plan_runs (
		run_id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		max_sweeps INTEGER NOT NULL,
		total_cost REAL,
		sweeps INTEGER NOT NULL,
		improvements INTEGER NOT NULL,
		evaluations INTEGER NOT NULL,
		converged INTEGER NOT NULL,
		routes_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	createPlanCacheQuery := `
	CREATE TABLE IF NOT EXISTS plan_cache (
        plan_key TEXT PRIMARY KEY,
        run_json TEXT NOT NULL,
        expires_at INTEGER NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_plan_runs_created_at
    ON plan_runs(created_at);
	`

	return execSchema(db, "init schema", []string{
		createRunsQuery,
		createPlanCacheQuery,
		createIndexQuery,
	})
}

// Initialize the Postgres database schema.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS plan_runs (
		run_id TEXT PRIMARY KEY,
		seed BIGINT NOT NULL,
		max_sweeps INTEGER NOT NULL,
		total_cost DOUBLE PRECISION,
		sweeps INTEGER NOT NULL,
		improvements INTEGER NOT NULL,
		evaluations INTEGER NOT NULL,
		converged BOOLEAN NOT NULL,
		routes_json TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_plan_runs_created_at
    ON plan_runs(created_at);
	`

	return execSchema(db, "init postgres schema", []string{
		createRunsQuery,
		createIndexQuery,
	})
}

func execSchema(db *sql.DB, op string, statements []string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("%s: exec statement #%d: %w", op, i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit tx: %w", op, err)
	}

	return nil
}
