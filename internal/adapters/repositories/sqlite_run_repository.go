package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"truck-route-optimizer/internal/adapters/codec"
	"truck-route-optimizer/internal/domain"
	"truck-route-optimizer/internal/platform/obs"
	"truck-route-optimizer/internal/ports"
)

// SQLite-backed implementation of the RunRepository port.
type SqliteRunRepository struct{ DB *sql.DB }

func NewSqliteRunRepository(db *sql.DB) *SqliteRunRepository {
	return &SqliteRunRepository{DB: db}
}

// Store a run, replacing any run with the same ID.
func (s *SqliteRunRepository) SaveRun(ctx context.Context, run *domain.PlanRun) (err error) {
	defer obs.Time(ctx, "runs.sqlite.SaveRun")(&err)

	if s.DB == nil {
		return errors.New("sqlite run repository: DB is nil")
	}
	if run == nil || run.RunID == "" {
		return errors.New("save run: run id must not be empty")
	}

	routes, err := codec.EncodeRoutes(run.Routes)
	if err != nil {
		return fmt.Errorf("save run %s: %w", run.RunID, err)
	}

	query := `
	INSERT OR REPLACE INTO plan_runs (
		run_id,
		seed,
		max_sweeps,
		total_cost,
		sweeps,
		improvements,
		evaluations,
		converged,
		routes_json,
		created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = s.DB.ExecContext(ctx, query,
		run.RunID,
		run.Seed,
		run.MaxSweeps,
		codec.CostPtr(run.TotalCost),
		run.Sweeps,
		run.Improvements,
		run.Evaluations,
		run.Converged,
		routes,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save run %s: insert plan_runs: %w", run.RunID, err)
	}

	return nil
}

// Return the run with the given ID, or ports.ErrRunNotFound.
func (s *SqliteRunRepository) GetRun(ctx context.Context, runID string) (_ *domain.PlanRun, err error) {
	defer obs.Time(ctx, "runs.sqlite.GetRun")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite run repository: DB is nil")
	}

	query := `
	SELECT
		run_id,
		seed,
		max_sweeps,
		total_cost,
		sweeps,
		improvements,
		evaluations,
		converged,
		routes_json,
		created_at
	FROM plan_runs
	WHERE run_id = ?;
	`

	var (
		run       domain.PlanRun
		totalCost sql.NullFloat64
		routes    string
		createdAt string
	)
	err = s.DB.QueryRowContext(ctx, query, runID).Scan(
		&run.RunID,
		&run.Seed,
		&run.MaxSweeps,
		&totalCost,
		&run.Sweeps,
		&run.Improvements,
		&run.Evaluations,
		&run.Converged,
		&routes,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: query plan_runs: %w", runID, err)
	}

	run.TotalCost = codec.CostValue(nullFloatPtr(totalCost))
	if run.Routes, err = codec.DecodeRoutes(routes); err != nil {
		return nil, fmt.Errorf("get run %s: %w", runID, err)
	}
	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("get run %s: parse created_at: %w", runID, err)
	}

	return &run, nil
}

func nullFloatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
