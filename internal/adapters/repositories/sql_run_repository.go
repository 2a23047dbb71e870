package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"truck-route-optimizer/internal/adapters/codec"
	"truck-route-optimizer/internal/domain"
	"truck-route-optimizer/internal/platform/obs"
	"truck-route-optimizer/internal/ports"
)

// SQLRunRepository is a Postgres-backed RunRepository (pgx stdlib driver).
type SQLRunRepository struct {
	DB *sql.DB
}

func NewSQLRunRepository(db *sql.DB) *SQLRunRepository {
	return &SQLRunRepository{DB: db}
}

func (s *SQLRunRepository) SaveRun(ctx context.Context, run *domain.PlanRun) (err error) {
	defer obs.Time(ctx, "runs.sql.SaveRun")(&err)

	if s.DB == nil {
		return errors.New("sql run repository: db is nil")
	}
	if run == nil || run.RunID == "" {
		return errors.New("save run: run id must not be empty")
	}

	routes, err := codec.EncodeRoutes(run.Routes)
	if err != nil {
		return fmt.Errorf("save run %s: %w", run.RunID, err)
	}

	q := `
	INSERT INTO plan_runs (
		run_id, seed, max_sweeps, total_cost, sweeps,
		improvements, evaluations, converged, routes_json, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (run_id) DO UPDATE
	SET seed = EXCLUDED.seed,
		max_sweeps = EXCLUDED.max_sweeps,
		total_cost = EXCLUDED.total_cost,
		sweeps = EXCLUDED.sweeps,
		improvements = EXCLUDED.improvements,
		evaluations = EXCLUDED.evaluations,
		converged = EXCLUDED.converged,
		routes_json = EXCLUDED.routes_json,
		created_at = EXCLUDED.created_at;
	`
	_, err = s.DB.ExecContext(ctx, q,
		run.RunID,
		run.Seed,
		run.MaxSweeps,
		codec.CostPtr(run.TotalCost),
		run.Sweeps,
		run.Improvements,
		run.Evaluations,
		run.Converged,
		routes,
		run.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save run %s: upsert plan_runs: %w", run.RunID, err)
	}

	return nil
}

func (s *SQLRunRepository) GetRun(ctx context.Context, runID string) (_ *domain.PlanRun, err error) {
	defer obs.Time(ctx, "runs.sql.GetRun")(&err)

	if s.DB == nil {
		return nil, errors.New("sql run repository: db is nil")
	}

	q := `
	SELECT run_id, seed, max_sweeps, total_cost, sweeps,
		improvements, evaluations, converged, routes_json, created_at
	FROM plan_runs
	WHERE run_id = $1;
	`

	var (
		run       domain.PlanRun
		totalCost sql.NullFloat64
		routes    string
	)
	err = s.DB.QueryRowContext(ctx, q, runID).Scan(
		&run.RunID,
		&run.Seed,
		&run.MaxSweeps,
		&totalCost,
		&run.Sweeps,
		&run.Improvements,
		&run.Evaluations,
		&run.Converged,
		&routes,
		&run.CreatedAt,
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

	return &run, nil
}
