package ports

import (
	"context"
	"errors"
	"truck-route-optimizer/internal/domain"
)

var ErrRunNotFound = errors.New("plan run not found")

// Port: a boundary for persisting finished planning runs.
type RunRepository interface {
	// Store a finished run. Saving an existing RunID replaces it.
	SaveRun(ctx context.Context, run *domain.PlanRun) error
	// Retrieve a run by ID, or ErrRunNotFound.
	GetRun(ctx context.Context, runID string) (*domain.PlanRun, error)
}
