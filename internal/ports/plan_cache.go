package ports

import (
	"context"
	"truck-route-optimizer/internal/domain"
)

// Contract for reusing runs of an identical problem (same map, trucks, seed and budget).
type PlanCache interface {
	// Return the cached run for key; ok is false on a miss.
	GetPlan(ctx context.Context, key string) (run *domain.PlanRun, ok bool, err error)
	PutPlan(ctx context.Context, key string, run *domain.PlanRun) error
}
