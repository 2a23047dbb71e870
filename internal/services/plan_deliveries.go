package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"truck-route-optimizer/internal/domain"
	"truck-route-optimizer/internal/metrics"
	"truck-route-optimizer/internal/platform/obs"
	"truck-route-optimizer/internal/ports"
)

type PlanDeliveriesRequest struct {
	Matrix    *domain.DistanceMatrix
	Trucks    []domain.Truck
	Seed      int64
	MaxSweeps int
}

// Optional collaborators of PlanDeliveries. Nil fields are skipped.
type PlanDependencies struct {
	Runs  ports.RunRepository
	Cache ports.PlanCache
	Now   func() time.Time
}

// PlanDeliveries runs the full pipeline for one problem: random initial
// assignment, hill climbing, then persistence of the resulting run.
//
// Identical requests are served from the plan cache when one is configured.
// Malformed trucks and infeasible capacities abort before any work is done.
func PlanDeliveries(
	ctx context.Context,
	req PlanDeliveriesRequest,
	deps PlanDependencies,
) (_ *domain.PlanRun, err error) {
	defer obs.Time(ctx, "plan.deliveries")(&err)
	defer func() {
		if err != nil {
			metrics.PlanRuns.WithLabelValues("error").Inc()
		}
	}()

	if req.Matrix == nil {
		return nil, errors.New("plan deliveries: distance matrix must be non-nil")
	}

	points := req.Matrix.DeliveryPoints()
	if err := domain.ValidateTrucks(req.Trucks); err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}
	if err := domain.CheckCapacity(req.Trucks, len(points)); err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	key := PlanKey(req)
	if deps.Cache != nil {
		cached, ok, cerr := deps.Cache.GetPlan(ctx, key)
		if cerr != nil {
			// Cache is best effort; fall through to a fresh run.
			log.Printf("plan deliveries: cache lookup key=%s failed: %v", key, cerr)
		} else if ok {
			metrics.PlanRuns.WithLabelValues("cached").Inc()
			// The cache can outlive the run store (redis next to memory storage);
			// keep the returned run ID fetchable.
			if deps.Runs != nil {
				if serr := deps.Runs.SaveRun(ctx, cached); serr != nil {
					log.Printf("plan deliveries: store cached run run_id=%s failed: %v", cached.RunID, serr)
				}
			}
			return cached, nil
		}
	}

	runID := uuid.NewString()
	ctx = obs.WithRunID(ctx, runID)

	initial, err := AssignRoutes(req.Trucks, points, NewRandomSource(req.Seed))
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	res, err := HillClimb(ctx, initial, req.Matrix, HillClimbOptions{MaxSweeps: req.MaxSweeps})
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	run := &domain.PlanRun{
		RunID:        runID,
		Seed:         req.Seed,
		MaxSweeps:    req.MaxSweeps,
		CreatedAt:    now().UTC(),
		Routes:       RoutePlans(res.Assignment, req.Matrix),
		TotalCost:    res.Cost,
		Sweeps:       res.Sweeps,
		Improvements: res.Improvements,
		Evaluations:  res.Evaluations,
		Converged:    res.Converged,
	}

	metrics.ObserveRun(run.Sweeps, run.Improvements, run.TotalCost, !res.Unreachable())
	if res.Unreachable() {
		log.Printf("warn=unreachable_route run_id=%s trucks=%v", runID, run.UnreachableTrucks())
	}

	if deps.Runs != nil {
		if err := deps.Runs.SaveRun(ctx, run); err != nil {
			return nil, fmt.Errorf("plan deliveries: save run %s: %w", runID, err)
		}
	}

	if deps.Cache != nil {
		if cerr := deps.Cache.PutPlan(ctx, key, run); cerr != nil {
			log.Printf("plan deliveries: cache store key=%s failed: %v", key, cerr)
		}
	}

	return run, nil
}

// PlanKey identifies a request by its map, trucks, seed and sweep budget.
func PlanKey(req PlanDeliveriesRequest) string {
	var b strings.Builder
	for _, row := range req.Matrix.Tokens() {
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}
	for _, t := range req.Trucks {
		fmt.Fprintf(&b, "truck_%d#%d\n", t.TruckID, t.Capacity)
	}
	b.WriteString("seed=" + strconv.FormatInt(req.Seed, 10))
	b.WriteString(" max_sweeps=" + strconv.Itoa(req.MaxSweeps))

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
