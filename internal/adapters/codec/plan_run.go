// Package codec converts planning runs to and from the JSON stored by the
// repositories and caches. Costs are nullable because +Inf has no JSON form.
package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"truck-route-optimizer/internal/domain"
)

type RouteRecord struct {
	TruckID int      `json:"truck_id"`
	Stops   []int    `json:"stops"`
	Cost    *float64 `json:"cost"`
}

type PlanRunRecord struct {
	RunID        string        `json:"run_id"`
	Seed         int64         `json:"seed"`
	MaxSweeps    int           `json:"max_sweeps"`
	CreatedAt    time.Time     `json:"created_at"`
	Routes       []RouteRecord `json:"routes"`
	TotalCost    *float64      `json:"total_cost"`
	Sweeps       int           `json:"sweeps"`
	Improvements int           `json:"improvements"`
	Evaluations  int           `json:"evaluations"`
	Converged    bool          `json:"converged"`
}

// CostPtr maps +Inf to nil.
func CostPtr(c float64) *float64 {
	if math.IsInf(c, 1) {
		return nil
	}
	return &c
}

// CostValue maps nil back to +Inf.
func CostValue(c *float64) float64 {
	if c == nil {
		return math.Inf(1)
	}
	return *c
}

func ToRouteRecords(plans []domain.RoutePlan) []RouteRecord {
	out := make([]RouteRecord, 0, len(plans))
	for _, p := range plans {
		stops := make([]int, len(p.Stops))
		copy(stops, p.Stops)
		out = append(out, RouteRecord{TruckID: p.TruckID, Stops: stops, Cost: CostPtr(p.Cost)})
	}
	return out
}

func FromRouteRecords(recs []RouteRecord) []domain.RoutePlan {
	out := make([]domain.RoutePlan, 0, len(recs))
	for _, r := range recs {
		out = append(out, domain.RoutePlan{TruckID: r.TruckID, Stops: domain.Route(r.Stops), Cost: CostValue(r.Cost)})
	}
	return out
}

func ToRecord(run *domain.PlanRun) PlanRunRecord {
	return PlanRunRecord{
		RunID:        run.RunID,
		Seed:         run.Seed,
		MaxSweeps:    run.MaxSweeps,
		CreatedAt:    run.CreatedAt,
		Routes:       ToRouteRecords(run.Routes),
		TotalCost:    CostPtr(run.TotalCost),
		Sweeps:       run.Sweeps,
		Improvements: run.Improvements,
		Evaluations:  run.Evaluations,
		Converged:    run.Converged,
	}
}

func FromRecord(rec PlanRunRecord) *domain.PlanRun {
	return &domain.PlanRun{
		RunID:        rec.RunID,
		Seed:         rec.Seed,
		MaxSweeps:    rec.MaxSweeps,
		CreatedAt:    rec.CreatedAt,
		Routes:       FromRouteRecords(rec.Routes),
		TotalCost:    CostValue(rec.TotalCost),
		Sweeps:       rec.Sweeps,
		Improvements: rec.Improvements,
		Evaluations:  rec.Evaluations,
		Converged:    rec.Converged,
	}
}

func EncodeRun(run *domain.PlanRun) ([]byte, error) {
	b, err := json.Marshal(ToRecord(run))
	if err != nil {
		return nil, fmt.Errorf("encode run %s: %w", run.RunID, err)
	}
	return b, nil
}

func DecodeRun(b []byte) (*domain.PlanRun, error) {
	var rec PlanRunRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("decode run: %w", err)
	}
	return FromRecord(rec), nil
}

func EncodeRoutes(plans []domain.RoutePlan) (string, error) {
	b, err := json.Marshal(ToRouteRecords(plans))
	if err != nil {
		return "", fmt.Errorf("encode routes: %w", err)
	}
	return string(b), nil
}

func DecodeRoutes(s string) ([]domain.RoutePlan, error) {
	var recs []RouteRecord
	if err := json.Unmarshal([]byte(s), &recs); err != nil {
		return nil, fmt.Errorf("decode routes: %w", err)
	}
	return FromRouteRecords(recs), nil
}
