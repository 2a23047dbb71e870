package domain

import (
	"math"
	"time"
)

// Planned route for a single truck together with its round-trip cost.
// Cost is +Inf when some hop on the route has no road.
type RoutePlan struct {
	TruckID int
	Stops   Route
	Cost    float64
}

// Reachable reports whether the truck can complete the route.
func (p RoutePlan) Reachable() bool { return !math.IsInf(p.Cost, 1) }

// Represents the outcome of one planning run.
// A PlanRun is immutable planning data: the final routes, their total cost
// and the search statistics that produced them.
type PlanRun struct {
	RunID        string
	Seed         int64
	MaxSweeps    int
	CreatedAt    time.Time
	Routes       []RoutePlan
	TotalCost    float64
	Sweeps       int
	Improvements int
	Evaluations  int
	Converged    bool
}

// Reachable reports whether the total cost is finite.
func (r *PlanRun) Reachable() bool { return !math.IsInf(r.TotalCost, 1) }

// UnreachableTrucks lists trucks whose routes contain a missing road.
func (r *PlanRun) UnreachableTrucks() []int {
	var ids []int
	for _, p := range r.Routes {
		if !p.Reachable() {
			ids = append(ids, p.TruckID)
		}
	}
	return ids
}

// Assignment rebuilds the truck to route mapping of the run.
func (r *PlanRun) Assignment() Assignment {
	routes := make([]TruckRoute, 0, len(r.Routes))
	for _, p := range r.Routes {
		routes = append(routes, TruckRoute{TruckID: p.TruckID, Capacity: len(p.Stops), Stops: p.Stops.Clone()})
	}
	return Assignment{Routes: routes}
}
