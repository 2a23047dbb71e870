package services

import "truck-route-optimizer/internal/domain"

// EvaluateRoute returns the round-trip cost of visiting route in order,
// leaving from and returning to the depot.
//
// An empty route costs 0. A missing road anywhere on the path makes the
// whole route cost +Inf, which compares worse than any finite cost.
func EvaluateRoute(route domain.Route, m *domain.DistanceMatrix) float64 {
	if len(route) == 0 {
		return 0
	}

	total := 0.0
	prev := domain.Depot
	for _, next := range route {
		total += m.Cost(prev, next)
		prev = next
	}
	total += m.Cost(prev, domain.Depot)

	return total
}

// SolutionCost sums EvaluateRoute over every truck route of the assignment.
func SolutionCost(a domain.Assignment, m *domain.DistanceMatrix) float64 {
	total := 0.0
	for _, tr := range a.Routes {
		total += EvaluateRoute(tr.Stops, m)
	}
	return total
}

// RoutePlans evaluates each route of the assignment individually.
func RoutePlans(a domain.Assignment, m *domain.DistanceMatrix) []domain.RoutePlan {
	plans := make([]domain.RoutePlan, 0, len(a.Routes))
	for _, tr := range a.Routes {
		plans = append(plans, domain.RoutePlan{
			TruckID: tr.TruckID,
			Stops:   tr.Stops.Clone(),
			Cost:    EvaluateRoute(tr.Stops, m),
		})
	}
	return plans
}
