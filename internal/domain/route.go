package domain

import (
	"fmt"
	"slices"
)

// Route is the ordered list of delivery points one truck visits.
// The depot is implicit at both ends and never stored.
type Route []int

func (r Route) Clone() Route {
	return slices.Clone(r)
}

// Swap exchanges the stops at positions i and j in place.
func (r Route) Swap(i, j int) {
	r[i], r[j] = r[j], r[i]
}

// Route owned by a single truck.
type TruckRoute struct {
	TruckID  int
	Capacity int
	Stops    Route
}

// Load appends a delivery point to the route.
func (tr *TruckRoute) Load(point int) error {
	if len(tr.Stops) >= tr.Capacity {
		return fmt.Errorf("load route: truck %d capacity=%d: %w", tr.TruckID, tr.Capacity, ErrRouteFull)
	}
	tr.Stops = append(tr.Stops, point)
	return nil
}

// Full reports whether the route holds exactly its capacity.
func (tr *TruckRoute) Full() bool {
	return len(tr.Stops) >= tr.Capacity
}

// Assignment maps every truck to its route, in truck declaration order.
// Routes of a valid assignment partition the delivery points.
type Assignment struct {
	Routes []TruckRoute
}

// NewAssignment creates an empty route for each truck.
func NewAssignment(trucks []Truck) Assignment {
	routes := make([]TruckRoute, 0, len(trucks))
	for _, t := range trucks {
		routes = append(routes, TruckRoute{
			TruckID:  t.TruckID,
			Capacity: t.Capacity,
			Stops:    make(Route, 0, t.Capacity),
		})
	}
	return Assignment{Routes: routes}
}

// Clone returns a deep copy that shares no backing arrays with a.
func (a Assignment) Clone() Assignment {
	routes := make([]TruckRoute, len(a.Routes))
	for i, tr := range a.Routes {
		routes[i] = TruckRoute{TruckID: tr.TruckID, Capacity: tr.Capacity, Stops: tr.Stops.Clone()}
	}
	return Assignment{Routes: routes}
}

// WithSwap returns a copy of a where stops i and j of the route at index
// routeIdx are exchanged. a itself is left untouched.
func (a Assignment) WithSwap(routeIdx, i, j int) Assignment {
	out := a.Clone()
	out.Routes[routeIdx].Stops.Swap(i, j)
	return out
}

// Validate checks that the routes visit every point exactly once and nothing else,
// and that every route is filled to its capacity.
func (a Assignment) Validate(points []int) error {
	want := make(map[int]bool, len(points))
	for _, p := range points {
		want[p] = false
	}

	for _, tr := range a.Routes {
		if len(tr.Stops) != tr.Capacity {
			return fmt.Errorf("validate assignment: truck %d has %d stops, capacity %d: %w",
				tr.TruckID, len(tr.Stops), tr.Capacity, ErrBrokenPartition)
		}
		for _, p := range tr.Stops {
			visited, ok := want[p]
			if !ok {
				return fmt.Errorf("validate assignment: truck %d visits unknown point %d: %w", tr.TruckID, p, ErrBrokenPartition)
			}
			if visited {
				return fmt.Errorf("validate assignment: point %d visited twice: %w", p, ErrBrokenPartition)
			}
			want[p] = true
		}
	}

	for p, visited := range want {
		if !visited {
			return fmt.Errorf("validate assignment: point %d not visited: %w", p, ErrBrokenPartition)
		}
	}
	return nil
}
