package domain

import (
	"fmt"
	"math"
)

// Delivery truck declared by the problem input. Capacity is the exact number
// of delivery points the truck must visit.
type Truck struct {
	TruckID  int
	Capacity int
}

func NewTruck(id int, capacity int) Truck {
	return Truck{TruckID: id, Capacity: capacity}
}

// TotalCapacity sums the declared capacities, saturating at the int range.
func TotalCapacity(trucks []Truck) int {
	total := 0
	for _, t := range trucks {
		switch {
		case t.Capacity > 0 && total > math.MaxInt-t.Capacity:
			return math.MaxInt
		case t.Capacity < 0 && total < math.MinInt-t.Capacity:
			return math.MinInt
		}
		total += t.Capacity
	}
	return total
}

// Check truck IDs are unique and capacities non-negative.
func ValidateTrucks(trucks []Truck) error {
	seen := make(map[int]struct{}, len(trucks))
	for _, t := range trucks {
		if t.Capacity < 0 {
			return fmt.Errorf("validate trucks: truck %d capacity=%d: %w", t.TruckID, t.Capacity, ErrNegativeCapacity)
		}
		if _, ok := seen[t.TruckID]; ok {
			return fmt.Errorf("validate trucks: truck %d: %w", t.TruckID, ErrDuplicateTruck)
		}
		seen[t.TruckID] = struct{}{}
	}
	return nil
}

// Check that every delivery point fits exactly once across all trucks.
func CheckCapacity(trucks []Truck, points int) error {
	total := 0
	for _, t := range trucks {
		// total never exceeds points here, so points-total cannot overflow
		if t.Capacity < 0 || t.Capacity > points-total {
			return &InfeasibleCapacityError{Capacity: TotalCapacity(trucks), Points: points}
		}
		total += t.Capacity
	}
	if total != points {
		return &InfeasibleCapacityError{Capacity: total, Points: points}
	}
	return nil
}
