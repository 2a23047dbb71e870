package services

import (
	"errors"
	"fmt"
	"math/rand"

	"truck-route-optimizer/internal/domain"
)

// defaultSeed replaces a zero seed so runs stay reproducible without a caller-supplied seed.
const defaultSeed int64 = 1

var ErrNilRandomSource = errors.New("random source must not be nil")

// RandomSource is a stream of uniform choices in [0, n).
// *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// NewRandomSource returns a deterministic generator for the given seed.
func NewRandomSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// AssignRoutes builds a random initial assignment of delivery points to trucks.
//
// Trucks are filled in declaration order. Each stop is drawn uniformly from
// the full point set and redrawn while the draw hits a point that is already
// assigned. Capacities must sum to the number of points; this is checked up
// front so the draw loop always terminates.
func AssignRoutes(trucks []domain.Truck, points []int, rng RandomSource) (domain.Assignment, error) {
	if rng == nil {
		return domain.Assignment{}, fmt.Errorf("assign routes: %w", ErrNilRandomSource)
	}

	if err := domain.ValidateTrucks(trucks); err != nil {
		return domain.Assignment{}, fmt.Errorf("assign routes: %w", err)
	}

	if err := domain.CheckCapacity(trucks, len(points)); err != nil {
		return domain.Assignment{}, fmt.Errorf("assign routes: %w", err)
	}

	distinct := make(map[int]struct{}, len(points))
	for _, p := range points {
		if _, dup := distinct[p]; dup {
			return domain.Assignment{}, fmt.Errorf("assign routes: delivery point %d listed twice", p)
		}
		distinct[p] = struct{}{}
	}

	assignment := domain.NewAssignment(trucks)
	assigned := make(map[int]struct{}, len(points))

	for ti := range assignment.Routes {
		tr := &assignment.Routes[ti]
		for !tr.Full() {
			p := points[rng.Intn(len(points))]
			for {
				if _, taken := assigned[p]; !taken {
					break
				}
				p = points[rng.Intn(len(points))]
			}

			if err := tr.Load(p); err != nil {
				return domain.Assignment{}, fmt.Errorf("assign routes: %w", err)
			}
			assigned[p] = struct{}{}
		}
	}

	return assignment, nil
}
