package services

import (
	"context"
	"fmt"
	"math"

	"truck-route-optimizer/internal/domain"
)

// HillClimbOptions tunes the local search. The zero value runs to convergence.
type HillClimbOptions struct {
	// MaxSweeps caps the number of sweeps; 0 means no cap.
	MaxSweeps int
	// OnImprove is called after every adopted swap.
	OnImprove func(ImproveStep)
}

// ImproveStep describes one adopted swap. Assignment is an independent
// snapshot the callee may keep.
type ImproveStep struct {
	Sweep      int
	TruckID    int
	I, J       int
	Cost       float64
	Assignment domain.Assignment
}

type HillClimbResult struct {
	Assignment   domain.Assignment
	Cost         float64
	Sweeps       int
	Improvements int
	Evaluations  int
	Converged    bool
}

// Unreachable reports whether the best assignment still uses a missing road.
func (r HillClimbResult) Unreachable() bool { return math.IsInf(r.Cost, 1) }

// HillClimb improves an assignment by swapping stops within each route.
//
// A sweep walks every truck in assignment order and every position pair
// i < j of its route. Each candidate is a fresh copy of the current
// assignment with the two stops exchanged; it is adopted as soon as its
// total cost is strictly lower, and scanning then continues from the same
// pair over the adopted assignment. Sweeps repeat until one adopts nothing.
//
// Points never move between trucks. The context and MaxSweeps are only
// consulted between sweeps; on cancellation the best assignment found so
// far is returned together with the context error.
func HillClimb(
	ctx context.Context,
	initial domain.Assignment,
	m *domain.DistanceMatrix,
	opts HillClimbOptions,
) (HillClimbResult, error) {
	current := initial.Clone()
	res := HillClimbResult{
		Assignment: current,
		Cost:       SolutionCost(current, m),
	}

	for {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("hill climb: stopped after %d sweeps: %w", res.Sweeps, err)
		}
		if opts.MaxSweeps > 0 && res.Sweeps >= opts.MaxSweeps {
			return res, nil
		}

		res.Sweeps++
		improved := false

		for ri := range res.Assignment.Routes {
			size := len(res.Assignment.Routes[ri].Stops)
			for i := 0; i < size; i++ {
				for j := i + 1; j < size; j++ {
					candidate := res.Assignment.WithSwap(ri, i, j)
					cost := SolutionCost(candidate, m)
					res.Evaluations++

					if cost < res.Cost {
						res.Assignment = candidate
						res.Cost = cost
						res.Improvements++
						improved = true

						if opts.OnImprove != nil {
							opts.OnImprove(ImproveStep{
								Sweep:      res.Sweeps,
								TruckID:    candidate.Routes[ri].TruckID,
								I:          i,
								J:          j,
								Cost:       cost,
								Assignment: candidate.Clone(),
							})
						}
					}
				}
			}
		}

		if !improved {
			res.Converged = true
			return res, nil
		}
	}
}
