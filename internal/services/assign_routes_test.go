package services

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truck-route-optimizer/internal/domain"
)

// scriptedSource replays a fixed sequence of draws.
type scriptedSource struct {
	draws []int
	calls int
}

func (s *scriptedSource) Intn(n int) int {
	v := s.draws[s.calls] % n
	s.calls++
	return v
}

func TestAssignRoutesRetriesTakenPoints(t *testing.T) {
	trucks := []domain.Truck{domain.NewTruck(7, 2), domain.NewTruck(3, 1)}
	src := &scriptedSource{draws: []int{1, 1, 0, 1, 2}}

	a, err := AssignRoutes(trucks, []int{1, 2, 3}, src)
	require.NoError(t, err)

	require.Len(t, a.Routes, 2)
	assert.Equal(t, 7, a.Routes[0].TruckID)
	assert.Equal(t, domain.Route{2, 1}, a.Routes[0].Stops)
	assert.Equal(t, 3, a.Routes[1].TruckID)
	assert.Equal(t, domain.Route{3}, a.Routes[1].Stops)
	assert.Equal(t, 5, src.calls)
}

func TestAssignRoutesPartitionsPoints(t *testing.T) {
	trucks := []domain.Truck{domain.NewTruck(1, 3), domain.NewTruck(2, 0), domain.NewTruck(3, 4), domain.NewTruck(4, 1)}
	points := []int{1, 2, 3, 4, 5, 6, 7, 8}

	for seed := int64(0); seed < 50; seed++ {
		a, err := AssignRoutes(trucks, points, NewRandomSource(seed))
		require.NoError(t, err)
		require.NoError(t, a.Validate(points), "seed %d", seed)
	}
}

func TestAssignRoutesIsDeterministicPerSeed(t *testing.T) {
	trucks := []domain.Truck{domain.NewTruck(1, 3), domain.NewTruck(2, 3)}
	points := []int{1, 2, 3, 4, 5, 6}

	a1, err := AssignRoutes(trucks, points, NewRandomSource(42))
	require.NoError(t, err)
	a2, err := AssignRoutes(trucks, points, NewRandomSource(42))
	require.NoError(t, err)
	assert.Equal(t, a1, a2)

	// Seed 0 falls back to the fixed default seed.
	z1, err := AssignRoutes(trucks, points, NewRandomSource(0))
	require.NoError(t, err)
	z2, err := AssignRoutes(trucks, points, NewRandomSource(defaultSeed))
	require.NoError(t, err)
	assert.Equal(t, z1, z2)
}

func TestAssignRoutesInfeasibleCapacity(t *testing.T) {
	src := &scriptedSource{}

	for _, trucks := range [][]domain.Truck{
		{domain.NewTruck(1, 2)},
		{domain.NewTruck(1, 2), domain.NewTruck(2, 2)},
	} {
		a, err := AssignRoutes(trucks, []int{1, 2, 3}, src)

		var capErr *domain.InfeasibleCapacityError
		require.True(t, errors.As(err, &capErr), "err = %v", err)
		assert.Equal(t, 3, capErr.Points)
		assert.Empty(t, a.Routes)
	}
	assert.Zero(t, src.calls, "no draw may happen before feasibility is known")

	// Capacities whose int sum wraps around to the point count.
	huge := []domain.Truck{domain.NewTruck(1, math.MaxInt), domain.NewTruck(2, math.MaxInt), domain.NewTruck(3, 3)}
	a, err := AssignRoutes(huge, []int{1}, src)

	var capErr *domain.InfeasibleCapacityError
	require.True(t, errors.As(err, &capErr), "err = %v", err)
	assert.Equal(t, math.MaxInt, capErr.Capacity)
	assert.Empty(t, a.Routes)
	assert.Zero(t, src.calls)
}

func TestAssignRoutesRejectsBadInput(t *testing.T) {
	_, err := AssignRoutes([]domain.Truck{domain.NewTruck(1, 1)}, []int{1}, nil)
	assert.ErrorIs(t, err, ErrNilRandomSource)

	_, err = AssignRoutes([]domain.Truck{domain.NewTruck(1, 1), domain.NewTruck(1, 1)}, []int{1, 2}, NewRandomSource(1))
	assert.ErrorIs(t, err, domain.ErrDuplicateTruck)

	_, err = AssignRoutes([]domain.Truck{domain.NewTruck(1, -1), domain.NewTruck(2, 3)}, []int{1, 2}, NewRandomSource(1))
	assert.ErrorIs(t, err, domain.ErrNegativeCapacity)

	_, err = AssignRoutes([]domain.Truck{domain.NewTruck(1, 2)}, []int{1, 1}, NewRandomSource(1))
	assert.Error(t, err)
}

func TestAssignRoutesNoPoints(t *testing.T) {
	a, err := AssignRoutes([]domain.Truck{domain.NewTruck(1, 0)}, nil, &scriptedSource{})
	require.NoError(t, err)
	require.Len(t, a.Routes, 1)
	assert.Empty(t, a.Routes[0].Stops)
}
