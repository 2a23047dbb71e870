package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truck-route-optimizer/internal/adapters/repositories"
	"truck-route-optimizer/internal/domain"
)

type memoryCache struct {
	plans  map[string]*domain.PlanRun
	gets   int
	puts   int
	getErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{plans: map[string]*domain.PlanRun{}}
}

func (c *memoryCache) GetPlan(_ context.Context, key string) (*domain.PlanRun, bool, error) {
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	run, ok := c.plans[key]
	return run, ok, nil
}

func (c *memoryCache) PutPlan(_ context.Context, key string, run *domain.PlanRun) error {
	c.puts++
	c.plans[key] = run
	return nil
}

func planRequest(t *testing.T) PlanDeliveriesRequest {
	return PlanDeliveriesRequest{
		Matrix: randomMatrix(t, 8, 5, 0),
		Trucks: []domain.Truck{domain.NewTruck(1, 3), domain.NewTruck(2, 4)},
		Seed:   17,
	}
}

func TestPlanDeliveries(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryRunRepository()
	fixed := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	req := planRequest(t)

	run, err := PlanDeliveries(ctx, req, PlanDependencies{Runs: repo, Now: func() time.Time { return fixed }})
	require.NoError(t, err)

	assert.NotEmpty(t, run.RunID)
	assert.Equal(t, fixed, run.CreatedAt)
	assert.True(t, run.Converged)
	assert.True(t, run.Reachable())
	require.NoError(t, run.Assignment().Validate(req.Matrix.DeliveryPoints()))

	total := 0.0
	for _, r := range run.Routes {
		assert.Equal(t, EvaluateRoute(r.Stops, req.Matrix), r.Cost)
		total += r.Cost
	}
	assert.Equal(t, total, run.TotalCost)

	// Same as running the pipeline by hand.
	initial, err := AssignRoutes(req.Trucks, req.Matrix.DeliveryPoints(), NewRandomSource(req.Seed))
	require.NoError(t, err)
	res, err := HillClimb(ctx, initial, req.Matrix, HillClimbOptions{})
	require.NoError(t, err)
	assert.Equal(t, res.Cost, run.TotalCost)
	assert.Equal(t, res.Sweeps, run.Sweeps)

	stored, err := repo.GetRun(ctx, run.RunID)
	require.NoError(t, err)
	assert.Equal(t, run.TotalCost, stored.TotalCost)
}

func TestPlanDeliveriesUsesCache(t *testing.T) {
	ctx := context.Background()
	cache := newMemoryCache()
	req := planRequest(t)

	first, err := PlanDeliveries(ctx, req, PlanDependencies{Cache: cache})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.puts)

	second, err := PlanDeliveries(ctx, req, PlanDependencies{Cache: cache})
	require.NoError(t, err)
	assert.Equal(t, first.RunID, second.RunID)
	assert.Equal(t, 1, cache.puts)

	req.Seed++
	third, err := PlanDeliveries(ctx, req, PlanDependencies{Cache: cache})
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, third.RunID)
}

func TestPlanDeliveriesStoresCachedRun(t *testing.T) {
	ctx := context.Background()
	cache := newMemoryCache()
	req := planRequest(t)

	first, err := PlanDeliveries(ctx, req, PlanDependencies{Runs: repositories.NewMemoryRunRepository(), Cache: cache})
	require.NoError(t, err)

	// A fresh store next to a warm cache, as after a restart with memory storage.
	repo := repositories.NewMemoryRunRepository()
	second, err := PlanDeliveries(ctx, req, PlanDependencies{Runs: repo, Cache: cache})
	require.NoError(t, err)
	assert.Equal(t, first.RunID, second.RunID)

	stored, err := repo.GetRun(ctx, first.RunID)
	require.NoError(t, err)
	assert.Equal(t, first.TotalCost, stored.TotalCost)
}

func TestPlanDeliveriesIgnoresCacheErrors(t *testing.T) {
	cache := newMemoryCache()
	cache.getErr = errors.New("cache down")

	run, err := PlanDeliveries(context.Background(), planRequest(t), PlanDependencies{Cache: cache})
	require.NoError(t, err)
	assert.NotNil(t, run)
}

func TestPlanDeliveriesInfeasibleCapacity(t *testing.T) {
	cache := newMemoryCache()
	req := planRequest(t)
	req.Trucks = []domain.Truck{domain.NewTruck(1, 3), domain.NewTruck(2, 3)}

	run, err := PlanDeliveries(context.Background(), req, PlanDependencies{Cache: cache})
	var capErr *domain.InfeasibleCapacityError
	require.True(t, errors.As(err, &capErr), "err = %v", err)
	assert.Nil(t, run)
	assert.Zero(t, cache.gets)
}

func TestPlanDeliveriesUnreachable(t *testing.T) {
	m := mustMatrix(t, [][]string{
		{"0", "4"},
		{"N", "0"},
	})

	run, err := PlanDeliveries(context.Background(), PlanDeliveriesRequest{
		Matrix: m,
		Trucks: []domain.Truck{domain.NewTruck(1, 1)},
	}, PlanDependencies{})
	require.NoError(t, err)

	assert.False(t, run.Reachable())
	assert.Equal(t, []int{1}, run.UnreachableTrucks())
}

func TestPlanKey(t *testing.T) {
	req := planRequest(t)
	k1 := PlanKey(req)
	assert.Len(t, k1, 64)
	assert.Equal(t, k1, PlanKey(req))

	req.MaxSweeps = 3
	assert.NotEqual(t, k1, PlanKey(req))
}
