package cache

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truck-route-optimizer/internal/adapters/repositories"
	"truck-route-optimizer/internal/domain"
	"truck-route-optimizer/internal/platform/db"
)

func sampleRun() *domain.PlanRun {
	return &domain.PlanRun{
		RunID:     "run-1",
		Seed:      3,
		CreatedAt: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
		Routes: []domain.RoutePlan{
			{TruckID: 1, Stops: domain.Route{2, 1}, Cost: 12},
			{TruckID: 2, Stops: domain.Route{3}, Cost: math.Inf(1)},
		},
		TotalCost: math.Inf(1),
		Sweeps:    2,
		Converged: true,
	}
}

func TestRedisPlanCache(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedisPlanCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	_, ok, err := c.GetPlan(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.PutPlan(ctx, "k1", sampleRun()))
	assert.True(t, mr.Exists("plan:k1"))

	got, ok, err := c.GetPlan(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "run-1", got.RunID)
	assert.False(t, got.Reachable())
	assert.Equal(t, []int{2}, got.UnreachableTrucks())

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.GetPlan(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewRedisPlanCacheRejectsBadURL(t *testing.T) {
	_, err := NewRedisPlanCache("not a url", time.Minute)
	assert.Error(t, err)
}

func TestSqlitePlanCache(t *testing.T) {
	conn, err := db.OpenSqlite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, repositories.InitSchema(conn))

	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	c := NewSqlitePlanCache(conn, time.Minute)
	c.Now = func() time.Time { return now }
	ctx := context.Background()

	_, ok, err := c.GetPlan(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.PutPlan(ctx, "k1", sampleRun()))

	got, ok, err := c.GetPlan(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.Route{2, 1}, got.Routes[0].Stops)
	assert.Equal(t, 12.0, got.Routes[0].Cost)

	now = now.Add(2 * time.Minute)
	_, ok, err = c.GetPlan(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = c.GetPlan(ctx, " ")
	assert.Error(t, err)
}
