package metrics

import (
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRun(t *testing.T) {
	okBefore := testutil.ToFloat64(PlanRuns.WithLabelValues("ok"))
	unreachableBefore := testutil.ToFloat64(PlanRuns.WithLabelValues("unreachable"))
	improvementsBefore := testutil.ToFloat64(Improvements)

	ObserveRun(3, 4, 42, true)
	ObserveRun(1, 0, math.Inf(1), false)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(PlanRuns.WithLabelValues("ok")))
	assert.Equal(t, unreachableBefore+1, testutil.ToFloat64(PlanRuns.WithLabelValues("unreachable")))
	assert.Equal(t, improvementsBefore+4, testutil.ToFloat64(Improvements))
	assert.Equal(t, 42.0, testutil.ToFloat64(SolutionCost))
}

func TestRegisterDefaultIsIdempotent(t *testing.T) {
	RegisterDefault()
	RegisterDefault()

	families, err := Registry.Gather()
	assert.NoError(t, err)
	assert.NotEmpty(t, families)
}
