package repositories

import (
	"context"
	"errors"
	"sync"

	"truck-route-optimizer/internal/domain"
	"truck-route-optimizer/internal/ports"
)

// In-memory implementation of the RunRepository port. Runs are copied on the
// way in and out so callers cannot mutate stored state.
type MemoryRunRepository struct {
	mu   sync.RWMutex
	runs map[string]domain.PlanRun
}

func NewMemoryRunRepository() *MemoryRunRepository {
	return &MemoryRunRepository{runs: make(map[string]domain.PlanRun)}
}

func (m *MemoryRunRepository) SaveRun(_ context.Context, run *domain.PlanRun) error {
	if run == nil || run.RunID == "" {
		return errors.New("save run: run id must not be empty")
	}

	m.mu.Lock()
	m.runs[run.RunID] = copyRun(run)
	m.mu.Unlock()
	return nil
}

func (m *MemoryRunRepository) GetRun(_ context.Context, runID string) (*domain.PlanRun, error) {
	m.mu.RLock()
	run, ok := m.runs[runID]
	m.mu.RUnlock()
	if !ok {
		return nil, ports.ErrRunNotFound
	}

	out := copyRun(&run)
	return &out, nil
}

func copyRun(run *domain.PlanRun) domain.PlanRun {
	out := *run
	out.Routes = make([]domain.RoutePlan, len(run.Routes))
	for i, p := range run.Routes {
		out.Routes[i] = domain.RoutePlan{TruckID: p.TruckID, Stops: p.Stops.Clone(), Cost: p.Cost}
	}
	return out
}
