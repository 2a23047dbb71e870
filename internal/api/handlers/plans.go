package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"truck-route-optimizer/internal/adapters/codec"
	"truck-route-optimizer/internal/adapters/mapfile"
	"truck-route-optimizer/internal/api/dto"
	"truck-route-optimizer/internal/domain"
	"truck-route-optimizer/internal/ports"
	"truck-route-optimizer/internal/services"
)

const (
	maxNodes     = 500
	maxBodyBytes = 8 << 20
)

type PlanHandler struct {
	Runs             ports.RunRepository
	Cache            ports.PlanCache
	DefaultSeed      int64
	DefaultMaxSweeps int
	// Timeout bounds one planning request; 0 leaves it to the client.
	Timeout          time.Duration
}

// Plan parses a problem from the request body, runs the optimizer and
// returns the resulting run.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Matrix) > maxNodes {
		writeError(w, r, http.StatusBadRequest, "matrix must have at most 500 nodes")
		return
	}

	matrix, err := domain.ParseDistanceMatrix(req.Tokens())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	trucks := make([]domain.Truck, 0, len(req.Trucks))
	for _, t := range req.Trucks {
		trucks = append(trucks, domain.NewTruck(t.TruckID, t.Capacity))
	}

	seed := h.DefaultSeed
	if req.Seed != nil {
		seed = *req.Seed
	}
	maxSweeps := h.DefaultMaxSweeps
	if req.MaxSweeps != nil {
		if *req.MaxSweeps < 0 {
			writeError(w, r, http.StatusBadRequest, "max_sweeps must not be negative")
			return
		}
		maxSweeps = *req.MaxSweeps
	}

	svcReq := services.PlanDeliveriesRequest{
		Matrix:    matrix,
		Trucks:    trucks,
		Seed:      seed,
		MaxSweeps: maxSweeps,
	}

	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	run, err := services.PlanDeliveries(ctx, svcReq, services.PlanDependencies{Runs: h.Runs, Cache: h.Cache})
	if err != nil {
		if isInputError(err) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, context.DeadlineExceeded) {
			writeError(w, r, http.StatusServiceUnavailable, "planning timed out; lower max_sweeps or retry")
			return
		}
		log.Printf("plan deliveries failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toPlanResponse(run))
}

// Get returns a stored run by ID.
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.Runs == nil {
		writeError(w, r, http.StatusNotFound, "run storage is disabled")
		return
	}

	run, err := h.Runs.GetRun(r.Context(), r.PathValue("id"))
	if errors.Is(err, ports.ErrRunNotFound) {
		writeError(w, r, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		log.Printf("get run failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toPlanResponse(run))
}

func isInputError(err error) bool {
	var mapErr *domain.MalformedMapError
	var capErr *domain.InfeasibleCapacityError
	return errors.As(err, &mapErr) ||
		errors.As(err, &capErr) ||
		errors.Is(err, domain.ErrDuplicateTruck) ||
		errors.Is(err, domain.ErrNegativeCapacity)
}

func toPlanResponse(run *domain.PlanRun) dto.PlanResponse {
	res := dto.PlanResponse{
		RunID:             run.RunID,
		Seed:              run.Seed,
		MaxSweeps:         run.MaxSweeps,
		CreatedAt:         run.CreatedAt,
		TotalCost:         codec.CostPtr(run.TotalCost),
		Reachable:         run.Reachable(),
		UnreachableTrucks: run.UnreachableTrucks(),
		Sweeps:            run.Sweeps,
		Improvements:      run.Improvements,
		Evaluations:       run.Evaluations,
		Converged:         run.Converged,
		Routes:            make([]dto.RouteResponse, 0, len(run.Routes)),
	}

	for _, p := range run.Routes {
		stops := make([]int, len(p.Stops))
		labels := make([]string, len(p.Stops))
		for i, s := range p.Stops {
			stops[i] = s
			labels[i] = mapfile.Label(s)
		}

		res.Routes = append(res.Routes, dto.RouteResponse{
			TruckID:   p.TruckID,
			Stops:     stops,
			Labels:    labels,
			Cost:      codec.CostPtr(p.Cost),
			Reachable: p.Reachable(),
		})
	}

	return res
}
