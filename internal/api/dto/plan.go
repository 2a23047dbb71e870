package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// MatrixToken is one distance table cell. It accepts a JSON number, a string
// ("N" or digits) or null, which means no road.
type MatrixToken string

func (t *MatrixToken) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*t = "N"
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = MatrixToken(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("matrix token %s: %w", b, err)
		}
		if _, err := strconv.Atoi(n.String()); err != nil {
			return fmt.Errorf("matrix token %s is not an integer", b)
		}
		*t = MatrixToken(n.String())
	}
	return nil
}

type TruckRequest struct {
	TruckID  int `json:"truck_id"`
	Capacity int `json:"capacity"`
}

type PlanRequest struct {
	Matrix    [][]MatrixToken `json:"matrix"`
	Trucks    []TruckRequest  `json:"trucks"`
	Seed      *int64          `json:"seed"`
	MaxSweeps *int            `json:"max_sweeps"`
}

// Tokens converts the matrix to the textual grid understood by the domain.
func (r PlanRequest) Tokens() [][]string {
	out := make([][]string, len(r.Matrix))
	for i, row := range r.Matrix {
		out[i] = make([]string, len(row))
		for j, tok := range row {
			out[i][j] = string(tok)
		}
	}
	return out
}

type RouteResponse struct {
	TruckID   int      `json:"truck_id"`
	Stops     []int    `json:"stops"`
	Labels    []string `json:"labels"`
	Cost      *float64 `json:"cost"`
	Reachable bool     `json:"reachable"`
}

type PlanResponse struct {
	RunID             string          `json:"run_id"`
	Seed              int64           `json:"seed"`
	MaxSweeps         int             `json:"max_sweeps"`
	CreatedAt         time.Time       `json:"created_at"`
	TotalCost         *float64        `json:"total_cost"`
	Reachable         bool            `json:"reachable"`
	UnreachableTrucks []int           `json:"unreachable_trucks,omitempty"`
	Sweeps            int             `json:"sweeps"`
	Improvements      int             `json:"improvements"`
	Evaluations       int             `json:"evaluations"`
	Converged         bool            `json:"converged"`
	Routes            []RouteResponse `json:"routes"`
}
