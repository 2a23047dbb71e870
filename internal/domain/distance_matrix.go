package domain

import (
	"math"
	"strconv"
	"strings"
)

// Depot is the node every route starts and ends at.
const Depot = 0

// NoRoad marks an absent edge in a textual distance table.
const NoRoad = "N"

// DistanceMatrix holds directed travel costs between map nodes.
// Absent edges are stored as +Inf. It is never mutated after construction.
type DistanceMatrix struct {
	n     int
	costs []float64
}

// Build a matrix from a textual grid where each token is NoRoad or an integer >= 0.
func ParseDistanceMatrix(tokens [][]string) (*DistanceMatrix, error) {
	n := len(tokens)
	if n == 0 {
		return nil, &MalformedMapError{Row: -1, Col: -1, Reason: "distance table is empty"}
	}

	costs := make([]float64, 0, n*n)
	for i, row := range tokens {
		if len(row) != n {
			return nil, &MalformedMapError{
				Row:    i,
				Col:    -1,
				Reason: "expected " + strconv.Itoa(n) + " columns, got " + strconv.Itoa(len(row)),
			}
		}

		for j, raw := range row {
			tok := strings.TrimSpace(raw)
			if tok == NoRoad {
				costs = append(costs, math.Inf(1))
				continue
			}

			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, &MalformedMapError{Row: i, Col: j, Token: raw, Reason: "not an integer or " + NoRoad}
			}
			if v < 0 {
				return nil, &MalformedMapError{Row: i, Col: j, Token: raw, Reason: "negative cost"}
			}
			costs = append(costs, float64(v))
		}
	}

	return &DistanceMatrix{n: n, costs: costs}, nil
}

// Build a matrix from numeric costs. +Inf is accepted as "no road".
func NewDistanceMatrix(costs [][]float64) (*DistanceMatrix, error) {
	n := len(costs)
	if n == 0 {
		return nil, &MalformedMapError{Row: -1, Col: -1, Reason: "distance table is empty"}
	}

	flat := make([]float64, 0, n*n)
	for i, row := range costs {
		if len(row) != n {
			return nil, &MalformedMapError{
				Row:    i,
				Col:    -1,
				Reason: "expected " + strconv.Itoa(n) + " columns, got " + strconv.Itoa(len(row)),
			}
		}
		for j, v := range row {
			if math.IsNaN(v) || v < 0 {
				return nil, &MalformedMapError{
					Row:    i,
					Col:    j,
					Token:  strconv.FormatFloat(v, 'g', -1, 64),
					Reason: "cost must be non-negative",
				}
			}
			flat = append(flat, v)
		}
	}

	return &DistanceMatrix{n: n, costs: flat}, nil
}

// Size returns the number of nodes, depot included.
func (m *DistanceMatrix) Size() int { return m.n }

// Cost returns the travel cost from u to v, or +Inf when there is no road.
func (m *DistanceMatrix) Cost(u, v int) float64 {
	return m.costs[u*m.n+v]
}

// DeliveryPoints returns nodes 1..n-1 in ascending order.
func (m *DistanceMatrix) DeliveryPoints() []int {
	points := make([]int, 0, m.n-1)
	for p := 1; p < m.n; p++ {
		points = append(points, p)
	}
	return points
}

// Tokens renders the matrix back into the textual grid accepted by ParseDistanceMatrix.
func (m *DistanceMatrix) Tokens() [][]string {
	out := make([][]string, m.n)
	for i := 0; i < m.n; i++ {
		out[i] = make([]string, m.n)
		for j := 0; j < m.n; j++ {
			c := m.Cost(i, j)
			if math.IsInf(c, 1) {
				out[i][j] = NoRoad
				continue
			}
			out[i][j] = strconv.FormatFloat(c, 'f', -1, 64)
		}
	}
	return out
}
