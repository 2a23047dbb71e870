package domain

import (
	"errors"
	"math"
	"testing"
)

func TestParseDistanceMatrix(t *testing.T) {
	m, err := ParseDistanceMatrix([][]string{
		{"0", " 3", "N"},
		{"4", "0", "2"},
		{"N", "1 ", "0"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Size() != 3 {
		t.Fatalf("size = %d, want 3", m.Size())
	}
	if got := m.Cost(0, 1); got != 3 {
		t.Errorf("cost(0,1) = %v, want 3", got)
	}
	if got := m.Cost(1, 0); got != 4 {
		t.Errorf("cost(1,0) = %v, want 4 (matrix is directed)", got)
	}
	if got := m.Cost(0, 2); !math.IsInf(got, 1) {
		t.Errorf("cost(0,2) = %v, want +Inf", got)
	}
	if pts := m.DeliveryPoints(); len(pts) != 2 || pts[0] != 1 || pts[1] != 2 {
		t.Errorf("delivery points = %v, want [1 2]", pts)
	}

	tokens := m.Tokens()
	if tokens[0][2] != NoRoad || tokens[0][1] != "3" {
		t.Errorf("tokens = %v", tokens)
	}
}

func TestParseDistanceMatrixMalformed(t *testing.T) {
	tests := []struct {
		name   string
		tokens [][]string
		row    int
		col    int
	}{
		{name: "empty", tokens: nil, row: -1, col: -1},
		{name: "short row", tokens: [][]string{{"0", "1"}, {"1"}}, row: 1, col: -1},
		{name: "not square", tokens: [][]string{{"0", "1", "2"}, {"1", "0", "2"}}, row: 0, col: -1},
		{name: "bad token", tokens: [][]string{{"0", "x"}, {"1", "0"}}, row: 0, col: 1},
		{name: "negative", tokens: [][]string{{"0", "1"}, {"-1", "0"}}, row: 1, col: 0},
		{name: "lowercase n", tokens: [][]string{{"0", "n"}, {"1", "0"}}, row: 0, col: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDistanceMatrix(tc.tokens)
			var mapErr *MalformedMapError
			if !errors.As(err, &mapErr) {
				t.Fatalf("err = %v, want *MalformedMapError", err)
			}
			if mapErr.Row != tc.row || mapErr.Col != tc.col {
				t.Errorf("position = (%d,%d), want (%d,%d)", mapErr.Row, mapErr.Col, tc.row, tc.col)
			}
		})
	}
}

func TestNewDistanceMatrixRejectsNegative(t *testing.T) {
	_, err := NewDistanceMatrix([][]float64{{0, -2}, {1, 0}})
	var mapErr *MalformedMapError
	if !errors.As(err, &mapErr) {
		t.Fatalf("err = %v, want *MalformedMapError", err)
	}

	m, err := NewDistanceMatrix([][]float64{{0, math.Inf(1)}, {1, 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsInf(m.Cost(0, 1), 1) {
		t.Fatalf("cost(0,1) = %v, want +Inf", m.Cost(0, 1))
	}
}
