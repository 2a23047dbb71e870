package mapfile

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"truck-route-optimizer/internal/domain"
)

// Unreachable replaces the total cost line when some route has a missing road.
const Unreachable = "unreachable"

// Label encodes a node as letters: 0->a, 25->z, 26->aa, 27->ab, ...
func Label(node int) string {
	var buf []byte
	for n := node; ; n = n/26 - 1 {
		buf = append(buf, byte('a'+n%26))
		if n < 26 {
			break
		}
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// FormatCost renders a total cost, or Unreachable for +Inf.
func FormatCost(c float64) string {
	if math.IsInf(c, 1) {
		return Unreachable
	}
	return strconv.FormatFloat(c, 'f', -1, 64)
}

// Write renders one truck_<id>#<labels> line per route followed by the total cost.
func Write(w io.Writer, run *domain.PlanRun) error {
	bw := bufio.NewWriter(w)
	for _, r := range run.Routes {
		labels := make([]string, 0, len(r.Stops))
		for _, p := range r.Stops {
			labels = append(labels, Label(p))
		}
		if _, err := fmt.Fprintf(bw, "%s_%d#%s\n", truckPrefix, r.TruckID, strings.Join(labels, ",")); err != nil {
			return fmt.Errorf("write solution: %w", err)
		}
	}
	if _, err := fmt.Fprintln(bw, FormatCost(run.TotalCost)); err != nil {
		return fmt.Errorf("write solution: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write solution: flush: %w", err)
	}
	return nil
}

// Save writes the solution file at path.
func Save(path string, run *domain.PlanRun) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save solution: create %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("save solution: close %q: %w", path, cerr)
		}
	}()

	return Write(f, run)
}
