// Package mapfile reads problem files (distance table plus truck lines) and
// writes solution files.
package mapfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"truck-route-optimizer/internal/domain"
)

const truckPrefix = "truck"

// Problem is a parsed input file.
type Problem struct {
	Matrix *domain.DistanceMatrix
	Trucks []domain.Truck
}

// Load reads a problem from path. Files ending in .yaml or .yml use the YAML
// layout, everything else the text layout.
func Load(path string) (*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load problem: open %q: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		p, err := ParseYAML(f)
		if err != nil {
			return nil, fmt.Errorf("load problem %q: %w", path, err)
		}
		return p, nil
	default:
		p, err := Parse(f)
		if err != nil {
			return nil, fmt.Errorf("load problem %q: %w", path, err)
		}
		return p, nil
	}
}

// Parse reads the text layout: comma separated matrix rows (N for no road)
// followed by truck lines of the form truck_<id>#<capacity>.
func Parse(r io.Reader) (*Problem, error) {
	var (
		tokens [][]string
		trucks []domain.Truck
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, truckPrefix) {
			t, err := parseTruck(line, lineNo)
			if err != nil {
				return nil, err
			}
			trucks = append(trucks, t)
			continue
		}

		tokens = append(tokens, strings.Split(line, ","))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("parse problem: read: %w", err)
	}

	m, err := domain.ParseDistanceMatrix(tokens)
	if err != nil {
		return nil, fmt.Errorf("parse problem: %w", err)
	}

	return &Problem{Matrix: m, Trucks: trucks}, nil
}

// parseTruck reads "truck_<id>#<capacity>".
func parseTruck(line string, lineNo int) (domain.Truck, error) {
	bad := func(reason string) error {
		return &domain.MalformedMapError{Row: lineNo - 1, Col: -1, Token: line, Reason: "truck line " + strconv.Quote(line) + ": " + reason}
	}

	name, capRaw, ok := strings.Cut(line, "#")
	if !ok {
		return domain.Truck{}, bad("missing '#'")
	}

	_, idRaw, ok := strings.Cut(name, "_")
	if !ok {
		return domain.Truck{}, bad("missing '_' before truck id")
	}

	id, err := strconv.Atoi(strings.TrimSpace(idRaw))
	if err != nil {
		return domain.Truck{}, bad("truck id is not an integer")
	}

	capacity, err := strconv.Atoi(strings.TrimSpace(capRaw))
	if err != nil {
		return domain.Truck{}, bad("capacity is not an integer")
	}
	if capacity < 0 {
		return domain.Truck{}, bad("capacity must not be negative")
	}

	return domain.NewTruck(id, capacity), nil
}

type yamlTruck struct {
	ID       int `yaml:"id"`
	Capacity int `yaml:"capacity"`
}

type yamlProblem struct {
	Matrix [][]string  `yaml:"matrix"`
	Trucks []yamlTruck `yaml:"trucks"`
}

// ParseYAML reads the YAML layout:
//
//	matrix:
//	  - [0, 3, N]
//	  - ...
//	trucks:
//	  - {id: 1, capacity: 2}
func ParseYAML(r io.Reader) (*Problem, error) {
	var doc yamlProblem
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, &domain.MalformedMapError{Row: -1, Col: -1, Reason: "yaml: " + err.Error()}
	}

	m, err := domain.ParseDistanceMatrix(doc.Matrix)
	if err != nil {
		return nil, fmt.Errorf("parse yaml problem: %w", err)
	}

	trucks := make([]domain.Truck, 0, len(doc.Trucks))
	for _, t := range doc.Trucks {
		trucks = append(trucks, domain.NewTruck(t.ID, t.Capacity))
	}

	return &Problem{Matrix: m, Trucks: trucks}, nil
}
