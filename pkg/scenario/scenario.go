// Package scenario loads analysis scenario files for the shade-analyzer
// CLI. A scenario bundles everything one engine run needs: the mounting
// area boundary, the module specification, the grid and installation
// parameters, the site location and the sampling horizon.
package scenario

import (
	"fmt"
	"os"
	"time"

	"github.com/RubinhoSilva/bess-pro-sub010/pkg/analysis"
	"github.com/RubinhoSilva/bess-pro-sub010/pkg/geom"
	"github.com/RubinhoSilva/bess-pro-sub010/pkg/pvarray"
	"gopkg.in/yaml.v3"
)

// Location is a geographic site position in decimal degrees.
type Location struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// Vertex is one mounting-area boundary point. Y carries the mounting
// height; the ground plane is Y=0.
type Vertex struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Scenario is one complete engine run description.
type Scenario struct {
	Name            string                     `yaml:"name"`
	Location        Location                   `yaml:"location"`
	Area            []Vertex                   `yaml:"area"`
	Module          pvarray.ModuleSpec         `yaml:"module"`
	Grid            pvarray.GridConfig         `yaml:"grid"`
	Installation    pvarray.InstallationParams `yaml:"installation"`
	OptimizeSpacing bool                       `yaml:"optimize_spacing"`
	Mode            string                     `yaml:"mode"`
	Reference       string                     `yaml:"reference"`
}

// Load reads and validates a YAML scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %q: %w", path, err)
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if len(s.Area) < 3 {
		return fmt.Errorf("mounting area needs at least 3 vertices, got %d", len(s.Area))
	}
	if s.Location.Latitude < -90 || s.Location.Latitude > 90 {
		return fmt.Errorf("latitude %g out of range", s.Location.Latitude)
	}
	if s.Location.Longitude < -180 || s.Location.Longitude > 180 {
		return fmt.Errorf("longitude %g out of range", s.Location.Longitude)
	}
	switch analysis.Mode(s.Mode) {
	case analysis.ModeCurrent, analysis.ModeDaily, analysis.ModeMonthly, analysis.ModeAnnual:
	default:
		return fmt.Errorf("unknown analysis mode %q", s.Mode)
	}
	if _, err := s.ReferenceTime(); err != nil {
		return err
	}
	return nil
}

// Polygon converts the area vertices to the engine boundary type.
func (s *Scenario) Polygon() geom.Polygon {
	pts := make([]geom.Point3, len(s.Area))
	for i, v := range s.Area {
		pts[i] = geom.Pt(v.X, v.Y, v.Z)
	}
	return geom.NewPolygon(pts...)
}

// ReferenceTime parses the scenario's RFC 3339 reference timestamp. The
// engine never reads the wall clock, so every scenario must pin one.
func (s *Scenario) ReferenceTime() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s.Reference)
	if err != nil {
		return time.Time{}, fmt.Errorf("reference must be RFC 3339 (e.g. 2025-06-21T12:00:00Z): %w", err)
	}
	return t, nil
}
