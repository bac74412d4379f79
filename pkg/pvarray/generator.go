package pvarray

import (
	"fmt"
	"math"

	"github.com/RubinhoSilva/bess-pro-sub010/pkg/geom"
	"github.com/RubinhoSilva/bess-pro-sub010/pkg/solar"
	"github.com/soniakeys/unit"
)

// ShadingEvaluator computes per-module shading factors for a full module
// list under one sun position. Satisfied by *shading.Calculator.
type ShadingEvaluator interface {
	FactorAll(modules []Module, sun solar.Position) []float64
}

// minSunElevRad floors the sun elevation used for shadow-length math so a
// sun at the horizon doesn't drive the optimized row spacing to infinity.
const minSunElevRad = 0.01

// obstructedThreshold marks modules losing more than half their output.
const obstructedThreshold = 0.5

// Generator lays out module grids and annotates them with inter-module
// shading factors.
type Generator struct {
	shading ShadingEvaluator
}

// NewGenerator returns a Generator using the given shading evaluator.
func NewGenerator(eval ShadingEvaluator) *Generator {
	return &Generator{shading: eval}
}

// Generate lays out rows x columns modules centered on the area's centroid.
//
// The grid is bounded only by the area's axis-aligned bounding box, not
// clipped to the true polygon shape. When the grid footprint exceeds the
// bounding box the full grid is still returned with overflow=true; the
// caller decides how to warn.
//
// Module lists are deterministic: identical inputs produce identical output,
// including IDs.
func (g *Generator) Generate(
	area geom.Polygon,
	spec ModuleSpec,
	grid GridConfig,
	inst InstallationParams,
	sun solar.Position,
	optimizeSpacing bool,
) (modules []Module, overflow bool, err error) {
	if err := grid.validate(); err != nil {
		return nil, false, err
	}
	if err := spec.validate(); err != nil {
		return nil, false, err
	}

	bounds := area.Bounds()
	centroid := area.Centroid()

	footW, footH := spec.WidthM, spec.HeightM
	if grid.Orientation == OrientationLandscape {
		footW, footH = footH, footW
	}

	tiltRad := unit.AngleFromDeg(inst.TiltDeg).Rad()
	azRad := unit.AngleFromDeg(inst.AzimuthDeg).Rad()

	rowSpacing := grid.RowSpacingM
	if optimizeSpacing {
		rowSpacing = math.Max(OptimalRowSpacing(tiltRad, footH, sun.ElevationDeg), inst.MinRowSpacingM)
	}

	totalW := float64(grid.Columns)*footW + float64(grid.Columns-1)*grid.ModuleSpacingM
	totalH := float64(grid.Rows)*footH + float64(grid.Rows-1)*rowSpacing
	overflow = totalW > bounds.Width() || totalH > bounds.Depth()

	// Row-major placement, left-to-right then north-to-south, centered on
	// the centroid. Tilting the panel lifts its center by sin(tilt)*depth/2.
	startX := centroid.X - totalW/2 + footW/2
	startZ := centroid.Z + totalH/2 - footH/2
	y := centroid.Y + inst.MountHeightM + math.Sin(tiltRad)*spec.DepthM/2

	modules = make([]Module, 0, grid.Rows*grid.Columns)
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Columns; col++ {
			modules = append(modules, Module{
				ID: moduleID(row, col),
				Position: geom.Pt(
					startX+float64(col)*(footW+grid.ModuleSpacingM),
					y,
					startZ-float64(row)*(footH+rowSpacing),
				),
				Rotation:               Rotation{TiltRad: tiltRad, AzimuthRad: azRad},
				Size:                   Size{WidthM: footW, HeightM: footH, DepthM: spec.DepthM},
				RatedPowerWatts:        spec.RatedPowerWatts,
				EffectiveEfficiencyPct: spec.RatedEfficiencyPct,
			})
		}
	}

	factors := g.shading.FactorAll(modules, sun)
	for i := range modules {
		f := factors[i]
		modules[i].ShadingFactor = f
		modules[i].Obstructed = f > obstructedThreshold
		modules[i].EffectiveEfficiencyPct = spec.RatedEfficiencyPct * (1 - f*0.5)
	}

	return modules, overflow, nil
}

// OptimalRowSpacing returns the row pitch that keeps one row out of the
// shadow cast by the row in front of it, with a 20% margin. footHeight is
// the inclined footprint dimension in meters.
func OptimalRowSpacing(tiltRad, footHeight, sunElevationDeg float64) float64 {
	elevRad := math.Max(unit.AngleFromDeg(sunElevationDeg).Rad(), minSunElevRad)
	shadowLen := footHeight * math.Sin(tiltRad) / math.Tan(elevRad)
	return shadowLen * 1.2
}

func moduleID(row, col int) string {
	return fmt.Sprintf("module-%d-%d", row, col)
}
