package shading

import (
	"math"

	"github.com/RubinhoSilva/bess-pro-sub010/pkg/pvarray"
	"github.com/RubinhoSilva/bess-pro-sub010/pkg/solar"
	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/spatial/r3"
)

// Tuning constants for the inter-module estimate. One set of constants is
// used everywhere: preview layouts and temporal analysis must agree.
const (
	// NeighborRadius bounds the pair search; modules farther apart than
	// this never shade each other (meters).
	NeighborRadius = 20.0

	// AlignmentThreshold is the minimum cosine between the target-to-other
	// direction and the sun direction for the other module to sit between
	// the target and the sun.
	AlignmentThreshold = 0.6

	// ShadingPenalty scales the coverage each casting neighbor contributes.
	ShadingPenalty = 0.5

	// MaxFactor caps the summed loss; a fully boxed-in module still
	// receives some diffuse light.
	MaxFactor = 0.9

	// minCastHeight keeps nearly-flat modules casting a nonzero shadow.
	minCastHeight = 0.1
)

// Calculator estimates fractional output loss on a module caused by
// shadows from its neighbors. The zero value is ready to use.
type Calculator struct{}

// NewCalculator returns an inter-module shading calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Factor returns the shading loss on target caused by the other modules,
// clamped to [0, MaxFactor]. At night (sun at or below the horizon) the
// factor is 0: no output, nothing to lose.
func (c *Calculator) Factor(target pvarray.Module, others []pvarray.Module, sun solar.Position) float64 {
	if sun.ElevationDeg <= 0 {
		return 0
	}
	elevRad := unit.AngleFromDeg(sun.ElevationDeg).Rad()
	dir := sun.Direction()

	total := 0.0
	for _, other := range others {
		if other.ID == target.ID {
			continue
		}
		offset := r3.Sub(other.Position.Vec(), target.Position.Vec())
		dist := r3.Norm(offset)
		if dist == 0 || dist > NeighborRadius {
			continue
		}

		// The neighbor only matters when it sits sunward of the target.
		alignment := r3.Dot(r3.Scale(1/dist, offset), dir)
		if alignment < AlignmentThreshold {
			continue
		}

		castHeight := math.Max(other.Size.DepthM*math.Sin(math.Abs(other.Rotation.TiltRad)), minCastHeight)
		shadowLen := castHeight / math.Tan(elevRad)
		if dist >= shadowLen {
			continue
		}
		coverage := math.Max(0, 1-dist/shadowLen)
		total += coverage * ShadingPenalty
	}

	return math.Min(math.Max(total, 0), MaxFactor)
}

// FactorAll computes Factor for every module against the rest of the list.
// Modules are hashed into NeighborRadius-sized ground-plane cells so each
// module only scans its 3x3 cell neighborhood; every pair within
// NeighborRadius still lands in a scanned cell, so results are identical
// to the brute-force pairing.
func (c *Calculator) FactorAll(modules []pvarray.Module, sun solar.Position) []float64 {
	factors := make([]float64, len(modules))
	if sun.ElevationDeg <= 0 || len(modules) < 2 {
		return factors
	}

	type cell struct{ x, z int }
	buckets := make(map[cell][]int, len(modules))
	key := func(m pvarray.Module) cell {
		return cell{
			x: int(math.Floor(m.Position.X / NeighborRadius)),
			z: int(math.Floor(m.Position.Z / NeighborRadius)),
		}
	}
	for i, m := range modules {
		k := key(m)
		buckets[k] = append(buckets[k], i)
	}

	neighbors := make([]pvarray.Module, 0, len(modules))
	for i, m := range modules {
		k := key(m)
		neighbors = neighbors[:0]
		for dx := -1; dx <= 1; dx++ {
			for dz := -1; dz <= 1; dz++ {
				for _, j := range buckets[cell{k.x + dx, k.z + dz}] {
					if j != i {
						neighbors = append(neighbors, modules[j])
					}
				}
			}
		}
		factors[i] = c.Factor(m, neighbors, sun)
	}
	return factors
}
