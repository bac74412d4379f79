// Package shading projects module shadows onto the ground plane and
// estimates the output loss neighboring modules inflict on each other.
package shading

import (
	"math"

	"github.com/RubinhoSilva/bess-pro-sub010/pkg/geom"
	"github.com/RubinhoSilva/bess-pro-sub010/pkg/pvarray"
	"github.com/RubinhoSilva/bess-pro-sub010/pkg/solar"
	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/spatial/r3"
)

// Shadow is the ground-plane footprint a tilted module casts for one sun
// position. Vertices lie on Y=0 in the same order as the module corners.
type Shadow struct {
	ModuleID  string        `json:"module_id"`
	Vertices  []geom.Point3 `json:"vertices"`
	Area      float64       `json:"area"`
	Intensity float64       `json:"intensity"`
}

// horizonEps rejects sun directions too shallow to intersect the ground.
const horizonEps = 1e-6

// Project casts the module's four corners along the sun ray onto the
// ground plane. Returns nil when the sun is below the horizon or the sun
// direction is near-horizontal; callers treat that as "no shadow", not as
// an error.
func Project(m pvarray.Module, sun solar.Position) *Shadow {
	if !sun.Visible {
		return nil
	}
	dir := sun.Direction()
	if dir.Y < horizonEps {
		return nil
	}

	// Local corners of the footprint rectangle, tilted about the east-west
	// axis then swung to the installation azimuth.
	w2 := m.Size.WidthM / 2
	h2 := m.Size.HeightM / 2
	local := []r3.Vec{
		{X: -w2, Y: 0, Z: -h2},
		{X: w2, Y: 0, Z: -h2},
		{X: w2, Y: 0, Z: h2},
		{X: -w2, Y: 0, Z: h2},
	}

	tilt := r3.NewRotation(m.Rotation.TiltRad, r3.Vec{X: 1})
	azimuth := r3.NewRotation(-m.Rotation.AzimuthRad, r3.Vec{Y: 1})
	pos := m.Position.Vec()

	verts := make([]geom.Point3, 0, len(local))
	for _, c := range local {
		world := r3.Add(azimuth.Rotate(tilt.Rotate(c)), pos)
		// Slide along the (reversed) sun ray until Y=0.
		t := world.Y / dir.Y
		ground := r3.Sub(world, r3.Scale(t, dir))
		verts = append(verts, geom.Pt(ground.X, 0, ground.Z))
	}

	return &Shadow{
		ModuleID:  m.ID,
		Vertices:  verts,
		Area:      geom.ShoelaceXZ(verts),
		Intensity: math.Sin(unit.AngleFromDeg(sun.ElevationDeg).Rad()),
	}
}
