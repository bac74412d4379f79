// Package geom provides the 3-D primitives shared by the layout and shading
// packages. The ground plane is Y=0 with +Y up; the horizontal plane is
// spanned by +X (east) and +Z (north).
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point3 is a position in the engine's fixed 3-D frame.
type Point3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Pt is a shorthand constructor for Point3.
func Pt(x, y, z float64) Point3 {
	return Point3{X: x, Y: y, Z: z}
}

// Vec converts the point to a gonum r3 vector.
func (p Point3) Vec() r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}

// FromVec converts a gonum r3 vector back to a Point3.
func FromVec(v r3.Vec) Point3 {
	return Point3{X: v.X, Y: v.Y, Z: v.Z}
}

// Add returns p + q.
func (p Point3) Add(q Point3) Point3 {
	return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p - q.
func (p Point3) Sub(q Point3) Point3 {
	return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Scale returns p * s.
func (p Point3) Scale(s float64) Point3 {
	return Point3{p.X * s, p.Y * s, p.Z * s}
}

// Distance returns the Euclidean distance from p to q.
func (p Point3) Distance(q Point3) float64 {
	return r3.Norm(r3.Sub(q.Vec(), p.Vec()))
}

// DistanceXZ returns the horizontal (ground-plane) distance from p to q.
func (p Point3) DistanceXZ(q Point3) float64 {
	return math.Hypot(q.X-p.X, q.Z-p.Z)
}
