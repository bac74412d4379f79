package geom

import "math"

// Polygon is a closed planar boundary defined by its vertices in order.
// Mounting areas are supplied this way; at least 3 vertices are required
// for any of the derived quantities to be meaningful.
type Polygon struct {
	Vertices []Point3
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Point3) Polygon {
	return Polygon{Vertices: pts}
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.Vertices)
}

// IsDegenerate returns true if the polygon has fewer than 3 vertices.
func (p Polygon) IsDegenerate() bool {
	return len(p.Vertices) < 3
}

// Bounds is an axis-aligned bounding box in the X/Z ground plane.
type Bounds struct {
	MinX, MaxX float64
	MinZ, MaxZ float64
}

// Width returns the X extent of the bounds.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Depth returns the Z extent of the bounds.
func (b Bounds) Depth() float64 { return b.MaxZ - b.MinZ }

// ContainsXZ reports whether the point's ground-plane projection lies
// inside the bounds.
func (b Bounds) ContainsXZ(p Point3) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Z >= b.MinZ && p.Z <= b.MaxZ
}

// Bounds returns the axis-aligned X/Z bounding box of the polygon.
func (p Polygon) Bounds() Bounds {
	if len(p.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinX: p.Vertices[0].X, MaxX: p.Vertices[0].X,
		MinZ: p.Vertices[0].Z, MaxZ: p.Vertices[0].Z,
	}
	for _, v := range p.Vertices[1:] {
		b.MinX = math.Min(b.MinX, v.X)
		b.MaxX = math.Max(b.MaxX, v.X)
		b.MinZ = math.Min(b.MinZ, v.Z)
		b.MaxZ = math.Max(b.MaxZ, v.Z)
	}
	return b
}

// Centroid returns the average of the vertices. The Y component carries the
// mounting height of the area.
func (p Polygon) Centroid() Point3 {
	n := len(p.Vertices)
	if n == 0 {
		return Point3{}
	}
	var sum Point3
	for _, v := range p.Vertices {
		sum = sum.Add(v)
	}
	return sum.Scale(1.0 / float64(n))
}

// Area returns the unsigned ground-plane area using the shoelace formula
// over the (X,Z) projection of the vertices.
func (p Polygon) Area() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p.Vertices[i].X * p.Vertices[j].Z
		area -= p.Vertices[j].X * p.Vertices[i].Z
	}
	return math.Abs(area) / 2
}

// ShoelaceXZ returns the unsigned area of an arbitrary vertex loop projected
// onto the ground plane. Shadow footprints reuse this without building a
// Polygon first.
func ShoelaceXZ(pts []Point3) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += pts[i].X * pts[j].Z
		area -= pts[j].X * pts[i].Z
	}
	return math.Abs(area) / 2
}
