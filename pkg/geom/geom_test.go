package geom

import (
	"math"
	"testing"
)

func TestPolygonBounds(t *testing.T) {
	tests := []struct {
		name string
		poly Polygon
		want Bounds
	}{
		{
			name: "axis-aligned rectangle",
			poly: NewPolygon(Pt(-5, 0, -3), Pt(5, 0, -3), Pt(5, 0, 3), Pt(-5, 0, 3)),
			want: Bounds{MinX: -5, MaxX: 5, MinZ: -3, MaxZ: 3},
		},
		{
			name: "offset triangle",
			poly: NewPolygon(Pt(1, 2, 1), Pt(4, 2, 1), Pt(2, 2, 6)),
			want: Bounds{MinX: 1, MaxX: 4, MinZ: 1, MaxZ: 6},
		},
		{
			name: "empty polygon",
			poly: Polygon{},
			want: Bounds{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.poly.Bounds()
			if got != tt.want {
				t.Errorf("Bounds() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPolygonCentroid(t *testing.T) {
	poly := NewPolygon(Pt(-4, 1.5, -2), Pt(4, 1.5, -2), Pt(4, 1.5, 2), Pt(-4, 1.5, 2))
	c := poly.Centroid()
	if c.X != 0 || c.Z != 0 {
		t.Errorf("centroid = (%g, %g), want origin", c.X, c.Z)
	}
	if math.Abs(c.Y-1.5) > 1e-12 {
		t.Errorf("centroid height = %g, want 1.5", c.Y)
	}
}

func TestPolygonArea(t *testing.T) {
	tests := []struct {
		name string
		poly Polygon
		want float64
	}{
		{
			name: "10x6 rectangle",
			poly: NewPolygon(Pt(-5, 0, -3), Pt(5, 0, -3), Pt(5, 0, 3), Pt(-5, 0, 3)),
			want: 60,
		},
		{
			name: "clockwise winding gives same unsigned area",
			poly: NewPolygon(Pt(-5, 0, 3), Pt(5, 0, 3), Pt(5, 0, -3), Pt(-5, 0, -3)),
			want: 60,
		},
		{
			name: "right triangle",
			poly: NewPolygon(Pt(0, 0, 0), Pt(4, 0, 0), Pt(0, 0, 3)),
			want: 6,
		},
		{
			name: "degenerate",
			poly: NewPolygon(Pt(0, 0, 0), Pt(1, 0, 1)),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.poly.Area(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Area() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestBoundsContainsXZ(t *testing.T) {
	b := Bounds{MinX: -2, MaxX: 2, MinZ: -1, MaxZ: 1}
	if !b.ContainsXZ(Pt(0, 99, 0)) {
		t.Error("center should be contained regardless of height")
	}
	if b.ContainsXZ(Pt(3, 0, 0)) {
		t.Error("point east of bounds should not be contained")
	}
	if !b.ContainsXZ(Pt(2, 0, 1)) {
		t.Error("boundary points are inclusive")
	}
}

func TestPointOps(t *testing.T) {
	p := Pt(1, 2, 3)
	q := Pt(4, 6, 3)
	if d := p.Distance(q); math.Abs(d-5) > 1e-12 {
		t.Errorf("Distance = %g, want 5", d)
	}
	if d := p.DistanceXZ(q); math.Abs(d-3) > 1e-12 {
		t.Errorf("DistanceXZ = %g, want 3", d)
	}
	if got := FromVec(p.Vec()); got != p {
		t.Errorf("Vec round trip = %+v, want %+v", got, p)
	}
}
