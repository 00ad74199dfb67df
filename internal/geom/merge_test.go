package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// hexagon returns a closed flat-top hexagon of circumradius r.
func hexagon(cx, cy, r float64) orb.Ring {
	h := r * math.Sqrt(3) / 2
	return orb.Ring{
		{cx + r, cy},
		{cx + r/2, cy + h},
		{cx - r/2, cy + h},
		{cx - r, cy},
		{cx - r/2, cy - h},
		{cx + r/2, cy - h},
		{cx + r, cy},
	}
}

func TestMergeCellsThreeHexagons(t *testing.T) {
	const r = 10.0
	h := r * math.Sqrt(3) / 2
	cells := []orb.Ring{
		hexagon(0, 0, r),
		hexagon(1.5*r, h, r),
		hexagon(1.5*r, -h, r),
	}

	poly, err := MergeCells(cells)
	if err != nil {
		t.Fatalf("MergeCells failed: %v", err)
	}
	if len(poly) != 1 {
		t.Fatalf("expected one ring, got %d", len(poly))
	}
	// 18 edges, 3 shared pairs cancel: 12 boundary vertices plus the closing point.
	if len(poly[0]) != 13 {
		t.Errorf("outline vertices: got %d, want 13", len(poly[0]))
	}
	if !poly[0][0].Equal(poly[0][len(poly[0])-1]) {
		t.Error("outline is not closed")
	}

	want := 3 * math.Abs(planar.Area(cells[0]))
	if got := math.Abs(planar.Area(poly)); math.Abs(got-want) > 1e-6 {
		t.Errorf("merged area: got %f, want %f", got, want)
	}

	anchor, dist := PoleOfInaccessibility(poly, 1.0)
	if !planar.PolygonContains(poly, anchor) {
		t.Errorf("label anchor %v is outside the outline", anchor)
	}
	if dist <= 0 {
		t.Errorf("label anchor distance: got %f, want > 0", dist)
	}
}

func TestMergeCellsSingleCell(t *testing.T) {
	poly, err := MergeCells([]orb.Ring{hexagon(5, 5, 2)})
	if err != nil {
		t.Fatalf("MergeCells failed: %v", err)
	}
	if len(poly) != 1 || len(poly[0]) != 7 {
		t.Errorf("expected a single 6-sided ring, got %v", poly)
	}
}

func TestMergeCellsSnapsNearlyEqualCorners(t *testing.T) {
	a := orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	b := orb.Ring{{10.01, 0}, {20, 0}, {20, 10}, {10.01, 10.02}, {10.01, 0}}
	poly, err := MergeCells([]orb.Ring{a, b})
	if err != nil {
		t.Fatalf("MergeCells failed: %v", err)
	}
	if len(poly) != 1 {
		t.Fatalf("expected one ring, got %d", len(poly))
	}
	// the seam vertices are collinear and dropped
	if len(poly[0]) != 5 {
		t.Errorf("outline vertices: got %d, want 5", len(poly[0]))
	}
}

func TestMergeCellsMalformed(t *testing.T) {
	const r = 10.0
	tests := []struct {
		name  string
		cells []orb.Ring
	}{
		{"empty", nil},
		{"disjoint", []orb.Ring{hexagon(0, 0, r), hexagon(100, 100, r)}},
		{"corner only", []orb.Ring{hexagon(0, 0, r), hexagon(2*r, 0, r)}},
		{"degenerate cell", []orb.Ring{{{0, 0}, {1, 1}, {0, 0}}}},
		{"edge shared three times", []orb.Ring{
			{{0, 0}, {1, 0}, {0, 1}, {0, 0}},
			{{0, 0}, {1, 0}, {0, -1}, {0, 0}},
			{{0, 0}, {1, 0}, {1, 1}, {0, 0}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MergeCells(tt.cells)
			if !errors.Is(err, ErrMalformedRegion) {
				t.Errorf("expected ErrMalformedRegion, got %v", err)
			}
		})
	}
}

func TestPoleOfInaccessibilityConcave(t *testing.T) {
	// U shape whose centroid falls in the notch
	u := orb.Polygon{{
		{0, 0}, {30, 0}, {30, 30}, {20, 30}, {20, 10}, {10, 10}, {10, 30}, {0, 30}, {0, 0},
	}}
	c, _ := planar.CentroidArea(u)
	if planar.PolygonContains(u, c) {
		t.Fatalf("test shape centroid %v should be outside", c)
	}
	p, d := PoleOfInaccessibility(u, 0.5)
	if !planar.PolygonContains(u, p) {
		t.Errorf("pole %v is outside the polygon", p)
	}
	if d < 4 {
		t.Errorf("pole distance: got %f, want >= 4", d)
	}
}

func TestPoleOfInaccessibilitySquare(t *testing.T) {
	sq := orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}}
	p, d := PoleOfInaccessibility(sq, 0.1)
	if math.Abs(p[0]-5) > 0.5 || math.Abs(p[1]-5) > 0.5 {
		t.Errorf("pole: got %v, want near (5, 5)", p)
	}
	if math.Abs(d-5) > 0.5 {
		t.Errorf("distance: got %f, want about 5", d)
	}
}

func TestGraticule(t *testing.T) {
	g := Graticule(10)
	// 37 meridians (-180..180) and 17 parallels (-80..80)
	if len(g) != 54 {
		t.Fatalf("lines: got %d, want 54", len(g))
	}
	for _, ls := range g {
		if len(ls) < 2 {
			t.Fatalf("line with %d points", len(ls))
		}
	}
	prime := g[18]
	if prime[0][0] != 0 || prime[0][1] != -90 || prime[len(prime)-1][1] != 90 {
		t.Errorf("prime meridian should span the poles, got %v .. %v", prime[0], prime[len(prime)-1])
	}
	minor := g[19]
	if minor[0][1] != -80 || minor[len(minor)-1][1] != 80 {
		t.Errorf("minor meridian should stop at ±80, got %v .. %v", minor[0], minor[len(minor)-1])
	}
}
