package projection

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func near(a, b orb.Point, tol float64) bool {
	return math.Abs(a[0]-b[0]) <= tol && math.Abs(a[1]-b[1]) <= tol
}

func TestMercator(t *testing.T) {
	p := NewMercator()
	w, h := 400.0, 200.0
	p.SetScale(w / 5)
	p.SetTranslate(orb.Point{w / 2, h / 2})

	s, ok := p.Project(orb.Point{0, 0})
	if !ok || !near(s, orb.Point{200, 100}, 1e-9) {
		t.Errorf("origin: got %v, %v", s, ok)
	}
	s, _ = p.Project(orb.Point{180, 0})
	if want := 200 + 80*math.Pi; math.Abs(s[0]-want) > 1e-6 {
		t.Errorf("antimeridian x: got %f, want %f", s[0], want)
	}
	// north is up
	n, _ := p.Project(orb.Point{0, 45})
	if n[1] >= 100 {
		t.Errorf("45N should be above the center, got y=%f", n[1])
	}

	for _, ll := range []orb.Point{{-73.9, 40.7}, {139.7, 35.7}, {-58.4, -34.6}} {
		s, ok := p.Project(ll)
		if !ok {
			t.Fatalf("%v did not project", ll)
		}
		back, ok := p.Invert(s)
		if !ok || !near(back, ll, 1e-6) {
			t.Errorf("round trip %v: got %v", ll, back)
		}
	}
}

func TestConicEqualAreaRoundTrip(t *testing.T) {
	p := NewConicEqualArea([2]float64{20, 50}, 100, orb.Point{0, 35})
	p.SetTranslate(orb.Point{0, 0})
	s, _ := p.Project(orb.Point{-100, 35})
	if !near(s, orb.Point{}, 1e-9) {
		t.Errorf("center should map to translate, got %v", s)
	}
	for _, ll := range []orb.Point{{-120, 30}, {-80, 45}, {-100, 10}} {
		s, _ := p.Project(ll)
		back, ok := p.Invert(s)
		if !ok || !near(back, ll, 1e-6) {
			t.Errorf("round trip %v: got %v", ll, back)
		}
	}

	cyl := NewConicEqualArea([2]float64{-30, 30}, 0, orb.Point{})
	s, ok := cyl.Project(orb.Point{10, 20})
	back, _ := cyl.Invert(s)
	if !ok || !near(back, orb.Point{10, 20}, 1e-6) {
		t.Errorf("cylindrical round trip: got %v", back)
	}
}

func TestAlbersUSA(t *testing.T) {
	p := NewAlbersUSA()

	s, ok := p.Project(orb.Point{-96.6, 38.7})
	if !ok || !near(s, orb.Point{480, 250}, 1e-6) {
		t.Errorf("center: got %v, %v", s, ok)
	}

	tests := []struct {
		name string
		ll   orb.Point
	}{
		{"kansas", orb.Point{-98, 38}},
		{"maine", orb.Point{-69, 45}},
		{"anchorage", orb.Point{-149.9, 61.2}},
		{"honolulu", orb.Point{-157.86, 21.3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := p.Project(tt.ll)
			if !ok {
				t.Fatalf("%v did not project", tt.ll)
			}
			back, ok := p.Invert(s)
			if !ok || !near(back, tt.ll, 1e-6) {
				t.Errorf("round trip: got %v", back)
			}
		})
	}

	// anchorage lands in the lower-left inset
	a, _ := p.Project(orb.Point{-149.9, 61.2})
	if a[0] >= 480 || a[1] <= 250 {
		t.Errorf("alaska inset should be below-left of center, got %v", a)
	}

	for _, ll := range []orb.Point{{-0.1, 51.5}, {-66.1, 18.4}} {
		if s, ok := p.Project(ll); ok {
			t.Errorf("%v should not project, got %v", ll, s)
		}
	}
}

func TestFitSize(t *testing.T) {
	p := NewIdentity()
	sq := orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}}
	FitSize(p, 100, 50, sq)

	if math.Abs(p.Scale()-5) > 1e-9 {
		t.Errorf("scale: got %f, want 5", p.Scale())
	}
	b, ok := Path{Projection: p}.Bounds(sq)
	if !ok {
		t.Fatal("no bounds")
	}
	want := orb.Bound{Min: orb.Point{25, 0}, Max: orb.Point{75, 50}}
	if !near(b.Min, want.Min, 1e-9) || !near(b.Max, want.Max, 1e-9) {
		t.Errorf("fitted bounds: got %v, want %v", b, want)
	}
}

func TestFitSizeAlbersUSA(t *testing.T) {
	p := NewAlbersUSA()
	lower48 := orb.Polygon{{{-124, 48}, {-67, 47}, {-80, 25}, {-117, 32}, {-124, 48}}}
	FitSize(p, 960, 600, lower48)

	b, ok := Path{Projection: p}.Bounds(lower48)
	if !ok {
		t.Fatal("no bounds")
	}
	const tol = 1e-6
	if b.Min[0] < -tol || b.Min[1] < -tol || b.Max[0] > 960+tol || b.Max[1] > 600+tol {
		t.Errorf("fitted bounds escape the viewport: %v", b)
	}
	if math.Abs(b.Max[0]-b.Min[0]-960) > tol && math.Abs(b.Max[1]-b.Min[1]-600) > tol {
		t.Errorf("fitted bounds touch neither axis: %v", b)
	}
}

func TestPathDropsUnprojectable(t *testing.T) {
	p := NewAlbersUSA()
	in := orb.MultiPolygon{
		{{{-100, 40}, {-90, 40}, {-90, 45}, {-100, 40}}},
		// London does not project
		{{{-1, 51}, {0, 51}, {0, 52}, {-1, 51}}},
	}
	before := orb.Clone(in)

	out := Path{Projection: p}.Geometry(in)
	mp, ok := out.(orb.MultiPolygon)
	if !ok {
		t.Fatalf("got %T", out)
	}
	if len(mp) != 1 {
		t.Errorf("parts: got %d, want 1", len(mp))
	}
	if !in.Equal(before.(orb.MultiPolygon)) {
		t.Error("input geometry was modified")
	}

	if g := (Path{Projection: p}).Geometry(orb.Point{-1, 51}); g != nil {
		t.Errorf("unprojectable point: got %v", g)
	}
}

func TestPathCentroidAndSimplify(t *testing.T) {
	p := NewIdentity()
	sq := orb.Polygon{{{0, 0}, {5, 0.001}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}}

	c, ok := Path{Projection: p}.Centroid(sq)
	if !ok || !near(c, orb.Point{5, 5}, 0.01) {
		t.Errorf("centroid: got %v", c)
	}

	out := Path{Projection: p, Tolerance: 0.5}.Geometry(sq).(orb.Polygon)
	if len(out[0]) != 5 {
		t.Errorf("simplified ring: got %d points, want 5", len(out[0]))
	}
}
