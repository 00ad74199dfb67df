package chart

import (
	"math"
	"testing"
	"time"

	"github.com/paulmach/orb"

	"atlas/internal/canvas"
	"atlas/internal/projection"
)

type testChart struct {
	regions []orb.Polygon
	dots    []orb.Point
	proj    *projection.Identity
	log     []string
}

func (tc *testChart) Build(ctl *Controller) {
	tc.proj = projection.NewIdentity()
	r := ctl.Renderer()
	r.Bind("regions", tc.proj, len(tc.regions), func(i int) *Shape {
		st := DefaultStyle()
		st.Fill = "#336699"
		return &Shape{ID: string(rune('a' + i)), Name: "region " + string(rune('a'+i)), Kind: Path, Geo: tc.regions[i], Style: st}
	})
	r.Bind("dots", tc.proj, len(tc.dots), func(i int) *Shape {
		st := DefaultStyle()
		st.Fill = "#ff0000"
		st.Radius = 3
		return &Shape{ID: "dot", Kind: Circle, Geo: tc.dots[i], Style: st}
	})
	r.On("regions", PointerEnter, func(ctl *Controller, ev Event) {
		tc.log = append(tc.log, "enter "+ev.Shape.ID)
		ev.Shape.Highlight(func(s *Style) { s.Fill = "#ffffff" })
	})
	r.On("regions", PointerLeave, func(ctl *Controller, ev Event) {
		tc.log = append(tc.log, "leave "+ev.Shape.ID)
		ev.Shape.Restore()
	})
	r.On("regions", Click, func(ctl *Controller, ev Event) {
		ctl.ZoomToBounds(ev.Shape.Bound())
	})
	r.On("dots", PointerEnter, func(ctl *Controller, ev Event) {})
	r.On(Background, DoubleClick, func(ctl *Controller, ev Event) {
		tc.log = append(tc.log, "reset")
		ctl.Reset()
	})
}

func (tc *testChart) Layout(ctl *Controller, w, h float64) {
	tc.proj.SetScale(w / 100)
}

func rect(x0, y0, x1, y1 float64) orb.Polygon {
	return orb.Polygon{{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}}
}

func newTestController() (*Controller, *testChart, time.Time) {
	tc := &testChart{
		regions: []orb.Polygon{rect(30, 40, 70, 60), rect(0, 0, 10, 10)},
		dots:    []orb.Point{{20, 80}},
	}
	ctl := NewController(tc)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ctl.SetClock(func() time.Time { return t0 })
	ctl.Resize(100, 100)
	return ctl, tc, t0
}

func closeTo(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestOneShapePerRecord(t *testing.T) {
	ctl, _, _ := newTestController()
	for i := 0; i < 3; i++ {
		ctl.Resize(float64(100+i*50), 100)
	}
	if got := ctl.Renderer().Len(); got != 3 {
		t.Fatalf("shapes: got %d, want 3", got)
	}
	for i, s := range ctl.Renderer().Layer("regions").Shapes {
		if s.Record != i || s.Layer != "regions" {
			t.Errorf("shape %d bound to record %d on %q", i, s.Record, s.Layer)
		}
	}
}

func TestBindRejectsMissingShape(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("a nil shape should not be bound silently")
		}
	}()
	r := NewRenderer()
	r.Bind("regions", projection.NewIdentity(), 2, func(i int) *Shape {
		if i == 1 {
			return nil
		}
		return &Shape{ID: "a", Kind: Path, Geo: rect(0, 0, 1, 1)}
	})
}

func TestResizeIsPathIndependent(t *testing.T) {
	ctl, _, _ := newTestController()
	first := orb.Clone(ctl.Renderer().Layer("regions").Shapes[0].Screen)

	ctl.Resize(300, 300)
	big := ctl.Renderer().Layer("regions").Shapes[0].Screen
	if b := big.Bound(); !closeTo(b.Min[0], 90) || !closeTo(b.Max[0], 210) {
		t.Errorf("scaled bound: got %v", b)
	}

	ctl.Resize(100, 100)
	if got := ctl.Renderer().Layer("regions").Shapes[0].Screen; !orb.Equal(first, got) {
		t.Errorf("resize round trip changed geometry: %v vs %v", first, got)
	}
}

func TestHoverRoundTrip(t *testing.T) {
	ctl, tc, _ := newTestController()
	s := ctl.Renderer().Layer("regions").Shapes[0]
	before := s.Style

	ctl.PointerMove(50, 50)
	if ctl.Hovered() != s || s.Style.Fill != "#ffffff" {
		t.Fatalf("hover: hovered=%v fill=%s", ctl.Hovered(), s.Style.Fill)
	}
	ctl.PointerMove(51, 51)
	ctl.PointerMove(5, 5)
	ctl.PointerMove(90, 50)

	if s.Style != before || s.Highlighted() {
		t.Errorf("style not restored: %+v", s.Style)
	}
	want := []string{"enter a", "leave a", "enter b", "leave b"}
	if len(tc.log) != len(want) {
		t.Fatalf("events: got %v, want %v", tc.log, want)
	}
	for i := range want {
		if tc.log[i] != want[i] {
			t.Errorf("event %d: got %q, want %q", i, tc.log[i], want[i])
		}
	}
}

func TestClickZoomAndDoubleClickReset(t *testing.T) {
	ctl, tc, t0 := newTestController()

	ctl.Press(50, 50, t0)
	if !ctl.Animating() {
		t.Fatal("click should start a transition")
	}
	ctl.Tick(t0.Add(375 * time.Millisecond))
	if mid := ctl.View(); mid.K <= 1 || mid.K >= 2.25 {
		t.Errorf("mid-transition scale %v", mid.K)
	}
	ctl.Tick(t0.Add(750 * time.Millisecond))
	v := ctl.View()
	if !closeTo(v.K, 2.25) || !closeTo(v.X, -62.5) || !closeTo(v.Y, -62.5) {
		t.Fatalf("zoomed view: got %+v", v)
	}
	if ctl.Animating() {
		t.Error("transition should be finished")
	}

	t1 := t0.Add(2 * time.Second)
	ctl.Press(50, 50, t1)
	ctl.Press(50, 50, t1.Add(100*time.Millisecond))
	ctl.Tick(t0.Add(300 * time.Millisecond))
	if got := ctl.View(); got != Identity() {
		t.Errorf("after reset: got %+v", got)
	}
	if tc.log[len(tc.log)-1] != "reset" {
		t.Errorf("double click did not reach background: %v", tc.log)
	}
}

func TestSlowPressesAreNotDoubleClicks(t *testing.T) {
	ctl, tc, t0 := newTestController()
	ctl.Press(5, 90, t0)
	ctl.Press(5, 90, t0.Add(500*time.Millisecond))
	ctl.Press(40, 90, t0.Add(600*time.Millisecond))
	for _, e := range tc.log {
		if e == "reset" {
			t.Fatal("unexpected double click")
		}
	}
}

func TestCircleHitTest(t *testing.T) {
	ctl, _, _ := newTestController()
	r := ctl.Renderer()
	tests := []struct {
		at   orb.Point
		want bool
	}{
		{orb.Point{20, 80}, true},
		{orb.Point{22, 81}, true},
		{orb.Point{30, 80}, false},
	}
	for _, tt := range tests {
		s := r.HitTest(tt.at, Identity())
		if got := s != nil && s.Kind == Circle; got != tt.want {
			t.Errorf("HitTest(%v): got %v, want %v", tt.at, got, tt.want)
		}
	}
	zoomed := Transform{K: 2, X: -20, Y: -80}
	if s := r.HitTest(orb.Point{20, 80}, zoomed); s == nil {
		t.Error("zoomed hit missed")
	}
}

func TestLabelSingleSlot(t *testing.T) {
	ctl, _, _ := newTestController()
	ctl.ShowLabel(Overlay{Lines: []string{"one"}})
	ctl.ShowLabel(Overlay{Lines: []string{"two"}, At: orb.Point{0, 0}, Bg: "#000000"})
	if l := ctl.Label(); l == nil || l.Lines[0] != "two" {
		t.Fatalf("label: got %+v", l)
	}
	cv := canvas.New(50, 25, "#111111")
	ctl.Draw(cv)
	if cv.Cell(1, 0).Rune() != 't' {
		t.Errorf("label not drawn: %q", cv.Cell(1, 0).Rune())
	}
	ctl.HideLabel()
	if ctl.Label() != nil {
		t.Error("label still shown")
	}
}

func TestDrawFillsRegion(t *testing.T) {
	ctl, _, _ := newTestController()
	cv := canvas.New(50, 25, "#111111")
	ctl.Draw(cv)
	if got := cv.Cell(25, 12).Bg; got != "#336699" {
		t.Errorf("region fill: got %q", got)
	}
	if got := cv.Cell(45, 20).Bg; got != "" {
		t.Errorf("background cell was filled: %q", got)
	}
}

func TestSearch(t *testing.T) {
	ctl, tc, _ := newTestController()
	if s := ctl.Search("REGION B"); s == nil || s.ID != "b" {
		t.Fatalf("prefix search: got %v", s)
	}
	if ctl.Hovered() == nil || tc.log[0] != "enter b" {
		t.Errorf("search should hover the match: %v", tc.log)
	}
	if !ctl.Animating() {
		t.Error("search should click the match")
	}
	if s := ctl.Search("on a"); s == nil || s.ID != "a" {
		t.Errorf("substring search: got %v", s)
	}
	if s := ctl.Search("nowhere"); s != nil {
		t.Errorf("no match expected, got %v", s.ID)
	}
}

func TestZoomByClamps(t *testing.T) {
	ctl, _, _ := newTestController()
	ctl.ZoomBy(100)
	if k := ctl.View().K; k != MaxZoom {
		t.Errorf("zoom in: got %v", k)
	}
	ctl.ZoomBy(0.001)
	if v := ctl.View(); v.K != 1 || !closeTo(v.X, 0) || !closeTo(v.Y, 0) {
		t.Errorf("zoom out: got %+v", v)
	}
}

func TestEasing(t *testing.T) {
	for _, ease := range []Easing{EaseQuad, EaseCubic} {
		if ease(0) != 0 || ease(1) != 1 || !closeTo(ease(0.5), 0.5) {
			t.Errorf("easing endpoints: %v %v %v", ease(0), ease(0.5), ease(1))
		}
	}
	tr := Transition{From: Identity(), To: Transform{K: 4, X: -150, Y: -150}, Duration: time.Second, Ease: EaseQuad, W: 100, H: 100}
	v, done := tr.At(tr.Start.Add(500 * time.Millisecond))
	if done || !closeTo(v.K, 2) {
		t.Errorf("geometric scale at midpoint: %+v", v)
	}
}
