package tui

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"

	"atlas/internal/chart"
	"atlas/internal/config"
	"atlas/internal/loader"
	"atlas/internal/projection"
)

var t0 = time.Date(2016, 11, 8, 20, 0, 0, 0, time.UTC)

// stubChart has two squares in micro-pixel space: a at x 0..40, b at 60..100.
type stubChart struct {
	proj *projection.Identity
}

func (sc *stubChart) Build(ctl *chart.Controller) {
	sc.proj = projection.NewIdentity()
	regions := []orb.Polygon{square(0, 0, 40), square(60, 0, 40)}
	names := []string{"Alpha", "Beta"}
	r := ctl.Renderer()
	r.Bind("regions", sc.proj, len(regions), func(i int) *chart.Shape {
		st := chart.DefaultStyle()
		st.Fill = "#336699"
		return &chart.Shape{ID: strings.ToLower(names[i][:1]), Name: names[i], Kind: chart.Path, Geo: regions[i], Style: st}
	})
	r.On("regions", chart.PointerEnter, func(ctl *chart.Controller, ev chart.Event) {})
	r.On("regions", chart.Click, func(ctl *chart.Controller, ev chart.Event) {
		ctl.ZoomToBounds(ev.Shape.Bound())
	})
	r.On(chart.Background, chart.DoubleClick, func(ctl *chart.Controller, ev chart.Event) {
		ctl.Reset()
	})
}

func (sc *stubChart) Layout(ctl *chart.Controller, w, h float64) {}

func (sc *stubChart) Table() (string, []string, [][]string) {
	return "regions", []string{"name"}, [][]string{{"Alpha"}, {"Beta"}}
}

func (sc *stubChart) HandleKey(ctl *chart.Controller, key string) (string, bool) {
	if key != "x" {
		return "", false
	}
	return "x pressed", true
}

func square(x, y, side float64) orb.Polygon {
	return orb.Polygon{{{x, y}, {x + side, y}, {x + side, y + side}, {x, y + side}, {x, y}}}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

// newTestModel is an 80×24 terminal with the stub chart mounted: the map is
// 79×21 cells starting at row 1, so 158×84 micro-pixels.
func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(config.DefaultConfig(), loader.New(t.TempDir()))
	m.now = func() time.Time { return t0 }
	ctl := chart.NewController(&stubChart{})
	ctl.SetClock(func() time.Time { return t0 })
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = send(t, m, loadedMsg{id: "world", ctl: ctl})
	return m
}

func TestMountSizesChart(t *testing.T) {
	m := newTestModel(t)
	if m.loading != "" || m.active != "world" {
		t.Fatalf("loading=%q active=%q", m.loading, m.active)
	}
	w, h := m.ctl.Size()
	if w != 158 || h != 84 {
		t.Errorf("size = %vx%v, want 158x84", w, h)
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if w, _ := m.ctl.Size(); w != 2*(80-sidebarWidth-1) {
		t.Errorf("width with sidebar = %v", w)
	}
}

func TestInitLoadsDefaultChart(t *testing.T) {
	m := New(config.DefaultConfig(), loader.New(t.TempDir()))
	if m.loading != "world" || m.Init() == nil {
		t.Fatalf("loading=%q", m.loading)
	}
	cfg := config.DefaultConfig()
	cfg.DefaultChart = "nope"
	m = New(cfg, loader.New(t.TempDir()))
	if m.Init() != nil || !strings.Contains(m.status, "unknown chart") {
		t.Errorf("status = %q", m.status)
	}
}

func TestMouseHover(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, runes("h"))

	// cell (10, 6) is micro (21, 22) in the map
	m, _ = send(t, m, motion(10, 6))
	if h := m.ctl.Hovered(); h == nil || h.ID != "a" {
		t.Fatalf("hovered = %v, want a", h)
	}
	if !strings.Contains(m.View(), "Alpha") {
		t.Error("footer does not name the hovered region")
	}
	m, _ = send(t, m, motion(40, 6))
	if h := m.ctl.Hovered(); h == nil || h.ID != "b" {
		t.Fatalf("hovered = %v, want b", h)
	}
	// header row is outside the map
	m, _ = send(t, m, motion(40, 0))
	if h := m.ctl.Hovered(); h != nil {
		t.Errorf("hovered = %v after leaving the map", h.ID)
	}
}

func TestClickZoomsWithFrames(t *testing.T) {
	m := newTestModel(t)
	m, cmd := send(t, m, press(10, 6))
	if cmd == nil || !m.ctl.Animating() || !m.ticking {
		t.Fatal("click on a region should start a transition")
	}
	m, cmd = send(t, m, frameMsg(t0.Add(time.Second)))
	if cmd != nil || m.ctl.Animating() || m.ticking {
		t.Error("transition should be done after one second")
	}
	want := 0.9 / math.Max(40.0/158, 40.0/84)
	if k := m.ctl.View().K; math.Abs(k-want) > 1e-9 {
		t.Errorf("K = %v, want %v", k, want)
	}
}

func TestDoubleClickResets(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, runes("+"))
	if k := m.ctl.View().K; math.Abs(k-1.2) > 1e-9 {
		t.Fatalf("K = %v after +", k)
	}
	// bottom right is background
	m, _ = send(t, m, press(70, 18))
	m, _ = send(t, m, press(70, 18))
	if !m.ctl.Animating() {
		t.Fatal("double click should start a reset")
	}
	m, _ = send(t, m, frameMsg(t0.Add(time.Second)))
	if v := m.ctl.View(); v != chart.Identity() {
		t.Errorf("view = %+v, want identity", v)
	}
}

func TestKeys(t *testing.T) {
	m := newTestModel(t)
	tests := []struct {
		key   tea.KeyMsg
		check func(m Model) error
	}{
		{runes("+"), func(m Model) error {
			if m.status != "zoom: 1.20x" {
				return fmt.Errorf("status %q", m.status)
			}
			return nil
		}},
		{runes("-"), func(m Model) error {
			if m.ctl.View().K != 1 {
				return fmt.Errorf("K %v", m.ctl.View().K)
			}
			return nil
		}},
		{runes("-"), func(m Model) error {
			if m.ctl.View().K != 1 {
				return fmt.Errorf("zoom out below 1: K %v", m.ctl.View().K)
			}
			return nil
		}},
		{tea.KeyMsg{Type: tea.KeyLeft}, func(m Model) error {
			if x := m.ctl.View().X; math.Abs(x+panX) > 1e-9 {
				return fmt.Errorf("X %v", x)
			}
			return nil
		}},
		{runes("x"), func(m Model) error {
			if m.status != "x pressed" {
				return fmt.Errorf("status %q", m.status)
			}
			return nil
		}},
		{runes("h"), func(m Model) error {
			if m.helpVisible {
				return fmt.Errorf("help still visible")
			}
			return nil
		}},
	}
	for _, tt := range tests {
		m, _ = send(t, m, tt.key)
		if err := tt.check(m); err != nil {
			t.Errorf("key %q: %v", tt.key.String(), err)
		}
	}
	if _, cmd := send(t, m, runes("q")); cmd == nil {
		t.Error("q should quit")
	}
}

func TestSearch(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, runes("/"))
	if !m.searching {
		t.Fatal("/ should open the search prompt")
	}
	m, _ = send(t, m, runes("be"))
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.searching || m.status != "found Beta" {
		t.Fatalf("searching=%v status=%q", m.searching, m.status)
	}
	if h := m.ctl.Hovered(); h == nil || h.ID != "b" {
		t.Errorf("hovered = %v, want b", h)
	}
	if cmd == nil {
		t.Error("search should zoom to the match")
	}

	m, _ = send(t, m, runes("/"))
	m, _ = send(t, m, runes("zz"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.status != "no match for zz" {
		t.Errorf("status = %q", m.status)
	}
}

func TestAttrsFollowHover(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, motion(40, 6))
	m, _ = send(t, m, runes("a"))
	if !m.showAttrs {
		t.Fatalf("attrs hidden: %q", m.status)
	}
	if n := len(m.tbl.Rows()); n != 2 {
		t.Fatalf("rows = %d", n)
	}
	if c := m.tbl.Cursor(); c != 1 {
		t.Errorf("cursor = %d, want the hovered record 1", c)
	}
	if cols := m.tbl.Columns(); len(cols) != 2 || cols[1].Title != "name" {
		t.Errorf("columns = %+v", cols)
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showAttrs {
		t.Error("esc should close the table")
	}
}

func TestLoadFailureLeavesChartAbsent(t *testing.T) {
	m := New(config.DefaultConfig(), loader.New(t.TempDir()))
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	err := fmt.Errorf("%w: world: boom", loader.ErrLoad)
	m, _ = send(t, m, loadErrMsg{id: "world", err: err})
	if m.ctl != nil || m.loading != "" || !m.failed {
		t.Fatalf("ctl=%v loading=%q failed=%v", m.ctl, m.loading, m.failed)
	}
	if !strings.Contains(m.View(), "boom") {
		t.Error("view does not show the load error")
	}
}

func TestSupersededLoadIsKept(t *testing.T) {
	m := newTestModel(t)
	other := chart.NewController(&stubChart{})
	m, _ = send(t, m, loadedMsg{id: "election", ctl: other})
	if m.ctl == other {
		t.Fatal("a load nobody waits for should not be mounted")
	}
	m, cmd := send(t, m, runes("3"))
	if m.ctl != other || m.active != "election" || cmd != nil {
		t.Errorf("active=%q cmd=%v", m.active, cmd)
	}
	if w, _ := other.Size(); w != 158 {
		t.Errorf("cached chart not resized: w=%v", w)
	}
}

func TestReopeningCachedChartDropsPendingLoad(t *testing.T) {
	m := newTestModel(t)
	world := m.ctl
	m, cmd := send(t, m, runes("3"))
	if m.loading != "election" || cmd == nil {
		t.Fatalf("loading=%q cmd=%v", m.loading, cmd)
	}
	m, _ = send(t, m, runes("1"))
	if m.loading != "" || m.active != "world" {
		t.Fatalf("after reopening world: loading=%q active=%q", m.loading, m.active)
	}
	late := chart.NewController(&stubChart{})
	m, _ = send(t, m, loadedMsg{id: "election", ctl: late})
	if m.active != "world" || m.ctl != world {
		t.Errorf("late load took over: active=%q", m.active)
	}
	if m.ctls["election"] != late {
		t.Error("late load was not cached")
	}
}
