package chart

import (
	"strings"
	"time"

	"github.com/paulmach/orb"

	"atlas/internal/canvas"
)

// Chart builds its layers once and lays them out for every viewport size.
type Chart interface {
	Build(ctl *Controller)
	Layout(ctl *Controller, w, h float64)
}

// Tabular charts expose the records of one layer for the attributes table.
// Row i belongs to the shape with Record i.
type Tabular interface {
	Table() (layer string, cols []string, rows [][]string)
}

// KeyHandler charts handle chart-specific keys. The returned status is shown
// in the footer.
type KeyHandler interface {
	HandleKey(ctl *Controller, key string) (status string, handled bool)
}

// Overlay is a floating text box anchored at a viewport micro-pixel position
// (its top-left corner).
type Overlay struct {
	Lines []string
	At    orb.Point
	Fg    string
	Bg    string
}

const (
	MaxZoom       = 8.0
	zoomFill      = 0.9
	zoomDuration  = 750 * time.Millisecond
	resetDuration = 250 * time.Millisecond

	doubleClickWindow = 400 * time.Millisecond
)

// Controller owns a chart's mutable state and turns pointer input into
// handler calls.
type Controller struct {
	chart Chart
	r     *Renderer
	bg    string

	w, h  float64
	view  Transform
	anim  *Transition
	hover *Shape
	label *Overlay

	lastPress   time.Time
	lastPressAt orb.Point

	now func() time.Time
}

// NewController builds c. Nothing is projected until the first Resize.
func NewController(c Chart) *Controller {
	ctl := &Controller{
		chart: c,
		r:     NewRenderer(),
		bg:    "#000000",
		view:  Identity(),
		now:   time.Now,
	}
	c.Build(ctl)
	return ctl
}

func (c *Controller) Chart() Chart { return c.chart }
func (c *Controller) Renderer() *Renderer { return c.r }
func (c *Controller) Size() (w, h float64) { return c.w, c.h }
func (c *Controller) View() Transform { return c.view }
func (c *Controller) Hovered() *Shape { return c.hover }
func (c *Controller) Label() *Overlay { return c.label }
func (c *Controller) Animating() bool { return c.anim != nil }
func (c *Controller) BackgroundColor() string { return c.bg }

func (c *Controller) SetBackground(color string) { c.bg = color }

// SetClock replaces the time source used to start transitions.
func (c *Controller) SetClock(now func() time.Time) { c.now = now }

// Resize lays the chart out for a w×h micro-pixel viewport and re-projects
// every shape.
func (c *Controller) Resize(w, h float64) {
	c.w, c.h = w, h
	c.chart.Layout(c, w, h)
	c.r.Apply()
}

// PointerMove updates the hovered shape, emitting leave before enter.
func (c *Controller) PointerMove(x, y float64) {
	hit := c.r.HitTest(orb.Point{x, y}, c.view)
	if hit == c.hover {
		return
	}
	if prev := c.hover; prev != nil {
		c.hover = nil
		c.r.dispatch(c, prev.Layer, Event{Type: PointerLeave, Shape: prev, X: x, Y: y})
	}
	c.hover = hit
	if hit != nil {
		c.r.dispatch(c, hit.Layer, Event{Type: PointerEnter, Shape: hit, X: x, Y: y})
	}
}

// PointerOut is a pointer leaving the viewport.
func (c *Controller) PointerOut() {
	if prev := c.hover; prev != nil {
		c.hover = nil
		c.r.dispatch(c, prev.Layer, Event{Type: PointerLeave, Shape: prev})
	}
}

// Press is a primary button press at time at. Two presses close in time
// and space also produce a double click.
func (c *Controller) Press(x, y float64, at time.Time) {
	c.Click(x, y)
	p := orb.Point{x, y}
	dx, dy := p[0]-c.lastPressAt[0], p[1]-c.lastPressAt[1]
	if !c.lastPress.IsZero() && at.Sub(c.lastPress) <= doubleClickWindow &&
		dx >= -2 && dx <= 2 && dy >= -4 && dy <= 4 {
		c.lastPress = time.Time{}
		c.DoubleClick(x, y)
		return
	}
	c.lastPress, c.lastPressAt = at, p
}

// Click goes to the hit shape's layer, or to the background when the shape's
// layer does not handle clicks.
func (c *Controller) Click(x, y float64) {
	hit := c.r.HitTest(orb.Point{x, y}, c.view)
	if hit != nil && c.r.hasHandlers(hit.Layer, Click) {
		c.r.dispatch(c, hit.Layer, Event{Type: Click, Shape: hit, X: x, Y: y})
		return
	}
	c.r.dispatch(c, Background, Event{Type: Click, X: x, Y: y})
}

// DoubleClick goes to the hit shape's layer and then bubbles to the background.
func (c *Controller) DoubleClick(x, y float64) {
	hit := c.r.HitTest(orb.Point{x, y}, c.view)
	if hit != nil {
		c.r.dispatch(c, hit.Layer, Event{Type: DoubleClick, Shape: hit, X: x, Y: y})
	}
	c.r.dispatch(c, Background, Event{Type: DoubleClick, Shape: hit, X: x, Y: y})
}

// ShowLabel replaces the transient label.
func (c *Controller) ShowLabel(o Overlay) { c.label = &o }

func (c *Controller) HideLabel() { c.label = nil }

// ZoomToBounds animates the view so that b (pre-zoom screen coordinates)
// fills most of the viewport.
func (c *Controller) ZoomToBounds(b orb.Bound) {
	c.transition(ZoomToBounds(b, c.w, c.h, MaxZoom, zoomFill), zoomDuration, EaseQuad)
}

// Reset animates back to the identity view.
func (c *Controller) Reset() {
	c.transition(Identity(), resetDuration, EaseCubic)
}

func (c *Controller) transition(to Transform, d time.Duration, ease Easing) {
	if c.w <= 0 || c.h <= 0 {
		c.view, c.anim = to, nil
		return
	}
	c.anim = &Transition{
		From: c.view, To: to,
		Start: c.now(), Duration: d, Ease: ease,
		W: c.w, H: c.h,
	}
}

// ZoomBy scales the view about the viewport center, within [1, MaxZoom].
func (c *Controller) ZoomBy(f float64) {
	c.anim = nil
	mid := orb.Point{c.w / 2, c.h / 2}
	at := c.view.Invert(mid)
	k := min(MaxZoom, max(1, c.view.K*f))
	c.view = Transform{K: k, X: mid[0] - k*at[0], Y: mid[1] - k*at[1]}
}

// Pan shifts the view by a viewport offset.
func (c *Controller) Pan(dx, dy float64) {
	c.anim = nil
	c.view.X += dx
	c.view.Y += dy
}

// Tick advances a running transition and reports whether the view changed.
func (c *Controller) Tick(now time.Time) bool {
	if c.anim == nil {
		return false
	}
	v, done := c.anim.At(now)
	c.view = v
	if done {
		c.anim = nil
	}
	return true
}

// Draw renders the chart and its label onto cv.
func (c *Controller) Draw(cv *canvas.Canvas) {
	c.r.Draw(cv, c.view)
	if c.label == nil || len(c.label.Lines) == 0 {
		return
	}
	o := c.label
	x, y := int(o.At[0]/2), int(o.At[1]/4)
	width := 0
	for _, l := range o.Lines {
		width = max(width, len([]rune(l)))
	}
	fg := o.Fg
	if fg == "" {
		fg = "#ffffff"
	}
	if o.Bg != "" {
		cv.FillCells(x, y, x+width+2, y+len(o.Lines), o.Bg)
	}
	for i, l := range o.Lines {
		cv.Text(x+1, y+i, l, fg)
	}
}

// Search hovers the first shape whose name starts with query, or failing
// that contains it, and then clicks or zooms to it.
func (c *Controller) Search(query string) *Shape {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	s := c.find(func(name string) bool { return strings.HasPrefix(name, q) })
	if s == nil {
		s = c.find(func(name string) bool { return strings.Contains(name, q) })
	}
	if s == nil {
		return nil
	}
	at := c.view.Apply(s.Center)
	if s != c.hover {
		if prev := c.hover; prev != nil {
			c.hover = nil
			c.r.dispatch(c, prev.Layer, Event{Type: PointerLeave, Shape: prev, X: at[0], Y: at[1]})
		}
		c.hover = s
		c.r.dispatch(c, s.Layer, Event{Type: PointerEnter, Shape: s, X: at[0], Y: at[1]})
	}
	if c.r.hasHandlers(s.Layer, Click) {
		c.r.dispatch(c, s.Layer, Event{Type: Click, Shape: s, X: at[0], Y: at[1]})
	} else {
		c.ZoomToBounds(s.Bound())
	}
	return s
}

func (c *Controller) find(match func(string) bool) *Shape {
	for i := len(c.r.layers) - 1; i >= 0; i-- {
		l := c.r.layers[i]
		if !c.r.interactive(l.Name) {
			continue
		}
		for _, s := range l.Shapes {
			if s.Visible && s.Name != "" && match(strings.ToLower(s.Name)) {
				return s
			}
		}
	}
	return nil
}
