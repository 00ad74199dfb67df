package chart

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/quadtree"

	"atlas/internal/canvas"
	"atlas/internal/projection"
)

// Layer is a named, ordered group of shapes sharing a projection.
type Layer struct {
	Name       string
	Projection projection.Projection
	// Tolerance simplifies projected paths (screen units); 0 keeps every vertex.
	Tolerance float64
	// Fixed layers ignore the view transform (legends, titles).
	Fixed  bool
	Hidden bool
	Shapes []*Shape

	circles *quadtree.Quadtree
	maxR    float64
}

// Renderer keeps layers in draw order, bottom first.
type Renderer struct {
	layers   []*Layer
	byName   map[string]*Layer
	handlers map[string]map[EventType][]Handler
}

func NewRenderer() *Renderer {
	return &Renderer{
		byName:   map[string]*Layer{},
		handlers: map[string]map[EventType][]Handler{},
	}
}

// Bind creates exactly one shape per record, build(i) for i in [0, n). Binding
// an existing layer replaces its shapes and keeps its draw position. build
// must not return nil; hide a record with Shape.Visible instead.
func (r *Renderer) Bind(name string, proj projection.Projection, n int, build func(i int) *Shape) *Layer {
	l, ok := r.byName[name]
	if !ok {
		l = &Layer{Name: name}
		r.byName[name] = l
		r.layers = append(r.layers, l)
	}
	l.Projection = proj
	l.Shapes = make([]*Shape, 0, n)
	for i := 0; i < n; i++ {
		s := build(i)
		s.Layer = name
		s.Record = i
		l.Shapes = append(l.Shapes, s)
	}
	l.circles = nil
	return l
}

// Layer returns the named layer or nil.
func (r *Renderer) Layer(name string) *Layer { return r.byName[name] }

// Layers lists layers in draw order.
func (r *Renderer) Layers() []*Layer { return r.layers }

// Record returns the index of the record bound to s.
func (r *Renderer) Record(s *Shape) int { return s.Record }

// Len is the total number of shapes.
func (r *Renderer) Len() int {
	n := 0
	for _, l := range r.layers {
		n += len(l.Shapes)
	}
	return n
}

// Apply recomputes screen geometry for every shape from its source
// geometry and its layer's current projection. The result depends only on
// the projection's state, not on earlier calls.
func (r *Renderer) Apply() {
	for _, l := range r.layers {
		r.applyLayer(l)
	}
}

func (r *Renderer) applyLayer(l *Layer) {
	if l.Projection == nil {
		return
	}
	path := projection.Path{Projection: l.Projection, Tolerance: l.Tolerance}
	var pts []orb.Pointer
	l.maxR = 0
	for _, s := range l.Shapes {
		s.Screen, s.Center, s.Visible = nil, orb.Point{}, false
		switch s.Kind {
		case Path:
			s.Screen = path.Geometry(s.Geo)
			if s.Screen != nil {
				s.Visible = true
				s.Center, _ = planar.CentroidArea(s.Screen)
			}
		default:
			if pt, ok := s.Geo.(orb.Point); ok {
				s.Center, s.Visible = l.Projection.Project(pt)
			} else {
				s.Center, s.Visible = path.Centroid(s.Geo)
			}
		}
		if s.Kind == Circle && s.Visible {
			pts = append(pts, circlePoint{s})
			l.maxR = max(l.maxR, s.Style.Radius)
		}
	}
	l.circles = nil
	if len(pts) == 0 {
		return
	}
	mp := make(orb.MultiPoint, len(pts))
	for i, p := range pts {
		mp[i] = p.Point()
	}
	b := mp.Bound().Pad(1)
	qt := quadtree.New(b)
	for _, p := range pts {
		_ = qt.Add(p) // within b by construction
	}
	l.circles = qt
}

type circlePoint struct{ s *Shape }

func (c circlePoint) Point() orb.Point { return c.s.Center }

// Draw rasterizes all visible layers through the view transform.
func (r *Renderer) Draw(c *canvas.Canvas, view Transform) {
	mw, mh := c.MicroSize()
	screen := orb.Bound{Max: orb.Point{float64(mw), float64(mh)}}
	for _, l := range r.layers {
		if l.Hidden {
			continue
		}
		v := view
		if l.Fixed {
			v = Identity()
		}
		for _, s := range l.Shapes {
			if !s.Visible {
				continue
			}
			drawShape(c, s, v, screen)
		}
	}
}

func drawShape(c *canvas.Canvas, s *Shape, v Transform, screen orb.Bound) {
	st := s.Style
	switch s.Kind {
	case Path:
		b := v.ApplyBound(s.Screen.Bound())
		if !b.Intersects(screen) {
			return
		}
		g := v.ApplyGeometry(s.Screen)
		if !screen.Contains(b.Min) || !screen.Contains(b.Max) {
			// clip leaves its cut edges on the padding, outside the canvas
			g = clip.Geometry(screen.Pad(2), orb.Clone(g))
			if g == nil {
				return
			}
		}
		fillA := st.Opacity * st.FillOpacity
		strokeA := st.Opacity
		eachPolygon(g, func(p orb.Polygon) {
			if st.Fill != "" {
				c.FillPolygon(p, st.Fill, fillA)
			}
		})
		if st.Stroke == "" || st.StrokeWidth <= 0 {
			return
		}
		stroke := func(pts []orb.Point) {
			c.Polyline(pts, st.Stroke, strokeA)
			if st.StrokeWidth >= 2 {
				shifted := make([]orb.Point, len(pts))
				for i, p := range pts {
					shifted[i] = orb.Point{p[0] + 1, p[1]}
				}
				c.Polyline(shifted, st.Stroke, strokeA)
			}
		}
		eachLine(g, stroke)
	case Circle:
		at := v.Apply(s.Center)
		r := st.Radius * v.K
		if !screen.Pad(r).Contains(at) {
			return
		}
		if st.Fill != "" {
			c.Disc(at, r, st.Fill, st.Opacity*st.FillOpacity)
		}
		if st.Stroke != "" && r >= 2 {
			c.Ring(at, r, st.Stroke, st.Opacity)
		}
	case Label:
		color := st.Fill
		if color == "" {
			color = "#ffffff"
		}
		c.Label(v.Apply(s.Center), s.Text, canvas.Blend(color, c.Background(), st.Opacity))
	}
}

func eachPolygon(g orb.Geometry, fn func(orb.Polygon)) {
	switch g := g.(type) {
	case orb.Polygon:
		fn(g)
	case orb.MultiPolygon:
		for _, p := range g {
			fn(p)
		}
	case orb.Collection:
		for _, c := range g {
			eachPolygon(c, fn)
		}
	}
}

func eachLine(g orb.Geometry, fn func([]orb.Point)) {
	switch g := g.(type) {
	case orb.LineString:
		fn(g)
	case orb.MultiLineString:
		for _, ls := range g {
			fn(ls)
		}
	case orb.Ring:
		fn(g)
	case orb.Polygon:
		for _, r := range g {
			fn(r)
		}
	case orb.MultiPolygon:
		for _, p := range g {
			for _, r := range p {
				fn(r)
			}
		}
	case orb.Collection:
		for _, c := range g {
			eachLine(c, fn)
		}
	}
}
