package charts

import (
	"fmt"

	"github.com/paulmach/orb"

	"atlas/internal/chart"
	"atlas/internal/geom"
	"atlas/internal/loader"
	"atlas/internal/projection"
	"atlas/internal/scale"
)

const (
	worldBackground = "#111111"
	graticuleStroke = "#A47AC6"
	countryFill     = "#111111"
	countryStroke   = "#333333"
	countryHover    = "#322456"
	white           = "#ffffff"

	// one braille dot
	cityRadius = 0.5
)

// World is a Mercator map of countries with city dots colored by
// population.
type World struct {
	countries []geom.Feature
	cities    []City
	color     scale.Sequential
	proj      projection.Projection
	h         float64
}

func NewWorld(p *loader.Payload) (*World, error) {
	countries, err := p.Features(srcWorld)
	if err != nil {
		return nil, err
	}
	t, err := p.Table(srcCities)
	if err != nil {
		return nil, err
	}
	cities, err := parseCities(srcCities, t)
	if err != nil {
		return nil, err
	}
	lo, hi := scale.ExtentOf(cities, func(c City) float64 { return c.Population })
	return &World{
		countries: countries,
		cities:    cities,
		color:     scale.Sequential{Domain: [2]float64{lo, hi}, Interp: scale.Inferno, Clamp: true},
		proj:      projection.NewMercator(),
	}, nil
}

func (w *World) Build(ctl *chart.Controller) {
	ctl.SetBackground(worldBackground)
	r := ctl.Renderer()

	r.Bind("graticule", w.proj, 1, func(int) *chart.Shape {
		st := chart.DefaultStyle()
		st.Stroke = graticuleStroke
		st.StrokeWidth = 0.5
		return &chart.Shape{ID: "graticule", Kind: chart.Path, Geo: geom.Graticule(10), Style: st}
	})

	r.Bind("countries", w.proj, len(w.countries), func(i int) *chart.Shape {
		f := w.countries[i]
		st := chart.DefaultStyle()
		st.Fill = countryFill
		st.Stroke = countryStroke
		return &chart.Shape{ID: f.ID, Name: f.Name(), Kind: chart.Path, Geo: f.Geometry, Style: st}
	})

	r.Bind("cities", w.proj, len(w.cities), func(i int) *chart.Shape {
		c := w.cities[i]
		st := chart.DefaultStyle()
		st.Fill = w.color.Map(c.Population)
		st.Radius = cityRadius
		return &chart.Shape{ID: fmt.Sprint(i), Name: c.Name, Kind: chart.Circle, Geo: orb.Point{c.Lon, c.Lat}, Style: st}
	})

	r.On("countries", chart.PointerEnter, func(ctl *chart.Controller, ev chart.Event) {
		ev.Shape.Highlight(func(s *chart.Style) {
			s.Stroke = white
			s.StrokeWidth = 1
			s.Fill = countryHover
		})
		// the name stays up after the pointer leaves
		ctl.ShowLabel(chart.Overlay{
			Lines: []string{ev.Shape.Name},
			At:    orb.Point{4, w.h * 0.85},
			Fg:    white,
			Bg:    "#000000",
		})
	})
	r.On("countries", chart.PointerLeave, func(ctl *chart.Controller, ev chart.Event) {
		ev.Shape.Restore()
	})
	r.On("countries", chart.Click, func(ctl *chart.Controller, ev chart.Event) {
		ctl.ZoomToBounds(ev.Shape.Bound())
		ev.Shape.Style.Stroke = white
	})
	r.On(chart.Background, chart.DoubleClick, func(ctl *chart.Controller, ev chart.Event) {
		ctl.Reset()
	})
}

func (w *World) Layout(ctl *chart.Controller, width, height float64) {
	w.h = height
	w.proj.SetScale(width / 5)
	w.proj.SetTranslate(orb.Point{width / 2, height / 2})
}

func (w *World) Table() (string, []string, [][]string) {
	rows := make([][]string, len(w.countries))
	for i, f := range w.countries {
		rows[i] = []string{f.Name(), f.ID}
	}
	return "countries", []string{"country", "id"}, rows
}
