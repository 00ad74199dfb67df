package charts

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/paulmach/orb"

	"atlas/internal/chart"
	"atlas/internal/geom"
	"atlas/internal/loader"
	"atlas/internal/scale"
)

const (
	plantsBackground = "#ffffff"
	stateFill        = "#e8e8e8"
	stateLabel       = "#000000"
	otherSource      = "other"
	otherFill        = "#808080"
	plantOpacity     = 0.6
)

// plantStyler holds the scales shared by both power plant charts. Colors are
// assigned in first-seen source order, with "other" fixed to gray.
type plantStyler struct {
	radius scale.Sqrt
	color  *scale.Ordinal
}

func newPlantStyler(plants []PowerPlant) plantStyler {
	lo, hi := scale.ExtentOf(plants, func(p PowerPlant) float64 { return p.TotalMW })
	ps := plantStyler{
		radius: scale.Sqrt{Domain: [2]float64{lo, hi}, Range: [2]float64{1, 5}},
		color:  scale.NewOrdinal(scale.SchemeSet3),
	}
	for _, p := range plants {
		ps.fill(p.PrimSource)
	}
	return ps
}

func (ps plantStyler) fill(source string) string {
	if source == otherSource {
		return otherFill
	}
	return ps.color.Map(source)
}

func (ps plantStyler) shape(p PowerPlant) *chart.Shape {
	st := chart.DefaultStyle()
	st.Fill = ps.fill(p.PrimSource)
	st.Opacity = plantOpacity
	st.Radius = ps.radius.Map(p.TotalMW)
	return &chart.Shape{ID: p.PrimSource, Name: p.Name, Kind: chart.Circle, Geo: orb.Point{p.Lon, p.Lat}, Style: st}
}

// loadPlants reads the states and plants sources shared by both charts.
func loadPlants(p *loader.Payload) ([]geom.Feature, []PowerPlant, error) {
	states, err := p.Features(srcStates)
	if err != nil {
		return nil, nil, err
	}
	t, err := p.Table(srcPlants)
	if err != nil {
		return nil, nil, err
	}
	plants, err := parsePlants(srcPlants, t)
	if err != nil {
		return nil, nil, err
	}
	return states, plants, nil
}

// sourcesInOrder lists distinct primary sources in first-seen order.
func sourcesInOrder(plants []PowerPlant) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range plants {
		if !seen[p.PrimSource] {
			seen[p.PrimSource] = true
			out = append(out, p.PrimSource)
		}
	}
	return out
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

func stateShape(f geom.Feature) *chart.Shape {
	st := chart.DefaultStyle()
	st.Fill = stateFill
	return &chart.Shape{ID: f.ID, Kind: chart.Path, Geo: f.Geometry, Style: st}
}

func plantTooltip(p PowerPlant) []string {
	name := p.Name
	if name == "" {
		name = "unnamed plant"
	}
	return []string{name, fmt.Sprintf("%s, %.1f MW", capitalize(p.PrimSource), p.TotalMW)}
}

// hoverPlants shows a tooltip for the plant under the pointer.
func hoverPlants(r *chart.Renderer, layer string, plants func(record int) PowerPlant) {
	r.On(layer, chart.PointerEnter, func(ctl *chart.Controller, ev chart.Event) {
		showTooltip(ctl, ev, plantTooltip(plants(ev.Shape.Record)))
	})
	r.On(layer, chart.PointerLeave, func(ctl *chart.Controller, ev chart.Event) {
		ctl.HideLabel()
	})
}

func plantRows(plants []PowerPlant) [][]string {
	rows := make([][]string, len(plants))
	for i, p := range plants {
		rows[i] = []string{p.Name, p.PrimSource, fmt.Sprintf("%.1f", p.TotalMW), fmt.Sprintf("%.3f", p.Lon), fmt.Sprintf("%.3f", p.Lat)}
	}
	return rows
}

var plantCols = []string{"plant", "source", "MW", "lon", "lat"}

func layerName(parts ...string) string { return strings.Join(parts, "/") }
