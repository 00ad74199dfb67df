package charts

import (
	"github.com/paulmach/orb"

	"atlas/internal/chart"
	"atlas/internal/geom"
	"atlas/internal/loader"
	"atlas/internal/projection"
)

const (
	legendRow    = 8 // micro-pixels, two text rows
	legendRadius = 1.5
	legendX      = 4
)

// PowerPlants places every US power plant on one Albers USA map, sized by
// capacity and colored by primary source, with a legend.
type PowerPlants struct {
	states  []geom.Feature
	plants  []PowerPlant
	sources []string
	style   plantStyler
	proj    projection.Projection
	legend  *projection.Identity
}

func NewPowerPlants(p *loader.Payload) (*PowerPlants, error) {
	states, plants, err := loadPlants(p)
	if err != nil {
		return nil, err
	}
	return &PowerPlants{
		states:  states,
		plants:  plants,
		sources: sourcesInOrder(plants),
		style:   newPlantStyler(plants),
		proj:    projection.NewAlbersUSA(),
		legend:  projection.NewIdentity(),
	}, nil
}

func (pp *PowerPlants) Build(ctl *chart.Controller) {
	ctl.SetBackground(plantsBackground)
	r := ctl.Renderer()

	r.Bind("states", pp.proj, len(pp.states), func(i int) *chart.Shape {
		return stateShape(pp.states[i])
	})
	r.Bind("plants", pp.proj, len(pp.plants), func(i int) *chart.Shape {
		return pp.style.shape(pp.plants[i])
	})
	r.Bind("state-names", pp.proj, len(pp.states), func(i int) *chart.Shape {
		f := pp.states[i]
		abbrev, _ := f.Properties["abbrev"].(string)
		st := chart.DefaultStyle()
		st.Fill = stateLabel
		return &chart.Shape{ID: f.ID, Kind: chart.Label, Geo: f.Geometry, Text: abbrev, Style: st}
	})

	dots := r.Bind("legend", pp.legend, len(pp.sources), func(i int) *chart.Shape {
		st := chart.DefaultStyle()
		st.Fill = pp.style.fill(pp.sources[i])
		st.Radius = legendRadius
		return &chart.Shape{ID: pp.sources[i], Kind: chart.Circle, Geo: orb.Point{0, float64(i*legendRow) + 2}, Style: st}
	})
	dots.Fixed = true
	names := r.Bind("legend-names", pp.legend, len(pp.sources), func(i int) *chart.Shape {
		text := capitalize(pp.sources[i])
		st := chart.DefaultStyle()
		st.Fill = stateLabel
		// Label centers its text; shift so the text starts right of the dot
		at := orb.Point{4 + float64(len([]rune(text))), float64(i*legendRow) + 2}
		return &chart.Shape{ID: pp.sources[i], Kind: chart.Label, Geo: at, Text: text, Style: st}
	})
	names.Fixed = true

	hoverPlants(r, "plants", func(i int) PowerPlant { return pp.plants[i] })
}

func (pp *PowerPlants) Layout(ctl *chart.Controller, w, h float64) {
	pp.proj.SetScale(w)
	pp.proj.SetTranslate(orb.Point{w / 2, h / 2})
	pp.legend.SetTranslate(orb.Point{legendX, h * 0.2})
}

func (pp *PowerPlants) Table() (string, []string, [][]string) {
	return "plants", plantCols, plantRows(pp.plants)
}
