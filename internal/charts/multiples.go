package charts

import (
	"math"

	"github.com/paulmach/orb"

	"atlas/internal/chart"
	"atlas/internal/geom"
	"atlas/internal/loader"
	"atlas/internal/projection"
)

const (
	multiplesColumns = 3
	panelMargin      = 2 // micro-pixels
	titleHeight      = 4 // one text row above each map
	titleColor       = "#000000"
)

type panel struct {
	source string
	plants []PowerPlant
	proj   projection.Projection
	title  *projection.Identity
}

// Multiples draws one small Albers USA map per primary source.
type Multiples struct {
	states orb.Collection
	feats  []geom.Feature
	panels []*panel
	style  plantStyler
}

func NewMultiples(p *loader.Payload) (*Multiples, error) {
	states, plants, err := loadPlants(p)
	if err != nil {
		return nil, err
	}
	m := &Multiples{
		states: geom.Collection(states),
		feats:  states,
		style:  newPlantStyler(plants),
	}
	bySource := map[string]*panel{}
	for _, src := range sourcesInOrder(plants) {
		pn := &panel{source: src, proj: projection.NewAlbersUSA(), title: projection.NewIdentity()}
		bySource[src] = pn
		m.panels = append(m.panels, pn)
	}
	for _, pl := range plants {
		pn := bySource[pl.PrimSource]
		pn.plants = append(pn.plants, pl)
	}
	return m, nil
}

func (m *Multiples) Build(ctl *chart.Controller) {
	ctl.SetBackground(plantsBackground)
	r := ctl.Renderer()
	for _, pn := range m.panels {
		pn := pn
		r.Bind(layerName("states", pn.source), pn.proj, len(m.feats), func(i int) *chart.Shape {
			return stateShape(m.feats[i])
		})
		plants := layerName("plants", pn.source)
		r.Bind(plants, pn.proj, len(pn.plants), func(i int) *chart.Shape {
			return m.style.shape(pn.plants[i])
		})
		r.Bind(layerName("title", pn.source), pn.title, 1, func(int) *chart.Shape {
			st := chart.DefaultStyle()
			st.Fill = titleColor
			return &chart.Shape{ID: pn.source, Kind: chart.Label, Geo: orb.Point{}, Text: capitalize(pn.source), Style: st}
		})
		hoverPlants(r, plants, func(i int) PowerPlant { return pn.plants[i] })
	}
}

// Layout tiles the panels three to a row and fits the states into each.
func (m *Multiples) Layout(ctl *chart.Controller, w, h float64) {
	if len(m.panels) == 0 {
		return
	}
	cols := min(multiplesColumns, len(m.panels))
	rows := int(math.Ceil(float64(len(m.panels)) / float64(cols)))
	pw, ph := w/float64(cols), h/float64(rows)
	for i, pn := range m.panels {
		x0, y0 := float64(i%cols)*pw, float64(i/cols)*ph
		projection.FitExtent(pn.proj, orb.Bound{
			Min: orb.Point{x0 + panelMargin, y0 + panelMargin + titleHeight},
			Max: orb.Point{x0 + pw - panelMargin, y0 + ph - panelMargin},
		}, m.states)
		pn.title.SetTranslate(orb.Point{x0 + pw/2, y0 + titleHeight/2})
	}
}
