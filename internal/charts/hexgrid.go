package charts

import (
	"fmt"
	"log"

	"github.com/paulmach/orb"

	"atlas/internal/chart"
	"atlas/internal/geom"
	"atlas/internal/loader"
	"atlas/internal/projection"
	"atlas/internal/scale"
)

const (
	hexBackground = "#ffffff"
	hexUnmatched  = "#000000"
	hexOutline    = "#000000"
	hexLabel      = "#000000"
	hexFaded      = 0.3
)

type hexCell struct {
	group string
	ring  orb.Ring
}

// hexRegion is a group of cells with a wolf count. A region whose cells do
// not merge keeps its cells for hovering but has no outline or label.
type hexRegion struct {
	count   WolfCount
	cells   []int
	outline orb.Polygon
	anchor  orb.Point
	err     error
}

// HexGrid colors the cells of a pre-drawn hex map of Canada by wolf count.
type HexGrid struct {
	img     *geom.HexImage
	cells   []hexCell
	regions []hexRegion
	color   scale.Sequential
	counts  map[string]WolfCount
	proj    *projection.Identity
}

func NewHexGrid(p *loader.Payload) (*HexGrid, error) {
	img, err := p.Image(srcCanada)
	if err != nil {
		return nil, err
	}
	t, err := p.Table(srcWolves)
	if err != nil {
		return nil, err
	}
	wolves, err := parseWolves(srcWolves, t)
	if err != nil {
		return nil, err
	}

	lo, hi := scale.ExtentOf(wolves, func(w WolfCount) float64 { return w.Wolves })
	h := &HexGrid{
		img:    img,
		color:  scale.Sequential{Domain: [2]float64{lo, hi}, Interp: scale.YlGnBu},
		counts: map[string]WolfCount{},
		proj:   projection.NewIdentity(),
	}

	cellsOf := map[string][]int{}
	for _, id := range img.Order {
		for _, ring := range img.Groups[id] {
			cellsOf[id] = append(cellsOf[id], len(h.cells))
			h.cells = append(h.cells, hexCell{group: id, ring: ring})
		}
	}

	for _, w := range wolves {
		idx, ok := cellsOf[w.Abbreviation]
		if !ok {
			log.Printf("hexgrid: no cells for %s", w.Abbreviation)
			continue
		}
		h.counts[w.Abbreviation] = w
		reg := hexRegion{count: w, cells: idx}
		rings := make([]orb.Ring, len(idx))
		for i, c := range idx {
			rings[i] = h.cells[c].ring
		}
		reg.outline, reg.err = geom.MergeCells(rings)
		if reg.err != nil {
			log.Printf("hexgrid: region %s: %v", w.Abbreviation, reg.err)
		} else {
			reg.anchor, _ = geom.PoleOfInaccessibility(reg.outline, 1.0)
		}
		h.regions = append(h.regions, reg)
	}
	return h, nil
}

func (h *HexGrid) Build(ctl *chart.Controller) {
	ctl.SetBackground(hexBackground)
	r := ctl.Renderer()

	r.Bind("cells", h.proj, len(h.cells), func(i int) *chart.Shape {
		c := h.cells[i]
		st := chart.DefaultStyle()
		st.Fill = hexUnmatched
		if w, ok := h.counts[c.group]; ok {
			st.Fill = h.color.Map(w.Wolves)
		}
		return &chart.Shape{ID: c.group, Kind: chart.Path, Geo: orb.Polygon{c.ring}, Style: st}
	})

	r.Bind("regions", h.proj, len(h.regions), func(i int) *chart.Shape {
		reg := h.regions[i]
		st := chart.DefaultStyle()
		var g orb.Geometry = reg.outline
		if reg.err != nil {
			mp := make(orb.MultiPolygon, len(reg.cells))
			for j, c := range reg.cells {
				mp[j] = orb.Polygon{h.cells[c].ring}
			}
			g = mp
		} else {
			st.Stroke = hexOutline
			st.StrokeWidth = 2
		}
		return &chart.Shape{ID: reg.count.Abbreviation, Name: regionName(reg.count), Kind: chart.Path, Geo: g, Style: st}
	})

	var labeled []hexRegion
	for _, reg := range h.regions {
		if reg.err == nil {
			labeled = append(labeled, reg)
		}
	}
	r.Bind("labels", h.proj, len(labeled), func(i int) *chart.Shape {
		reg := labeled[i]
		st := chart.DefaultStyle()
		st.Fill = hexLabel
		return &chart.Shape{ID: reg.count.Abbreviation, Kind: chart.Label, Geo: reg.anchor, Text: reg.count.Abbreviation, Style: st}
	})

	r.On("regions", chart.PointerEnter, func(ctl *chart.Controller, ev chart.Event) {
		cells := ctl.Renderer().Layer("cells").Shapes
		for _, c := range h.regions[ev.Shape.Record].cells {
			cells[c].Highlight(func(s *chart.Style) { s.Opacity = hexFaded })
		}
	})
	r.On("regions", chart.PointerLeave, func(ctl *chart.Controller, ev chart.Event) {
		cells := ctl.Renderer().Layer("cells").Shapes
		for _, c := range h.regions[ev.Shape.Record].cells {
			cells[c].Restore()
		}
	})
}

// Layout fits the image's viewBox into the viewport.
func (h *HexGrid) Layout(ctl *chart.Controller, w, hgt float64) {
	projection.FitSize(h.proj, w, hgt, h.img.ViewBox.ToPolygon())
}

func (h *HexGrid) Table() (string, []string, [][]string) {
	rows := make([][]string, len(h.regions))
	for i, reg := range h.regions {
		rows[i] = []string{reg.count.Abbreviation, reg.count.Province, fmt.Sprintf("%.0f", reg.count.Wolves)}
	}
	return "regions", []string{"abbr", "province", "wolves"}, rows
}

func regionName(w WolfCount) string {
	if w.Province != "" {
		return w.Province
	}
	return w.Abbreviation
}
