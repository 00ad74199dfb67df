package charts

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"atlas/internal/chart"
	"atlas/internal/geom"
	"atlas/internal/loader"
	"atlas/internal/projection"
	"atlas/internal/scale"
)

const (
	electionBackground = "#ffffff"
	clintonFill        = "#800080"
	trumpFill          = "#008000"
	tieFill            = "#f5f5f5"
	tooltipBg          = "#fefefe"
	tooltipFg          = "#000000"

	// Douglas-Peucker threshold for county outlines, in micro-pixels
	countyTolerance = 0.5
)

// Election colors US counties by the 2016 winner with opacity by turnout.
// The m key switches to a diverging color by Trump's share of the vote.
type Election struct {
	features []geom.Feature
	counties []County
	opacity  scale.Linear
	margin   scale.Sequential
	proj     projection.Projection
	margins  bool
}

func NewElection(p *loader.Payload) (*Election, error) {
	fs, err := p.Features(srcCounties)
	if err != nil {
		return nil, err
	}
	counties, err := countiesFrom(srcCounties, fs)
	if err != nil {
		return nil, err
	}
	return &Election{
		features: fs,
		counties: counties,
		opacity:  scale.Linear{Domain: [2]float64{0, 80000}, Range: [2]float64{0, 1}, Clamp: true},
		margin:   scale.Sequential{Domain: [2]float64{0, 1}, Interp: scale.PiYG},
		proj:     projection.NewAlbersUSA(),
	}, nil
}

func (e *Election) Build(ctl *chart.Controller) {
	ctl.SetBackground(electionBackground)
	r := ctl.Renderer()

	l := r.Bind("counties", e.proj, len(e.features), func(i int) *chart.Shape {
		f := e.features[i]
		c := e.counties[i]
		st := chart.DefaultStyle()
		st.Fill = e.fill(c)
		if c.State != "" {
			st.Opacity = e.opacity.Map(c.Clinton + c.Trump)
		}
		return &chart.Shape{ID: f.ID, Name: c.Name, Kind: chart.Path, Geo: f.Geometry, Style: st}
	})
	l.Tolerance = countyTolerance

	r.On("counties", chart.PointerEnter, func(ctl *chart.Controller, ev chart.Event) {
		showTooltip(ctl, ev, tooltip(e.counties[ev.Shape.Record]))
	})
	r.On("counties", chart.PointerLeave, func(ctl *chart.Controller, ev chart.Event) {
		ctl.HideLabel()
	})
}

func (e *Election) fill(c County) string {
	if e.margins {
		if total := c.Clinton + c.Trump; total > 0 {
			return e.margin.Map(c.Trump / total)
		}
		return tieFill
	}
	switch {
	case c.Clinton > c.Trump:
		return clintonFill
	case c.Trump > c.Clinton:
		return trumpFill
	}
	return tieFill
}

func (e *Election) Layout(ctl *chart.Controller, w, h float64) {
	projection.FitSize(e.proj, w, h, geom.Collection(e.features))
}

// HandleKey toggles margin coloring.
func (e *Election) HandleKey(ctl *chart.Controller, key string) (string, bool) {
	if key != "m" {
		return "", false
	}
	e.margins = !e.margins
	for _, s := range ctl.Renderer().Layer("counties").Shapes {
		s.Style.Fill = e.fill(e.counties[s.Record])
	}
	if e.margins {
		return "coloring by Trump share of the two-party vote", true
	}
	return "coloring by winner", true
}

func (e *Election) Table() (string, []string, [][]string) {
	rows := make([][]string, len(e.counties))
	for i, c := range e.counties {
		rows[i] = []string{c.Name, c.State, fmt.Sprintf("%.0f", c.Clinton), fmt.Sprintf("%.0f", c.Trump)}
	}
	return "counties", []string{"county", "state", "clinton", "trump"}, rows
}

// tooltip is the county line followed by the winner's share, rounded to a
// whole percent. Ties have no winner line.
func tooltip(c County) []string {
	lines := []string{fmt.Sprintf("%s County, %s", c.Name, c.State)}
	total := c.Clinton + c.Trump
	switch {
	case c.Clinton > c.Trump:
		lines = append(lines, fmt.Sprintf("Clinton with %d%%", percent(c.Clinton, total)))
	case c.Trump > c.Clinton:
		lines = append(lines, fmt.Sprintf("Trump with %d%%", percent(c.Trump, total)))
	}
	return lines
}

func percent(part, total float64) int {
	return int(math.Round(part / total * 100))
}

// showTooltip places a box just below and right of the pointer, flipping to
// the left when it would run off the viewport.
func showTooltip(ctl *chart.Controller, ev chart.Event, lines []string) {
	w, _ := ctl.Size()
	at := orb.Point{ev.X + 2, ev.Y + 4}
	if width := float64(2 * (longest(lines) + 2)); at[0]+width > w {
		at[0] = math.Max(0, ev.X-width-2)
	}
	ctl.ShowLabel(chart.Overlay{Lines: lines, At: at, Fg: tooltipFg, Bg: tooltipBg})
}

func longest(lines []string) int {
	n := 0
	for _, l := range lines {
		n = max(n, len([]rune(l)))
	}
	return n
}
