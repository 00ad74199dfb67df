// Package charts holds the five maps: each one turns loaded records into
// chart layers, scales and event handlers.
package charts

import (
	"atlas/internal/chart"
	"atlas/internal/config"
	"atlas/internal/loader"
)

const (
	srcWorld    = "world"
	srcCities   = "cities"
	srcCanada   = "canada"
	srcWolves   = "wolves"
	srcCounties = "counties"
	srcStates   = "states"
	srcPlants   = "plants"
)

// Info describes one chart: what it loads and how it is built.
type Info struct {
	ID          string
	Title       string
	Description string
	Sources     func(s config.Sources) []loader.Source
	New         func(p *loader.Payload) (chart.Chart, error)
}

var registry = []Info{
	{
		ID:          "world",
		Title:       "World cities",
		Description: "countries, graticule and city population",
		Sources: func(s config.Sources) []loader.Source {
			return []loader.Source{
				{Name: srcWorld, Locator: s.WorldTopology, Kind: loader.Topology, Object: "countries"},
				{Name: srcCities, Locator: s.WorldCities, Kind: loader.CSV},
			}
		},
		New: func(p *loader.Payload) (chart.Chart, error) { return NewWorld(p) },
	},
	{
		ID:          "hexgrid",
		Title:       "Wolves of Canada",
		Description: "hex grid of wolf counts per province",
		Sources: func(s config.Sources) []loader.Source {
			return []loader.Source{
				{Name: srcCanada, Locator: s.CanadaSVG, Kind: loader.SVG},
				{Name: srcWolves, Locator: s.Wolves, Kind: loader.CSV},
			}
		},
		New: func(p *loader.Payload) (chart.Chart, error) { return NewHexGrid(p) },
	},
	{
		ID:          "election",
		Title:       "2016 election",
		Description: "county winners weighted by turnout",
		Sources: func(s config.Sources) []loader.Source {
			return []loader.Source{
				{Name: srcCounties, Locator: s.Counties, Kind: loader.Topology, Object: "us_counties"},
			}
		},
		New: func(p *loader.Payload) (chart.Chart, error) { return NewElection(p) },
	},
	{
		ID:          "powerplants",
		Title:       "Power plants",
		Description: "US plants by capacity and source",
		Sources:     plantSources,
		New:         func(p *loader.Payload) (chart.Chart, error) { return NewPowerPlants(p) },
	},
	{
		ID:          "multiples",
		Title:       "Plants by source",
		Description: "one small map per primary source",
		Sources:     plantSources,
		New:         func(p *loader.Payload) (chart.Chart, error) { return NewMultiples(p) },
	},
}

func plantSources(s config.Sources) []loader.Source {
	return []loader.Source{
		{Name: srcStates, Locator: s.States, Kind: loader.Topology, Object: "us_states"},
		{Name: srcPlants, Locator: s.PowerPlants, Kind: loader.CSV},
	}
}

// All lists the charts in menu order.
func All() []Info { return registry }

func Lookup(id string) (Info, bool) {
	for _, s := range registry {
		if s.ID == id {
			return s, true
		}
	}
	return Info{}, false
}

func IDs() []string {
	ids := make([]string, len(registry))
	for i, s := range registry {
		ids[i] = s.ID
	}
	return ids
}
