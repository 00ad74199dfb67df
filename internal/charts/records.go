package charts

import (
	"fmt"
	"math"
	"strconv"

	"atlas/internal/geom"
	"atlas/internal/loader"
)

type City struct {
	Name       string
	Lon, Lat   float64
	Population float64
}

type WolfCount struct {
	Province     string
	Abbreviation string
	Wolves       float64
}

type County struct {
	Name    string
	State   string
	Clinton float64
	Trump   float64
}

type PowerPlant struct {
	Name       string
	Lon, Lat   float64
	TotalMW    float64
	PrimSource string
}

func loadErr(source string, err error) error {
	return fmt.Errorf("%w: %s: %w", loader.ErrLoad, source, err)
}

// floats parses several numeric cells of one row.
func floats(t *geom.Table, row int, cols ...int) ([]float64, error) {
	out := make([]float64, len(cols))
	for i, c := range cols {
		v, err := t.Float(row, c)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseCities(source string, t *geom.Table) ([]City, error) {
	lon, err := t.Require("lng", "lon", "longitude")
	if err != nil {
		return nil, loadErr(source, err)
	}
	lat, err := t.Require("lat", "latitude")
	if err != nil {
		return nil, loadErr(source, err)
	}
	pop, err := t.Require("population", "pop")
	if err != nil {
		return nil, loadErr(source, err)
	}
	name := t.Column("city", "name", "city_ascii")

	cities := make([]City, 0, len(t.Rows))
	for i := range t.Rows {
		v, err := floats(t, i, lon, lat, pop)
		if err != nil {
			return nil, loadErr(source, err)
		}
		cities = append(cities, City{Name: t.String(i, name), Lon: v[0], Lat: v[1], Population: v[2]})
	}
	return cities, nil
}

func parseWolves(source string, t *geom.Table) ([]WolfCount, error) {
	abbr, err := t.Require("abbreviation", "abbrev")
	if err != nil {
		return nil, loadErr(source, err)
	}
	wolves, err := t.Require("wolves")
	if err != nil {
		return nil, loadErr(source, err)
	}
	province := t.Column("province", "name")

	out := make([]WolfCount, 0, len(t.Rows))
	for i := range t.Rows {
		n, err := t.Float(i, wolves)
		if err != nil {
			return nil, loadErr(source, err)
		}
		a := t.String(i, abbr)
		if a == "" {
			return nil, loadErr(source, fmt.Errorf("csv: row %d: empty abbreviation", i+2))
		}
		out = append(out, WolfCount{Province: t.String(i, province), Abbreviation: a, Wolves: n})
	}
	return out, nil
}

func parsePlants(source string, t *geom.Table) ([]PowerPlant, error) {
	lon, err := t.Require("Longitude", "lng", "lon")
	if err != nil {
		return nil, loadErr(source, err)
	}
	lat, err := t.Require("Latitude", "lat")
	if err != nil {
		return nil, loadErr(source, err)
	}
	mw, err := t.Require("Total_MW")
	if err != nil {
		return nil, loadErr(source, err)
	}
	src, err := t.Require("PrimSource")
	if err != nil {
		return nil, loadErr(source, err)
	}
	name := t.Column("Plant_Name", "name")

	out := make([]PowerPlant, 0, len(t.Rows))
	for i := range t.Rows {
		v, err := floats(t, i, lon, lat, mw)
		if err != nil {
			return nil, loadErr(source, err)
		}
		out = append(out, PowerPlant{
			Name:       t.String(i, name),
			Lon:        v[0],
			Lat:        v[1],
			TotalMW:    v[2],
			PrimSource: t.String(i, src),
		})
	}
	return out, nil
}

// countiesFrom reads the election properties of county features. Missing
// vote counts are zero; present but non-numeric counts fail the load.
func countiesFrom(source string, fs []geom.Feature) ([]County, error) {
	out := make([]County, len(fs))
	for i, f := range fs {
		c := County{Name: f.Name()}
		c.State, _ = f.Properties["state"].(string)
		var err error
		if c.Clinton, err = voteCount(f, "clinton"); err != nil {
			return nil, loadErr(source, err)
		}
		if c.Trump, err = voteCount(f, "trump"); err != nil {
			return nil, loadErr(source, err)
		}
		out[i] = c
	}
	return out, nil
}

func voteCount(f geom.Feature, key string) (float64, error) {
	switch v := f.Properties[key].(type) {
	case nil:
		return 0, nil
	case float64:
		if math.IsNaN(v) {
			return 0, fmt.Errorf("feature %s: %s is NaN", f.ID, key)
		}
		return v, nil
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("feature %s: %s: %w", f.ID, key, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("feature %s: %s has type %T", f.ID, key, v)
	}
}
