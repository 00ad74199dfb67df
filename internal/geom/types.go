package geom

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrMalformedRegion is returned when a group of cells cannot be merged into a
// single outline.
var ErrMalformedRegion = errors.New("malformed region")

// Feature is a named boundary region (country, county, state).
type Feature struct {
	ID         string
	Geometry   orb.Geometry // orb.Polygon or orb.MultiPolygon
	Properties geojson.Properties
}

// Name returns the first non-empty naming property.
func (f Feature) Name() string {
	for _, k := range []string{"name", "NAME", "abbrev", "abbreviation"} {
		if s, ok := f.Properties[k].(string); ok && s != "" {
			return s
		}
	}
	return f.ID
}

// Bounds returns the union of the bounds of all features.
func Bounds(fs []Feature) orb.Bound {
	var b orb.Bound
	for i, f := range fs {
		if i == 0 {
			b = f.Geometry.Bound()
			continue
		}
		b = b.Union(f.Geometry.Bound())
	}
	return b
}

// Collection returns all feature geometries as one collection, for fitting.
func Collection(fs []Feature) orb.Collection {
	c := make(orb.Collection, 0, len(fs))
	for _, f := range fs {
		c = append(c, f.Geometry)
	}
	return c
}

// areal keeps polygonal geometries and drops everything else.
func areal(g orb.Geometry) (orb.Geometry, bool) {
	switch g := g.(type) {
	case orb.Polygon:
		return g, len(g) > 0
	case orb.MultiPolygon:
		return g, len(g) > 0
	case orb.Bound:
		return g.ToPolygon(), true
	}
	return nil, false
}

func idString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprint(t)
	}
}
