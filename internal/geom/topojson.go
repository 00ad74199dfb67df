package geom

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type topology struct {
	Type      string                     `json:"type"`
	Transform *topoTransform             `json:"transform"`
	Objects   map[string]json.RawMessage `json:"objects"`
	Arcs      [][][]float64              `json:"arcs"`
}

type topoTransform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

type topoGeometry struct {
	Type       string          `json:"type"`
	ID         any             `json:"id"`
	Properties map[string]any  `json:"properties"`
	Arcs       json.RawMessage `json:"arcs"`
	Geometries []topoGeometry  `json:"geometries"`
}

// DecodeTopology decodes the named object of a TopoJSON topology into
// boundary features. Non-areal geometries are skipped.
func DecodeTopology(data []byte, object string) ([]Feature, error) {
	var t topology
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	if t.Type != "Topology" {
		return nil, errors.New("topojson: not a topology")
	}
	raw, ok := t.Objects[object]
	if !ok {
		return nil, fmt.Errorf("topojson: object %q not found", object)
	}
	var root topoGeometry
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("topojson: object %q: %w", object, err)
	}
	arcs := t.decodeArcs()

	var out []Feature
	var walk func(g topoGeometry) error
	walk = func(g topoGeometry) error {
		switch g.Type {
		case "GeometryCollection":
			for _, c := range g.Geometries {
				if err := walk(c); err != nil {
					return err
				}
			}
			return nil
		case "Polygon":
			var idx [][]int
			if err := json.Unmarshal(g.Arcs, &idx); err != nil {
				return fmt.Errorf("topojson: polygon arcs: %w", err)
			}
			poly := polygonFromArcs(arcs, idx)
			if len(poly) == 0 {
				return nil
			}
			out = append(out, newTopoFeature(g, poly))
		case "MultiPolygon":
			var idx [][][]int
			if err := json.Unmarshal(g.Arcs, &idx); err != nil {
				return fmt.Errorf("topojson: multipolygon arcs: %w", err)
			}
			var mp orb.MultiPolygon
			for _, p := range idx {
				if poly := polygonFromArcs(arcs, p); len(poly) > 0 {
					mp = append(mp, poly)
				}
			}
			if len(mp) == 0 {
				return nil
			}
			out = append(out, newTopoFeature(g, mp))
		}
		return nil
	}
	if err := walk(root); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("topojson: object %q has no polygons", object)
	}
	return out, nil
}

func newTopoFeature(g topoGeometry, geometry orb.Geometry) Feature {
	props := geojson.Properties(g.Properties)
	if props == nil {
		props = geojson.Properties{}
	}
	return Feature{ID: idString(g.ID), Geometry: geometry, Properties: props}
}

// decodeArcs resolves delta encoding and quantization into absolute positions.
func (t topology) decodeArcs() [][]orb.Point {
	out := make([][]orb.Point, len(t.Arcs))
	for i, arc := range t.Arcs {
		pts := make([]orb.Point, 0, len(arc))
		var x, y float64
		for _, pos := range arc {
			if len(pos) < 2 {
				continue
			}
			if t.Transform == nil {
				pts = append(pts, orb.Point{pos[0], pos[1]})
				continue
			}
			x += pos[0]
			y += pos[1]
			pts = append(pts, orb.Point{
				x*t.Transform.Scale[0] + t.Transform.Translate[0],
				y*t.Transform.Scale[1] + t.Transform.Translate[1],
			})
		}
		out[i] = pts
	}
	return out
}

// ring stitches arcs; a negative index ~i means arc i reversed.
func ring(arcs [][]orb.Point, idx []int) orb.Ring {
	var r orb.Ring
	for _, i := range idx {
		reversed := i < 0
		if reversed {
			i = ^i
		}
		if i >= len(arcs) {
			continue
		}
		arc := arcs[i]
		n := len(arc)
		for k := 0; k < n; k++ {
			p := arc[k]
			if reversed {
				p = arc[n-1-k]
			}
			// consecutive arcs share their joining point
			if k == 0 && len(r) > 0 {
				continue
			}
			r = append(r, p)
		}
	}
	if len(r) > 0 && !r[0].Equal(r[len(r)-1]) {
		r = append(r, r[0])
	}
	return r
}

func polygonFromArcs(arcs [][]orb.Point, idx [][]int) orb.Polygon {
	var p orb.Polygon
	for _, ri := range idx {
		if r := ring(arcs, ri); len(r) >= 4 {
			p = append(p, r)
		}
	}
	return p
}
