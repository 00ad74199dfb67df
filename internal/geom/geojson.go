package geom

import (
	"encoding/json"
	"errors"

	"github.com/paulmach/orb/geojson"
)

// DecodeFeatureCollection reads GeoJSON boundaries (a FeatureCollection or a
// single Feature) and keeps the polygonal features.
func DecodeFeatureCollection(data []byte) ([]Feature, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	var features []*geojson.Feature
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, err
		}
		features = fc.Features
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		features = []*geojson.Feature{f}
	case "":
		return nil, errors.New("invalid geojson: missing type")
	default:
		return nil, errors.New("unsupported geojson type: " + head.Type)
	}

	out := make([]Feature, 0, len(features))
	for _, f := range features {
		g, ok := areal(f.Geometry)
		if !ok {
			continue
		}
		props := f.Properties
		if props == nil {
			props = geojson.Properties{}
		}
		out = append(out, Feature{ID: idString(f.ID), Geometry: g, Properties: props})
	}
	if len(out) == 0 {
		return nil, errors.New("no polygons found")
	}
	return out, nil
}
