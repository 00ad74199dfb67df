package loader

import (
	"fmt"

	"atlas/internal/geom"
)

// Payload holds parsed sources keyed by Source.Name.
type Payload struct {
	features map[string][]geom.Feature
	tables   map[string]*geom.Table
	images   map[string]*geom.HexImage
}

func newPayload() *Payload {
	return &Payload{
		features: map[string][]geom.Feature{},
		tables:   map[string]*geom.Table{},
		images:   map[string]*geom.HexImage{},
	}
}

// Features returns the boundary features of a topology or GeoJSON source.
func (p *Payload) Features(name string) ([]geom.Feature, error) {
	fs, ok := p.features[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s: no boundary data", ErrLoad, name)
	}
	return fs, nil
}

// Table returns a parsed CSV source.
func (p *Payload) Table(name string) (*geom.Table, error) {
	t, ok := p.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s: no table", ErrLoad, name)
	}
	return t, nil
}

// Image returns a parsed hex image source.
func (p *Payload) Image(name string) (*geom.HexImage, error) {
	img, ok := p.images[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s: no image", ErrLoad, name)
	}
	return img, nil
}
