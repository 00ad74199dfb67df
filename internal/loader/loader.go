// Package loader fetches and parses a chart's input files concurrently.
// Either every source loads or the whole load fails.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"atlas/internal/geom"
)

// ErrLoad is wrapped by every load failure.
var ErrLoad = errors.New("load failed")

type Kind string

const (
	Topology Kind = "topology"
	GeoJSON  Kind = "geojson"
	CSV      Kind = "csv"
	SVG      Kind = "svg"
)

// Source names one input. Locator is an http(s) URL or a path; relative
// paths resolve against the loader's data directory. Object selects the
// TopoJSON object to decode.
type Source struct {
	Name    string
	Locator string
	Kind    Kind
	Object  string
}

type Loader struct {
	Dir    string
	Client *http.Client
}

func New(dir string) *Loader {
	return &Loader{Dir: dir, Client: &http.Client{Timeout: 30 * time.Second}}
}

// Load fetches with a loader rooted at the working directory.
func Load(ctx context.Context, sources ...Source) (*Payload, error) {
	return New("").Load(ctx, sources...)
}

// Load fetches and parses every source. The first failure cancels the rest
// and no partial payload is returned.
func (l *Loader) Load(ctx context.Context, sources ...Source) (*Payload, error) {
	results := make([]result, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			data, err := l.fetch(ctx, src.Locator)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrLoad, src.Name, err)
			}
			res, err := parse(src, data)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrLoad, src.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p := newPayload()
	for i, src := range sources {
		r := results[i]
		switch {
		case r.features != nil:
			p.features[src.Name] = r.features
		case r.table != nil:
			p.tables[src.Name] = r.table
		case r.image != nil:
			p.images[src.Name] = r.image
		}
	}
	return p, nil
}

type result struct {
	features []geom.Feature
	table    *geom.Table
	image    *geom.HexImage
}

func (l *Loader) fetch(ctx context.Context, loc string) ([]byte, error) {
	if strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
		if err != nil {
			return nil, err
		}
		resp, err := l.Client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("GET %s: %s", loc, resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
	path := loc
	if !filepath.IsAbs(path) && l.Dir != "" {
		path = filepath.Join(l.Dir, path)
	}
	return os.ReadFile(path)
}

func parse(src Source, data []byte) (result, error) {
	var (
		r   result
		err error
	)
	switch src.Kind {
	case Topology:
		r.features, err = geom.DecodeTopology(data, src.Object)
		if err == nil && r.features == nil {
			r.features = []geom.Feature{}
		}
	case GeoJSON:
		r.features, err = geom.DecodeFeatureCollection(data)
		if err == nil && r.features == nil {
			r.features = []geom.Feature{}
		}
	case CSV:
		r.table, err = geom.ReadTable(bytes.NewReader(data))
	case SVG:
		r.image, err = geom.DecodeHexImage(bytes.NewReader(data))
	default:
		err = fmt.Errorf("unknown source kind %q", src.Kind)
	}
	return r, err
}
