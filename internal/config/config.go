package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load layers path over the defaults, then ATLAS_ variables on top.
// ATLAS_SOURCES__WOLVES sets sources.wolves. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider("ATLAS_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "ATLAS_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate rejects an empty default chart, an out-of-range frame interval
// and unset source paths.
func (c *Config) Validate() error {
	if c.DefaultChart == "" {
		return fmt.Errorf("default_chart is required")
	}
	if c.FrameMS <= 0 || c.FrameMS > 1000 {
		return fmt.Errorf("frame_ms must be between 1 and 1000, got %d", c.FrameMS)
	}
	required := []struct{ key, value string }{
		{"sources.world_topology", c.Sources.WorldTopology},
		{"sources.world_cities", c.Sources.WorldCities},
		{"sources.canada_svg", c.Sources.CanadaSVG},
		{"sources.wolves", c.Sources.Wolves},
		{"sources.counties", c.Sources.Counties},
		{"sources.states", c.Sources.States},
		{"sources.powerplants", c.Sources.PowerPlants},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%s is required", r.key)
		}
	}
	return nil
}
