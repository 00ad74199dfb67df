package config

// Config is the top-level atlas configuration, corresponding to atlas.yml.
type Config struct {
	DataDir      string  `yaml:"data_dir" koanf:"data_dir"`
	LogFile      string  `yaml:"log_file" koanf:"log_file"`
	DefaultChart string  `yaml:"default_chart" koanf:"default_chart"`
	FrameMS      int     `yaml:"frame_ms" koanf:"frame_ms"`
	Sources      Sources `yaml:"sources" koanf:"sources"`
}

// Sources locates every input file. Values are paths relative to DataDir,
// absolute paths or http(s) URLs.
type Sources struct {
	WorldTopology string `yaml:"world_topology" koanf:"world_topology"`
	WorldCities   string `yaml:"world_cities" koanf:"world_cities"`
	CanadaSVG     string `yaml:"canada_svg" koanf:"canada_svg"`
	Wolves        string `yaml:"wolves" koanf:"wolves"`
	Counties      string `yaml:"counties" koanf:"counties"`
	States        string `yaml:"states" koanf:"states"`
	PowerPlants   string `yaml:"powerplants" koanf:"powerplants"`
}
