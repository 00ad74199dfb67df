package config

// DefaultConfig returns a Config pointing at the stock data file names.
func DefaultConfig() *Config {
	return &Config{
		DataDir:      "data",
		DefaultChart: "world",
		FrameMS:      16,
		Sources: Sources{
			WorldTopology: "world.topojson",
			WorldCities:   "world-cities.csv",
			CanadaSVG:     "canada.svg",
			Wolves:        "wolves.csv",
			Counties:      "counties_with_election_data.topojson",
			States:        "us_states.topojson",
			PowerPlants:   "powerplants.csv",
		},
	}
}
