package mortality

import (
	"fmt"
	"sort"

	"lifespan/mortality/pkg/lifetable"
)

type Config struct {
	Data     DataConfig     `yaml:"data"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Chart    ChartConfig    `yaml:"chart"`
}

type DataConfig struct {
	Path    string            `yaml:"path"`
	Columns lifetable.Columns `yaml:"columns"`
}

type AnalysisConfig struct {
	MinAge      int       `yaml:"minAge"`
	Percentiles []float64 `yaml:"percentiles"`
	// Optimistic shifts every synthetic death age by half a year,
	// modeling mid-year death timing.
	Optimistic  bool `yaml:"optimistic"`
	TerminalAge int  `yaml:"terminalAge"`
}

type ChartConfig struct {
	Out          string  `yaml:"out"`
	Distribution bool    `yaml:"distribution"`
	Skew         float64 `yaml:"skew"`
}

// Default returns the configuration used when a field is absent from
// the config file.
func Default() Config {
	return Config{
		Data: DataConfig{
			Path:    "./data/us-total-population.csv",
			Columns: lifetable.DefaultColumns(),
		},
		Analysis: AnalysisConfig{
			Percentiles: []float64{10, 50, 90},
			Optimistic:  true,
			TerminalAge: lifetable.DefaultTerminalAge,
		},
		Chart: ChartConfig{
			Out:          "deaths.png",
			Distribution: true,
			Skew:         -3.5,
		},
	}
}

// Validate checks the configuration and sorts the percentile list so
// results print in ascending percentile order.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return fmt.Errorf("data path is required")
	}
	if c.Analysis.MinAge < 0 {
		return fmt.Errorf("minAge %d must be non-negative", c.Analysis.MinAge)
	}
	if len(c.Analysis.Percentiles) == 0 {
		return fmt.Errorf("at least one percentile is required")
	}
	for _, p := range c.Analysis.Percentiles {
		if p < 0 || p > 100 {
			return fmt.Errorf("percentile %v outside [0, 100]", p)
		}
	}
	sort.Float64s(c.Analysis.Percentiles)
	if c.Chart.Out == "" {
		return fmt.Errorf("chart output path is required")
	}
	return nil
}
