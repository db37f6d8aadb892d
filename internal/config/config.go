package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ncpanel/internal/colormap"
	"github.com/san-kum/ncpanel/internal/render"
)

const (
	DefaultIntervalMS = 500
	MinIntervalMS     = 40
	MaxIntervalMS     = 10000

	DefaultExportScale = 4.0
	DefaultPlotWidth   = 100
	DefaultPlotHeight  = 30
)

type Config struct {
	// Cmaps is the colormap cycle, base names without the _r suffix.
	Cmaps []string `yaml:"cmaps"`

	// Projections is the projection cycle of the map plot.
	Projections []string `yaml:"projections"`

	IntervalMS int          `yaml:"interval_ms"`
	Plot       PlotConfig   `yaml:"plot"`
	Export     ExportConfig `yaml:"export"`
}

type PlotConfig struct {
	Cmap       string `yaml:"cmap"`
	Projection string `yaml:"projection"`
	LSM        string `yaml:"lsm"`
}

type ExportConfig struct {
	Dir   string  `yaml:"dir"`
	Scale float64 `yaml:"scale"`
}

func DefaultConfig() *Config {
	return &Config{
		Cmaps:       colormap.Names(),
		Projections: render.ProjectionNames(),
		IntervalMS:  DefaultIntervalMS,
		Plot: PlotConfig{
			Cmap:       "viridis",
			Projection: "cyl",
			LSM:        "110m",
		},
		Export: ExportConfig{
			Dir:   ".",
			Scale: DefaultExportScale,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Normalize clamps values a hand-edited file may have pushed out of
// range.
func (c *Config) Normalize() {
	if c.IntervalMS < MinIntervalMS {
		c.IntervalMS = MinIntervalMS
	}
	if c.IntervalMS > MaxIntervalMS {
		c.IntervalMS = MaxIntervalMS
	}
	if len(c.Cmaps) == 0 {
		c.Cmaps = colormap.Names()
	}
	if len(c.Projections) == 0 {
		c.Projections = render.ProjectionNames()
	}
	if c.Export.Scale <= 0 {
		c.Export.Scale = DefaultExportScale
	}
}
