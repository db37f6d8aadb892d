package config

// Presets are ready-made panel configurations selectable by name.
var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"print": {
		Cmaps:       []string{"binary", "Blues", "Reds"},
		Projections: []string{"cyl", "robin"},
		IntervalMS:  DefaultIntervalMS,
		Plot:        PlotConfig{Cmap: "binary", Projection: "robin", LSM: "50m"},
		Export:      ExportConfig{Dir: ".", Scale: 8.0},
	},
	"presentation": {
		Cmaps:       []string{"viridis", "plasma", "coolwarm"},
		Projections: []string{"ortho", "moll", "cyl"},
		IntervalMS:  250,
		Plot:        PlotConfig{Cmap: "plasma", Projection: "ortho", LSM: "110m"},
		Export:      ExportConfig{Dir: ".", Scale: 6.0},
	},
	"anomaly": {
		Cmaps:       []string{"RdBu", "coolwarm"},
		Projections: []string{"cyl", "robin", "moll", "ortho"},
		IntervalMS:  DefaultIntervalMS,
		Plot:        PlotConfig{Cmap: "RdBu", Projection: "cyl", LSM: "110m"},
		Export:      ExportConfig{Dir: ".", Scale: DefaultExportScale},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
