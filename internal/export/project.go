package export

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ncpanel/internal/dataset"
	"github.com/san-kum/ncpanel/internal/fmtopts"
)

// PlotState is the persisted state of one plot.
type PlotState struct {
	Variable string          `yaml:"variable"`
	Method   string          `yaml:"method"`
	Dims     map[string]int  `yaml:"dims,omitempty"`
	Options  fmtopts.Options `yaml:"formatoptions"`
}

// Project is the persisted panel state. A project either references
// the dataset by path or embeds its values, so it can be reopened on
// a machine without the source file.
type Project struct {
	DatasetPath string       `yaml:"dataset,omitempty"`
	Data        *DatasetData `yaml:"data,omitempty"`
	Plots       []PlotState  `yaml:"plots"`
	IntervalMS  int          `yaml:"interval_ms"`
}

// DatasetData is an embedded copy of a dataset.
type DatasetData struct {
	Name string         `yaml:"name"`
	Axes []AxisData     `yaml:"axes"`
	Vars []VariableData `yaml:"variables"`
}

type AxisData struct {
	Name   string    `yaml:"name"`
	Units  string    `yaml:"units,omitempty"`
	Values []float64 `yaml:"values"`
}

type VariableData struct {
	Name     string    `yaml:"name"`
	LongName string    `yaml:"long_name,omitempty"`
	Units    string    `yaml:"units,omitempty"`
	Dims     []string  `yaml:"dims"`
	Values   []float64 `yaml:"values"`
}

// EmbedDataset copies all variables of the dataset into the project
// so the file is self-contained.
func EmbedDataset(ds dataset.Dataset) (*DatasetData, error) {
	data := &DatasetData{Name: ds.Name()}
	seen := make(map[string]bool)
	for _, name := range ds.Variables() {
		v, err := ds.Variable(name)
		if err != nil {
			return nil, err
		}
		for _, d := range v.Dims {
			if seen[d] {
				continue
			}
			seen[d] = true
			ax, err := ds.Axis(d)
			if err != nil {
				return nil, err
			}
			data.Axes = append(data.Axes, AxisData{Name: ax.Name, Units: ax.Units, Values: ax.Values})
		}
		values, _, err := ds.Slice(name, nil, v.Dims)
		if err != nil {
			return nil, err
		}
		data.Vars = append(data.Vars, VariableData{
			Name:     name,
			LongName: v.LongName,
			Units:    v.Units,
			Dims:     v.Dims,
			Values:   values,
		})
	}
	return data, nil
}

// Restore rebuilds an in-memory dataset from embedded data.
func (d *DatasetData) Restore() (dataset.Dataset, error) {
	m := dataset.NewMemory(d.Name)
	for _, ax := range d.Axes {
		m.AddAxis(ax.Name, ax.Units, ax.Values)
	}
	for _, v := range d.Vars {
		if err := m.AddVariable(v.Name, v.LongName, v.Units, v.Dims, v.Values); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// SaveProject writes the project as YAML.
func SaveProject(path string, p *Project) error {
	out, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}

// LoadProject reads a project file.
func LoadProject(path string) (*Project, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Project
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("export: project %s: %w", path, err)
	}
	return &p, nil
}

// OpenDataset resolves the project's dataset: embedded data wins,
// otherwise the referenced path is opened.
func (p *Project) OpenDataset() (dataset.Dataset, error) {
	if p.Data != nil {
		return p.Data.Restore()
	}
	if p.DatasetPath == "" {
		return nil, fmt.Errorf("export: project has neither data nor a dataset path")
	}
	return dataset.OpenNetCDF(p.DatasetPath)
}
