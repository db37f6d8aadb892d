// Package plot is the plotting layer the panel controls: a closed
// set of plot methods, each with a compatibility check and a
// factory, and the Plot object owning the per-dimension index state
// and formatoptions.
package plot

import (
	"fmt"

	"github.com/san-kum/ncpanel/internal/dataset"
	"github.com/san-kum/ncpanel/internal/fmtopts"
)

// Kind names a plot method.
type Kind string

const (
	MapPlot  Kind = "mapplot"
	Plot2D   Kind = "plot2d"
	LinePlot Kind = "lineplot"
)

// kinds is the ordered closed set, most specific first; the
// ordering decides which method a prompt offers first.
var kinds = []Kind{MapPlot, Plot2D, LinePlot}

// Kinds lists the plot methods in prompt order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// Supports reports whether the method honors the named
// formatoption.
func (k Kind) Supports(opt string) bool {
	switch k {
	case MapPlot:
		switch opt {
		case "cmap", "bounds", "datagrid", "projection", "clon", "clat", "lsm", "xgrid", "ygrid", "title", "clabel":
			return true
		}
	case Plot2D:
		switch opt {
		case "cmap", "bounds", "datagrid", "title", "clabel":
			return true
		}
	case LinePlot:
		return opt == "title"
	}
	return false
}

// Check reports whether the method can plot the variable.
func (k Kind) Check(ds dataset.Dataset, v *dataset.Variable) bool {
	switch k {
	case MapPlot:
		return hasDimType(ds, v, dataset.DimX) && hasDimType(ds, v, dataset.DimY)
	case Plot2D:
		return v.NDim() >= 2
	case LinePlot:
		return v.NDim() >= 1
	}
	return false
}

func hasDimType(ds dataset.Dataset, v *dataset.Variable, t dataset.DimType) bool {
	for _, d := range v.Dims {
		ax, err := ds.Axis(d)
		if err == nil && ax.Type == t {
			return true
		}
	}
	return false
}

// Available lists the methods compatible with the named variable.
func Available(ds dataset.Dataset, name string) ([]Kind, error) {
	v, err := ds.Variable(name)
	if err != nil {
		return nil, err
	}
	var out []Kind
	for _, k := range kinds {
		if k.Check(ds, v) {
			out = append(out, k)
		}
	}
	return out, nil
}

// New creates a plot of the given kind for the named variable.
func New(ds dataset.Dataset, kind Kind, name string, opts ...Option) (*Plot, error) {
	v, err := ds.Variable(name)
	if err != nil {
		return nil, err
	}
	if !kind.Check(ds, v) {
		return nil, fmt.Errorf("plot: %s cannot plot variable %s", kind, name)
	}
	p := &Plot{ds: ds, kind: kind, opts: fmtopts.Defaults()}
	if err := p.bind(v); err != nil {
		return nil, err
	}
	if err := p.Update(opts...); err != nil {
		return nil, err
	}
	return p, nil
}
