package plot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/ncpanel/internal/dataset"
	"github.com/san-kum/ncpanel/internal/fmtopts"
	"github.com/san-kum/ncpanel/internal/render"
)

// ErrClosed indicates an operation on a closed plot.
var ErrClosed = errors.New("plot: plot is closed")

// Plot is one live plot of a single variable. It owns the
// per-dimension index state and the formatoptions; rendering reads
// the current slice from the dataset every time.
type Plot struct {
	ds   dataset.Dataset
	kind Kind

	v    *dataset.Variable
	keep []string       // plotted dimensions, variable order
	idim map[string]int // current index per free dimension

	opts   fmtopts.Options
	closed bool
}

// Kind returns the plot method.
func (p *Plot) Kind() Kind { return p.kind }

// Variable returns the plotted variable.
func (p *Plot) Variable() *dataset.Variable { return p.v }

// Options returns the current formatoptions.
func (p *Plot) Options() fmtopts.Options { return p.opts }

// PlottedDims returns the dimensions shown on the plot axes.
func (p *Plot) PlottedDims() []string {
	out := make([]string, len(p.keep))
	copy(out, p.keep)
	return out
}

// FreeDims returns the navigable dimensions in variable order.
func (p *Plot) FreeDims() []string {
	var out []string
	for _, d := range p.v.Dims {
		if _, ok := p.idim[d]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Index returns the current index of a free dimension.
func (p *Plot) Index(dim string) (int, bool) {
	i, ok := p.idim[dim]
	return i, ok
}

// SetIndex moves a free dimension to the given index.
func (p *Plot) SetIndex(dim string, i int) error {
	if p.closed {
		return ErrClosed
	}
	if _, ok := p.idim[dim]; !ok {
		return fmt.Errorf("%w: %s", dataset.ErrNoDimension, dim)
	}
	if i < 0 || i >= p.dimSize(dim) {
		return fmt.Errorf("%w: %s[%d]", dataset.ErrIndexRange, dim, i)
	}
	p.idim[dim] = i
	return nil
}

// DimSize returns the length of a dimension of the variable.
func (p *Plot) DimSize(dim string) int { return p.dimSize(dim) }

func (p *Plot) dimSize(dim string) int {
	for i, d := range p.v.Dims {
		if d == dim {
			return p.v.Shape[i]
		}
	}
	return 0
}

// bind attaches the plot to a variable: the plotted dimensions are
// picked per method, everything else becomes a free dimension
// starting at index 0. Indices of surviving free dimensions are
// preserved across a rebind.
func (p *Plot) bind(v *dataset.Variable) error {
	keep, err := p.keepDims(v)
	if err != nil {
		return err
	}
	old := p.idim
	p.v = v
	p.keep = keep
	p.idim = make(map[string]int)
	for i, d := range v.Dims {
		if contains(keep, d) {
			continue
		}
		idx := old[d]
		if idx >= v.Shape[i] {
			idx = v.Shape[i] - 1
		}
		p.idim[d] = idx
	}
	return nil
}

// keepDims picks the plotted dimensions for the method: mapplot
// takes the X- and Y-typed dimensions, plot2d the two fastest
// varying, lineplot the fastest varying.
func (p *Plot) keepDims(v *dataset.Variable) ([]string, error) {
	switch p.kind {
	case MapPlot:
		var xdim, ydim string
		for _, d := range v.Dims {
			ax, err := p.ds.Axis(d)
			if err != nil {
				continue
			}
			switch ax.Type {
			case dataset.DimX:
				if xdim == "" {
					xdim = d
				}
			case dataset.DimY:
				if ydim == "" {
					ydim = d
				}
			}
		}
		if xdim == "" || ydim == "" {
			return nil, fmt.Errorf("plot: %s has no horizontal axes", v.Name)
		}
		var keep []string
		for _, d := range v.Dims {
			if d == xdim || d == ydim {
				keep = append(keep, d)
			}
		}
		return keep, nil
	case Plot2D:
		if v.NDim() < 2 {
			return nil, fmt.Errorf("plot: %s is not two-dimensional", v.Name)
		}
		return []string{v.Dims[v.NDim()-2], v.Dims[v.NDim()-1]}, nil
	case LinePlot:
		if v.NDim() < 1 {
			return nil, fmt.Errorf("plot: %s has no dimensions", v.Name)
		}
		return []string{v.Dims[v.NDim()-1]}, nil
	}
	return nil, fmt.Errorf("plot: unknown method %q", p.kind)
}

// Render reads the current slice and draws it into a w x h frame.
func (p *Plot) Render(w, h int) (*render.Frame, error) {
	if p.closed {
		return nil, ErrClosed
	}
	data, shape, err := p.ds.Slice(p.v.Name, p.idim, p.keep)
	if err != nil {
		return nil, err
	}

	switch p.kind {
	case LinePlot:
		return render.Line(data, p.lineCaption(), w, h), nil
	case Plot2D:
		if len(shape) != 2 {
			return nil, fmt.Errorf("%w: %v", render.ErrBadField, shape)
		}
		return render.Field(render.FieldSpec{Data: data, Shape: shape, Opts: p.opts}, w, h)
	case MapPlot:
		data, shape, err = p.orientYX(data, shape)
		if err != nil {
			return nil, err
		}
		lons, lats, err := p.horizontalAxes()
		if err != nil {
			return nil, err
		}
		return render.Field(render.FieldSpec{
			Data: data, Shape: shape,
			Lons: lons, Lats: lats,
			Map:  true,
			Opts: p.opts,
		}, w, h)
	}
	return nil, fmt.Errorf("plot: unknown method %q", p.kind)
}

// orientYX transposes a map slice whose dimensions came out in
// lon-major order so the renderer always sees [lat, lon].
func (p *Plot) orientYX(data []float64, shape []int) ([]float64, []int, error) {
	if len(shape) != 2 || len(p.keep) != 2 {
		return nil, nil, fmt.Errorf("%w: %v", render.ErrBadField, shape)
	}
	first, err := p.ds.Axis(p.keep[0])
	if err != nil {
		return nil, nil, err
	}
	if first.Type != dataset.DimX {
		return data, shape, nil
	}
	nx, ny := shape[0], shape[1]
	out := make([]float64, len(data))
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			out[iy*nx+ix] = data[ix*ny+iy]
		}
	}
	return out, []int{ny, nx}, nil
}

// horizontalAxes returns the cell-center coordinates of the map.
func (p *Plot) horizontalAxes() (lons, lats []float64, err error) {
	for _, d := range p.keep {
		ax, err := p.ds.Axis(d)
		if err != nil {
			return nil, nil, err
		}
		switch ax.Type {
		case dataset.DimX:
			lons = ax.Values
		case dataset.DimY:
			lats = ax.Values
		}
	}
	if lons == nil || lats == nil {
		return nil, nil, fmt.Errorf("plot: %s has no horizontal axes", p.v.Name)
	}
	return lons, lats, nil
}

// lineCaption labels the line plot with the variable and its fixed
// coordinates.
func (p *Plot) lineCaption() string {
	label := p.v.Name
	if p.v.Units != "" {
		label += " [" + p.v.Units + "]"
	}
	for _, d := range p.FreeDims() {
		ax, err := p.ds.Axis(d)
		if err != nil || p.idim[d] >= ax.Size() {
			continue
		}
		label += fmt.Sprintf(", %s=%s", d, ax.Labels[p.idim[d]])
	}
	return label
}

// Title returns the heading shown above the plot.
func (p *Plot) Title() string {
	if p.opts.Title != "" {
		return p.expand(p.opts.Title)
	}
	if p.v.LongName != "" {
		return p.v.LongName
	}
	return p.v.Name
}

// CLabel returns the colorbar label, empty when unset.
func (p *Plot) CLabel() string {
	if p.opts.CLabel == "" {
		return ""
	}
	return p.expand(p.opts.CLabel)
}

// expand fills the variable placeholders of title and label
// templates.
func (p *Plot) expand(s string) string {
	return strings.NewReplacer(
		"%(name)s", p.v.Name,
		"%(long_name)s", p.v.LongName,
		"%(units)s", p.v.Units,
	).Replace(s)
}

// Close releases the plot. Further operations fail with ErrClosed.
func (p *Plot) Close() {
	p.closed = true
}

// Closed reports whether the plot has been closed.
func (p *Plot) Closed() bool { return p.closed }

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
