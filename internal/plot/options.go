package plot

import (
	"fmt"

	"github.com/san-kum/ncpanel/internal/fmtopts"
)

// Option mutates one aspect of a plot in an Update call.
type Option func(*updateSpec)

type updateSpec struct {
	name    *string
	dims    map[string]int
	replace *fmtopts.Options

	sets []optSet
}

type optSet struct {
	key   string
	apply func(*fmtopts.Options)
}

// WithName switches the plot to another variable. Indices of shared
// free dimensions are preserved.
func WithName(name string) Option {
	return func(u *updateSpec) { u.name = &name }
}

// WithDims moves free dimensions to the given indices.
func WithDims(dims map[string]int) Option {
	return func(u *updateSpec) {
		if u.dims == nil {
			u.dims = make(map[string]int)
		}
		for d, i := range dims {
			u.dims[d] = i
		}
	}
}

// WithOptions replaces the formatoptions wholesale, for loading a
// saved project.
func WithOptions(opts fmtopts.Options) Option {
	return func(u *updateSpec) { u.replace = &opts }
}

func setOpt(key string, apply func(*fmtopts.Options)) Option {
	return func(u *updateSpec) { u.sets = append(u.sets, optSet{key, apply}) }
}

func WithCmap(name string) Option {
	return setOpt("cmap", func(o *fmtopts.Options) { o.Cmap = name })
}

func WithBounds(b fmtopts.BoundsSpec) Option {
	return setOpt("bounds", func(o *fmtopts.Options) { o.Bounds = b })
}

func WithProjection(name string) Option {
	return setOpt("projection", func(o *fmtopts.Options) { o.Projection = name })
}

func WithClon(v *float64) Option {
	return setOpt("clon", func(o *fmtopts.Options) { o.Clon = v })
}

func WithClat(v *float64) Option {
	return setOpt("clat", func(o *fmtopts.Options) { o.Clat = v })
}

func WithLSM(res string) Option {
	return setOpt("lsm", func(o *fmtopts.Options) { o.LSM = res })
}

func WithXGrid(g fmtopts.GridSpec) Option {
	return setOpt("xgrid", func(o *fmtopts.Options) { o.XGrid = g })
}

func WithYGrid(g fmtopts.GridSpec) Option {
	return setOpt("ygrid", func(o *fmtopts.Options) { o.YGrid = g })
}

func WithDatagrid(on bool) Option {
	return setOpt("datagrid", func(o *fmtopts.Options) { o.Datagrid = on })
}

func WithTitle(title string) Option {
	return setOpt("title", func(o *fmtopts.Options) { o.Title = title })
}

func WithCLabel(label string) Option {
	return setOpt("clabel", func(o *fmtopts.Options) { o.CLabel = label })
}

// Update applies the given changes in one step: a variable switch
// first, then dimension moves, then formatoptions. Formatoption
// setters the plot method does not support are ignored, so callers
// can hand the same option set to any method.
func (p *Plot) Update(opts ...Option) error {
	if p.closed {
		return ErrClosed
	}
	var u updateSpec
	for _, opt := range opts {
		opt(&u)
	}

	if u.name != nil && *u.name != p.v.Name {
		v, err := p.ds.Variable(*u.name)
		if err != nil {
			return err
		}
		if !p.kind.Check(p.ds, v) {
			return fmt.Errorf("plot: %s cannot plot variable %s", p.kind, v.Name)
		}
		if err := p.bind(v); err != nil {
			return err
		}
	}
	for d, i := range u.dims {
		if _, ok := p.idim[d]; !ok {
			continue // plotted or absent dimension
		}
		if err := p.SetIndex(d, i); err != nil {
			return err
		}
	}

	if u.replace != nil {
		p.opts = *u.replace
	}
	for _, s := range u.sets {
		if !p.kind.Supports(s.key) {
			continue
		}
		s.apply(&p.opts)
	}
	return nil
}
