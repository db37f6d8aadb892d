package dataset

import (
	"fmt"
	"math"
)

// Memory is an in-memory dataset, used by the demo command and in
// tests where reading a NetCDF file would be overkill.
type Memory struct {
	name string
	vars map[string]*memVar
	axes map[string]*Axis
	ord  []string
}

type memVar struct {
	meta   Variable
	values []float64
}

// NewMemory returns an empty in-memory dataset.
func NewMemory(name string) *Memory {
	return &Memory{
		name: name,
		vars: make(map[string]*memVar),
		axes: make(map[string]*Axis),
	}
}

// AddAxis registers a coordinate axis. Labels are derived from the
// values when not given.
func (m *Memory) AddAxis(name, units string, values []float64) {
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = fmt.Sprintf("%1.4f", v)
	}
	m.axes[name] = &Axis{
		Name:   name,
		Units:  units,
		Type:   classifyDim(name, "", units),
		Values: values,
		Labels: labels,
	}
}

// AddVariable registers a variable; values are row-major over the
// listed dimensions, which must all have been added as axes.
func (m *Memory) AddVariable(name, longName, units string, dims []string, values []float64) error {
	shape := make([]int, len(dims))
	n := 1
	for i, d := range dims {
		ax, ok := m.axes[d]
		if !ok {
			return fmt.Errorf("dataset: variable %s: %w: %s", name, ErrNoDimension, d)
		}
		shape[i] = ax.Size()
		n *= ax.Size()
	}
	if len(values) != n {
		return fmt.Errorf("dataset: variable %s: %d values for shape %v", name, len(values), shape)
	}
	m.vars[name] = &memVar{
		meta: Variable{
			Name:     name,
			LongName: longName,
			Units:    units,
			Dims:     dims,
			Shape:    shape,
		},
		values: values,
	}
	m.ord = append(m.ord, name)
	return nil
}

func (m *Memory) Name() string { return m.name }

func (m *Memory) Variables() []string {
	out := make([]string, len(m.ord))
	copy(out, m.ord)
	return out
}

func (m *Memory) Variable(name string) (*Variable, error) {
	v, ok := m.vars[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoVariable, name)
	}
	meta := v.meta
	return &meta, nil
}

func (m *Memory) Axis(dim string) (*Axis, error) {
	ax, ok := m.axes[dim]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoDimension, dim)
	}
	return ax, nil
}

func (m *Memory) Slice(name string, fixed map[string]int, keep []string) ([]float64, []int, error) {
	v, ok := m.vars[name]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoVariable, name)
	}
	kept := make(map[string]bool, len(keep))
	for _, d := range keep {
		kept[d] = true
	}

	begin := make([]int, len(v.meta.Dims))
	end := make([]int, len(v.meta.Dims))
	outShape := make([]int, 0, len(keep))
	for i, d := range v.meta.Dims {
		if kept[d] {
			begin[i], end[i] = 0, v.meta.Shape[i]
			outShape = append(outShape, v.meta.Shape[i])
			continue
		}
		idx := fixed[d]
		if idx < 0 || idx >= v.meta.Shape[i] {
			return nil, nil, fmt.Errorf("%w: %s[%d] of %d", ErrIndexRange, d, idx, v.meta.Shape[i])
		}
		begin[i], end[i] = idx, idx+1
	}

	out := make([]float64, 0, sliceLen(begin, end))
	out = m.gather(v, begin, end, 0, 0, out)
	return out, outShape, nil
}

func (m *Memory) gather(v *memVar, begin, end []int, dim, offset int, out []float64) []float64 {
	stride := 1
	for _, s := range v.meta.Shape[dim+1:] {
		stride *= s
	}
	if dim == len(v.meta.Shape)-1 {
		return append(out, v.values[offset+begin[dim]:offset+end[dim]]...)
	}
	for i := begin[dim]; i < end[dim]; i++ {
		out = m.gather(v, begin, end, dim+1, offset+i*stride, out)
	}
	return out
}

func sliceLen(begin, end []int) int {
	n := 1
	for i := range begin {
		n *= end[i] - begin[i]
	}
	return n
}

func (m *Memory) Close() error { return nil }

// Demo builds a small synthetic climate-like dataset with a global
// temperature field, a pressure field with vertical levels, and a
// station time series.
func Demo() *Memory {
	m := NewMemory("demo")

	nlon, nlat, ntime, nlev := 72, 36, 12, 4
	lons := make([]float64, nlon)
	for i := range lons {
		lons[i] = -180 + 5.0*float64(i)
	}
	lats := make([]float64, nlat)
	for i := range lats {
		lats[i] = -87.5 + 5.0*float64(i)
	}
	times := make([]float64, ntime)
	for i := range times {
		times[i] = float64(i)
	}
	levs := []float64{1000, 850, 500, 250}

	m.AddAxis("lon", "degrees_east", lons)
	m.AddAxis("lat", "degrees_north", lats)
	m.AddAxis("time", "months since 2000-01-01", times)
	m.AddAxis("lev", "hPa", levs[:nlev])

	t2m := make([]float64, ntime*nlat*nlon)
	for it := 0; it < ntime; it++ {
		season := math.Cos(2 * math.Pi * float64(it) / 12)
		for iy := 0; iy < nlat; iy++ {
			latw := math.Cos(lats[iy] * math.Pi / 180)
			for ix := 0; ix < nlon; ix++ {
				wave := 3 * math.Sin(3*lons[ix]*math.Pi/180)
				t2m[it*nlat*nlon+iy*nlon+ix] = 288 + 25*latw - 10*season*math.Copysign(1, lats[iy]) + wave - 273.15
			}
		}
	}
	m.AddVariable("t2m", "2 metre temperature", "degC", []string{"time", "lat", "lon"}, t2m)

	ta := make([]float64, ntime*nlev*nlat*nlon)
	for it := 0; it < ntime; it++ {
		for iz := 0; iz < nlev; iz++ {
			lapse := 60 * (1 - levs[iz]/1000)
			for iy := 0; iy < nlat; iy++ {
				latw := math.Cos(lats[iy] * math.Pi / 180)
				for ix := 0; ix < nlon; ix++ {
					ta[((it*nlev+iz)*nlat+iy)*nlon+ix] = 288 + 20*latw - lapse + math.Sin(float64(it))
				}
			}
		}
	}
	m.AddVariable("ta", "air temperature", "K", []string{"time", "lev", "lat", "lon"}, ta)

	series := make([]float64, ntime)
	for i := range series {
		series[i] = 10 + 8*math.Sin(2*math.Pi*float64(i)/12)
	}
	m.AddVariable("station", "station temperature", "degC", []string{"time"}, series)

	return m
}
