package dataset

import (
	"fmt"
	"path/filepath"
	"reflect"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// NetCDF reads variables from a NetCDF file (classic or HDF5 based)
// through the pure-Go reader.
type NetCDF struct {
	name  string
	group api.Group
	vars  []string
	axes  map[string]*Axis
}

// OpenNetCDF opens the named file and indexes its data variables and
// coordinate axes.
func OpenNetCDF(path string) (*NetCDF, error) {
	g, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	ds := &NetCDF{
		name:  filepath.Base(path),
		group: g,
		axes:  make(map[string]*Axis),
	}
	if err := ds.index(); err != nil {
		g.Close()
		return nil, err
	}
	return ds, nil
}

// index splits the file's variables into coordinate variables (a 1-D
// variable named after its dimension) and data variables.
func (ds *NetCDF) index() error {
	names := ds.group.ListVariables()
	isCoord := make(map[string]bool, len(names))
	for _, n := range names {
		vg, err := ds.group.GetVarGetter(n)
		if err != nil {
			return fmt.Errorf("dataset: read %s: %w", n, err)
		}
		dims := vg.Dimensions()
		if len(dims) == 1 && dims[0] == n {
			isCoord[n] = true
			ax, err := ds.readAxis(n, vg)
			if err != nil {
				return err
			}
			ds.axes[n] = ax
		}
	}
	for _, n := range names {
		if !isCoord[n] {
			ds.vars = append(ds.vars, n)
		}
	}
	return nil
}

func (ds *NetCDF) readAxis(name string, vg api.VarGetter) (*Axis, error) {
	units := attrString(vg.Attributes(), "units")
	axisAttr := attrString(vg.Attributes(), "axis")

	raw, err := vg.Values()
	if err != nil {
		return nil, fmt.Errorf("dataset: axis %s: %w", name, err)
	}
	values, numeric := flatten(raw)
	size := int(vg.Len())

	labels := make([]string, size)
	if numeric && len(values) == size {
		for i, v := range values {
			labels[i] = fmt.Sprintf("%1.4f", v)
		}
	} else {
		values = nil
		strs := stringValues(raw)
		for i := range labels {
			if i < len(strs) {
				labels[i] = strs[i]
			} else {
				labels[i] = fmt.Sprintf("%d", i)
			}
		}
	}

	return &Axis{
		Name:   name,
		Units:  units,
		Type:   classifyDim(name, axisAttr, units),
		Values: values,
		Labels: labels,
	}, nil
}

func (ds *NetCDF) Name() string { return ds.name }

func (ds *NetCDF) Variables() []string {
	out := make([]string, len(ds.vars))
	copy(out, ds.vars)
	return out
}

func (ds *NetCDF) Variable(name string) (*Variable, error) {
	vg, err := ds.group.GetVarGetter(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoVariable, name)
	}
	shape64 := vg.Shape()
	shape := make([]int, len(shape64))
	for i, s := range shape64 {
		shape[i] = int(s)
	}
	return &Variable{
		Name:     name,
		LongName: attrString(vg.Attributes(), "long_name"),
		Units:    attrString(vg.Attributes(), "units"),
		Dims:     vg.Dimensions(),
		Shape:    shape,
	}, nil
}

func (ds *NetCDF) Axis(dim string) (*Axis, error) {
	if ax, ok := ds.axes[dim]; ok {
		return ax, nil
	}
	// Dimensions without a coordinate variable get an index axis.
	size, ok := ds.group.GetDimension(dim)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoDimension, dim)
	}
	labels := make([]string, size)
	values := make([]float64, size)
	for i := range labels {
		labels[i] = fmt.Sprintf("%d", i)
		values[i] = float64(i)
	}
	ax := &Axis{Name: dim, Type: classifyDim(dim, "", ""), Values: values, Labels: labels}
	ds.axes[dim] = ax
	return ax, nil
}

func (ds *NetCDF) Slice(name string, fixed map[string]int, keep []string) ([]float64, []int, error) {
	vg, err := ds.group.GetVarGetter(name)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoVariable, name)
	}
	kept := make(map[string]bool, len(keep))
	for _, d := range keep {
		kept[d] = true
	}
	dims := vg.Dimensions()
	shape := vg.Shape()

	begin := make([]int64, len(dims))
	end := make([]int64, len(dims))
	outShape := make([]int, 0, len(keep))
	for i, d := range dims {
		if kept[d] {
			begin[i], end[i] = 0, shape[i]
			outShape = append(outShape, int(shape[i]))
			continue
		}
		idx := int64(fixed[d])
		if idx < 0 || idx >= shape[i] {
			return nil, nil, fmt.Errorf("%w: %s[%d] of %d", ErrIndexRange, d, idx, shape[i])
		}
		begin[i], end[i] = idx, idx+1
	}

	raw, err := vg.GetSliceMD(begin, end)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: slice %s: %w", name, err)
	}
	values, ok := flatten(raw)
	if !ok {
		return nil, nil, fmt.Errorf("dataset: slice %s: non-numeric type %s", name, vg.Type())
	}
	return values, outShape, nil
}

func (ds *NetCDF) Close() error {
	ds.group.Close()
	return nil
}

func attrString(attrs api.AttributeMap, key string) string {
	v, ok := attrs.Get(key)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []string:
		if len(s) > 0 {
			return s[0]
		}
	}
	return fmt.Sprintf("%v", v)
}

// flatten converts the reader's (possibly nested) numeric slices to
// a flat row-major []float64. The second result is false for
// non-numeric element types.
func flatten(raw any) ([]float64, bool) {
	var out []float64
	ok := walkNumeric(reflect.ValueOf(raw), &out)
	return out, ok
}

func walkNumeric(v reflect.Value, out *[]float64) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if !walkNumeric(v.Index(i), out) {
				return false
			}
		}
		return true
	case reflect.Float32, reflect.Float64:
		*out = append(*out, v.Float())
		return true
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		*out = append(*out, float64(v.Int()))
		return true
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		*out = append(*out, float64(v.Uint()))
		return true
	case reflect.Interface:
		return walkNumeric(v.Elem(), out)
	default:
		return false
	}
}

func stringValues(raw any) []string {
	v := reflect.ValueOf(raw)
	if v.Kind() != reflect.Slice {
		return nil
	}
	out := make([]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		out = append(out, fmt.Sprintf("%v", v.Index(i).Interface()))
	}
	return out
}
