package dataset

import "errors"

var (
	// ErrNoVariable indicates the requested variable does not exist.
	ErrNoVariable = errors.New("dataset: no such variable")

	// ErrNoDimension indicates the requested dimension does not exist.
	ErrNoDimension = errors.New("dataset: no such dimension")

	// ErrIndexRange indicates a dimension index outside the axis.
	ErrIndexRange = errors.New("dataset: dimension index out of range")
)

// DimType classifies a dimension following CF conventions.
type DimType byte

const (
	DimOther DimType = 0
	DimX     DimType = 'X'
	DimY     DimType = 'Y'
	DimZ     DimType = 'Z'
	DimT     DimType = 'T'
)

// Variable describes a named variable of a dataset.
type Variable struct {
	Name     string
	LongName string
	Units    string
	Dims     []string
	Shape    []int
}

// NDim returns the number of dimensions.
func (v *Variable) NDim() int { return len(v.Dims) }

// Axis holds the coordinate values of one dimension.
type Axis struct {
	Name   string
	Units  string
	Type   DimType
	Values []float64 // nil when the coordinate is not numeric
	Labels []string  // formatted labels, always len == Size
}

// Size returns the number of entries along the axis.
func (a *Axis) Size() int { return len(a.Labels) }

// Dataset is a read-only collection of named variables with
// dimensions and coordinate metadata.
type Dataset interface {
	// Name returns a short display name, usually the file base name.
	Name() string

	// Variables lists the data variable names in file order,
	// excluding coordinate variables.
	Variables() []string

	// Variable returns metadata for the named variable.
	Variable(name string) (*Variable, error)

	// Axis returns the coordinate axis for the named dimension.
	Axis(dim string) (*Axis, error)

	// Slice reads a hyperslab of the named variable: dimensions
	// listed in keep are read whole, all others are fixed at the
	// index given in fixed. The result is row-major in the order
	// the kept dimensions appear in the variable.
	Slice(name string, fixed map[string]int, keep []string) ([]float64, []int, error)

	Close() error
}
