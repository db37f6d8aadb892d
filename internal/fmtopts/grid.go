package fmtopts

import (
	"errors"
	"fmt"
)

// GridMode tags a grid-line placement rule for meridionals or
// parallels.
type GridMode int

const (
	GridOff GridMode = iota
	GridAuto
	GridAt    // explicit positions
	GridEvery // fixed step
	GridCount // automatic count, optionally anchored
)

// DefaultGridCount is used when a count field is left blank.
const DefaultGridCount = 5

// anchoredPairCount is the count implied by a bare anchor pair with
// no trailing count element.
const anchoredPairCount = 11

// ErrBadGrid indicates a grid-line value of unrecognized shape.
var ErrBadGrid = errors.New("fmtopts: malformed grid-line value")

// GridSpec is the tagged grid-line placement value.
type GridSpec struct {
	Mode      GridMode
	Positions []float64 // GridAt
	Step      float64   // GridEvery
	Count     int       // GridCount

	// GridCount anchors: either a named rounding mode or a value
	// range the positions are spread over.
	AnchorMode     string
	AnchorLo       float64
	AnchorHi       float64
	HasAnchorRange bool
}

// GridAutoSpec is the automatic placement value.
func GridAutoSpec() GridSpec { return GridSpec{Mode: GridAuto} }

// GridOffSpec disables the grid lines.
func GridOffSpec() GridSpec { return GridSpec{Mode: GridOff} }

func (g GridSpec) String() string {
	switch g.Mode {
	case GridOff:
		return "off"
	case GridAuto:
		return "auto"
	case GridAt:
		return fmt.Sprintf("at %d positions", len(g.Positions))
	case GridEvery:
		return fmt.Sprintf("every %g", g.Step)
	case GridCount:
		return fmt.Sprintf("count %d", g.Count)
	}
	return "unknown"
}

// Value returns the wire form consumed by the rendering layer:
// false for off, true for automatic, a numeric position list for
// both explicit positions and a fixed step (the step is expanded
// over the -180..180 range), ["mode", n] for a named-anchor count,
// and [[lo, hi], n] for a range-anchored count.
func (g GridSpec) Value() any {
	switch g.Mode {
	case GridOff:
		return false
	case GridAuto:
		return true
	case GridAt:
		out := make([]any, len(g.Positions))
		for i, p := range g.Positions {
			out[i] = p
		}
		return out
	case GridEvery:
		step := g.Step
		if step <= 0 {
			step = 30
		}
		var out []any
		for p := -180.0; p < 180; p += step {
			out = append(out, p)
		}
		return out
	case GridCount:
		if g.HasAnchorRange {
			return []any{[]any{g.AnchorLo, g.AnchorHi}, g.Count}
		}
		mode := g.AnchorMode
		if mode == "" {
			mode = "rounded"
		}
		return []any{mode, g.Count}
	}
	return false
}

// GridFromValue decodes the wire form. A plain true is automatic, a
// falsy value is off, a numeric list is explicit positions, and a
// count spec is recognized by a string first element or a paired
// tuple first element.
func GridFromValue(value any) (GridSpec, error) {
	switch v := value.(type) {
	case nil:
		return GridOffSpec(), nil
	case bool:
		if v {
			return GridAutoSpec(), nil
		}
		return GridOffSpec(), nil
	case []float64:
		if len(v) == 0 {
			return GridOffSpec(), nil
		}
		pos := make([]float64, len(v))
		copy(pos, v)
		return GridSpec{Mode: GridAt, Positions: pos}, nil
	case []any:
		return gridFromList(v)
	}
	return GridSpec{}, fmt.Errorf("%w: %T", ErrBadGrid, value)
}

func gridFromList(value []any) (GridSpec, error) {
	if len(value) == 0 {
		return GridOffSpec(), nil
	}
	switch first := value[0].(type) {
	case string:
		g := GridSpec{Mode: GridCount, AnchorMode: first, Count: DefaultGridCount}
		if len(value) > 1 {
			n, ok := asInt(value[1])
			if !ok {
				return GridSpec{}, fmt.Errorf("%w: count %v", ErrBadGrid, value[1])
			}
			g.Count = n
		}
		return g, nil
	case []any:
		if len(first) < 2 {
			return GridSpec{}, fmt.Errorf("%w: anchor pair %v", ErrBadGrid, first)
		}
		lo, okLo := asFloat(first[0])
		hi, okHi := asFloat(first[1])
		if !okLo || !okHi {
			return GridSpec{}, fmt.Errorf("%w: anchor pair %v", ErrBadGrid, first)
		}
		g := GridSpec{Mode: GridCount, AnchorLo: lo, AnchorHi: hi, HasAnchorRange: true, Count: anchoredPairCount}
		if len(value) > 1 {
			n, ok := asInt(value[1])
			if !ok {
				return GridSpec{}, fmt.Errorf("%w: count %v", ErrBadGrid, value[1])
			}
			g.Count = n
		}
		return g, nil
	}

	pos := make([]float64, 0, len(value))
	for _, v := range value {
		f, ok := asFloat(v)
		if !ok {
			return GridSpec{}, fmt.Errorf("%w: position %v", ErrBadGrid, v)
		}
		pos = append(pos, f)
	}
	return GridSpec{Mode: GridAt, Positions: pos}, nil
}

// MarshalYAML stores the wire form.
func (g GridSpec) MarshalYAML() (any, error) {
	return g.Value(), nil
}

func (g *GridSpec) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	spec, err := GridFromValue(raw)
	if err != nil {
		return err
	}
	*g = spec
	return nil
}
