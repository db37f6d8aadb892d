// Package fmtopts defines the formatoption values a plot owns:
// colormap bounds, grid-line placement, projection and overlay
// settings. The tagged values keep the wire shape of the settings
// mapping so projects round-trip through YAML unchanged.
package fmtopts

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// BoundsMethod names a colorbar boundary computation rule.
type BoundsMethod string

const (
	BoundsRounded    BoundsMethod = "rounded"
	BoundsMinmax     BoundsMethod = "minmax"
	BoundsSym        BoundsMethod = "sym"
	BoundsRoundedSym BoundsMethod = "roundedsym"
)

// ErrBadBounds indicates a bounds value that decodes to neither a
// known method tag nor a numeric list.
var ErrBadBounds = errors.New("fmtopts: malformed bounds value")

// BoundsSpec is the tagged colormap-bounds value: either a named
// rule with optional level count and percentile window, or an
// explicit sorted list of boundary values.
type BoundsSpec struct {
	Method   BoundsMethod // empty when Explicit is set
	Levels   *int         // nil means the renderer's default
	MinPctl  float64      // 0 means data minimum
	MaxPctl  float64      // 100 means data maximum
	Explicit []float64    // non-nil selects the explicit form
}

// DefaultBounds is the rounded rule with all defaults.
func DefaultBounds() BoundsSpec {
	return BoundsSpec{Method: BoundsRounded, MinPctl: 0, MaxPctl: 100}
}

// IsExplicit reports whether the spec carries an explicit list.
func (b BoundsSpec) IsExplicit() bool { return b.Explicit != nil }

// Symmetric reports whether the named rule centers bounds on zero.
func (b BoundsSpec) Symmetric() bool {
	return b.Method == BoundsSym || b.Method == BoundsRoundedSym
}

// Rounded reports whether the named rule rounds the data extrema.
func (b BoundsSpec) Rounded() bool {
	return b.Method == BoundsRounded || b.Method == BoundsRoundedSym
}

func (b BoundsSpec) String() string {
	if b.IsExplicit() {
		parts := make([]string, len(b.Explicit))
		for i, v := range b.Explicit {
			parts[i] = fmt.Sprintf("%g", v)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	if b.Levels != nil {
		return fmt.Sprintf("%s(%d)", b.Method, *b.Levels)
	}
	return string(b.Method)
}

// Value returns the tagged wire form: ["rounded", levels, minPctl,
// maxPctl] for named rules (levels is nil when unset) or the plain
// numeric list for the explicit form.
func (b BoundsSpec) Value() []any {
	if b.IsExplicit() {
		out := make([]any, len(b.Explicit))
		for i, v := range b.Explicit {
			out[i] = v
		}
		return out
	}
	if b.Levels == nil && b.MinPctl == 0 && b.MaxPctl == 100 {
		return []any{string(b.Method), nil}
	}
	var levels any
	if b.Levels != nil {
		levels = *b.Levels
	}
	return []any{string(b.Method), levels, b.MinPctl, b.MaxPctl}
}

// BoundsFromValue decodes the tagged wire form. A first element
// matching a known method selects the named form; anything else is
// read as an explicit numeric list.
func BoundsFromValue(value []any) (BoundsSpec, error) {
	if len(value) == 0 {
		return DefaultBounds(), nil
	}
	if tag, ok := value[0].(string); ok {
		switch BoundsMethod(tag) {
		case BoundsRounded, BoundsMinmax, BoundsSym, BoundsRoundedSym:
		default:
			return BoundsSpec{}, fmt.Errorf("%w: unknown method %q", ErrBadBounds, tag)
		}
		b := BoundsSpec{Method: BoundsMethod(tag), MinPctl: 0, MaxPctl: 100}
		if len(value) > 1 && value[1] != nil {
			n, ok := asInt(value[1])
			if !ok {
				return BoundsSpec{}, fmt.Errorf("%w: level count %v", ErrBadBounds, value[1])
			}
			b.Levels = &n
		}
		if len(value) > 2 {
			p, ok := asFloat(value[2])
			if !ok {
				return BoundsSpec{}, fmt.Errorf("%w: min percentile %v", ErrBadBounds, value[2])
			}
			b.MinPctl = p
		}
		if len(value) > 3 {
			p, ok := asFloat(value[3])
			if !ok {
				return BoundsSpec{}, fmt.Errorf("%w: max percentile %v", ErrBadBounds, value[3])
			}
			b.MaxPctl = p
		}
		return b, nil
	}

	explicit := make([]float64, 0, len(value))
	for _, v := range value {
		f, ok := asFloat(v)
		if !ok {
			return BoundsSpec{}, fmt.Errorf("%w: boundary %v", ErrBadBounds, v)
		}
		explicit = append(explicit, f)
	}
	sort.Float64s(explicit)
	return BoundsSpec{Explicit: explicit, MinPctl: 0, MaxPctl: 100}, nil
}

// MarshalYAML keeps the tagged wire form in saved projects.
func (b BoundsSpec) MarshalYAML() (any, error) {
	return b.Value(), nil
}

func (b *BoundsSpec) UnmarshalYAML(unmarshal func(any) error) error {
	var raw []any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	spec, err := BoundsFromValue(raw)
	if err != nil {
		return err
	}
	*b = spec
	return nil
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		return int(x), true
	}
	return 0, false
}
