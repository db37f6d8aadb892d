package render

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/ncpanel/internal/fmtopts"
)

// DefaultLevels is the boundary count used when a bounds spec
// leaves the level count unset.
const DefaultLevels = 11

// Boundaries computes the colorbar boundary values for a field.
// Explicit specs are returned as given; named rules derive the
// value window from the data (optionally by percentile), symmetrize
// it around zero and round the ends as requested.
func Boundaries(spec fmtopts.BoundsSpec, data []float64) []float64 {
	if spec.IsExplicit() {
		out := make([]float64, len(spec.Explicit))
		copy(out, spec.Explicit)
		return out
	}

	valid := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			valid = append(valid, v)
		}
	}
	if len(valid) == 0 {
		valid = []float64{0, 1}
	}
	sort.Float64s(valid)

	vmin := valid[0]
	vmax := valid[len(valid)-1]
	if spec.MinPctl > 0 {
		vmin = stat.Quantile(spec.MinPctl/100, stat.Empirical, valid, nil)
	}
	if spec.MaxPctl < 100 {
		vmax = stat.Quantile(spec.MaxPctl/100, stat.Empirical, valid, nil)
	}

	if spec.Symmetric() {
		amax := math.Max(math.Abs(vmin), math.Abs(vmax))
		vmin, vmax = -amax, amax
	}
	if spec.Rounded() {
		vmin, vmax = roundWindow(vmin, vmax)
	}
	if vmax <= vmin {
		vmin -= 0.5
		vmax += 0.5
	}

	n := DefaultLevels
	if spec.Levels != nil && *spec.Levels > 1 {
		n = *spec.Levels
	}
	return linspace(vmin, vmax, n)
}

// roundWindow widens [vmin, vmax] to the surrounding multiples of a
// step one order of magnitude below the window size.
func roundWindow(vmin, vmax float64) (float64, float64) {
	rng := vmax - vmin
	if rng <= 0 {
		return vmin, vmax
	}
	step := math.Pow(10, math.Floor(math.Log10(rng))-1)
	return math.Floor(vmin/step) * step, math.Ceil(vmax/step) * step
}

func linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// levelIndex returns the boundary interval v falls into, clamped to
// the valid range.
func levelIndex(bounds []float64, v float64) int {
	i := sort.SearchFloat64s(bounds, v) - 1
	if i < 0 {
		i = 0
	}
	if i > len(bounds)-2 {
		i = len(bounds) - 2
	}
	return i
}

// GridPositions expands a grid-line spec into positions within
// [lo, hi].
func GridPositions(g fmtopts.GridSpec, lo, hi float64) []float64 {
	switch g.Mode {
	case fmtopts.GridOff:
		return nil
	case fmtopts.GridAuto:
		return arange(lo, hi, 30)
	case fmtopts.GridAt:
		out := make([]float64, 0, len(g.Positions))
		for _, p := range g.Positions {
			if p >= lo && p <= hi {
				out = append(out, p)
			}
		}
		return out
	case fmtopts.GridEvery:
		step := g.Step
		if step <= 0 {
			step = 30
		}
		return arange(lo, hi, step)
	case fmtopts.GridCount:
		n := g.Count
		if n < 1 {
			n = fmtopts.DefaultGridCount
		}
		alo, ahi := lo, hi
		if g.HasAnchorRange {
			alo, ahi = g.AnchorLo, g.AnchorHi
		} else if g.AnchorMode == "rounded" {
			alo, ahi = roundWindow(lo, hi)
			if alo < lo {
				alo = lo
			}
			if ahi > hi {
				ahi = hi
			}
		}
		return linspace(alo, ahi, n)
	}
	return nil
}

func arange(lo, hi, step float64) []float64 {
	var out []float64
	start := math.Ceil(lo/step) * step
	for p := start; p <= hi; p += step {
		out = append(out, p)
	}
	return out
}
