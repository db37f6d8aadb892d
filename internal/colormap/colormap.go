// Package colormap holds the named colormaps the panel cycles
// through, with the `_r` suffix convention for inverted maps.
package colormap

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// InvertedSuffix marks an inverted colormap name.
const InvertedSuffix = "_r"

// Map is a gradient colormap sampled by position in [0, 1].
type Map struct {
	Name  string
	stops []colorful.Color
}

var registry = map[string][]string{
	"viridis":  {"#440154", "#414487", "#2a788e", "#22a884", "#7ad151", "#fde725"},
	"plasma":   {"#0d0887", "#6a00a8", "#b12a90", "#e16462", "#fca636", "#f0f921"},
	"Reds":     {"#fff5f0", "#fcbba1", "#fb6a4a", "#cb181d", "#67000d"},
	"Blues":    {"#f7fbff", "#c6dbef", "#6baed6", "#2171b5", "#08306b"},
	"Greens":   {"#f7fcf5", "#c7e9c0", "#74c476", "#238b45", "#00441b"},
	"RdBu":     {"#67001f", "#d6604d", "#f7f7f7", "#4393c3", "#053061"},
	"coolwarm": {"#3b4cc0", "#8db0fe", "#dddddd", "#f49a7b", "#b40426"},
	"binary":   {"#ffffff", "#000000"},
}

// ordered matches the registry for deterministic listing.
var ordered = []string{"viridis", "plasma", "Reds", "Blues", "Greens", "RdBu", "coolwarm", "binary"}

// Names lists the registered base colormap names.
func Names() []string {
	out := make([]string, len(ordered))
	copy(out, ordered)
	return out
}

// IsInverted reports whether the name carries the inverted suffix.
func IsInverted(name string) bool {
	return len(name) > len(InvertedSuffix) && name[len(name)-len(InvertedSuffix):] == InvertedSuffix
}

// Base strips the inverted suffix if present.
func Base(name string) string {
	if IsInverted(name) {
		return name[:len(name)-len(InvertedSuffix)]
	}
	return name
}

// WithInverted appends or strips the suffix to match inverted.
func WithInverted(name string, inverted bool) string {
	base := Base(name)
	if inverted {
		return base + InvertedSuffix
	}
	return base
}

// Get resolves a colormap name, honoring the inverted suffix.
func Get(name string) (*Map, error) {
	hexes, ok := registry[Base(name)]
	if !ok {
		return nil, fmt.Errorf("colormap: unknown colormap %q", name)
	}
	stops := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("colormap: %s: %w", name, err)
		}
		stops[i] = c
	}
	if IsInverted(name) {
		for i, j := 0, len(stops)-1; i < j; i, j = i+1, j-1 {
			stops[i], stops[j] = stops[j], stops[i]
		}
	}
	return &Map{Name: name, stops: stops}, nil
}

// At samples the gradient at t in [0, 1], blending in CIE-L*u*v*
// space for perceptually even steps. Out-of-range and NaN inputs
// clamp to the end stops.
func (m *Map) At(t float64) colorful.Color {
	if math.IsNaN(t) || t <= 0 {
		return m.stops[0]
	}
	if t >= 1 {
		return m.stops[len(m.stops)-1]
	}
	pos := t * float64(len(m.stops)-1)
	i := int(pos)
	frac := pos - float64(i)
	return m.stops[i].BlendLuv(m.stops[i+1], frac)
}

// Hex samples the gradient as a hex string for SVG export.
func (m *Map) Hex(t float64) string {
	return m.At(t).Hex()
}

// Color samples the gradient as a lipgloss terminal color.
func (m *Map) Color(t float64) lipgloss.Color {
	return lipgloss.Color(m.At(t).Hex())
}
