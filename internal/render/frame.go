package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cell is one character cell of a rendered frame. An empty FG means
// the terminal default color.
type Cell struct {
	Ch rune
	FG string // hex color
}

// Frame is a rendered plot: a grid of colored cells plus the
// colorbar information the caller needs for a legend.
type Frame struct {
	Width, Height int
	Cells         [][]Cell

	// Colorbar metadata; empty for line plots.
	Bounds []float64
	Cmap   string
}

func NewFrame(w, h int) *Frame {
	f := &Frame{Width: w, Height: h, Cells: make([][]Cell, h)}
	for i := range f.Cells {
		f.Cells[i] = make([]Cell, w)
		for j := range f.Cells[i] {
			f.Cells[i][j] = Cell{Ch: ' '}
		}
	}
	return f
}

func (f *Frame) set(col, row int, ch rune, fg string) {
	if col < 0 || row < 0 || col >= f.Width || row >= f.Height {
		return
	}
	f.Cells[row][col] = Cell{Ch: ch, FG: fg}
}

// String renders the frame with terminal colors.
func (f *Frame) String() string {
	var b strings.Builder
	for _, row := range f.Cells {
		i := 0
		for i < len(row) {
			// batch runs of equal color into one styled write
			j := i
			var run strings.Builder
			for j < len(row) && row[j].FG == row[i].FG {
				run.WriteRune(row[j].Ch)
				j++
			}
			if row[i].FG == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(row[i].FG)).Render(run.String()))
			}
			i = j
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Plain renders the frame without colors, for tests and logs.
func (f *Frame) Plain() string {
	var b strings.Builder
	for _, row := range f.Cells {
		for _, c := range row {
			b.WriteRune(c.Ch)
		}
		b.WriteString("\n")
	}
	return b.String()
}
