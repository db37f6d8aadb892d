package render

import (
	"github.com/guptarohit/asciigraph"
)

// Line renders a 1-D series into a frame using asciigraph, with the
// variable name as caption.
func Line(values []float64, caption string, w, h int) *Frame {
	if len(values) == 0 {
		return NewFrame(w, h)
	}
	graphH := h - 2
	if graphH < 4 {
		graphH = 4
	}
	graphW := w - 10
	if graphW < 20 {
		graphW = 20
	}
	graph := asciigraph.Plot(values,
		asciigraph.Height(graphH),
		asciigraph.Width(graphW),
		asciigraph.Caption(caption),
	)

	frame := NewFrame(w, h)
	row := 0
	col := 0
	for _, r := range graph {
		if r == '\n' {
			row++
			col = 0
			continue
		}
		frame.set(col, row, r, "")
		col++
	}
	return frame
}
