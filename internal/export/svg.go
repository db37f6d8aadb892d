// Package export writes plots and panel state to disk: single SVG
// images, numbered animation frame sequences with a manifest, and
// YAML project files.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/ncpanel/internal/render"
)

const background = "#0a0a0a"

// Braille dot-to-bit mapping
var pixelMap = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// FrameToSVG converts a rendered frame to SVG. Filled cells become
// rects in their cell color, braille overlay runes become dots, and
// any other rune is emitted as text.
func FrameToSVG(frame *render.Frame, scale float64) string {
	if frame == nil {
		return ""
	}

	cellW := scale * 2
	cellH := scale * 4
	width := float64(frame.Width) * cellW
	height := float64(frame.Height) * cellH

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	dotRadius := scale * 0.4

	for row := 0; row < frame.Height; row++ {
		for col := 0; col < frame.Width; col++ {
			cell := frame.Cells[row][col]
			if cell.Ch == ' ' || cell.Ch == 0 {
				continue
			}
			fill := cell.FG
			if fill == "" {
				fill = "#c0c0c0"
			}
			baseX := float64(col) * cellW
			baseY := float64(row) * cellH

			switch {
			case cell.Ch == '█':
				sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, baseX, baseY, cellW, cellH, fill))
			case cell.Ch >= 0x2800 && cell.Ch < 0x2900:
				pattern := int(cell.Ch - 0x2800)
				for dy := 0; dy < 4; dy++ {
					for dx := 0; dx < 2; dx++ {
						if pattern&pixelMap[dy][dx] == 0 {
							continue
						}
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill))
					}
				}
			default:
				sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-family="monospace" font-size="%.1f" fill="%s">%s</text>
`, baseX, baseY+cellH*0.8, cellH*0.9, fill, escape(cell.Ch)))
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// WriteImage renders the frame to an SVG file.
func WriteImage(path string, frame *render.Frame, scale float64) error {
	return os.WriteFile(path, []byte(FrameToSVG(frame, scale)), 0644)
}

func escape(r rune) string {
	switch r {
	case '<':
		return "&lt;"
	case '>':
		return "&gt;"
	case '&':
		return "&amp;"
	}
	return string(r)
}
