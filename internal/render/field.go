package render

import (
	"errors"
	"fmt"

	"github.com/san-kum/ncpanel/internal/colormap"
	"github.com/san-kum/ncpanel/internal/fmtopts"
)

// Overlay colors.
const (
	gridColor     = "#5f5f5f"
	coastColor    = "#d0d0d0"
	datagridColor = "#1c1c1c"
)

// ErrBadField indicates field data whose shape does not match.
var ErrBadField = errors.New("render: field data does not match shape")

// FieldSpec describes one 2-D data slice to render.
type FieldSpec struct {
	Data  []float64
	Shape []int     // [ny, nx]
	Lons  []float64 // cell-center longitudes, mapplot only
	Lats  []float64 // cell-center latitudes, mapplot only
	Map   bool      // project through Opts.Projection
	Opts  fmtopts.Options
}

// Field renders a colormapped 2-D field with the requested
// overlays into a w x h frame.
func Field(spec FieldSpec, w, h int) (*Frame, error) {
	if len(spec.Shape) != 2 || spec.Shape[0]*spec.Shape[1] != len(spec.Data) {
		return nil, fmt.Errorf("%w: %v vs %d values", ErrBadField, spec.Shape, len(spec.Data))
	}
	ny, nx := spec.Shape[0], spec.Shape[1]

	bounds := Boundaries(spec.Opts.Bounds, spec.Data)
	cm, err := colormap.Get(spec.Opts.Cmap)
	if err != nil {
		return nil, err
	}

	frame := NewFrame(w, h)
	frame.Bounds = bounds
	frame.Cmap = spec.Opts.Cmap

	if spec.Map && len(spec.Lons) == nx && len(spec.Lats) == ny {
		if err := paintMap(frame, spec, cm, bounds, w, h); err != nil {
			return nil, err
		}
	} else {
		paintIndexed(frame, spec, cm, bounds, w, h)
	}
	return frame, nil
}

// colorFor picks the discrete level color of a value. Two
// boundaries mean a single level, which takes the first stop.
func colorFor(cm *colormap.Map, bounds []float64, v float64) string {
	if len(bounds) < 2 {
		return cm.Hex(0.5)
	}
	n := len(bounds) - 2
	if n < 1 {
		n = 1
	}
	i := levelIndex(bounds, v)
	return cm.Hex(float64(i) / float64(n))
}

// paintIndexed maps data indices straight to frame cells (the 2-D
// plot method).
func paintIndexed(frame *Frame, spec FieldSpec, cm *colormap.Map, bounds []float64, w, h int) {
	ny, nx := spec.Shape[0], spec.Shape[1]
	for row := 0; row < h; row++ {
		iy := (h - 1 - row) * ny / h
		for col := 0; col < w; col++ {
			ix := col * nx / w
			v := spec.Data[iy*nx+ix]
			frame.set(col, row, '█', colorFor(cm, bounds, v))
		}
	}

	if spec.Opts.Datagrid {
		overlay := NewCanvas(w, h)
		for jx := 0; jx <= nx; jx++ {
			x := jx * w * 2 / nx
			overlay.DrawLine(x, 0, x, h*4-1)
		}
		for jy := 0; jy <= ny; jy++ {
			y := jy * h * 4 / ny
			overlay.DrawLine(0, y, w*2-1, y)
		}
		composite(frame, overlay, datagridColor)
	}
}

// mapExtent is the planar window of the projected view.
type mapExtent struct {
	xmin, xmax, ymin, ymax float64
}

func (e mapExtent) toSub(x, y float64, w, h int) (int, int) {
	sx := (x - e.xmin) / (e.xmax - e.xmin) * float64(w*2-1)
	sy := (1 - (y-e.ymin)/(e.ymax-e.ymin)) * float64(h*4-1)
	return int(sx), int(sy)
}

// paintMap projects every grid cell center and paints it into the
// frame, then draws grid lines, coastlines and the datagrid overlay
// in projected space.
func paintMap(frame *Frame, spec FieldSpec, cm *colormap.Map, bounds []float64, w, h int) error {
	ny, nx := spec.Shape[0], spec.Shape[1]

	clon, clat := 0.0, 0.0
	if spec.Opts.Clon != nil {
		clon = *spec.Opts.Clon
	}
	if spec.Opts.Clat != nil {
		clat = *spec.Opts.Clat
	}
	proj, err := NewProjection(spec.Opts.Projection, clon, clat)
	if err != nil {
		return err
	}

	ext := projectedExtent(proj, spec.Lons, spec.Lats)

	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			x, y, ok := proj.Forward(spec.Lons[ix], spec.Lats[iy])
			if !ok {
				continue
			}
			sx, sy := ext.toSub(x, y, w, h)
			col, row := sx/2, sy/4
			v := spec.Data[iy*nx+ix]
			frame.set(col, row, '█', colorFor(cm, bounds, v))
		}
	}
	fillGaps(frame)

	lonLo, lonHi := floatsRange(spec.Lons)
	latLo, latHi := floatsRange(spec.Lats)

	// meridionals and parallels
	grid := NewCanvas(w, h)
	for _, lon := range GridPositions(spec.Opts.XGrid, lonLo, lonHi) {
		drawGeoLine(grid, proj, ext, w, h, func(t float64) (float64, float64) {
			return lon, latLo + t*(latHi-latLo)
		})
	}
	for _, lat := range GridPositions(spec.Opts.YGrid, latLo, latHi) {
		drawGeoLine(grid, proj, ext, w, h, func(t float64) (float64, float64) {
			return lonLo + t*(lonHi-lonLo), lat
		})
	}
	composite(frame, grid, gridColor)

	if lines := Coastlines(spec.Opts.LSM); lines != nil {
		coast := NewCanvas(w, h)
		for _, line := range lines {
			pts := make([][2]int, 0, len(line))
			for _, p := range line {
				x, y, ok := proj.Forward(p[0], p[1])
				if !ok {
					continue
				}
				sx, sy := ext.toSub(x, y, w, h)
				pts = append(pts, [2]int{sx, sy})
			}
			coast.DrawPolyline(pts)
		}
		composite(frame, coast, coastColor)
	}

	if spec.Opts.Datagrid {
		overlay := NewCanvas(w, h)
		for iy := 0; iy < ny; iy++ {
			for ix := 0; ix < nx; ix++ {
				x, y, ok := proj.Forward(spec.Lons[ix], spec.Lats[iy])
				if !ok {
					continue
				}
				sx, sy := ext.toSub(x, y, w, h)
				overlay.Set(sx, sy)
			}
		}
		composite(frame, overlay, datagridColor)
	}
	return nil
}

// projectedExtent scans the grid corners for the planar window,
// padded a little so edge cells stay visible.
func projectedExtent(proj Projection, lons, lats []float64) mapExtent {
	ext := mapExtent{xmin: 1e30, xmax: -1e30, ymin: 1e30, ymax: -1e30}
	for _, lat := range lats {
		for _, lon := range lons {
			x, y, ok := proj.Forward(lon, lat)
			if !ok {
				continue
			}
			if x < ext.xmin {
				ext.xmin = x
			}
			if x > ext.xmax {
				ext.xmax = x
			}
			if y < ext.ymin {
				ext.ymin = y
			}
			if y > ext.ymax {
				ext.ymax = y
			}
		}
	}
	if ext.xmax <= ext.xmin {
		ext.xmin, ext.xmax = -180, 180
	}
	if ext.ymax <= ext.ymin {
		ext.ymin, ext.ymax = -90, 90
	}
	padX := (ext.xmax - ext.xmin) * 0.02
	padY := (ext.ymax - ext.ymin) * 0.02
	ext.xmin -= padX
	ext.xmax += padX
	ext.ymin -= padY
	ext.ymax += padY
	return ext
}

// fillGaps copies the left neighbor into cells the scatter paint
// left empty between painted cells, so coarse grids still read as a
// filled field.
func fillGaps(frame *Frame) {
	for row := 0; row < frame.Height; row++ {
		last := -1
		for col := 0; col < frame.Width; col++ {
			if frame.Cells[row][col].Ch != ' ' {
				if last >= 0 && col-last > 1 && col-last < 5 {
					for k := last + 1; k < col; k++ {
						frame.Cells[row][k] = frame.Cells[row][last]
					}
				}
				last = col
			}
		}
	}
}

func drawGeoLine(c *Canvas, proj Projection, ext mapExtent, w, h int, at func(t float64) (lon, lat float64)) {
	const samples = 90
	pts := make([][2]int, 0, samples+1)
	for i := 0; i <= samples; i++ {
		lon, lat := at(float64(i) / samples)
		x, y, ok := proj.Forward(lon, lat)
		if !ok {
			continue
		}
		sx, sy := ext.toSub(x, y, w, h)
		pts = append(pts, [2]int{sx, sy})
	}
	c.DrawPolyline(pts)
}

// composite overlays the canvas braille runes onto the frame in the
// given color.
func composite(frame *Frame, c *Canvas, color string) {
	for row := 0; row < frame.Height && row < c.Height; row++ {
		for col := 0; col < frame.Width && col < c.Width; col++ {
			if r := c.Rune(col, row); r != 0 {
				frame.set(col, row, r, color)
			}
		}
	}
}

func floatsRange(v []float64) (float64, float64) {
	if len(v) == 0 {
		return 0, 1
	}
	lo, hi := v[0], v[0]
	for _, x := range v {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}
