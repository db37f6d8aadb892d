package render

import (
	"fmt"
	"math"
)

// Projection maps geographic coordinates to planar map coordinates.
// Forward returns ok=false for points not visible in the
// projection (the far hemisphere of an orthographic view).
type Projection interface {
	Name() string
	Forward(lon, lat float64) (x, y float64, ok bool)
}

// projectionNames is the closed, ordered set the panel cycles
// through.
var projectionNames = []string{"cyl", "robin", "moll", "ortho"}

// ProjectionNames lists the supported projection names.
func ProjectionNames() []string {
	out := make([]string, len(projectionNames))
	copy(out, projectionNames)
	return out
}

// NewProjection builds a projection centered on clon (and clat for
// the orthographic view).
func NewProjection(name string, clon, clat float64) (Projection, error) {
	switch name {
	case "cyl", "":
		return &cylProj{clon: clon}, nil
	case "robin":
		return &robinProj{clon: clon}, nil
	case "moll":
		return &mollProj{clon: clon}, nil
	case "ortho":
		return &orthoProj{clon: clon, clat: clat}, nil
	}
	return nil, fmt.Errorf("render: unknown projection %q", name)
}

func wrapLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}

// cylProj is the equirectangular (plate carrée) projection.
type cylProj struct{ clon float64 }

func (p *cylProj) Name() string { return "cyl" }

func (p *cylProj) Forward(lon, lat float64) (float64, float64, bool) {
	return wrapLon(lon - p.clon), lat, true
}

// mollProj is the Mollweide equal-area projection; the auxiliary
// angle is found with a few Newton steps.
type mollProj struct{ clon float64 }

func (p *mollProj) Name() string { return "moll" }

func (p *mollProj) Forward(lon, lat float64) (float64, float64, bool) {
	lam := wrapLon(lon-p.clon) * math.Pi / 180
	phi := lat * math.Pi / 180

	theta := phi
	for i := 0; i < 10; i++ {
		d := 2*theta + math.Sin(2*theta) - math.Pi*math.Sin(phi)
		dd := 2 + 2*math.Cos(2*theta)
		if math.Abs(dd) < 1e-12 {
			break
		}
		theta -= d / dd
		if math.Abs(d) < 1e-9 {
			break
		}
	}
	x := 2 * math.Sqrt2 / math.Pi * lam * math.Cos(theta)
	y := math.Sqrt2 * math.Sin(theta)
	// scale to degree-like units so frames share one aspect logic
	return x * 180 / (2 * math.Sqrt2), y * 90 / math.Sqrt2, true
}

// robinTable holds the Robinson projection coefficients every 5
// degrees of latitude: relative length of the parallel (X) and
// relative distance from the equator (Y).
var robinTable = [...][2]float64{
	{1.0000, 0.0000}, {0.9986, 0.0620}, {0.9954, 0.1240}, {0.9900, 0.1860},
	{0.9822, 0.2480}, {0.9730, 0.3100}, {0.9600, 0.3720}, {0.9427, 0.4340},
	{0.9216, 0.4958}, {0.8962, 0.5571}, {0.8679, 0.6176}, {0.8350, 0.6769},
	{0.7986, 0.7346}, {0.7597, 0.7903}, {0.7186, 0.8435}, {0.6732, 0.8936},
	{0.6213, 0.9394}, {0.5722, 0.9761}, {0.5322, 1.0000},
}

type robinProj struct{ clon float64 }

func (p *robinProj) Name() string { return "robin" }

func (p *robinProj) Forward(lon, lat float64) (float64, float64, bool) {
	lam := wrapLon(lon - p.clon)
	alat := math.Abs(lat)
	if alat > 90 {
		alat = 90
	}
	pos := alat / 5
	i := int(pos)
	if i >= len(robinTable)-1 {
		i = len(robinTable) - 2
	}
	frac := pos - float64(i)
	xlen := robinTable[i][0] + (robinTable[i+1][0]-robinTable[i][0])*frac
	ydist := robinTable[i][1] + (robinTable[i+1][1]-robinTable[i][1])*frac

	x := xlen * lam
	y := math.Copysign(ydist*90, lat)
	return x, y, true
}

// orthoProj shows the hemisphere facing (clon, clat).
type orthoProj struct{ clon, clat float64 }

func (p *orthoProj) Name() string { return "ortho" }

func (p *orthoProj) Forward(lon, lat float64) (float64, float64, bool) {
	lam := wrapLon(lon-p.clon) * math.Pi / 180
	phi := lat * math.Pi / 180
	phi0 := p.clat * math.Pi / 180

	cosc := math.Sin(phi0)*math.Sin(phi) + math.Cos(phi0)*math.Cos(phi)*math.Cos(lam)
	if cosc < 0 {
		return 0, 0, false
	}
	x := math.Cos(phi) * math.Sin(lam)
	y := math.Cos(phi0)*math.Sin(phi) - math.Sin(phi0)*math.Cos(phi)*math.Cos(lam)
	return x * 180, y * 90, true
}
