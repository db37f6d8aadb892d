package fmtopts

// Coastline resolutions, matching the natural-earth naming.
const (
	LSMOff  = ""
	LSM110m = "110m"
	LSM50m  = "50m"
	LSM10m  = "10m"
)

// Options holds the formatoptions of one plot. Which of them a plot
// method actually honors is decided by the method itself.
type Options struct {
	Cmap       string     `yaml:"cmap"`
	Bounds     BoundsSpec `yaml:"bounds"`
	Projection string     `yaml:"projection"`
	Clon       *float64   `yaml:"clon"`
	Clat       *float64   `yaml:"clat"`
	LSM        string     `yaml:"lsm"`
	XGrid      GridSpec   `yaml:"xgrid"`
	YGrid      GridSpec   `yaml:"ygrid"`
	Datagrid   bool       `yaml:"datagrid"`
	Title      string     `yaml:"title"`
	CLabel     string     `yaml:"clabel"`
}

// Defaults returns the options a fresh plot starts with.
func Defaults() Options {
	return Options{
		Cmap:       "viridis",
		Bounds:     DefaultBounds(),
		Projection: "cyl",
		LSM:        LSM110m,
		XGrid:      GridAutoSpec(),
		YGrid:      GridAutoSpec(),
	}
}
