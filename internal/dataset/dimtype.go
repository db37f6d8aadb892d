package dataset

import "strings"

// classifyDim guesses the CF type of a dimension from its axis
// attribute, units and name, in that order of trust.
func classifyDim(name, axisAttr, units string) DimType {
	switch strings.ToUpper(axisAttr) {
	case "X":
		return DimX
	case "Y":
		return DimY
	case "Z":
		return DimZ
	case "T":
		return DimT
	}

	u := strings.ToLower(units)
	switch {
	case strings.Contains(u, "degrees_east") || strings.Contains(u, "degree_east"):
		return DimX
	case strings.Contains(u, "degrees_north") || strings.Contains(u, "degree_north"):
		return DimY
	case strings.Contains(u, " since "):
		return DimT
	case u == "pa" || u == "hpa" || u == "mbar" || u == "level":
		return DimZ
	}

	n := strings.ToLower(name)
	switch {
	case n == "lon" || n == "longitude" || n == "x":
		return DimX
	case n == "lat" || n == "latitude" || n == "y":
		return DimY
	case n == "time" || n == "t":
		return DimT
	case n == "lev" || n == "level" || n == "depth" || n == "height" || n == "z" || n == "plev":
		return DimZ
	}
	return DimOther
}
