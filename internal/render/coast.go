package render

import "github.com/san-kum/ncpanel/internal/fmtopts"

// coastlines is a very coarse world outline (lon, lat pairs per
// polyline), enough to orient a terminal-resolution map. The three
// named resolutions only change how strongly the lines are
// decimated.
var coastlines = [][][2]float64{
	// North America
	{
		{-168, 66}, {-166, 60}, {-158, 58}, {-152, 60}, {-145, 60}, {-135, 57},
		{-130, 52}, {-125, 48}, {-124, 40}, {-117, 33}, {-110, 24}, {-105, 20},
		{-97, 16}, {-94, 18}, {-97, 22}, {-97, 28}, {-91, 29}, {-84, 30},
		{-81, 25}, {-80, 32}, {-76, 35}, {-74, 40}, {-70, 42}, {-66, 45},
		{-60, 47}, {-65, 50}, {-60, 53}, {-64, 58}, {-68, 58}, {-78, 62},
		{-85, 66}, {-95, 68}, {-110, 68}, {-125, 70}, {-140, 70}, {-155, 71},
		{-162, 70}, {-168, 66},
	},
	// South America
	{
		{-77, 8}, {-79, 2}, {-81, -5}, {-76, -14}, {-70, -18}, {-71, -30},
		{-73, -40}, {-74, -50}, {-69, -55}, {-65, -55}, {-65, -47}, {-62, -40},
		{-58, -34}, {-48, -28}, {-40, -22}, {-35, -9}, {-44, -3}, {-50, 0},
		{-60, 5}, {-70, 10}, {-77, 8},
	},
	// Africa
	{
		{-6, 36}, {-10, 31}, {-16, 22}, {-17, 15}, {-12, 8}, {-4, 5},
		{8, 4}, {9, -1}, {12, -6}, {12, -17}, {15, -27}, {19, -35},
		{27, -33}, {33, -26}, {36, -18}, {40, -15}, {40, -10}, {43, -1},
		{51, 11}, {43, 11}, {36, 22}, {33, 30}, {23, 32}, {10, 34},
		{-6, 36},
	},
	// Eurasia
	{
		{-9, 43}, {-8, 37}, {-2, 36}, {3, 42}, {8, 44}, {12, 44},
		{16, 40}, {19, 40}, {23, 37}, {26, 40}, {30, 41}, {36, 36},
		{34, 31}, {35, 28}, {39, 21}, {43, 12}, {51, 13}, {57, 20},
		{59, 23}, {66, 25}, {72, 20}, {77, 8}, {80, 13}, {88, 22},
		{92, 20}, {98, 10}, {104, 1}, {104, 10}, {109, 12}, {108, 21},
		{117, 23}, {121, 30}, {122, 37}, {126, 40}, {131, 43}, {135, 44},
		{141, 53}, {153, 59}, {160, 61}, {170, 66}, {180, 68},
	},
	// Arctic Russia / Scandinavia
	{
		{180, 68}, {160, 70}, {140, 72}, {110, 74}, {90, 75}, {70, 72},
		{55, 70}, {45, 68}, {30, 70}, {25, 71}, {15, 68}, {5, 62},
		{5, 58}, {8, 57}, {12, 56}, {18, 60}, {22, 63}, {25, 65},
	},
	// Australia
	{
		{114, -22}, {113, -26}, {115, -34}, {124, -33}, {130, -32}, {138, -35},
		{141, -38}, {147, -38}, {150, -37}, {153, -30}, {153, -25}, {146, -19},
		{142, -11}, {136, -12}, {132, -11}, {126, -14}, {122, -17}, {114, -22},
	},
	// Greenland
	{
		{-45, 60}, {-53, 66}, {-54, 72}, {-58, 76}, {-68, 78}, {-58, 81},
		{-40, 83}, {-22, 82}, {-20, 76}, {-22, 70}, {-40, 65}, {-45, 60},
	},
	// Antarctica
	{
		{-180, -71}, {-150, -76}, {-120, -74}, {-90, -73}, {-60, -64},
		{-45, -78}, {-20, -72}, {10, -70}, {40, -68}, {70, -68},
		{100, -66}, {130, -66}, {160, -71}, {180, -71},
	},
}

// coastStride maps the natural-earth style resolution names to a
// decimation stride on the built-in outline.
func coastStride(res string) int {
	switch res {
	case fmtopts.LSM10m:
		return 1
	case fmtopts.LSM50m:
		return 2
	case fmtopts.LSM110m:
		return 3
	}
	return 0
}

// Coastlines returns the outline polylines decimated for the given
// resolution, or nil when the overlay is off.
func Coastlines(res string) [][][2]float64 {
	stride := coastStride(res)
	if stride == 0 {
		return nil
	}
	if stride == 1 {
		return coastlines
	}
	out := make([][][2]float64, 0, len(coastlines))
	for _, line := range coastlines {
		dec := make([][2]float64, 0, len(line)/stride+2)
		for i := 0; i < len(line); i += stride {
			dec = append(dec, line[i])
		}
		if len(line) > 0 && (len(line)-1)%stride != 0 {
			dec = append(dec, line[len(line)-1])
		}
		out = append(out, dec)
	}
	return out
}
