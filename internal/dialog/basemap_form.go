package dialog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/ncpanel/internal/fmtopts"
)

// GridChoice selects how one grid-line group is placed.
type GridChoice int

const (
	GridChoiceAuto GridChoice = iota
	GridChoiceAt
	GridChoiceEvery
	GridChoiceCount
)

// DefaultGridStep is used when the fixed-step field is blank.
const DefaultGridStep = 30.0

// GridForm is the form state of one grid-line group (meridionals or
// parallels).
type GridForm struct {
	Enabled bool
	Choice  GridChoice
	At      string // comma-separated positions
	Every   string // fixed step
	Count   string // automatic count

	// anchor preserved from decode so re-encoding an anchored count
	// keeps its anchor
	anchorMode     string
	anchorLo       float64
	anchorHi       float64
	hasAnchorRange bool
}

// newGridForm decodes a grid spec into form fields.
func newGridForm(g fmtopts.GridSpec) GridForm {
	f := GridForm{Enabled: true}
	switch g.Mode {
	case fmtopts.GridOff:
		f.Enabled = false
	case fmtopts.GridAuto:
		f.Choice = GridChoiceAuto
	case fmtopts.GridAt:
		f.Choice = GridChoiceAt
		f.At = formatFloats(g.Positions)
	case fmtopts.GridEvery:
		f.Choice = GridChoiceEvery
		f.Every = strconv.FormatFloat(g.Step, 'g', -1, 64)
	case fmtopts.GridCount:
		f.Choice = GridChoiceCount
		f.Count = strconv.Itoa(g.Count)
		f.anchorMode = g.AnchorMode
		f.anchorLo, f.anchorHi = g.AnchorLo, g.AnchorHi
		f.hasAnchorRange = g.HasAnchorRange
	}
	return f
}

// AtEnabled reports whether the position-list field is editable.
func (f *GridForm) AtEnabled() bool { return f.Enabled && f.Choice == GridChoiceAt }

// EveryEnabled reports whether the fixed-step field is editable.
func (f *GridForm) EveryEnabled() bool { return f.Enabled && f.Choice == GridChoiceEvery }

// CountEnabled reports whether the count field is editable.
func (f *GridForm) CountEnabled() bool { return f.Enabled && f.Choice == GridChoiceCount }

func (f *GridForm) validate(group string) []FieldError {
	if !f.Enabled {
		return nil
	}
	var errs []FieldError
	switch f.Choice {
	case GridChoiceAt:
		if _, err := parseFloats(f.At); err != nil {
			errs = append(errs, FieldError{group + " positions", err.Error()})
		}
	case GridChoiceEvery:
		if s := strings.TrimSpace(f.Every); s != "" {
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				errs = append(errs, FieldError{group + " step", fmt.Sprintf("not a number: %q", s)})
			}
		}
	case GridChoiceCount:
		if s := strings.TrimSpace(f.Count); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				errs = append(errs, FieldError{group + " count", fmt.Sprintf("not an integer: %q", s)})
			} else if n < 1 {
				errs = append(errs, FieldError{group + " count", "must be at least 1"})
			}
		}
	}
	return errs
}

// encode translates the form into a grid spec, defaulting the step
// to 30 and the count to 5 when fields are blank. An empty position
// list turns the group off.
func (f *GridForm) encode() fmtopts.GridSpec {
	if !f.Enabled {
		return fmtopts.GridOffSpec()
	}
	switch f.Choice {
	case GridChoiceAt:
		positions, _ := parseFloats(f.At)
		if len(positions) == 0 {
			return fmtopts.GridOffSpec()
		}
		return fmtopts.GridSpec{Mode: fmtopts.GridAt, Positions: positions}
	case GridChoiceEvery:
		step := DefaultGridStep
		if s := strings.TrimSpace(f.Every); s != "" {
			step, _ = strconv.ParseFloat(s, 64)
		}
		return fmtopts.GridSpec{Mode: fmtopts.GridEvery, Step: step}
	case GridChoiceCount:
		count := fmtopts.DefaultGridCount
		if s := strings.TrimSpace(f.Count); s != "" {
			count, _ = strconv.Atoi(s)
		}
		g := fmtopts.GridSpec{Mode: fmtopts.GridCount, Count: count}
		if f.hasAnchorRange {
			g.AnchorLo, g.AnchorHi = f.anchorLo, f.anchorHi
			g.HasAnchorRange = true
		} else if f.anchorMode != "" {
			g.AnchorMode = f.anchorMode
		} else {
			g.AnchorMode = "rounded"
		}
		return g
	}
	return fmtopts.GridAutoSpec()
}

// BasemapSettings is the settings mapping the basemap dialog
// applies on confirmation.
type BasemapSettings struct {
	Clon  *float64
	Clat  *float64
	LSM   string
	XGrid fmtopts.GridSpec
	YGrid fmtopts.GridSpec
}

// BasemapForm is the map-projection settings dialog state.
type BasemapForm struct {
	Clon string // blank means automatic
	Clat string

	LSMEnabled bool
	LSMRes     string // "110m", "50m" or "10m"

	Meridionals GridForm
	Parallels   GridForm
}

// NewBasemapForm decodes the plot's current basemap settings.
func NewBasemapForm(o fmtopts.Options) *BasemapForm {
	f := &BasemapForm{
		LSMRes:      fmtopts.LSM110m,
		Meridionals: newGridForm(o.XGrid),
		Parallels:   newGridForm(o.YGrid),
	}
	if o.Clon != nil {
		f.Clon = strconv.FormatFloat(*o.Clon, 'g', -1, 64)
	}
	if o.Clat != nil {
		f.Clat = strconv.FormatFloat(*o.Clat, 'g', -1, 64)
	}
	if o.LSM != fmtopts.LSMOff {
		f.LSMEnabled = true
		f.LSMRes = o.LSM
	}
	return f
}

// Validate checks every editable field; Encode must not be called
// while it reports errors.
func (f *BasemapForm) Validate() []FieldError {
	var errs []FieldError
	if err := checkRange(f.Clon, -360, 360); err != nil {
		errs = append(errs, FieldError{"central longitude", err.Error()})
	}
	if err := checkRange(f.Clat, -90, 90); err != nil {
		errs = append(errs, FieldError{"central latitude", err.Error()})
	}
	errs = append(errs, f.Meridionals.validate("meridionals")...)
	errs = append(errs, f.Parallels.validate("parallels")...)
	return errs
}

func checkRange(s string, lo, hi float64) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	if v < lo || v > hi {
		return fmt.Errorf("must be %g..%g", lo, hi)
	}
	return nil
}

// Encode translates the form into the basemap settings mapping.
func (f *BasemapForm) Encode() (BasemapSettings, error) {
	if errs := f.Validate(); len(errs) > 0 {
		return BasemapSettings{}, errs[0]
	}

	var s BasemapSettings
	if t := strings.TrimSpace(f.Clon); t != "" {
		v, _ := strconv.ParseFloat(t, 64)
		s.Clon = &v
	}
	if t := strings.TrimSpace(f.Clat); t != "" {
		v, _ := strconv.ParseFloat(t, 64)
		s.Clat = &v
	}
	if f.LSMEnabled {
		s.LSM = f.LSMRes
	} else {
		s.LSM = fmtopts.LSMOff
	}
	s.XGrid = f.Meridionals.encode()
	s.YGrid = f.Parallels.encode()
	return s, nil
}
