package dialog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/ncpanel/internal/colormap"
	"github.com/san-kum/ncpanel/internal/fmtopts"
)

// BoundsChoice selects how colorbar boundaries are computed.
type BoundsChoice int

const (
	ChoiceRounded BoundsChoice = iota // round the data extrema
	ChoiceExact                       // exact min/max
	ChoiceCustom                      // explicit boundary list
)

// MaxLevels bounds the level-count field, mirroring the masked
// "Bounds: 900" input of the original dialog.
const MaxLevels = 900

// levelsPrefix is the fixed mask text in front of the level count.
const levelsPrefix = "Bounds: "

// BoundsForm is the color-settings dialog state.
type BoundsForm struct {
	Choice    BoundsChoice
	Custom    string // comma-separated boundaries, ChoiceCustom only
	Levels    string // level count digits, blank for default
	Symmetric bool
	Inverted  bool

	// Percentile window; a disabled field is fixed at its default.
	MinPctlEnabled bool
	MinPctl        string
	MaxPctlEnabled bool
	MaxPctl        string

	cmap string // the dialog's stored colormap name, as handed in
}

// NewBoundsForm decodes the plot's current cmap and bounds settings
// into form fields.
func NewBoundsForm(cmap string, bounds fmtopts.BoundsSpec) *BoundsForm {
	f := &BoundsForm{
		cmap:     cmap,
		Inverted: colormap.IsInverted(cmap),
		MinPctl:  "0",
		MaxPctl:  "100",
	}

	if bounds.IsExplicit() {
		f.Choice = ChoiceCustom
		f.Custom = formatFloats(bounds.Explicit)
		f.Levels = strconv.Itoa(len(bounds.Explicit))
		return f
	}

	if bounds.Rounded() {
		f.Choice = ChoiceRounded
	} else {
		f.Choice = ChoiceExact
	}
	f.Symmetric = bounds.Symmetric()
	if bounds.Levels != nil {
		f.Levels = strconv.Itoa(*bounds.Levels)
	}

	if bounds.MinPctl != 0 {
		f.MinPctlEnabled = true
		f.MinPctl = strconv.FormatFloat(bounds.MinPctl, 'g', -1, 64)
	}
	if bounds.MaxPctl != 100 {
		f.MaxPctlEnabled = true
		f.MaxPctl = strconv.FormatFloat(bounds.MaxPctl, 'g', -1, 64)
	}
	return f
}

// CustomEnabled reports whether the custom list field is editable.
func (f *BoundsForm) CustomEnabled() bool { return f.Choice == ChoiceCustom }

// PctlControlsEnabled reports whether the percentile radio group is
// editable at all; custom bounds disable it entirely.
func (f *BoundsForm) PctlControlsEnabled() bool { return f.Choice != ChoiceCustom }

// LevelsDisplay renders the masked level field.
func (f *BoundsForm) LevelsDisplay() string { return levelsPrefix + f.Levels }

// Cmap returns the colormap name the encoded settings will carry.
func (f *BoundsForm) Cmap() string {
	return colormap.WithInverted(f.cmap, f.Inverted)
}

// Validate checks every editable numeric field and returns one
// error per offending field. Encode must not be called while
// Validate reports errors.
func (f *BoundsForm) Validate() []FieldError {
	var errs []FieldError

	if f.Choice == ChoiceCustom {
		if _, err := parseFloats(f.Custom); err != nil {
			errs = append(errs, FieldError{"custom", err.Error()})
		}
	}

	if s := strings.TrimSpace(f.Levels); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			errs = append(errs, FieldError{"levels", fmt.Sprintf("not an integer: %q", s)})
		} else if n < 0 || n > MaxLevels {
			errs = append(errs, FieldError{"levels", fmt.Sprintf("must be 0..%d", MaxLevels)})
		}
	}

	if f.Choice != ChoiceCustom {
		if f.MinPctlEnabled {
			if err := checkPctl(f.MinPctl); err != nil {
				errs = append(errs, FieldError{"min percentile", err.Error()})
			}
		}
		if f.MaxPctlEnabled {
			if err := checkPctl(f.MaxPctl); err != nil {
				errs = append(errs, FieldError{"max percentile", err.Error()})
			}
		}
	}
	return errs
}

func checkPctl(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	if v < 0 || v > 100 {
		return fmt.Errorf("must be 0..100")
	}
	return nil
}

// Encode translates the form back into the bounds/cmap settings
// mapping. An empty custom list degrades to the rounded default
// rather than an empty boundary list.
func (f *BoundsForm) Encode() (fmtopts.BoundsSpec, string, error) {
	if errs := f.Validate(); len(errs) > 0 {
		return fmtopts.BoundsSpec{}, "", errs[0]
	}

	cmap := f.Cmap()

	if f.Choice == ChoiceCustom {
		values, err := parseFloats(f.Custom)
		if err != nil {
			return fmtopts.BoundsSpec{}, "", FieldError{"custom", err.Error()}
		}
		if len(values) == 0 {
			return fmtopts.DefaultBounds(), cmap, nil
		}
		sort.Float64s(values)
		return fmtopts.BoundsSpec{Explicit: values, MinPctl: 0, MaxPctl: 100}, cmap, nil
	}

	var method fmtopts.BoundsMethod
	if f.Choice == ChoiceExact {
		if f.Symmetric {
			method = fmtopts.BoundsSym
		} else {
			method = fmtopts.BoundsMinmax
		}
	} else {
		if f.Symmetric {
			method = fmtopts.BoundsRoundedSym
		} else {
			method = fmtopts.BoundsRounded
		}
	}

	spec := fmtopts.BoundsSpec{Method: method, MinPctl: 0, MaxPctl: 100}
	if s := strings.TrimSpace(f.Levels); s != "" {
		n, _ := strconv.Atoi(s)
		spec.Levels = &n
	}
	if f.MinPctlEnabled {
		if s := strings.TrimSpace(f.MinPctl); s != "" {
			spec.MinPctl, _ = strconv.ParseFloat(s, 64)
		}
	}
	if f.MaxPctlEnabled {
		if s := strings.TrimSpace(f.MaxPctl); s != "" {
			spec.MaxPctl, _ = strconv.ParseFloat(s, 64)
		}
	}
	return spec, cmap, nil
}
