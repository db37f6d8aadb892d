package dialog

import (
	"testing"

	"github.com/san-kum/ncpanel/internal/fmtopts"
)

func optsWith(x, y fmtopts.GridSpec) fmtopts.Options {
	o := fmtopts.Defaults()
	o.XGrid = x
	o.YGrid = y
	return o
}

func TestBasemapFormDecode(t *testing.T) {
	clon := 120.0
	o := fmtopts.Defaults()
	o.Clon = &clon
	o.LSM = fmtopts.LSM50m
	o.XGrid = fmtopts.GridSpec{Mode: fmtopts.GridAt, Positions: []float64{0, 90, 180}}
	o.YGrid = fmtopts.GridOffSpec()

	f := NewBasemapForm(o)
	if f.Clon != "120" {
		t.Errorf("clon field = %q", f.Clon)
	}
	if f.Clat != "" {
		t.Errorf("clat should be blank for automatic, got %q", f.Clat)
	}
	if !f.LSMEnabled || f.LSMRes != fmtopts.LSM50m {
		t.Errorf("lsm = %v %q", f.LSMEnabled, f.LSMRes)
	}
	if f.Meridionals.Choice != GridChoiceAt || f.Meridionals.At != "0, 90, 180" {
		t.Errorf("meridionals = %+v", f.Meridionals)
	}
	if f.Parallels.Enabled {
		t.Error("parallels should be disabled for an off spec")
	}
}

func TestBasemapFormEncodeDefaults(t *testing.T) {
	f := NewBasemapForm(optsWith(fmtopts.GridAutoSpec(), fmtopts.GridAutoSpec()))
	f.Meridionals.Choice = GridChoiceEvery
	f.Meridionals.Every = "" // blank step defaults to 30
	f.Parallels.Choice = GridChoiceCount
	f.Parallels.Count = "" // blank count defaults to 5

	s, err := f.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if s.XGrid.Mode != fmtopts.GridEvery || s.XGrid.Step != 30 {
		t.Errorf("xgrid = %+v, want step 30", s.XGrid)
	}
	if s.YGrid.Mode != fmtopts.GridCount || s.YGrid.Count != 5 {
		t.Errorf("ygrid = %+v, want count 5", s.YGrid)
	}
	if s.YGrid.AnchorMode != "rounded" {
		t.Errorf("fresh count spec should anchor to rounded, got %q", s.YGrid.AnchorMode)
	}
}

func TestBasemapFormEmptyPositionsTurnOff(t *testing.T) {
	f := NewBasemapForm(optsWith(fmtopts.GridAutoSpec(), fmtopts.GridAutoSpec()))
	f.Meridionals.Choice = GridChoiceAt
	f.Meridionals.At = ""

	s, err := f.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if s.XGrid.Mode != fmtopts.GridOff {
		t.Errorf("empty position list should encode as off, got %v", s.XGrid.Mode)
	}
}

func TestBasemapFormAnchorPreserved(t *testing.T) {
	anchored := fmtopts.GridSpec{
		Mode: fmtopts.GridCount, Count: 7,
		AnchorLo: -60, AnchorHi: 60, HasAnchorRange: true,
	}
	f := NewBasemapForm(optsWith(anchored, fmtopts.GridAutoSpec()))
	f.Meridionals.Count = "9"

	s, err := f.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !s.XGrid.HasAnchorRange || s.XGrid.AnchorLo != -60 || s.XGrid.AnchorHi != 60 {
		t.Errorf("anchor range lost: %+v", s.XGrid)
	}
	if s.XGrid.Count != 9 {
		t.Errorf("count = %d, want 9", s.XGrid.Count)
	}

	named := fmtopts.GridSpec{Mode: fmtopts.GridCount, Count: 4, AnchorMode: "rounded"}
	f = NewBasemapForm(optsWith(fmtopts.GridAutoSpec(), named))
	s, err = f.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if s.YGrid.AnchorMode != "rounded" || s.YGrid.Count != 4 {
		t.Errorf("named anchor lost: %+v", s.YGrid)
	}
}

func TestBasemapFormDisabledBoxes(t *testing.T) {
	f := NewBasemapForm(fmtopts.Defaults())
	f.LSMEnabled = false
	f.Meridionals.Enabled = false
	f.Parallels.Enabled = false

	s, err := f.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if s.LSM != fmtopts.LSMOff {
		t.Errorf("lsm = %q, want off", s.LSM)
	}
	if s.XGrid.Mode != fmtopts.GridOff || s.YGrid.Mode != fmtopts.GridOff {
		t.Errorf("grids should be off: %v %v", s.XGrid.Mode, s.YGrid.Mode)
	}
}

func TestBasemapFormValidate(t *testing.T) {
	f := NewBasemapForm(fmtopts.Defaults())
	f.Clon = "east"
	if errs := f.Validate(); len(errs) == 0 {
		t.Error("non-numeric clon must be rejected")
	}

	f = NewBasemapForm(fmtopts.Defaults())
	f.Clat = "95"
	if errs := f.Validate(); len(errs) == 0 {
		t.Error("clat outside -90..90 must be rejected")
	}

	f = NewBasemapForm(fmtopts.Defaults())
	f.Meridionals.Choice = GridChoiceAt
	f.Meridionals.At = "0, x"
	if errs := f.Validate(); len(errs) == 0 {
		t.Error("non-numeric positions must be rejected")
	}
	if _, err := f.Encode(); err == nil {
		t.Error("encode must refuse invalid fields")
	}

	f = NewBasemapForm(fmtopts.Defaults())
	f.Parallels.Choice = GridChoiceCount
	f.Parallels.Count = "0"
	if errs := f.Validate(); len(errs) == 0 {
		t.Error("zero count must be rejected")
	}
}

func TestBasemapFormClonClatEncode(t *testing.T) {
	f := NewBasemapForm(fmtopts.Defaults())
	f.Clon = "-120"
	f.Clat = "45"
	s, err := f.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if s.Clon == nil || *s.Clon != -120 {
		t.Errorf("clon = %v", s.Clon)
	}
	if s.Clat == nil || *s.Clat != 45 {
		t.Errorf("clat = %v", s.Clat)
	}

	f.Clon, f.Clat = "", ""
	s, err = f.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if s.Clon != nil || s.Clat != nil {
		t.Error("blank fields should encode as automatic (nil)")
	}
}
