package colormap

import (
	"math"
	"testing"
)

func TestSuffixHelpers(t *testing.T) {
	if !IsInverted("viridis_r") {
		t.Error("viridis_r should be inverted")
	}
	if IsInverted("viridis") {
		t.Error("viridis should not be inverted")
	}
	if Base("viridis_r") != "viridis" {
		t.Errorf("Base(viridis_r) = %s", Base("viridis_r"))
	}
	if WithInverted("viridis", true) != "viridis_r" {
		t.Errorf("WithInverted = %s", WithInverted("viridis", true))
	}
	if WithInverted("viridis_r", false) != "viridis" {
		t.Errorf("WithInverted = %s", WithInverted("viridis_r", false))
	}
	// idempotent on already-suffixed names
	if WithInverted("viridis_r", true) != "viridis_r" {
		t.Errorf("WithInverted = %s", WithInverted("viridis_r", true))
	}
}

func TestGetInverted(t *testing.T) {
	fwd, err := Get("viridis")
	if err != nil {
		t.Fatalf("get viridis: %v", err)
	}
	rev, err := Get("viridis_r")
	if err != nil {
		t.Fatalf("get viridis_r: %v", err)
	}
	if fwd.Hex(0) != rev.Hex(1) {
		t.Errorf("inverted endpoints should swap: %s vs %s", fwd.Hex(0), rev.Hex(1))
	}
	if fwd.Hex(1) != rev.Hex(0) {
		t.Errorf("inverted endpoints should swap: %s vs %s", fwd.Hex(1), rev.Hex(0))
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("turbo9000"); err == nil {
		t.Error("expected error for unknown colormap")
	}
}

func TestAtClamps(t *testing.T) {
	m, err := Get("Reds")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if m.Hex(-0.5) != m.Hex(0) {
		t.Error("t below 0 should clamp to first stop")
	}
	if m.Hex(1.5) != m.Hex(1) {
		t.Error("t above 1 should clamp to last stop")
	}
	if m.Hex(math.NaN()) != m.Hex(0) {
		t.Error("NaN should clamp to the first stop, not panic")
	}
}

func TestNamesAllResolve(t *testing.T) {
	for _, name := range Names() {
		if _, err := Get(name); err != nil {
			t.Errorf("registered colormap %s does not resolve: %v", name, err)
		}
	}
}
