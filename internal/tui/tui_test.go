package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/ncpanel/internal/dataset"
	"github.com/san-kum/ncpanel/internal/panel"
	"github.com/san-kum/ncpanel/internal/plot"
)

func newTestModel() model {
	return *NewApp(panel.New(dataset.Demo(), nil))
}

func keyRune(m model, s string) model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(model)
}

func keyType(m model, t tea.KeyType) model {
	next, _ := m.Update(tea.KeyMsg{Type: t})
	return next.(model)
}

func TestSelectThroughMethodPicker(t *testing.T) {
	m := newTestModel()
	if m.mode != modeVars {
		t.Fatalf("start mode = %v", m.mode)
	}

	// t2m supports three methods, so enter opens the picker
	m = keyType(m, tea.KeyEnter)
	if m.mode != modeMethod {
		t.Fatalf("expected method picker, got %v", m.mode)
	}
	if len(m.methodKinds) != 3 {
		t.Errorf("kinds = %v", m.methodKinds)
	}

	m = keyType(m, tea.KeyEnter)
	if m.mode != modePlot {
		t.Fatalf("expected plot mode, got %v", m.mode)
	}
	if m.panel.Plot().Kind() != plot.MapPlot {
		t.Errorf("kind = %v", m.panel.Plot().Kind())
	}
}

func TestSingleMethodSkipsPicker(t *testing.T) {
	m := newTestModel()
	m.varCursor = 2 // station, lineplot only
	m = keyType(m, tea.KeyEnter)
	if m.mode != modePlot {
		t.Fatalf("mode = %v", m.mode)
	}
	if m.panel.Plot().Kind() != plot.LinePlot {
		t.Errorf("kind = %v", m.panel.Plot().Kind())
	}
}

func TestReselectKeepsMethod(t *testing.T) {
	m := newTestModel()
	m = keyType(m, tea.KeyEnter) // picker
	m = keyType(m, tea.KeyEnter) // mapplot t2m

	m = keyRune(m, "v")
	m.varCursor = 1 // ta
	m = keyType(m, tea.KeyEnter)
	if m.mode != modePlot {
		t.Fatalf("compatible method must not reopen the picker, mode = %v", m.mode)
	}
	if m.panel.Plot().Variable().Name != "ta" || m.panel.Plot().Kind() != plot.MapPlot {
		t.Errorf("plot = %s %v", m.panel.Plot().Variable().Name, m.panel.Plot().Kind())
	}
}

func TestAnimationTicks(t *testing.T) {
	m := newTestModel()
	m = keyType(m, tea.KeyEnter)
	m = keyType(m, tea.KeyEnter)

	m = keyRune(m, "a")
	if !m.panel.Animating() {
		t.Fatal("a must start the animation")
	}
	seq := m.animSeq

	next, cmd := m.Update(tickMsg(seq))
	m = next.(model)
	if cmd == nil {
		t.Error("live tick must schedule the next one")
	}
	if i, _ := m.panel.Plot().Index("time"); i != 1 {
		t.Errorf("tick should advance time, got %d", i)
	}

	// stale tick from before a stop is dropped
	m = keyType(m, tea.KeySpace)
	if m.panel.Animating() {
		t.Fatal("space must stop the animation")
	}
	next, cmd = m.Update(tickMsg(seq))
	m = next.(model)
	if cmd != nil {
		t.Error("stale tick must not reschedule")
	}
	if i, _ := m.panel.Plot().Index("time"); i != 1 {
		t.Errorf("stale tick must not advance, got %d", i)
	}
}

func TestAnimationLocksNavigation(t *testing.T) {
	m := newTestModel()
	m = keyType(m, tea.KeyEnter)
	m = keyType(m, tea.KeyEnter)

	m = keyRune(m, "a")
	if !m.panel.Animating() {
		t.Fatal("a must start the animation")
	}

	m = keyType(m, tea.KeyRight)
	if i, _ := m.panel.Plot().Index("time"); i != 0 {
		t.Errorf("manual step must be locked while animating, time = %d", i)
	}
	m = keyRune(m, "v")
	if m.mode != modePlot {
		t.Errorf("variable switch must be locked while animating, mode = %v", m.mode)
	}
	if m.status == "" {
		t.Error("locked variable switch should explain itself")
	}

	m = keyType(m, tea.KeySpace)
	if m.panel.Animating() {
		t.Fatal("space must stop the animation")
	}
	m = keyType(m, tea.KeyRight)
	if i, _ := m.panel.Plot().Index("time"); i != 1 {
		t.Errorf("stepping must unlock after the stop, time = %d", i)
	}
	m = keyRune(m, "v")
	if m.mode != modeVars {
		t.Errorf("variable list must unlock after the stop, mode = %v", m.mode)
	}
}

func TestIntervalKeys(t *testing.T) {
	m := newTestModel()
	m = keyType(m, tea.KeyEnter)
	m = keyType(m, tea.KeyEnter)

	m = keyRune(m, "+")
	if m.panel.IntervalMS() != 460 {
		t.Errorf("interval = %d", m.panel.IntervalMS())
	}
	m = keyRune(m, "-")
	if m.panel.IntervalMS() != 500 {
		t.Errorf("interval = %d", m.panel.IntervalMS())
	}
}

func TestBoundsDialogValidation(t *testing.T) {
	m := newTestModel()
	m = keyType(m, tea.KeyEnter)
	m = keyType(m, tea.KeyEnter)

	m = keyRune(m, "b")
	if m.mode != modeBounds {
		t.Fatalf("mode = %v", m.mode)
	}

	// switch to custom bounds and type garbage
	m = keyType(m, tea.KeyRight)
	m = keyType(m, tea.KeyRight)
	m = keyType(m, tea.KeyDown) // custom field
	m = keyType(m, tea.KeyEnter)
	for _, r := range "1, two, 3" {
		m = keyRune(m, string(r))
	}
	m = keyType(m, tea.KeyEnter)

	m = keyRune(m, "s")
	if m.mode != modeBounds {
		t.Error("invalid input must keep the dialog open")
	}
	if len(m.fieldErrs) == 0 {
		t.Fatal("expected a field error")
	}
	if !strings.Contains(m.fieldErrs[0].Error(), "custom") {
		t.Errorf("error = %v", m.fieldErrs[0])
	}

	// fix the field and apply
	m = keyType(m, tea.KeyEnter)
	m.editBuf = "1, 2, 3"
	m = keyType(m, tea.KeyEnter)
	m = keyRune(m, "s")
	if m.mode != modePlot {
		t.Errorf("valid input must close the dialog, mode = %v, errs = %v", m.mode, m.fieldErrs)
	}
	opts := m.panel.Plot().Options()
	if !opts.Bounds.IsExplicit() || len(opts.Bounds.Explicit) != 3 {
		t.Errorf("bounds = %+v", opts.Bounds)
	}
}

func TestDialogUnsupportedForLineplot(t *testing.T) {
	m := newTestModel()
	m.varCursor = 2
	m = keyType(m, tea.KeyEnter) // station lineplot

	m = keyRune(m, "b")
	if m.mode != modePlot {
		t.Error("lineplot has no color settings dialog")
	}
	if m.status == "" {
		t.Error("expected a status message")
	}
}

func TestViewsRender(t *testing.T) {
	m := newTestModel()
	if !strings.Contains(m.View(), "t2m") {
		t.Error("variable list should show t2m")
	}

	m = keyType(m, tea.KeyEnter)
	m = keyType(m, tea.KeyEnter)
	view := m.View()
	if !strings.Contains(view, "demo") {
		t.Error("plot view should carry the dataset name")
	}
	if !strings.Contains(view, "time") {
		t.Error("plot view should list the free dimensions")
	}

	if err := m.panel.SetOptions(plot.WithCLabel("%(long_name)s [%(units)s]")); err != nil {
		t.Fatalf("set clabel: %v", err)
	}
	if !strings.Contains(m.View(), "2 metre temperature [degC]") {
		t.Error("colorbar should carry the clabel")
	}

	m = keyRune(m, "B")
	if m.mode != modeBasemap {
		t.Fatalf("mode = %v", m.mode)
	}
	if !strings.Contains(m.View(), "meridionals") {
		t.Error("basemap dialog should list the grid groups")
	}
}
