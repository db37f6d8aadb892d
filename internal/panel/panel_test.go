package panel

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/ncpanel/internal/config"
	"github.com/san-kum/ncpanel/internal/dataset"
	"github.com/san-kum/ncpanel/internal/export"
	"github.com/san-kum/ncpanel/internal/plot"
)

func demoPanel() *Panel {
	return New(dataset.Demo(), config.DefaultConfig())
}

func TestSelectVariableIdempotent(t *testing.T) {
	p := demoPanel()
	changed, err := p.SelectVariable("t2m")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if !changed {
		t.Error("first select should change the plot")
	}
	first := p.Plot()

	changed, err = p.SelectVariable("t2m")
	if err != nil {
		t.Fatalf("reselect: %v", err)
	}
	if changed {
		t.Error("selecting the shown variable must be a no-op")
	}
	if p.Plot() != first {
		t.Error("reselect must not rebuild the plot")
	}
}

func TestSelectVariableUnsupported(t *testing.T) {
	ds := dataset.NewMemory("test")
	if err := ds.AddVariable("flag", "", "", nil, []float64{1}); err != nil {
		t.Fatal(err)
	}
	p := New(ds, nil)
	if _, err := p.SelectVariable("flag"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
	if p.State() != Idle {
		t.Errorf("state = %v", p.State())
	}
}

func TestSelectVariableChooser(t *testing.T) {
	p := demoPanel()
	var offered []plot.Kind
	p.SetChooser(func(name string, kinds []plot.Kind) (plot.Kind, bool) {
		offered = kinds
		return plot.LinePlot, true
	})

	changed, err := p.SelectVariable("t2m")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if !changed || p.Plot().Kind() != plot.LinePlot {
		t.Errorf("chooser result not honored: %v", p.Plot().Kind())
	}
	if len(offered) != 3 {
		t.Errorf("chooser should see all compatible methods, got %v", offered)
	}

	// aborting the chooser leaves the current plot alone
	p.SetChooser(func(string, []plot.Kind) (plot.Kind, bool) { return "", false })
	changed, err = p.SelectVariable("ta")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if changed || p.Plot().Variable().Name != "t2m" {
		t.Error("aborted chooser must not switch the plot")
	}
}

func TestSwitchVariableSameMethodKeepsDims(t *testing.T) {
	p := demoPanel()
	if _, err := p.SelectVariableWith("ta", plot.MapPlot); err != nil {
		t.Fatal(err)
	}
	if err := p.Step("time", 5); err != nil {
		t.Fatal(err)
	}

	if _, err := p.SelectVariableWith("t2m", plot.MapPlot); err != nil {
		t.Fatal(err)
	}
	if i, _ := p.Plot().Index("time"); i != 5 {
		t.Errorf("time index should survive the switch, got %d", i)
	}
}

func TestStepNoWrap(t *testing.T) {
	p := demoPanel()
	p.SelectVariable("t2m")

	if p.CanStep("time", -1) {
		t.Error("cannot step below 0")
	}
	if err := p.Step("time", -1); err != nil {
		t.Errorf("step at the edge must be a silent no-op: %v", err)
	}
	if i, _ := p.Plot().Index("time"); i != 0 {
		t.Errorf("index moved to %d", i)
	}

	for p.CanStep("time", 1) {
		p.Step("time", 1)
	}
	if i, _ := p.Plot().Index("time"); i != 11 {
		t.Errorf("expected last index 11, got %d", i)
	}
	p.Step("time", 1)
	if i, _ := p.Plot().Index("time"); i != 11 {
		t.Error("manual navigation must not wrap")
	}
}

func TestAnimationWrapForward(t *testing.T) {
	p := demoPanel()
	p.SelectVariable("t2m")
	if err := p.StartAnimation("", false); err != nil {
		t.Fatalf("start: %v", err)
	}
	if p.AnimDim() != "time" {
		t.Errorf("anim dim = %q", p.AnimDim())
	}

	seen := make([]int, 0, 14)
	for n := 0; n < 14; n++ {
		if !p.Tick() {
			t.Fatal("tick while animating must advance")
		}
		i, _ := p.Plot().Index("time")
		seen = append(seen, i)
	}
	// 12 steps walk 1..11 then wrap to 0
	if seen[10] != 11 || seen[11] != 0 || seen[12] != 1 {
		t.Errorf("forward wrap broken: %v", seen)
	}
}

func TestAnimationWrapBackward(t *testing.T) {
	p := demoPanel()
	p.SelectVariable("t2m")
	if err := p.StartAnimation("time", true); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !p.Tick() {
		t.Fatal("tick failed")
	}
	if i, _ := p.Plot().Index("time"); i != 11 {
		t.Errorf("backward from 0 must wrap to the last index, got %d", i)
	}
	p.Tick()
	if i, _ := p.Plot().Index("time"); i != 10 {
		t.Errorf("then walk down, got %d", i)
	}
}

func TestStopAnimationRefreshesOnce(t *testing.T) {
	p := demoPanel()
	p.SelectVariable("t2m")
	p.StartAnimation("", false)

	if !p.StopAnimation() {
		t.Error("first stop must request a refresh")
	}
	if p.StopAnimation() {
		t.Error("second stop must not request another refresh")
	}
	if p.Tick() {
		t.Error("ticks after stop must be ignored")
	}
	if p.State() != Ready {
		t.Errorf("state = %v", p.State())
	}
}

func TestAnimationStopsOnVariableSwitch(t *testing.T) {
	p := demoPanel()
	p.SelectVariable("t2m")
	p.StartAnimation("", false)

	if _, err := p.SelectVariableWith("ta", plot.MapPlot); err != nil {
		t.Fatal(err)
	}
	if p.Animating() {
		t.Error("switching the variable must stop the animation")
	}
}

func TestSetIntervalClamps(t *testing.T) {
	p := demoPanel()
	if got := p.SetInterval(10); got != config.MinIntervalMS {
		t.Errorf("clamped low: %d", got)
	}
	if got := p.SetInterval(99999); got != config.MaxIntervalMS {
		t.Errorf("clamped high: %d", got)
	}
	p.SetInterval(500)
	if p.IntervalLabel() != "500 ms" {
		t.Errorf("label = %q", p.IntervalLabel())
	}
}

func TestCycleColormapPreservesInversion(t *testing.T) {
	p := demoPanel()
	p.SelectVariable("t2m")
	if err := p.SetOptions(plot.WithCmap("viridis_r")); err != nil {
		t.Fatal(err)
	}

	name, err := p.CycleColormap(1)
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if name != "plasma_r" {
		t.Errorf("inversion must survive the cycle, got %q", name)
	}
	name, _ = p.CycleColormap(-1)
	if name != "viridis_r" {
		t.Errorf("cycle back, got %q", name)
	}
}

func TestCycleIgnoredWithoutSupport(t *testing.T) {
	p := demoPanel()
	p.SelectVariableWith("station", plot.LinePlot)

	if name, err := p.CycleColormap(1); err != nil || name != "" {
		t.Errorf("lineplot has no colormap: %q %v", name, err)
	}

	p2 := demoPanel()
	p2.SelectVariableWith("t2m", plot.Plot2D)
	if name, err := p2.CycleProjection(1); err != nil || name != "" {
		t.Errorf("plot2d has no projection: %q %v", name, err)
	}
	if p2.Plot().Options().Projection != "cyl" {
		t.Error("projection must stay untouched")
	}
}

func TestCycleProjection(t *testing.T) {
	p := demoPanel()
	p.SelectVariableWith("t2m", plot.MapPlot)
	name, err := p.CycleProjection(1)
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if name != "robin" {
		t.Errorf("next projection = %q", name)
	}
}

func TestToggleDatagrid(t *testing.T) {
	p := demoPanel()
	p.SelectVariable("t2m")
	if err := p.ToggleDatagrid(); err != nil {
		t.Fatal(err)
	}
	if !p.Plot().Options().Datagrid {
		t.Error("datagrid should be on")
	}
	p.ToggleDatagrid()
	if p.Plot().Options().Datagrid {
		t.Error("datagrid should be off again")
	}
}

func TestExportImage(t *testing.T) {
	p := demoPanel()
	p.SelectVariable("t2m")
	path := filepath.Join(t.TempDir(), "t2m.svg")
	if err := p.ExportImage(path, 40, 12); err != nil {
		t.Fatalf("export: %v", err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Errorf("image missing or empty: %v", err)
	}
}

func TestExportAnimationRestoresIndex(t *testing.T) {
	p := demoPanel()
	p.SelectVariableWith("station", plot.LinePlot)

	p2 := demoPanel()
	p2.SelectVariable("t2m")
	p2.Step("time", 3)

	dir := t.TempDir()
	if err := p2.ExportAnimation(dir, 40, 12); err != nil {
		t.Fatalf("export: %v", err)
	}
	if i, _ := p2.Plot().Index("time"); i != 3 {
		t.Errorf("index must be restored, got %d", i)
	}
	if _, err := os.Stat(filepath.Join(dir, "t2m_time_0011.svg")); err != nil {
		t.Errorf("expected 12 frames: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "t2m_time.yaml")); err != nil {
		t.Errorf("manifest missing: %v", err)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	p := demoPanel()
	p.SelectVariableWith("ta", plot.MapPlot)
	p.Step("lev", 2)
	p.SetInterval(250)
	p.SetOptions(plot.WithCmap("RdBu_r"))

	path := filepath.Join(t.TempDir(), "project.yaml")
	if err := p.ExportProject(path, true); err != nil {
		t.Fatalf("save: %v", err)
	}

	proj, err := export.LoadProject(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ds, err := proj.OpenDataset()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	restored := New(ds, nil)
	if err := restored.ApplyProject(proj); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if restored.IntervalMS() != 250 {
		t.Errorf("interval = %d", restored.IntervalMS())
	}
	if restored.Plot().Variable().Name != "ta" || restored.Plot().Kind() != plot.MapPlot {
		t.Errorf("plot not restored: %v %v", restored.Plot().Variable().Name, restored.Plot().Kind())
	}
	if i, _ := restored.Plot().Index("lev"); i != 2 {
		t.Errorf("lev = %d", i)
	}
	if restored.Plot().Options().Cmap != "RdBu_r" {
		t.Errorf("cmap = %q", restored.Plot().Options().Cmap)
	}
}

func TestOperationsWithoutPlot(t *testing.T) {
	p := demoPanel()
	if err := p.Step("time", 1); err != ErrNoPlot {
		t.Errorf("step: %v", err)
	}
	if err := p.StartAnimation("", false); err != ErrNoPlot {
		t.Errorf("start: %v", err)
	}
	if _, err := p.Render(10, 10); err != ErrNoPlot {
		t.Errorf("render: %v", err)
	}
	if p.StopAnimation() {
		t.Error("stop without animation must not refresh")
	}
}
