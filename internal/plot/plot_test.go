package plot

import (
	"testing"

	"github.com/san-kum/ncpanel/internal/dataset"
	"github.com/san-kum/ncpanel/internal/fmtopts"
)

func TestAvailable(t *testing.T) {
	ds := dataset.Demo()

	tests := []struct {
		name string
		want []Kind
	}{
		{"t2m", []Kind{MapPlot, Plot2D, LinePlot}},
		{"ta", []Kind{MapPlot, Plot2D, LinePlot}},
		{"station", []Kind{LinePlot}},
	}
	for _, tt := range tests {
		got, err := Available(ds, tt.name)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if len(got) != len(tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
			}
		}
	}

	if _, err := Available(ds, "nope"); err == nil {
		t.Error("expected error for unknown variable")
	}
}

func TestSupports(t *testing.T) {
	if !MapPlot.Supports("projection") {
		t.Error("mapplot should support projection")
	}
	if Plot2D.Supports("projection") {
		t.Error("plot2d should not support projection")
	}
	if !Plot2D.Supports("cmap") {
		t.Error("plot2d should support cmap")
	}
	if LinePlot.Supports("cmap") {
		t.Error("lineplot should not support cmap")
	}
	if !LinePlot.Supports("title") {
		t.Error("every method should support a title")
	}
	if !MapPlot.Supports("clabel") || LinePlot.Supports("clabel") {
		t.Error("clabel belongs to the colormapped methods only")
	}
}

func TestNewMapPlot(t *testing.T) {
	ds := dataset.Demo()
	p, err := New(ds, MapPlot, "t2m")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer p.Close()

	keep := p.PlottedDims()
	if len(keep) != 2 || keep[0] != "lat" || keep[1] != "lon" {
		t.Errorf("plotted dims = %v, want [lat lon]", keep)
	}
	free := p.FreeDims()
	if len(free) != 1 || free[0] != "time" {
		t.Errorf("free dims = %v, want [time]", free)
	}
	if i, ok := p.Index("time"); !ok || i != 0 {
		t.Errorf("time should start at 0, got %d %v", i, ok)
	}
	if p.Options().Cmap != "viridis" {
		t.Errorf("default cmap = %q", p.Options().Cmap)
	}
}

func TestNewRejectsIncompatible(t *testing.T) {
	ds := dataset.Demo()
	if _, err := New(ds, MapPlot, "station"); err == nil {
		t.Error("mapplot over a 1-D series must fail")
	}
}

func TestSetIndexRange(t *testing.T) {
	ds := dataset.Demo()
	p, _ := New(ds, MapPlot, "ta")

	if err := p.SetIndex("lev", 3); err != nil {
		t.Errorf("valid index: %v", err)
	}
	if err := p.SetIndex("lev", 4); err == nil {
		t.Error("out-of-range index must fail")
	}
	if err := p.SetIndex("lat", 0); err == nil {
		t.Error("plotted dimension must not be navigable")
	}
	if i, _ := p.Index("lev"); i != 3 {
		t.Errorf("failed sets must not move the index, got %d", i)
	}
}

func TestUpdateSwitchVariableKeepsSharedDims(t *testing.T) {
	ds := dataset.Demo()
	p, _ := New(ds, MapPlot, "ta")
	if err := p.Update(WithDims(map[string]int{"time": 7, "lev": 2})); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := p.Update(WithName("t2m")); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if p.Variable().Name != "t2m" {
		t.Errorf("variable = %s", p.Variable().Name)
	}
	if i, ok := p.Index("time"); !ok || i != 7 {
		t.Errorf("shared dim index must survive the switch, got %d %v", i, ok)
	}
	if _, ok := p.Index("lev"); ok {
		t.Error("lev is gone and must not be navigable")
	}
}

func TestUpdateIgnoresUnsupportedOptions(t *testing.T) {
	ds := dataset.Demo()
	p, _ := New(ds, Plot2D, "t2m")

	if err := p.Update(WithProjection("moll"), WithCmap("Reds")); err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.Options().Projection != "cyl" {
		t.Errorf("plot2d must ignore projection, got %q", p.Options().Projection)
	}
	if p.Options().Cmap != "Reds" {
		t.Errorf("cmap = %q", p.Options().Cmap)
	}
}

func TestUpdateRejectsIncompatibleSwitch(t *testing.T) {
	ds := dataset.Demo()
	p, _ := New(ds, MapPlot, "t2m")
	if err := p.Update(WithName("station")); err == nil {
		t.Error("switching a mapplot to a 1-D series must fail")
	}
	if p.Variable().Name != "t2m" {
		t.Error("failed switch must not change the variable")
	}
}

func TestRenderMap(t *testing.T) {
	ds := dataset.Demo()
	p, _ := New(ds, MapPlot, "t2m")
	frame, err := p.Render(60, 20)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if frame.Width != 60 || frame.Height != 20 {
		t.Errorf("frame size %dx%d", frame.Width, frame.Height)
	}
	if len(frame.Bounds) == 0 {
		t.Error("map frame should carry colorbar bounds")
	}
}

func TestRender2D(t *testing.T) {
	ds := dataset.Demo()
	p, _ := New(ds, Plot2D, "ta")
	frame, err := p.Render(40, 12)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if frame.Cmap != "viridis" {
		t.Errorf("frame cmap = %q", frame.Cmap)
	}
}

func TestRenderLineCaption(t *testing.T) {
	ds := dataset.Demo()
	p, _ := New(ds, LinePlot, "station")
	if _, err := p.Render(60, 12); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := p.lineCaption(); got != "station [degC]" {
		t.Errorf("caption = %q", got)
	}
}

func TestClose(t *testing.T) {
	ds := dataset.Demo()
	p, _ := New(ds, MapPlot, "t2m")
	p.Close()
	if !p.Closed() {
		t.Error("Closed should report true")
	}
	if _, err := p.Render(10, 10); err != ErrClosed {
		t.Errorf("render after close: %v", err)
	}
	if err := p.Update(WithCmap("Reds")); err != ErrClosed {
		t.Errorf("update after close: %v", err)
	}
}

func TestTitleAndCLabelTemplates(t *testing.T) {
	ds := dataset.Demo()
	p, _ := New(ds, MapPlot, "t2m")

	if got := p.Title(); got != "2 metre temperature" {
		t.Errorf("default title = %q", got)
	}
	if got := p.CLabel(); got != "" {
		t.Errorf("clabel should default to empty, got %q", got)
	}

	err := p.Update(
		WithTitle("%(long_name)s at the surface"),
		WithCLabel("%(name)s [%(units)s]"),
	)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := p.Title(); got != "2 metre temperature at the surface" {
		t.Errorf("title = %q", got)
	}
	if got := p.CLabel(); got != "t2m [degC]" {
		t.Errorf("clabel = %q", got)
	}

	// templates re-expand against the new variable after a switch
	if err := p.Update(WithName("ta")); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if got := p.CLabel(); got != "ta [K]" {
		t.Errorf("clabel after switch = %q", got)
	}
}

func TestUpdateReplaceOptions(t *testing.T) {
	ds := dataset.Demo()
	p, _ := New(ds, MapPlot, "t2m")

	opts := fmtopts.Defaults()
	opts.Cmap = "RdBu_r"
	opts.Datagrid = true
	if err := p.Update(WithOptions(opts)); err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.Options().Cmap != "RdBu_r" || !p.Options().Datagrid {
		t.Errorf("options not replaced: %+v", p.Options())
	}
}
