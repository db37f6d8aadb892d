// Package panel is the controller behind the interactive view: it
// owns the dataset, at most one plot, and the animation state, and
// exposes the operations the key bindings map to. It never draws
// anything itself.
package panel

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/san-kum/ncpanel/internal/colormap"
	"github.com/san-kum/ncpanel/internal/config"
	"github.com/san-kum/ncpanel/internal/dataset"
	"github.com/san-kum/ncpanel/internal/export"
	"github.com/san-kum/ncpanel/internal/fmtopts"
	"github.com/san-kum/ncpanel/internal/plot"
	"github.com/san-kum/ncpanel/internal/render"
)

var (
	// ErrNoPlot indicates an operation that needs an open plot.
	ErrNoPlot = errors.New("panel: no open plot")

	// ErrUnsupported indicates a variable no plot method can show.
	ErrUnsupported = errors.New("panel: variable cannot be plotted")
)

// MethodChooser resolves which plot method to use when several are
// compatible. Returning false aborts the selection.
type MethodChooser func(name string, kinds []plot.Kind) (plot.Kind, bool)

// Panel drives one dataset.
type Panel struct {
	ds  dataset.Dataset
	cfg *config.Config

	plot    *plot.Plot
	chooser MethodChooser

	state      State
	animDim    string
	intervalMS int
}

// New creates a panel over an open dataset. The chooser may be nil,
// in which case the first compatible method wins.
func New(ds dataset.Dataset, cfg *config.Config) *Panel {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Panel{
		ds:         ds,
		cfg:        cfg,
		state:      Idle,
		intervalMS: cfg.IntervalMS,
	}
}

// SetChooser installs the method selection callback.
func (p *Panel) SetChooser(c MethodChooser) { p.chooser = c }

// Dataset returns the open dataset.
func (p *Panel) Dataset() dataset.Dataset { return p.ds }

// Config returns the active configuration.
func (p *Panel) Config() *config.Config { return p.cfg }

// Plot returns the open plot, or nil.
func (p *Panel) Plot() *plot.Plot { return p.plot }

// Variables lists the selectable variable names.
func (p *Panel) Variables() []string { return p.ds.Variables() }

// SelectVariable shows the named variable. Selecting the variable
// that is already shown is a no-op and reports changed=false. When
// several plot methods fit, the chooser decides; without a chooser
// the first compatible method is used.
func (p *Panel) SelectVariable(name string) (changed bool, err error) {
	if p.plot != nil && !p.plot.Closed() && p.plot.Variable().Name == name {
		return false, nil
	}

	kinds, err := plot.Available(p.ds, name)
	if err != nil {
		return false, err
	}
	if len(kinds) == 0 {
		return false, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}

	kind := kinds[0]
	if len(kinds) > 1 && p.chooser != nil {
		chosen, ok := p.chooser(name, kinds)
		if !ok {
			return false, nil
		}
		kind = chosen
	}
	return p.SelectVariableWith(name, kind)
}

// SelectVariableWith shows the named variable with an explicit plot
// method, bypassing the chooser.
func (p *Panel) SelectVariableWith(name string, kind plot.Kind) (bool, error) {
	if p.plot != nil && !p.plot.Closed() &&
		p.plot.Variable().Name == name && p.plot.Kind() == kind {
		return false, nil
	}

	// Same method: switch in place so dimensions and options carry
	// over.
	if p.plot != nil && !p.plot.Closed() && p.plot.Kind() == kind {
		if err := p.plot.Update(plot.WithName(name)); err != nil {
			return false, err
		}
		p.stopIfAnimating()
		return true, nil
	}

	np, err := plot.New(p.ds, kind, name, p.defaultOptions(kind)...)
	if err != nil {
		return false, err
	}
	if p.plot != nil {
		p.plot.Close()
	}
	p.plot = np
	p.state = Ready
	p.animDim = ""
	return true, nil
}

// defaultOptions seeds a fresh plot from the configuration.
func (p *Panel) defaultOptions(kind plot.Kind) []plot.Option {
	var opts []plot.Option
	if c := p.cfg.Plot.Cmap; c != "" {
		opts = append(opts, plot.WithCmap(c))
	}
	if pr := p.cfg.Plot.Projection; pr != "" {
		opts = append(opts, plot.WithProjection(pr))
	}
	if l := p.cfg.Plot.LSM; l != "" {
		opts = append(opts, plot.WithLSM(l))
	}
	return opts
}

// ClosePlot releases the plot and falls back to the idle state.
func (p *Panel) ClosePlot() {
	if p.plot != nil {
		p.plot.Close()
		p.plot = nil
	}
	p.state = Idle
	p.animDim = ""
}

// CanStep reports whether a dimension can move by delta without
// wrapping.
func (p *Panel) CanStep(dim string, delta int) bool {
	if p.plot == nil {
		return false
	}
	i, ok := p.plot.Index(dim)
	if !ok {
		return false
	}
	next := i + delta
	return next >= 0 && next < p.plot.DimSize(dim)
}

// Step moves a dimension by delta. Steps beyond either end do
// nothing; manual navigation never wraps.
func (p *Panel) Step(dim string, delta int) error {
	if p.plot == nil {
		return ErrNoPlot
	}
	if !p.CanStep(dim, delta) {
		return nil
	}
	i, _ := p.plot.Index(dim)
	return p.plot.SetIndex(dim, i+delta)
}

// ToggleDatagrid flips the cell-boundary overlay.
func (p *Panel) ToggleDatagrid() error {
	if p.plot == nil {
		return ErrNoPlot
	}
	return p.plot.Update(plot.WithDatagrid(!p.plot.Options().Datagrid))
}

// CycleColormap steps through the configured colormap cycle,
// keeping the inversion state of the current map. Methods without a
// colormap ignore the call.
func (p *Panel) CycleColormap(delta int) (string, error) {
	if p.plot == nil {
		return "", ErrNoPlot
	}
	if !p.plot.Kind().Supports("cmap") {
		return "", nil
	}
	cur := p.plot.Options().Cmap
	inverted := colormap.IsInverted(cur)
	next := cycle(p.cfg.Cmaps, colormap.Base(cur), delta)
	name := colormap.WithInverted(next, inverted)
	if err := p.plot.Update(plot.WithCmap(name)); err != nil {
		return "", err
	}
	return name, nil
}

// CycleProjection steps through the configured projection cycle.
// Methods without a projection ignore the call.
func (p *Panel) CycleProjection(delta int) (string, error) {
	if p.plot == nil {
		return "", ErrNoPlot
	}
	if !p.plot.Kind().Supports("projection") {
		return "", nil
	}
	next := cycle(p.cfg.Projections, p.plot.Options().Projection, delta)
	if err := p.plot.Update(plot.WithProjection(next)); err != nil {
		return "", err
	}
	return next, nil
}

// cycle steps through a name list; unknown names restart at the
// front.
func cycle(names []string, cur string, delta int) string {
	if len(names) == 0 {
		return cur
	}
	idx := 0
	for i, n := range names {
		if n == cur {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%len(names) + len(names)) % len(names)
	return names[idx]
}

// Render draws the current plot.
func (p *Panel) Render(w, h int) (*render.Frame, error) {
	if p.plot == nil {
		return nil, ErrNoPlot
	}
	return p.plot.Render(w, h)
}

// ExportImage renders the plot once and writes it as SVG.
func (p *Panel) ExportImage(path string, w, h int) error {
	frame, err := p.Render(w, h)
	if err != nil {
		return err
	}
	return export.WriteImage(path, frame, p.cfg.Export.Scale)
}

// ExportAnimation renders one full cycle over the animation
// dimension into a numbered frame sequence with a manifest. The
// current index is restored afterwards.
func (p *Panel) ExportAnimation(dir string, w, h int) error {
	if p.plot == nil {
		return ErrNoPlot
	}
	dim := p.animDim
	if dim == "" {
		dim = p.pickAnimDim()
	}
	if dim == "" {
		return fmt.Errorf("panel: %s has no dimension to animate", p.plot.Variable().Name)
	}

	stem := fmt.Sprintf("%s_%s", p.plot.Variable().Name, dim)
	w2, err := export.NewAnimation(dir, stem, p.plot.Variable().Name, dim, p.intervalMS, p.cfg.Export.Scale)
	if err != nil {
		return err
	}

	restore, _ := p.plot.Index(dim)
	defer p.plot.SetIndex(dim, restore)

	for i := 0; i < p.plot.DimSize(dim); i++ {
		if err := p.plot.SetIndex(dim, i); err != nil {
			return err
		}
		frame, err := p.plot.Render(w, h)
		if err != nil {
			return err
		}
		if err := w2.Add(frame); err != nil {
			return err
		}
	}
	return w2.Finish()
}

// ExportProject saves the panel state as a YAML project, optionally
// embedding the dataset values.
func (p *Panel) ExportProject(path string, withData bool) error {
	proj := &export.Project{IntervalMS: p.intervalMS}
	if withData {
		data, err := export.EmbedDataset(p.ds)
		if err != nil {
			return err
		}
		proj.Data = data
	} else {
		proj.DatasetPath = p.ds.Name()
	}
	if p.plot != nil && !p.plot.Closed() {
		dims := make(map[string]int)
		for _, d := range p.plot.FreeDims() {
			i, _ := p.plot.Index(d)
			dims[d] = i
		}
		proj.Plots = []export.PlotState{{
			Variable: p.plot.Variable().Name,
			Method:   string(p.plot.Kind()),
			Dims:     dims,
			Options:  p.plot.Options(),
		}}
	}
	return export.SaveProject(path, proj)
}

// ApplyProject restores plots and interval from a loaded project.
// The dataset itself must already be open.
func (p *Panel) ApplyProject(proj *export.Project) error {
	if proj.IntervalMS > 0 {
		p.SetInterval(proj.IntervalMS)
	}
	for _, ps := range proj.Plots {
		if _, err := p.SelectVariableWith(ps.Variable, plot.Kind(ps.Method)); err != nil {
			return err
		}
		if err := p.plot.Update(plot.WithDims(ps.Dims), plot.WithOptions(ps.Options)); err != nil {
			return err
		}
	}
	return nil
}

// SetOptions applies dialog results to the plot.
func (p *Panel) SetOptions(opts ...plot.Option) error {
	if p.plot == nil {
		return ErrNoPlot
	}
	return p.plot.Update(opts...)
}

// Options returns the open plot's formatoptions.
func (p *Panel) Options() (fmtopts.Options, error) {
	if p.plot == nil {
		return fmtopts.Options{}, ErrNoPlot
	}
	return p.plot.Options(), nil
}

// Title is the heading for the view: dataset plus plot.
func (p *Panel) Title() string {
	name := filepath.Base(p.ds.Name())
	if p.plot == nil {
		return name
	}
	return name + ": " + p.plot.Title()
}

// Close releases the plot and the dataset.
func (p *Panel) Close() error {
	p.ClosePlot()
	return p.ds.Close()
}
