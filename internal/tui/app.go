// Package tui is the interactive terminal front end: one bubbletea
// event loop over the panel controller, with modal dialogs for the
// color and basemap settings.
package tui

import (
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/ncpanel/internal/dialog"
	"github.com/san-kum/ncpanel/internal/panel"
	"github.com/san-kum/ncpanel/internal/plot"
)

type mode int

const (
	modeVars mode = iota
	modePlot
	modeMethod
	modeBounds
	modeBasemap
	modeExport
)

type model struct {
	panel *panel.Panel

	mode   mode
	width  int
	height int
	status string

	varCursor int
	dimCursor int

	// pending method choice
	methodName   string
	methodKinds  []plot.Kind
	methodCursor int

	// active dialog
	bounds      *dialog.BoundsForm
	basemap     *dialog.BasemapForm
	fields      []field
	fieldCursor int
	editing     bool
	editBuf     string
	fieldErrs   []dialog.FieldError

	exportCursor int

	// animSeq invalidates ticks scheduled before the last stop or
	// interval change.
	animSeq int
}

// tickMsg carries the animation sequence it was scheduled under.
type tickMsg int

func (m model) tick() tea.Cmd {
	seq := m.animSeq
	d := time.Duration(m.panel.IntervalMS()) * time.Millisecond
	return tea.Tick(d, func(time.Time) tea.Msg { return tickMsg(seq) })
}

// NewApp builds the TUI over an already opened panel.
func NewApp(p *panel.Panel) *model {
	m := &model{
		panel:  p,
		mode:   modeVars,
		width:  100,
		height: 30,
	}
	if p.Plot() != nil {
		m.mode = modePlot
	}
	return m
}

func (m model) Init() tea.Cmd {
	if m.panel.Animating() {
		return m.tick()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if int(msg) != m.animSeq || !m.panel.Animating() {
			return m, nil
		}
		m.panel.Tick()
		return m, m.tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.mode {
	case modeVars:
		return m.varsKey(msg)
	case modePlot:
		return m.plotKey(msg)
	case modeMethod:
		return m.methodKey(msg)
	case modeBounds, modeBasemap:
		return m.dialogKey(msg)
	case modeExport:
		return m.exportKey(msg)
	}
	return m, nil
}

func (m model) varsKey(msg tea.KeyMsg) (model, tea.Cmd) {
	names := m.panel.Variables()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.panel.Plot() != nil {
			m.mode = modePlot
		}
	case "up", "k":
		if m.varCursor > 0 {
			m.varCursor--
		}
	case "down", "j":
		if m.varCursor < len(names)-1 {
			m.varCursor++
		}
	case "enter", " ":
		if len(names) == 0 {
			return m, nil
		}
		if m.panel.Animating() {
			m.status = "stop the animation first"
			return m, nil
		}
		return m.selectVariable(names[m.varCursor])
	}
	return m, nil
}

// selectVariable resolves the plot method: the current method is
// kept when it fits, a single compatible method is taken directly,
// and anything else goes through the picker.
func (m model) selectVariable(name string) (model, tea.Cmd) {
	m.status = ""

	if p := m.panel.Plot(); p != nil {
		if kinds, err := plot.Available(m.panel.Dataset(), name); err == nil {
			for _, k := range kinds {
				if k == p.Kind() {
					return m.applySelection(name, k)
				}
			}
		}
	}

	kinds, err := plot.Available(m.panel.Dataset(), name)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	switch len(kinds) {
	case 0:
		m.status = fmt.Sprintf("can not plot variable %s", name)
		return m, nil
	case 1:
		return m.applySelection(name, kinds[0])
	default:
		m.mode = modeMethod
		m.methodName = name
		m.methodKinds = kinds
		m.methodCursor = 0
		return m, nil
	}
}

func (m model) applySelection(name string, kind plot.Kind) (model, tea.Cmd) {
	if _, err := m.panel.SelectVariableWith(name, kind); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.mode = modePlot
	m.dimCursor = 0
	m.animSeq++
	return m, nil
}

func (m model) methodKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = modeVars
	case "up", "k":
		if m.methodCursor > 0 {
			m.methodCursor--
		}
	case "down", "j":
		if m.methodCursor < len(m.methodKinds)-1 {
			m.methodCursor++
		}
	case "enter", " ":
		return m.applySelection(m.methodName, m.methodKinds[m.methodCursor])
	}
	return m, nil
}

func (m model) plotKey(msg tea.KeyMsg) (model, tea.Cmd) {
	p := m.panel.Plot()
	if p == nil {
		m.mode = modeVars
		return m, nil
	}
	dims := p.FreeDims()
	m.status = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "v":
		// navigation locks while animating; only the animation keys
		// stay live
		if m.panel.Animating() {
			m.status = "stop the animation first"
			return m, nil
		}
		m.mode = modeVars
		return m, nil
	case "up", "k":
		if m.dimCursor > 0 {
			m.dimCursor--
		}
	case "down", "j":
		if m.dimCursor < len(dims)-1 {
			m.dimCursor++
		}
	case "left", "h":
		if !m.panel.Animating() && m.dimCursor < len(dims) {
			m.panel.Step(dims[m.dimCursor], -1)
		}
	case "right", "l":
		if !m.panel.Animating() && m.dimCursor < len(dims) {
			m.panel.Step(dims[m.dimCursor], 1)
		}
	case "a":
		return m.toggleAnimation(false)
	case "A":
		return m.toggleAnimation(true)
	case " ":
		if m.panel.Animating() {
			m.panel.StopAnimation()
			m.animSeq++
			return m, nil
		}
		return m.toggleAnimation(false)
	case "+", "=":
		m.panel.SetInterval(m.panel.IntervalMS() - 40)
		m.animSeq++
		if m.panel.Animating() {
			return m, m.tick()
		}
	case "-", "_":
		m.panel.SetInterval(m.panel.IntervalMS() + 40)
		m.animSeq++
		if m.panel.Animating() {
			return m, m.tick()
		}
	case "c":
		if _, err := m.panel.CycleColormap(1); err != nil {
			m.status = err.Error()
		}
	case "C":
		if _, err := m.panel.CycleColormap(-1); err != nil {
			m.status = err.Error()
		}
	case "p":
		if _, err := m.panel.CycleProjection(1); err != nil {
			m.status = err.Error()
		}
	case "P":
		if _, err := m.panel.CycleProjection(-1); err != nil {
			m.status = err.Error()
		}
	case "g":
		m.panel.ToggleDatagrid()
	case "b":
		return m.openBounds()
	case "B":
		return m.openBasemap()
	case "e":
		m.mode = modeExport
		m.exportCursor = 0
	case "x":
		m.panel.ClosePlot()
		m.animSeq++
		m.mode = modeVars
	}
	return m, nil
}

func (m model) toggleAnimation(backward bool) (model, tea.Cmd) {
	if m.panel.Animating() {
		m.panel.StopAnimation()
		m.animSeq++
		return m, nil
	}
	if err := m.panel.StartAnimation("", backward); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.animSeq++
	return m, m.tick()
}

func (m model) exportKey(msg tea.KeyMsg) (model, tea.Cmd) {
	choices := exportChoices
	switch msg.String() {
	case "esc", "q":
		m.mode = modePlot
	case "up", "k":
		if m.exportCursor > 0 {
			m.exportCursor--
		}
	case "down", "j":
		if m.exportCursor < len(choices)-1 {
			m.exportCursor++
		}
	case "enter", " ":
		m.status = m.runExport(m.exportCursor)
		m.mode = modePlot
	}
	return m, nil
}

var exportChoices = []string{
	"image (svg)",
	"animation (frame sequence)",
	"project (yaml)",
	"project with data (yaml)",
}

func (m *model) runExport(choice int) string {
	dir := m.panel.Config().Export.Dir
	p := m.panel.Plot()
	if p == nil {
		return "no open plot"
	}
	name := p.Variable().Name
	var err error
	var out string
	switch choice {
	case 0:
		out = fmt.Sprintf("%s/%s.svg", dir, name)
		err = m.panel.ExportImage(out, m.plotWidth(), m.plotHeight())
	case 1:
		out = fmt.Sprintf("%s/%s_frames", dir, name)
		err = m.panel.ExportAnimation(out, m.plotWidth(), m.plotHeight())
	case 2:
		out = fmt.Sprintf("%s/%s.yaml", dir, filepath.Base(m.panel.Dataset().Name()))
		err = m.panel.ExportProject(out, false)
	case 3:
		out = fmt.Sprintf("%s/%s.yaml", dir, filepath.Base(m.panel.Dataset().Name()))
		err = m.panel.ExportProject(out, true)
	}
	if err != nil {
		return err.Error()
	}
	return "saved " + out
}

// Run starts the interactive loop.
func Run(p *panel.Panel) error {
	prog := tea.NewProgram(NewApp(p), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
