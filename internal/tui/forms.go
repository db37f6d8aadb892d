package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/ncpanel/internal/dialog"
	"github.com/san-kum/ncpanel/internal/fmtopts"
	"github.com/san-kum/ncpanel/internal/plot"
)

type fieldKind int

const (
	fieldToggle fieldKind = iota
	fieldChoice
	fieldText
)

// field adapts one dialog form member to cursor navigation: toggles
// flip on space, choices cycle with left/right, text fields open an
// edit buffer on enter.
type field struct {
	label   string
	kind    fieldKind
	get     func() string
	set     func(string)
	toggle  func()
	cycle   func(delta int)
	enabled func() bool
}

func (f field) isEnabled() bool {
	return f.enabled == nil || f.enabled()
}

func (m model) openBounds() (model, tea.Cmd) {
	p := m.panel.Plot()
	if !p.Kind().Supports("bounds") {
		m.status = "this plot has no color settings"
		return m, nil
	}
	opts := p.Options()
	m.bounds = dialog.NewBoundsForm(opts.Cmap, opts.Bounds)
	m.basemap = nil
	m.fields = boundsFields(m.bounds)
	m.fieldCursor = 0
	m.editing = false
	m.fieldErrs = nil
	m.mode = modeBounds
	return m, nil
}

func (m model) openBasemap() (model, tea.Cmd) {
	p := m.panel.Plot()
	if !p.Kind().Supports("projection") {
		m.status = "this plot has no basemap settings"
		return m, nil
	}
	m.basemap = dialog.NewBasemapForm(p.Options())
	m.bounds = nil
	m.fields = basemapFields(m.basemap)
	m.fieldCursor = 0
	m.editing = false
	m.fieldErrs = nil
	m.mode = modeBasemap
	return m, nil
}

var boundsChoices = []string{"rounded bounds", "exact bounds", "custom bounds"}

func boundsFields(f *dialog.BoundsForm) []field {
	return []field{
		{
			label: "bounds",
			kind:  fieldChoice,
			get:   func() string { return boundsChoices[f.Choice] },
			cycle: func(d int) {
				n := len(boundsChoices)
				f.Choice = dialog.BoundsChoice(((int(f.Choice)+d)%n + n) % n)
			},
		},
		{
			label:   "custom",
			kind:    fieldText,
			get:     func() string { return f.Custom },
			set:     func(s string) { f.Custom = s },
			enabled: f.CustomEnabled,
		},
		{
			label: "levels",
			kind:  fieldText,
			get:   func() string { return f.LevelsDisplay() },
			set:   func(s string) { f.Levels = s },
		},
		{
			label:   "symmetric",
			kind:    fieldToggle,
			get:     func() string { return onOff(f.Symmetric) },
			toggle:  func() { f.Symmetric = !f.Symmetric },
			enabled: f.PctlControlsEnabled,
		},
		{
			label:  "inverted colormap",
			kind:   fieldToggle,
			get:    func() string { return onOff(f.Inverted) },
			toggle: func() { f.Inverted = !f.Inverted },
		},
		{
			label:   "min percentile",
			kind:    fieldToggle,
			get:     func() string { return onOff(f.MinPctlEnabled) },
			toggle:  func() { f.MinPctlEnabled = !f.MinPctlEnabled },
			enabled: f.PctlControlsEnabled,
		},
		{
			label:   "min value",
			kind:    fieldText,
			get:     func() string { return f.MinPctl },
			set:     func(s string) { f.MinPctl = s },
			enabled: func() bool { return f.PctlControlsEnabled() && f.MinPctlEnabled },
		},
		{
			label:   "max percentile",
			kind:    fieldToggle,
			get:     func() string { return onOff(f.MaxPctlEnabled) },
			toggle:  func() { f.MaxPctlEnabled = !f.MaxPctlEnabled },
			enabled: f.PctlControlsEnabled,
		},
		{
			label:   "max value",
			kind:    fieldText,
			get:     func() string { return f.MaxPctl },
			set:     func(s string) { f.MaxPctl = s },
			enabled: func() bool { return f.PctlControlsEnabled() && f.MaxPctlEnabled },
		},
	}
}

var gridChoices = []string{"auto", "at positions", "every step", "count"}

func gridFields(label string, g *dialog.GridForm) []field {
	return []field{
		{
			label:  label,
			kind:   fieldToggle,
			get:    func() string { return onOff(g.Enabled) },
			toggle: func() { g.Enabled = !g.Enabled },
		},
		{
			label: label + " placement",
			kind:  fieldChoice,
			get:   func() string { return gridChoices[g.Choice] },
			cycle: func(d int) {
				n := len(gridChoices)
				g.Choice = dialog.GridChoice(((int(g.Choice)+d)%n + n) % n)
			},
			enabled: func() bool { return g.Enabled },
		},
		{
			label:   label + " positions",
			kind:    fieldText,
			get:     func() string { return g.At },
			set:     func(s string) { g.At = s },
			enabled: g.AtEnabled,
		},
		{
			label:   label + " step",
			kind:    fieldText,
			get:     func() string { return g.Every },
			set:     func(s string) { g.Every = s },
			enabled: g.EveryEnabled,
		},
		{
			label:   label + " count",
			kind:    fieldText,
			get:     func() string { return g.Count },
			set:     func(s string) { g.Count = s },
			enabled: g.CountEnabled,
		},
	}
}

var lsmChoices = []string{fmtopts.LSM110m, fmtopts.LSM50m, fmtopts.LSM10m}

func basemapFields(f *dialog.BasemapForm) []field {
	fields := []field{
		{
			label: "central longitude",
			kind:  fieldText,
			get:   func() string { return f.Clon },
			set:   func(s string) { f.Clon = s },
		},
		{
			label: "central latitude",
			kind:  fieldText,
			get:   func() string { return f.Clat },
			set:   func(s string) { f.Clat = s },
		},
		{
			label:  "coastlines",
			kind:   fieldToggle,
			get:    func() string { return onOff(f.LSMEnabled) },
			toggle: func() { f.LSMEnabled = !f.LSMEnabled },
		},
		{
			label: "resolution",
			kind:  fieldChoice,
			get:   func() string { return f.LSMRes },
			cycle: func(d int) {
				idx := 0
				for i, r := range lsmChoices {
					if r == f.LSMRes {
						idx = i
						break
					}
				}
				n := len(lsmChoices)
				f.LSMRes = lsmChoices[((idx+d)%n+n)%n]
			},
			enabled: func() bool { return f.LSMEnabled },
		},
	}
	fields = append(fields, gridFields("meridionals", &f.Meridionals)...)
	fields = append(fields, gridFields("parallels", &f.Parallels)...)
	return fields
}

func (m model) dialogKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			m.fields[m.fieldCursor].set(m.editBuf)
			m.editing = false
			m.editBuf = ""
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			// single runes are input; anything longer is a chord or a
			// named special key
			if r := []rune(msg.String()); len(r) == 1 {
				m.editBuf += string(r)
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "esc", "q":
		m.mode = modePlot
		m.fieldErrs = nil
	case "up", "k":
		m.fieldCursor = m.prevField()
	case "down", "j":
		m.fieldCursor = m.nextField()
	case "left", "h":
		if f := m.fields[m.fieldCursor]; f.kind == fieldChoice && f.isEnabled() {
			f.cycle(-1)
		}
	case "right", "l":
		if f := m.fields[m.fieldCursor]; f.kind == fieldChoice && f.isEnabled() {
			f.cycle(1)
		}
	case " ":
		if f := m.fields[m.fieldCursor]; f.kind == fieldToggle && f.isEnabled() {
			f.toggle()
		}
	case "enter":
		f := m.fields[m.fieldCursor]
		if f.kind == fieldText && f.isEnabled() {
			m.editing = true
			m.editBuf = rawText(f, m)
		} else if f.kind == fieldToggle && f.isEnabled() {
			f.toggle()
		}
	case "s":
		return m.applyDialog()
	}
	return m, nil
}

// rawText strips the display mask off the levels field before
// editing.
func rawText(f field, m model) string {
	if m.bounds != nil && f.label == "levels" {
		return m.bounds.Levels
	}
	return f.get()
}

func (m model) nextField() int {
	for i := m.fieldCursor + 1; i < len(m.fields); i++ {
		if m.fields[i].isEnabled() {
			return i
		}
	}
	return m.fieldCursor
}

func (m model) prevField() int {
	for i := m.fieldCursor - 1; i >= 0; i-- {
		if m.fields[i].isEnabled() {
			return i
		}
	}
	return m.fieldCursor
}

// applyDialog validates the form and applies the encoded settings;
// validation errors keep the dialog open with the offending fields
// listed.
func (m model) applyDialog() (model, tea.Cmd) {
	switch {
	case m.bounds != nil:
		if errs := m.bounds.Validate(); len(errs) > 0 {
			m.fieldErrs = errs
			return m, nil
		}
		spec, cmap, err := m.bounds.Encode()
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		if err := m.panel.SetOptions(plot.WithBounds(spec), plot.WithCmap(cmap)); err != nil {
			m.status = err.Error()
			return m, nil
		}
	case m.basemap != nil:
		if errs := m.basemap.Validate(); len(errs) > 0 {
			m.fieldErrs = errs
			return m, nil
		}
		s, err := m.basemap.Encode()
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		err = m.panel.SetOptions(
			plot.WithClon(s.Clon), plot.WithClat(s.Clat),
			plot.WithLSM(s.LSM),
			plot.WithXGrid(s.XGrid), plot.WithYGrid(s.YGrid),
		)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
	}
	m.fieldErrs = nil
	m.mode = modePlot
	return m, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
