package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/ncpanel/internal/colormap"
	"github.com/san-kum/ncpanel/internal/dataset"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func (m model) plotWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	return w
}

func (m model) plotHeight() int {
	h := m.height - 10
	if h < 10 {
		h = 10
	}
	return h
}

func (m model) View() string {
	switch m.mode {
	case modeVars:
		return m.viewVars()
	case modePlot:
		return m.viewPlot()
	case modeMethod:
		return m.viewMethod()
	case modeBounds:
		return m.viewDialog("color settings")
	case modeBasemap:
		return m.viewDialog("basemap settings")
	case modeExport:
		return m.viewExport()
	}
	return ""
}

func (m model) viewVars() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("   " + cyan.Render(m.panel.Dataset().Name()) + "\n")
	b.WriteString(dimmer.Render("   "+strings.Repeat("─", 40)) + "\n\n")

	names := m.panel.Variables()
	if len(names) == 0 {
		b.WriteString(dim.Render("   no data variables") + "\n")
	}
	for i, name := range names {
		v, err := m.panel.Dataset().Variable(name)
		desc := ""
		if err == nil {
			desc = v.LongName
			if v.Units != "" {
				desc += " [" + v.Units + "]"
			}
		}
		if i == m.varCursor {
			b.WriteString("   " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("     " + dim.Render(fmt.Sprintf("%-12s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n   " + red.Render(m.status) + "\n")
	}
	b.WriteString("\n" + dim.Render("   ↑↓ select   enter plot   esc back   q quit") + "\n")
	return b.String()
}

func (m model) viewMethod() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("   " + white.Render(m.methodName) + dim.Render(" can be shown as") + "\n\n")
	for i, k := range m.methodKinds {
		if i == m.methodCursor {
			b.WriteString("   " + cyan.Render("▸ ") + white.Render(string(k)) + "\n")
		} else {
			b.WriteString("     " + dim.Render(string(k)) + "\n")
		}
	}
	b.WriteString("\n" + dim.Render("   ↑↓ select   enter plot   esc back") + "\n")
	return b.String()
}

func (m model) viewPlot() string {
	p := m.panel.Plot()
	if p == nil {
		return dim.Render("\n   no open plot\n")
	}

	var b strings.Builder
	b.WriteString(" " + cyan.Render(m.panel.Title()) + "\n")

	frame, err := m.panel.Render(m.plotWidth(), m.plotHeight())
	if err != nil {
		b.WriteString("\n   " + red.Render(err.Error()) + "\n")
		return b.String()
	}
	for _, line := range strings.Split(strings.TrimRight(frame.String(), "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}

	if len(frame.Bounds) >= 2 {
		b.WriteString("  " + m.colorbar(frame.Bounds, frame.Cmap, p.CLabel()) + "\n")
	}

	b.WriteString(m.dimTable())
	b.WriteString(m.statusLine())
	if m.status != "" {
		b.WriteString("  " + red.Render(m.status) + "\n")
	}
	b.WriteString(dim.Render("  ←→ step  a/A animate  space stop  ± interval  c cmap  p proj  g grid  b colors  B basemap  e export  v vars  q quit") + "\n")
	return b.String()
}

// colorbar renders the discrete levels with their edge values and
// the colorbar label when one is set.
func (m model) colorbar(bounds []float64, cmapName, label string) string {
	cm, err := colormap.Get(cmapName)
	if err != nil {
		return ""
	}
	n := len(bounds) - 1
	var b strings.Builder
	b.WriteString(dim.Render(fmt.Sprintf("%.4g ", bounds[0])))
	for i := 0; i < n; i++ {
		t := float64(i) / float64(max(n-1, 1))
		b.WriteString(lipgloss.NewStyle().Foreground(cm.Color(t)).Render("██"))
	}
	b.WriteString(dim.Render(fmt.Sprintf(" %.4g", bounds[n])))
	if label != "" {
		b.WriteString(dim.Render("  " + label))
	}
	b.WriteString(dimmer.Render("  " + cmapName))
	return b.String()
}

// dimTable lists the navigable dimensions with their first, current
// and last coordinate labels.
func (m model) dimTable() string {
	p := m.panel.Plot()
	ds := m.panel.Dataset()
	var b strings.Builder
	for i, d := range p.FreeDims() {
		ax, err := ds.Axis(d)
		if err != nil {
			continue
		}
		idx, _ := p.Index(d)
		typ := " "
		if ax.Type != dataset.DimOther {
			typ = string(rune(ax.Type))
		}
		first, last := "", ""
		if ax.Size() > 0 {
			first, last = ax.Labels[0], ax.Labels[ax.Size()-1]
		}
		cur := ""
		if idx < ax.Size() {
			cur = ax.Labels[idx]
		}

		row := fmt.Sprintf("%-8s %s  %10s  ◂ %10s ▸  %10s  [%d/%d] %s",
			d, typ, first, cur, last, idx+1, ax.Size(), ax.Units)
		marker := "    "
		if i == m.dimCursor {
			marker = "  " + cyan.Render("▸ ")
			if d == m.panel.AnimDim() && m.panel.Animating() {
				b.WriteString(marker + magenta.Render(row) + "\n")
				continue
			}
			b.WriteString(marker + white.Render(row) + "\n")
			continue
		}
		b.WriteString(marker + dim.Render(row) + "\n")
	}
	return b.String()
}

func (m model) statusLine() string {
	stateIcon := green.Render("●")
	stateText := m.panel.State().String()
	if m.panel.Animating() {
		stateIcon = yellow.Render("▶")
		stateText = fmt.Sprintf("%s over %s", stateText, m.panel.AnimDim())
	}
	opts := m.panel.Plot().Options()
	parts := []string{
		fmt.Sprintf("%s %s", stateIcon, stateText),
		"interval " + m.panel.IntervalLabel(),
	}
	if m.panel.Plot().Kind().Supports("cmap") {
		parts = append(parts, "cmap "+opts.Cmap)
	}
	if m.panel.Plot().Kind().Supports("projection") {
		parts = append(parts, "proj "+opts.Projection)
	}
	if opts.Datagrid {
		parts = append(parts, "datagrid")
	}
	return "  " + dim.Render(strings.Join(parts, "   ")) + "\n"
}

func (m model) viewDialog(title string) string {
	var b strings.Builder
	b.WriteString("\n   " + cyan.Render(title) + "\n")
	b.WriteString(dimmer.Render("   "+strings.Repeat("─", 40)) + "\n\n")

	for i, f := range m.fields {
		val := f.get()
		if m.editing && i == m.fieldCursor {
			val = m.editBuf + "▋"
		}
		switch {
		case !f.isEnabled():
			b.WriteString("     " + dimmer.Render(fmt.Sprintf("%-22s %s", f.label, val)) + "\n")
		case i == m.fieldCursor:
			b.WriteString("   " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-22s", f.label)) + magenta.Render(val) + "\n")
		default:
			b.WriteString("     " + dim.Render(fmt.Sprintf("%-22s", f.label)) + dim.Render(val) + "\n")
		}
	}

	for _, e := range m.fieldErrs {
		b.WriteString("\n   " + red.Render(e.Error()))
	}
	if len(m.fieldErrs) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("\n" + dim.Render("   ↑↓ field  ←→ choose  space toggle  enter edit  s apply  esc cancel") + "\n")
	return b.String()
}

func (m model) viewExport() string {
	var b strings.Builder
	b.WriteString("\n   " + cyan.Render("export") + "\n\n")
	for i, c := range exportChoices {
		if i == m.exportCursor {
			b.WriteString("   " + cyan.Render("▸ ") + white.Render(c) + "\n")
		} else {
			b.WriteString("     " + dim.Render(c) + "\n")
		}
	}
	b.WriteString("\n" + dim.Render("   ↑↓ select   enter export   esc back") + "\n")
	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
