package panel

import (
	"fmt"

	"github.com/san-kum/ncpanel/internal/config"
	"github.com/san-kum/ncpanel/internal/dataset"
)

// State is the panel's animation state.
type State int

const (
	// Idle means no plot is open.
	Idle State = iota
	// Ready means a plot is open and not animating.
	Ready
	// AnimatingForward advances the animation dimension on every
	// tick, wrapping at the end.
	AnimatingForward
	// AnimatingBackward walks the animation dimension down,
	// wrapping at the start.
	AnimatingBackward
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Ready:
		return "ready"
	case AnimatingForward:
		return "animating"
	case AnimatingBackward:
		return "animating backward"
	}
	return "unknown"
}

// State returns the current animation state.
func (p *Panel) State() State { return p.state }

// Animating reports whether a tick loop should be running.
func (p *Panel) Animating() bool {
	return p.state == AnimatingForward || p.state == AnimatingBackward
}

// AnimDim returns the dimension the animation walks.
func (p *Panel) AnimDim() string { return p.animDim }

// pickAnimDim prefers the time dimension, then the first free one.
func (p *Panel) pickAnimDim() string {
	if p.plot == nil {
		return ""
	}
	free := p.plot.FreeDims()
	for _, d := range free {
		ax, err := p.ds.Axis(d)
		if err == nil && ax.Type == dataset.DimT {
			return d
		}
	}
	if len(free) > 0 {
		return free[0]
	}
	return ""
}

// StartAnimation begins animating over dim, or over the time
// dimension when dim is empty. Starting while already animating in
// the other direction just flips the direction.
func (p *Panel) StartAnimation(dim string, backward bool) error {
	if p.plot == nil {
		return ErrNoPlot
	}
	if dim == "" {
		dim = p.pickAnimDim()
	}
	if dim == "" {
		return fmt.Errorf("panel: %s has no dimension to animate", p.plot.Variable().Name)
	}
	if _, ok := p.plot.Index(dim); !ok {
		return fmt.Errorf("%w: %s", dataset.ErrNoDimension, dim)
	}
	p.animDim = dim
	if backward {
		p.state = AnimatingBackward
	} else {
		p.state = AnimatingForward
	}
	return nil
}

// StopAnimation halts the animation. It reports whether a final
// refresh is due: true exactly once per running animation, so a
// second stop does not redraw again.
func (p *Panel) StopAnimation() bool {
	return p.stopIfAnimating()
}

func (p *Panel) stopIfAnimating() bool {
	if !p.Animating() {
		return false
	}
	p.state = Ready
	return true
}

// Tick advances the animation by one step, wrapping at the ends.
// It reports whether the view changed; ticks arriving after the
// animation stopped are ignored.
func (p *Panel) Tick() bool {
	if !p.Animating() || p.plot == nil {
		return false
	}
	i, ok := p.plot.Index(p.animDim)
	if !ok {
		p.state = Ready
		return false
	}
	imax := p.plot.DimSize(p.animDim) - 1
	if imax < 1 {
		return false
	}

	if p.state == AnimatingForward {
		if i == imax {
			i = 0
		} else {
			i++
		}
	} else {
		if i == 0 {
			i = imax
		} else {
			i--
		}
	}
	if err := p.plot.SetIndex(p.animDim, i); err != nil {
		p.state = Ready
		return false
	}
	return true
}

// IntervalMS returns the tick interval.
func (p *Panel) IntervalMS() int { return p.intervalMS }

// SetInterval sets the tick interval, clamped to the valid range.
func (p *Panel) SetInterval(ms int) int {
	if ms < config.MinIntervalMS {
		ms = config.MinIntervalMS
	}
	if ms > config.MaxIntervalMS {
		ms = config.MaxIntervalMS
	}
	p.intervalMS = ms
	return ms
}

// IntervalLabel is the interval as shown next to the slider.
func (p *Panel) IntervalLabel() string {
	return fmt.Sprintf("%d ms", p.intervalMS)
}
