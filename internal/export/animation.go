package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ncpanel/internal/render"
)

// AnimationManifest describes an exported frame sequence. The frame
// rate is derived from the animation interval.
type AnimationManifest struct {
	Variable   string   `yaml:"variable"`
	Dimension  string   `yaml:"dimension"`
	IntervalMS int      `yaml:"interval_ms"`
	FPS        int      `yaml:"fps"`
	Frames     []string `yaml:"frames"`
}

// FPSForInterval converts a tick interval in milliseconds to the
// frame rate recorded in the manifest.
func FPSForInterval(intervalMS int) int {
	if intervalMS <= 0 {
		return 1
	}
	fps := int(math.Round(1000 / float64(intervalMS)))
	if fps < 1 {
		fps = 1
	}
	return fps
}

// AnimationWriter writes one SVG per animation step into a
// directory, numbered in order, and a manifest on Finish.
type AnimationWriter struct {
	dir   string
	stem  string
	scale float64
	meta  AnimationManifest
}

// NewAnimation prepares a frame sequence under dir. The stem names
// the files: stem_0000.svg, stem_0001.svg, ...
func NewAnimation(dir, stem, variable, dimension string, intervalMS int, scale float64) (*AnimationWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &AnimationWriter{
		dir:   dir,
		stem:  stem,
		scale: scale,
		meta: AnimationManifest{
			Variable:   variable,
			Dimension:  dimension,
			IntervalMS: intervalMS,
			FPS:        FPSForInterval(intervalMS),
		},
	}, nil
}

// Add writes the next frame of the sequence.
func (w *AnimationWriter) Add(frame *render.Frame) error {
	name := fmt.Sprintf("%s_%04d.svg", w.stem, len(w.meta.Frames))
	if err := WriteImage(filepath.Join(w.dir, name), frame, w.scale); err != nil {
		return err
	}
	w.meta.Frames = append(w.meta.Frames, name)
	return nil
}

// Count returns the number of frames written so far.
func (w *AnimationWriter) Count() int { return len(w.meta.Frames) }

// Finish writes the manifest next to the frames.
func (w *AnimationWriter) Finish() error {
	out, err := yaml.Marshal(&w.meta)
	if err != nil {
		return err
	}
	path := filepath.Join(w.dir, w.stem+".yaml")
	return os.WriteFile(path, out, 0644)
}
