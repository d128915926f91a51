// Package render draws view frames as SVG documents.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/huangsam/motionlens/internal/contract"
	"github.com/huangsam/motionlens/schema"
)

// Size holds the canvas dimensions and heatmap layout of a frame.
type Size struct {
	Width   int
	Height  int
	Columns int
}

// SVGRenderer writes each view to <Dir>/<view>.svg, replacing the previous drawing.
type SVGRenderer struct {
	Dir  string
	Size Size

	written []string
}

var _ contract.Renderer = &SVGRenderer{} // Compile-time check

// NewSVGRenderer creates dir if needed and returns a renderer writing into it.
func NewSVGRenderer(dir string, width, height, columns int) (*SVGRenderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create svg directory: %w", err)
	}
	return &SVGRenderer{Dir: dir, Size: Size{Width: width, Height: height, Columns: columns}}, nil
}

// Render implements the Renderer interface.
func (r *SVGRenderer) Render(frame schema.ViewFrame) error {
	path := filepath.Join(r.Dir, string(frame.View)+".svg")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteFrame(file, frame, r.Size); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	if !slices.Contains(r.written, path) {
		r.written = append(r.written, path)
	}
	return nil
}

// Written lists the files rendered so far in first-written order.
func (r *SVGRenderer) Written() []string {
	return slices.Clone(r.written)
}

// Nop discards every frame.
type Nop struct{}

var _ contract.Renderer = Nop{} // Compile-time check

// Render implements the Renderer interface.
func (Nop) Render(schema.ViewFrame) error { return nil }

// WriteFrame draws frame to w. Frames with nothing to show get a labelled
// blank canvas.
func WriteFrame(w io.Writer, frame schema.ViewFrame, size Size) error {
	size = size.withDefaults()
	if frame.Empty() {
		return writeEmpty(w, frame, size)
	}
	switch frame.View {
	case schema.HeatmapView:
		return writeHeatmap(w, frame, size)
	case schema.LineView:
		return writeLine(w, frame, size)
	case schema.ClockView:
		return writeClock(w, frame, size)
	case schema.ChordView:
		return writeChord(w, frame, size)
	}
	return fmt.Errorf("unknown view %q", frame.View)
}

func (s Size) withDefaults() Size {
	if s.Width <= 0 {
		s.Width = contract.DefaultChartWidth
	}
	if s.Height <= 0 {
		s.Height = contract.DefaultChartHeight
	}
	if s.Columns <= 0 {
		s.Columns = contract.DefaultHeatmapColumns
	}
	return s
}
