package render

import (
	"fmt"
	"io"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/huangsam/motionlens/core/algo"
	"github.com/huangsam/motionlens/schema"
)

// writeHeatmap lays the flat records out as a grid of tiles colored by
// intensity over the dataset bounds.
func writeHeatmap(w io.Writer, frame schema.ViewFrame, size Size) (err error) {
	// go-gg panics on layouts it cannot scale; surface that as an error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to render heatmap: %v", r)
		}
	}()

	cells := algo.HeatGrid(frame.Flat, size.Columns, frame.Domain.IntensityMin, frame.Domain.IntensityMax)

	cols := make([]float64, len(cells))
	rows := make([]float64, len(cells))
	levels := make([]float64, len(cells))
	nrows := 1
	for i, c := range cells {
		cols[i] = float64(c.Column)
		// Row 0 sits at the top of the grid.
		rows[i] = -float64(c.Row)
		levels[i] = c.Level
		if c.Row+1 > nrows {
			nrows = c.Row + 1
		}
	}
	tab := new(table.Builder).
		Add("column", cols).
		Add("row", rows).
		Add("level", levels).
		Done()

	plot := gg.NewPlot(tab)
	plot.SetScale("fill", gg.NewLinearScaler().SetMin(0).SetMax(1))
	// Pin both axes to the full grid so a single row or column still has
	// a non-empty domain.
	plot.SetScale("x", gg.NewLinearScaler().SetMin(-0.5).SetMax(float64(size.Columns)-0.5))
	plot.SetScale("y", gg.NewLinearScaler().SetMin(-float64(nrows)+0.5).SetMax(0.5))
	plot.Add(gg.Title(fmt.Sprintf("Motion intensity: %s, participant %s", frame.State.Activity, frame.State.ParticipantLabel())))
	plot.Add(gg.LayerTiles{X: "column", Y: "row", Fill: "level"})
	if err := plot.WriteSVG(w, size.Width, size.Height); err != nil {
		return fmt.Errorf("failed to render heatmap: %w", err)
	}
	return nil
}
