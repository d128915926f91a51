package algo

import "github.com/huangsam/motionlens/schema"

// DefaultHeatmapColumns is the number of cells per heatmap row.
const DefaultHeatmapColumns = 30

// HeatCell is one heatmap cell, keyed by its position in the flat projection.
type HeatCell struct {
	Index     int     `json:"index"`
	Column    int     `json:"column"`
	Row       int     `json:"row"`
	Intensity float64 `json:"intensity"`
	Level     float64 `json:"level"` // intensity scaled to [0,1] over the color domain
}

// HeatGrid lays records out left to right, top to bottom, columns cells per
// row, and scales each intensity into the color domain [lo, hi].
func HeatGrid(records []schema.Record, columns int, lo, hi float64) []HeatCell {
	if columns <= 0 {
		columns = DefaultHeatmapColumns
	}
	cells := make([]HeatCell, len(records))
	for i, r := range records {
		cells[i] = HeatCell{
			Index:     i,
			Column:    i % columns,
			Row:       i / columns,
			Intensity: r.Intensity,
			Level:     Level(r.Intensity, lo, hi),
		}
	}
	return cells
}

// Level maps v into [0,1] relative to [lo, hi]. A collapsed domain maps to 0.
func Level(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return clamp((v-lo)/(hi-lo), 0, 1)
}
