package render

import (
	"github.com/huangsam/motionlens/schema"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// palette is a ten-color categorical scheme.
var palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
	drawing.ColorFromHex("bcbd22"),
	drawing.ColorFromHex("17becf"),
}

// activityColor returns the color of activity by its domain position, so
// every view paints an activity the same way.
func activityColor(domain schema.Domain, activity string) drawing.Color {
	for i, a := range domain.Activities {
		if a == activity {
			return palette[i%len(palette)]
		}
	}
	return palette[len(palette)-1]
}
