package cmd

import (
	"github.com/huangsam/motionlens/core"
	"github.com/huangsam/motionlens/internal/contract"
	"github.com/spf13/cobra"
)

// renderCmd draws every view once.
var renderCmd = &cobra.Command{
	Use:   "render [csv-path-or-url]",
	Short: "Render all four views as SVG files.",
	Long: `Load a dataset, apply the initial filters and write heatmap.svg, line.svg,
clock.svg and chord.svg into --svg-dir.

A session summary is printed afterwards. Views render in a fixed order:
heatmap, line, clock, chord.

Examples:
  # Render with the defaults
  motionlens render data/motion.csv --svg-dir out

  # Wider charts, running only, UTC hours
  motionlens render data/motion.csv --svg-dir out --chart-width 1200 --activity run --timezone UTC`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRender(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot render views", err)
		}
	},
}
