package cmd

import (
	"github.com/huangsam/motionlens/core"
	"github.com/huangsam/motionlens/internal/contract"
	"github.com/huangsam/motionlens/schema"
	"github.com/spf13/cobra"
)

// domainCmd lists what the filters can select.
var domainCmd = &cobra.Command{
	Use:   "domain [csv-path-or-url]",
	Short: "Show the activities and participants of a dataset.",
	Long: `Load a motion-intensity CSV and print its domain.

The domain is what the activity and participant selectors offer:
- Activities in first-seen order
- Participants in ascending order
- Record count, first and last reading, intensity bounds

Examples:
  # Inspect a local file
  motionlens domain data/motion.csv

  # Same, as JSON
  motionlens domain data/motion.csv --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDomain(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot load domain", err)
		}
	},
}

// newViewCmd builds the command that prints the projection behind one view.
func newViewCmd(view schema.ViewKind, short, long string) *cobra.Command {
	return &cobra.Command{
		Use:     string(view) + " [csv-path-or-url]",
		Short:   short,
		Long:    long,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: sharedSetupWrapper,
		Run: func(_ *cobra.Command, _ []string) {
			if err := core.ExecuteView(view)(rootCtx, cfg); err != nil {
				contract.LogFatal("Cannot project "+string(view)+" view", err)
			}
		},
	}
}

var heatmapCmd = newViewCmd(schema.HeatmapView,
	"Show the records the heatmap colors.",
	`Print every record matching the activity, participant and time window filters.

The heatmap ignores the hour range and the clock mode.

Examples:
  # Heatmap cells for participant 3 running
  motionlens heatmap data/motion.csv --activity run --participant 3`)

var lineCmd = newViewCmd(schema.LineView,
	"Show the points of the brushable line chart.",
	`Print the records behind the line chart in time order.

The line chart honors the activity and participant filters and an optional
time window. Use --window to preview a brush.

Examples:
  # Readings in a one hour window
  motionlens line data/motion.csv --window 2024-05-06T08:00:00Z..2024-05-06T09:00:00Z`)

var clockCmd = newViewCmd(schema.ClockView,
	"Show mean intensity per hour and activity.",
	`Print the hourly aggregation drawn by the radial clock.

Every record inside the hour range is bucketed by hour and activity. The
normalized column scales each mean against the largest one.

Examples:
  # Working hours on a 12 hour face
  motionlens clock data/motion.csv --hours 9-17 --clock 12h`)

var chordCmd = newViewCmd(schema.ChordView,
	"Show per-activity intensity totals on the chord diagonal.",
	`Print the square activity matrix behind the chord diagram.

Each record adds its intensity to the diagonal cell of its activity, so
off-diagonal cells stay zero. Only the activity filter applies.

Examples:
  # Export the matrix for a spreadsheet
  motionlens chord data/motion.csv --output csv --output-file chord.csv`)
