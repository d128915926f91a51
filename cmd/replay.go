package cmd

import (
	"github.com/huangsam/motionlens/core"
	"github.com/huangsam/motionlens/internal/contract"
	"github.com/spf13/cobra"
)

// replayCmd dispatches a recorded interaction script against a dataset.
var replayCmd = &cobra.Command{
	Use:   "replay [csv-path-or-url]",
	Short: "Replay a scripted sequence of view interactions.",
	Long: `Dispatch every event of a YAML script through the session, one at a time,
and print the filter state and refreshed views after each.

Rejected events are reported in the error column and do not stop the replay.
With --svg-dir, every refreshed view is re-rendered as it would be on screen.

Script format:
  events:
    - kind: activity
      activity: run
    - kind: hours
      hour_start: 6
      hour_end: 18
    - kind: brush
      brush: {x0: 100, x1: 400}
    - kind: clock
      is_24h: false

Examples:
  # Print the state after each event
  motionlens replay data/motion.csv --script session.yaml

  # Keep a JSON log of the run
  motionlens replay data/motion.csv --script session.yaml --output json --output-file replay.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReplay(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot replay script", err)
		}
	},
}
