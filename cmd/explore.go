package cmd

import (
	"github.com/huangsam/motionlens/core"
	"github.com/huangsam/motionlens/internal/tui"
	"github.com/spf13/cobra"
)

// exploreCmd opens the interactive terminal explorer.
var exploreCmd = &cobra.Command{
	Use:   "explore [csv-path-or-url]",
	Short: "Explore the linked views interactively in the terminal.",
	Long: `Open a terminal UI over one session. Every key press is dispatched as a
view event and only the views depending on the changed filter refresh.

Keys:
  a / A   next / previous activity
  p       next participant
  h / l   move the hour range start
  H / L   move the hour range end
  c       toggle the 12h and 24h clock
  b / B   brush the left / right half of the line chart
  x       clear the brush
  q       quit

Examples:
  motionlens explore data/motion.csv --timezone UTC`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		session, err := core.OpenSession(core.WithSuppressHeader(rootCtx), cfg, nil, nil)
		if err != nil {
			return err
		}
		return tui.Run(rootCtx, session)
	},
}
