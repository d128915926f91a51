package cmd

import (
	"github.com/huangsam/motionlens/core"
	"github.com/huangsam/motionlens/internal/contract"
	"github.com/spf13/cobra"
)

// preprocessCmd derives motion intensity from raw accelerometer samples.
var preprocessCmd = &cobra.Command{
	Use:   "preprocess [accelerometer-csv]",
	Short: "Derive a motion_intensity column from raw accelerometer data.",
	Long: `Low-pass filter the Accel_X, Accel_Y and Accel_Z columns of an
accelerometer CSV with a zero-phase Butterworth filter, min-max scale each
axis and write the magnitude of the scaled vector as motion_intensity.

Rows with an empty field are dropped. The output is a dataset every other
command can load.

Examples:
  # Default 5 Hz cutoff at 50 Hz sampling
  motionlens preprocess raw/accel.csv --output-file data/motion.csv

  # Gentler filter
  motionlens preprocess raw/accel.csv --cutoff 3 --order 2 --output-file data/motion.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePreprocess(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot preprocess accelerometer data", err)
		}
	},
}
