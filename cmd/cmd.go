// Package cmd defines the command-line interface for motionlens.
package cmd

import (
	"github.com/huangsam/motionlens/core/algo"
	"github.com/huangsam/motionlens/internal/contract"
	"github.com/huangsam/motionlens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(domainCmd)
	rootCmd.AddCommand(heatmapCmd)
	rootCmd.AddCommand(lineCmd)
	rootCmd.AddCommand(clockCmd)
	rootCmd.AddCommand(chordCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(preprocessCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheMigrateCmd)
	cacheCmd.AddCommand(cacheExportCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("timezone", contract.DefaultTimezone, "IANA zone used to derive the hour of day (Local, UTC, Europe/Berlin)")
	rootCmd.PersistentFlags().String("negative-intensity", string(schema.RejectNegative), "Negative intensity policy: reject or clamp or pass")
	rootCmd.PersistentFlags().StringP("activity", "a", schema.AllActivities, "Initial activity filter, or all")
	rootCmd.PersistentFlags().StringP("participant", "p", contract.ParticipantFirst, "Initial participant: first or none or an id")
	rootCmd.PersistentFlags().String("hours", "", "Initial hour range as start-end with end exclusive (e.g. 6-18)")
	rootCmd.PersistentFlags().String("window", "", "Initial time window as start..end in RFC3339 or epoch seconds")
	rootCmd.PersistentFlags().String("clock", string(schema.Clock24h), "Clock display mode: 24h or 12h")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of rows to display")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.NoneBackend), "Dataset cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write Prometheus text metrics for the run to this file")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("svg-dir", "", "Directory to write one SVG per view into")
	rootCmd.PersistentFlags().Int("chart-width", contract.DefaultChartWidth, "Chart width in pixels; brush extents are measured against it")
	rootCmd.PersistentFlags().Int("chart-height", contract.DefaultChartHeight, "Chart height in pixels")
	rootCmd.PersistentFlags().Int("heatmap-columns", contract.DefaultHeatmapColumns, "Number of heatmap cells per row")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of replayCmd to Viper
	replayCmd.Flags().String("script", "", "Path to a YAML replay script")
	if err := viper.BindPFlags(replayCmd.Flags()); err != nil {
		contract.LogFatal("Error binding replay flags", err)
	}

	// Bind all flags of preprocessCmd to Viper
	preprocessCmd.Flags().Float64("cutoff", algo.DefaultCutoffHz, "Low-pass cutoff frequency in Hz")
	preprocessCmd.Flags().Float64("sample-rate", algo.DefaultSampleRate, "Accelerometer sample rate in Hz")
	preprocessCmd.Flags().Int("order", algo.DefaultOrder, "Butterworth filter order")
	if err := viper.BindPFlags(preprocessCmd.Flags()); err != nil {
		contract.LogFatal("Error binding preprocess flags", err)
	}

	// Bind all flags of cacheMigrateCmd to Viper
	cacheMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(cacheMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding cache migrate flags", err)
	}
}
