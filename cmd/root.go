package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/motionlens/core/algo"
	"github.com/huangsam/motionlens/internal/contract"
	"github.com/huangsam/motionlens/internal/iocache"
	"github.com/huangsam/motionlens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
var input = &contract.ConfigRawInput{}

// configDefaults seeds viper so that config files and env vars without a
// matching flag still validate.
var configDefaults = map[string]any{
	"limit":              contract.DefaultResultLimit,
	"precision":          contract.DefaultPrecision,
	"output":             string(schema.TextOut),
	"timezone":           contract.DefaultTimezone,
	"negative-intensity": string(schema.RejectNegative),
	"activity":           schema.AllActivities,
	"participant":        contract.ParticipantFirst,
	"clock":              string(schema.Clock24h),
	"chart-width":        contract.DefaultChartWidth,
	"chart-height":       contract.DefaultChartHeight,
	"heatmap-columns":    contract.DefaultHeatmapColumns,
	"cutoff":             algo.DefaultCutoffHz,
	"sample-rate":        algo.DefaultSampleRate,
	"order":              algo.DefaultOrder,
	"cache-backend":      string(schema.NoneBackend),
	"cache-db-connect":   "",
	"color":              "yes",
}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "motionlens",
	Short:              "Explore motion-intensity recordings through linked views.",
	Long:               `Motionlens loads a motion-intensity CSV once and keeps a heatmap, a brushable line chart, a radial clock and a chord diagram in sync with one shared filter state.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setConfigSearch points viper at --config, or at .motionlens in the
// working directory and then $HOME.
func setConfigSearch() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".motionlens")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
}

// initConfig wires the config file, MOTIONLENS_* env vars and defaults.
func initConfig() {
	setConfigSearch()
	viper.SetEnvPrefix("MOTIONLENS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	for key, value := range configDefaults {
		viper.SetDefault(key, value)
	}
}

// loadConfigFile reads the config file if there is one.
func loadConfigFile() error {
	setConfigSearch()
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// sharedSetup resolves flags, env and config into cfg, then opens the cache.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	if err := contract.ProcessProfilingConfig(profile, viper.GetString("profile")); err != nil {
		return fmt.Errorf("failed to process profiling config: %w", err)
	}
	if err := startProfiling(); err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}

	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// Viper does not see positional arguments.
	input.SourceStr = viper.GetString("source")
	if len(args) == 1 {
		input.SourceStr = args[0]
	}

	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}
	color.NoColor = !cfg.UseColors

	if err := iocache.InitStores(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
