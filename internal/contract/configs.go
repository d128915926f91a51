package contract

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/motionlens/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit    = 50
	MaxResultLimit        = 10000
	DefaultPrecision      = 2
	MaxPrecision          = 4
	DefaultChartWidth     = 800
	DefaultChartHeight    = 300
	DefaultHeatmapColumns = 30
	DefaultTimezone       = "Local"
)

// Initial participant selectors.
const (
	ParticipantFirst = "first" // default
	ParticipantNone  = "none"
)

// WindowSeparator splits the two instants of a --window value.
const WindowSeparator = ".."

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a session.
// This struct remains the "final, validated" config.
type Config struct {
	Source         string
	Location       *time.Location
	NegativePolicy schema.NegativePolicy

	// Initial filter values, checked against the domain once the dataset loads.
	Activity    string
	Participant string // first, none or a participant id
	HourRange   schema.HourRange
	TimeWindow  *schema.TimeWindow
	ClockMode   schema.ClockMode

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	SVGDir         string
	ChartWidth     int
	ChartHeight    int
	HeatmapColumns int

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	MetricsFile string
	ScriptPath  string

	Cutoff     float64
	SampleRate float64
	Order      int
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	SourceStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Timezone          string `mapstructure:"timezone"`
	NegativeIntensity string `mapstructure:"negative-intensity"`
	Activity          string `mapstructure:"activity"`
	Participant       string `mapstructure:"participant"`
	Hours             string `mapstructure:"hours"`
	Window            string `mapstructure:"window"`
	Clock             string `mapstructure:"clock"`
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Precision         int    `mapstructure:"precision"`
	Limit             int    `mapstructure:"limit"`
	Width             int    `mapstructure:"width"`
	Color             string `mapstructure:"color"`
	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	MetricsFile       string `mapstructure:"metrics-file"`

	// --- Fields from renderCmd.Flags() ---
	SVGDir         string `mapstructure:"svg-dir"`
	ChartWidth     int    `mapstructure:"chart-width"`
	ChartHeight    int    `mapstructure:"chart-height"`
	HeatmapColumns int    `mapstructure:"heatmap-columns"`

	// --- Fields from replayCmd.Flags() ---
	Script string `mapstructure:"script"`

	// --- Fields from preprocessCmd.Flags() ---
	Cutoff     float64 `mapstructure:"cutoff"`
	SampleRate float64 `mapstructure:"sample-rate"`
	Order      int     `mapstructure:"order"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.TimeWindow != nil {
		w := *c.TimeWindow
		clone.TimeWindow = &w
	}
	return &clone
}

// InitialState returns the configured filter state before domain resolution.
// The participant is left unset because it depends on the loaded domain.
func (c *Config) InitialState() schema.FilterState {
	state := schema.FilterState{
		Activity:  c.Activity,
		HourRange: c.HourRange,
		ClockMode: c.ClockMode,
	}
	if c.TimeWindow != nil {
		w := *c.TimeWindow
		state.TimeWindow = &w
	}
	return state
}

// ProcessAndValidate reads the raw input and populates the validated config.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions now read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processInitialFilters(cfg, input); err != nil {
		return err
	}
	if err := processRendering(cfg, input); err != nil {
		return err
	}
	if err := processPreprocessing(cfg, input); err != nil {
		return err
	}
	return resolveSource(cfg, input)
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// ValidateDatabaseConnectionString checks the connection string shape for a backend.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ValidateBackend parses and validates the cache backend settings on their own.
// The cache subcommands use it without requiring a data source.
func ValidateBackend(cfg *Config, backend, connStr string) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(backend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	cfg.CacheDBConnect = connStr
	return ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect)
}

func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.MetricsFile = input.MetricsFile
	cfg.ScriptPath = input.Script

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 3. Load Validation ---
	tz := input.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", input.Timezone, err)
	}
	cfg.Location = loc

	cfg.NegativePolicy = schema.NegativePolicy(strings.ToLower(input.NegativeIntensity))
	if cfg.NegativePolicy == "" {
		cfg.NegativePolicy = schema.RejectNegative
	}
	if _, ok := schema.ValidNegativePolicies[cfg.NegativePolicy]; !ok {
		return fmt.Errorf("invalid negative intensity policy '%s'. must be reject, clamp, pass", input.NegativeIntensity)
	}

	// --- 4. Backend Validation ---
	return ValidateBackend(cfg, input.CacheBackend, input.CacheDBConnect)
}

// processInitialFilters parses the initial filter flags. Values that depend on
// the dataset (activity names, participant ids, extent) are checked at load.
func processInitialFilters(cfg *Config, input *ConfigRawInput) error {
	cfg.Activity = strings.TrimSpace(input.Activity)
	if cfg.Activity == "" {
		cfg.Activity = schema.AllActivities
	}

	participant := strings.ToLower(strings.TrimSpace(input.Participant))
	switch participant {
	case "", ParticipantFirst:
		cfg.Participant = ParticipantFirst
	case ParticipantNone:
		cfg.Participant = ParticipantNone
	default:
		if _, err := strconv.Atoi(participant); err != nil {
			return fmt.Errorf("invalid participant '%s'. must be first, none or an id", input.Participant)
		}
		cfg.Participant = participant
	}

	hours := schema.FullDay()
	if strings.TrimSpace(input.Hours) != "" {
		parsed, err := ParseHourRange(input.Hours)
		if err != nil {
			return err
		}
		hours = parsed
	}
	cfg.HourRange = hours

	cfg.TimeWindow = nil
	if strings.TrimSpace(input.Window) != "" {
		w, err := ParseTimeWindow(input.Window)
		if err != nil {
			return err
		}
		cfg.TimeWindow = &w
	}

	cfg.ClockMode = schema.ClockMode(strings.ToLower(input.Clock))
	if cfg.ClockMode == "" {
		cfg.ClockMode = schema.Clock24h
	}
	if _, ok := schema.ValidClockModes[cfg.ClockMode]; !ok {
		return fmt.Errorf("invalid clock mode '%s'. must be 12h, 24h", input.Clock)
	}
	return nil
}

func processRendering(cfg *Config, input *ConfigRawInput) error {
	cfg.SVGDir = input.SVGDir
	if input.ChartWidth <= 0 || input.ChartHeight <= 0 {
		return fmt.Errorf("chart dimensions must be positive (received %dx%d)", input.ChartWidth, input.ChartHeight)
	}
	cfg.ChartWidth = input.ChartWidth
	cfg.ChartHeight = input.ChartHeight
	if input.HeatmapColumns <= 0 {
		return fmt.Errorf("heatmap columns must be greater than 0 (received %d)", input.HeatmapColumns)
	}
	cfg.HeatmapColumns = input.HeatmapColumns
	return nil
}

func processPreprocessing(cfg *Config, input *ConfigRawInput) error {
	if input.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive (received %g)", input.SampleRate)
	}
	if input.Cutoff <= 0 || input.Cutoff >= input.SampleRate/2 {
		return fmt.Errorf("cutoff must be between 0 and %g Hz (received %g)", input.SampleRate/2, input.Cutoff)
	}
	if input.Order < 1 || input.Order > 8 {
		return fmt.Errorf("filter order must be between 1 and 8 (received %d)", input.Order)
	}
	cfg.Cutoff = input.Cutoff
	cfg.SampleRate = input.SampleRate
	cfg.Order = input.Order
	return nil
}

// resolveSource keeps URLs as given and makes local paths absolute.
func resolveSource(cfg *Config, input *ConfigRawInput) error {
	src := strings.TrimSpace(input.SourceStr)
	if src == "" || IsRemoteSource(src) {
		cfg.Source = src
		return nil
	}
	abs, err := filepath.Abs(src)
	if err != nil {
		return fmt.Errorf("failed to resolve data source path: %w", err)
	}
	cfg.Source = abs
	return nil
}

// ParseHourRange parses "lo-hi" into an hour range with 0 <= lo <= hi <= 24.
func ParseHourRange(s string) (schema.HourRange, error) {
	lo, hi, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return schema.HourRange{}, fmt.Errorf("invalid hour range '%s'. expected lo-hi", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return schema.HourRange{}, fmt.Errorf("invalid hour range start '%s': %w", lo, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return schema.HourRange{}, fmt.Errorf("invalid hour range end '%s': %w", hi, err)
	}
	r := schema.HourRange{Start: start, End: end}
	if err := ValidateHourRange(r); err != nil {
		return schema.HourRange{}, err
	}
	return r, nil
}

// ValidateHourRange checks 0 <= start <= end <= 24.
func ValidateHourRange(r schema.HourRange) error {
	if r.Start < 0 || r.End > schema.HoursPerDay || r.Start > r.End {
		return fmt.Errorf("hour range %s must satisfy 0 <= lo <= hi <= %d", r, schema.HoursPerDay)
	}
	return nil
}

// ParseTimeWindow parses "start..end" where both ends are RFC3339 instants.
func ParseTimeWindow(s string) (schema.TimeWindow, error) {
	startStr, endStr, ok := strings.Cut(strings.TrimSpace(s), WindowSeparator)
	if !ok {
		return schema.TimeWindow{}, fmt.Errorf("invalid window '%s'. expected start%send", s, WindowSeparator)
	}
	start, err := time.Parse(DateTimeFormat, strings.TrimSpace(startStr))
	if err != nil {
		return schema.TimeWindow{}, fmt.Errorf("invalid window start: %w", err)
	}
	end, err := time.Parse(DateTimeFormat, strings.TrimSpace(endStr))
	if err != nil {
		return schema.TimeWindow{}, fmt.Errorf("invalid window end: %w", err)
	}
	if end.Before(start) {
		return schema.TimeWindow{}, fmt.Errorf("window end %s is before start %s", endStr, startStr)
	}
	return schema.TimeWindow{Start: start, End: end}, nil
}
