package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Intensity label constants.
const (
	VeryHighValue = "Very high" // Very high intensity
	HighValue     = "High"      // High intensity
	ModerateValue = "Moderate"  // Moderate intensity
	LowValue      = "Low"       // Low intensity
)

// Color variables for console output.
var (
	VeryHighColor = color.New(color.FgRed, color.Bold)     // strongest movement
	HighColor     = color.New(color.FgMagenta, color.Bold) // vigorous movement
	ModerateColor = color.New(color.FgYellow)              // moderate movement, not bold
	LowColor      = color.New(color.FgCyan)                // resting or light movement
)

// GetPlainLabel returns a plain text label for a level in [0,1], where the
// level is an intensity scaled over the dataset bounds. This is the core
// logic used for CSV, JSON, and table printing.
func GetPlainLabel(level float64) string {
	switch {
	case level >= 0.75:
		return VeryHighValue
	case level >= 0.5:
		return HighValue
	case level >= 0.25:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(level float64) string {
	text := GetPlainLabel(level)

	switch text {
	case VeryHighValue:
		return VeryHighColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// IsRemoteSource reports whether src is an http(s) URL.
func IsRemoteSource(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LogInfo logs progress to stderr, keeping stdout for results.
func LogInfo(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".motionlens_cache.db"
	}
	return filepath.Join(homeDir, ".motionlens_cache.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
