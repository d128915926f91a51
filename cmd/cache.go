package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/motionlens/internal/contract"
	"github.com/huangsam/motionlens/internal/iocache"
	"github.com/huangsam/motionlens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheBackendConfig reads and validates the cache backend settings.
func cacheBackendConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	backend, connStr, err := cacheBackendConfig()
	if err != nil {
		return err
	}

	// Initialize caching with the loaded config
	if err := iocache.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheMigrateSetupWrapper validates the backend without opening the store, so
// migrations can run against a fresh database.
func cacheMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	backend, connStr, err := cacheBackendConfig()
	if err != nil {
		return err
	}
	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by the view commands. This avoids loading a dataset
// and complex config processing for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the normalized dataset cache (improves load time)",
	Long: `Manage the cache of normalized datasets.

When a cache backend is configured, motionlens stores every normalized dataset
keyed by the content hash of its source, the timezone and the negative
intensity policy. Loading the same file again skips parsing entirely.

Supported backends: SQLite, MySQL, PostgreSQL, or None (default, disabled)

Subcommands:
  status  - Show cache statistics and connection info
  clear   - Remove all cached data
  migrate - Upgrade or roll back the cache schema
  export  - Write every cached dataset to a Parquet file

Examples:
  # Enable the SQLite cache for one run
  MOTIONLENS_CACHE_BACKEND=sqlite motionlens line data/motion.csv

  # Check cache status
  motionlens cache status --cache-backend sqlite`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached datasets",
	Long: `Delete all cached datasets from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear the SQLite cache
  motionlens cache clear --cache-backend sqlite

  # Clear MySQL cache (set connection string via env variable)
  MOTIONLENS_CACHE_BACKEND=mysql MOTIONLENS_CACHE_DB_CONNECT="..." motionlens cache clear`,
	PreRunE: cacheMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		dbFilePath := iocache.GetDBFilePath()
		if cfg.CacheBackend == schema.SQLiteBackend && cfg.CacheDBConnect != "" {
			dbFilePath = cfg.CacheDBConnect
		}
		if err := iocache.ClearCache(cfg.CacheBackend, dbFilePath, cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the dataset cache.

Displays:
- Backend type and connection status
- Total number of cached datasets
- Last and oldest cache entry timestamps
- Cache database size

Examples:
  # Check cache status
  motionlens cache status --cache-backend sqlite`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetDatasetStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(status)
	},
}

// cacheMigrateCmd runs database migrations for the dataset cache.
var cacheMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage schema versions of the dataset cache table.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  motionlens cache migrate --cache-backend sqlite

  # Rollback to the initial state
  motionlens cache migrate --cache-backend sqlite --target-version 0`,
	PreRunE: cacheMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		result, err := iocache.MigrateCache(cfg.CacheBackend, cfg.CacheDBConnect, targetVersion)
		if err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
		if !result.Changed {
			fmt.Printf("Cache schema already at version %d.\n", result.To)
			return
		}
		fmt.Printf("Cache schema migrated from version %d to %d.\n", result.From, result.To)
	},
}

// cacheExportCmd exports cached datasets to Parquet.
var cacheExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export cached datasets to Parquet for analytics tools",
	Long: `Export every cached dataset to one Parquet file, one row per record,
tagged with the cache key it was stored under.

Requires: --output-file parameter

Examples:
  # Export all cached records
  motionlens cache export --cache-backend sqlite --output-file records.parquet

  # Query with DuckDB
  duckdb -c "SELECT activity, avg(intensity) FROM 'records.parquet' GROUP BY 1"`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		summary, err := iocache.ExecuteCacheExport(iocache.Manager.GetDatasetStore(), cfg.OutputFile, os.Stderr)
		if err != nil {
			contract.LogFatal("Failed to export cache", err)
		}
		fmt.Printf("Exported %d records from %d datasets to %s", summary.Records, summary.Datasets, cfg.OutputFile)
		if summary.Skipped > 0 {
			fmt.Printf(" (%d entries skipped)", summary.Skipped)
		}
		fmt.Println()
	},
}
