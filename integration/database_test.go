//go:build database

package integration

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// exerciseCache runs the cache lifecycle against the backend in the environment.
func exerciseCache(t *testing.T) {
	_, err := runMotionlens(t, "cache", "clear")
	require.NoError(t, err)

	_, err = runMotionlens(t, "cache", "migrate")
	require.NoError(t, err)

	// First load fills the cache, second one reads from it.
	first, err := runMotionlens(t, "line", smallDataset, "--timezone", "UTC", "--participant", "none", "--output", "csv")
	require.NoError(t, err)
	second, err := runMotionlens(t, "line", smallDataset, "--timezone", "UTC", "--participant", "none", "--output", "csv")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	status, err := runMotionlens(t, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, status, "Entries")

	out := filepath.Join(t.TempDir(), "records.parquet")
	_, err = runMotionlens(t, "cache", "export", "--output-file", out)
	require.NoError(t, err)
	assert.FileExists(t, out)
}

// TestMotionlensWithMySQL tests the motionlens CLI with a MySQL backend.
func TestMotionlensWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "motionlens",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/motionlens?parseTime=true&multiStatements=true", host, port.Port())

	t.Setenv("MOTIONLENS_CACHE_BACKEND", "mysql")
	t.Setenv("MOTIONLENS_CACHE_DB_CONNECT", connStr)

	exerciseCache(t)
}

// TestMotionlensWithPostgres tests the motionlens CLI with a PostgreSQL backend.
func TestMotionlensWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	t.Setenv("MOTIONLENS_CACHE_BACKEND", "postgresql")
	t.Setenv("MOTIONLENS_CACHE_DB_CONNECT", connStr)

	exerciseCache(t)
}

// TestMotionlensWithSQLite runs the same lifecycle against a throwaway SQLite file.
func TestMotionlensWithSQLite(t *testing.T) {
	t.Setenv("MOTIONLENS_CACHE_BACKEND", "sqlite")
	t.Setenv("MOTIONLENS_CACHE_DB_CONNECT", filepath.Join(t.TempDir(), "cache.db"))

	exerciseCache(t)
}
