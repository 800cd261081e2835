package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("APP_ENV")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("WFS_BASE_URL")
	os.Unsetenv("VOYAGE_HOME_PORT")
	os.Unsetenv("VOYAGE_MIN_DWELL_HOURS")

	cfg, err := Load(".")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "https://data.aad.gov.au/geoserver/underway/ows", cfg.Feed.BaseURL)
	assert.Equal(t, "underway:nuyina_underway", cfg.Feed.TypeName)
	assert.Equal(t, 60, cfg.Feed.TimeoutSeconds)
	assert.Equal(t, 0, cfg.Feed.PageSize)
	assert.Equal(t, 360, cfg.Feed.RefreshIntervalMinutes)
	assert.Equal(t, "./data/underway.db", cfg.Snapshot.DBPath)
	assert.Equal(t, "2020-01-01", cfg.Snapshot.Cutoff)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Cache.RedisURL)
	assert.Equal(t, 15, cfg.Cache.DraftTTLMinutes)
	assert.Equal(t, "Hobart", cfg.Voyage.HomePort)
	assert.Equal(t, 2.0, cfg.Voyage.MinDwellHours)
	assert.Equal(t, "", cfg.Voyage.PortsFile)
}

// TestLoad_EnvVars verifies that environment variables override defaults.
func TestLoad_EnvVars(t *testing.T) {
	os.Setenv("APP_ENV", "production")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("WFS_BASE_URL", "https://geoserver.test/ows")
	os.Setenv("WFS_PAGE_SIZE", "5000")
	os.Setenv("VOYAGE_HOME_PORT", "Burnie")
	os.Setenv("VOYAGE_MIN_DWELL_HOURS", "3.5")
	defer func() {
		os.Unsetenv("APP_ENV")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("WFS_BASE_URL")
		os.Unsetenv("WFS_PAGE_SIZE")
		os.Unsetenv("VOYAGE_HOME_PORT")
		os.Unsetenv("VOYAGE_MIN_DWELL_HOURS")
	}()

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "https://geoserver.test/ows", cfg.Feed.BaseURL)
	assert.Equal(t, 5000, cfg.Feed.PageSize)
	assert.Equal(t, "Burnie", cfg.Voyage.HomePort)
	assert.Equal(t, 3.5, cfg.Voyage.MinDwellHours)
}

// TestLoad_File verifies that values are loaded from a .env file.
func TestLoad_File(t *testing.T) {
	content := []byte(`
APP_ENV=staging
LOG_LEVEL=warn
SERVER_PORT=7070
SNAPSHOT_DB_PATH=/tmp/staging.db
OBSERVATION_CUTOFF=2021-06-01
`)
	err := os.WriteFile(".env", content, 0644)
	require.NoError(t, err)
	defer os.Remove(".env")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7070, cfg.ServerPort)
	assert.Equal(t, "/tmp/staging.db", cfg.Snapshot.DBPath)
	assert.Equal(t, "2021-06-01", cfg.Snapshot.Cutoff)
}

// TestValidateRequired verifies that fields tagged required reject zero values.
func TestValidateRequired(t *testing.T) {
	type strict struct {
		Endpoint string `mapstructure:"TEST_ENDPOINT" required:"true"`
	}

	err := validateRequired(&strict{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required configuration: TEST_ENDPOINT")

	err = validateRequired(&strict{Endpoint: "https://set.example"})
	assert.NoError(t, err)
}
