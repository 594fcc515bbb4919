package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validConfig = `
server:
  host: "127.0.0.1"
  port: 8080
database:
  host: "localhost"
  port: 5432
  user: "fleetyard"
  password: "pw"
  database: "fleetyard_test"
  ssl_mode: "disable"
jwt:
  secret: "test-secret-at-least-32-characters!!"
log:
  level: "info"
  format: "text"
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.GetServerAddress())
	assert.Contains(t, cfg.GetDatabaseConnectionString(), "fleetyard_test")
	assert.Equal(t, 60, cfg.JWT.AccessTokenExpiry, "expiry defaults when unset")
	assert.NotEmpty(t, cfg.Scheduler.OverdueRentalSweep, "sweep schedule defaults when unset")
	assert.NotEmpty(t, cfg.Scheduler.FlaggedVehicleReport)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("Short JWT secret", func(t *testing.T) {
		bad := `
server: {host: "0.0.0.0", port: 8080}
database: {host: "localhost", port: 5432, user: "u", database: "d"}
jwt: {secret: "short"}
`
		_, err := Load(writeConfig(t, bad))
		assert.ErrorContains(t, err, "32 characters")
	})

	t.Run("Missing database host", func(t *testing.T) {
		bad := `
server: {host: "0.0.0.0", port: 8080}
database: {port: 5432, user: "u", database: "d"}
jwt: {secret: "test-secret-at-least-32-characters!!"}
`
		_, err := Load(writeConfig(t, bad))
		assert.ErrorContains(t, err, "database host")
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load("/nonexistent/config.yaml")
		assert.Error(t, err)
	})
}
