package config_test

import (
	"testing"

	"app/internal/config"

	"github.com/stretchr/testify/assert"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GO_ENV", "test")
}

func TestLoad_PostgresDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRES_HOST", "")
	t.Setenv("POSTGRES_PORT", "")
	t.Setenv("POSTGRES_USER", "")
	t.Setenv("POSTGRES_PASSWORD", "")
	t.Setenv("POSTGRES_DB", "")
	t.Setenv("POSTGRES_SSLMODE", "")

	cfg, err := config.Load()
	assert.NoError(t, err)

	assert.Equal(t, "localhost", cfg.PostgresHost)
	assert.Equal(t, "5432", cfg.PostgresPort)
	assert.Equal(t, "postgres", cfg.PostgresUser)
	assert.Equal(t, "app", cfg.PostgresDB)
	assert.Equal(t, "disable", cfg.PostgresSSLMode)
}

func TestLoad_DatabaseURL(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/app")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/app", cfg.DatabaseURL)
}

func TestLoad_RequiredVars(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}
