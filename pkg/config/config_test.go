package config_test

import (
	"testing"

	"leave-service/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "leave_service", cfg.DB.DBName)
	assert.Equal(t, 60, cfg.JWT.AccessExpirationMins)
	assert.Equal(t, 24, cfg.JWT.RefreshExpirationHrs)
	assert.True(t, cfg.Seed.Enabled)
	assert.Equal(t, "leave", cfg.Metrics.Prefix)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_NAME", "leave_test")
	t.Setenv("JWT_ACCESS_EXPIRATION_MINUTES", "15")
	t.Setenv("SEED_USERS", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "leave_test", cfg.DB.DBName)
	assert.Equal(t, 15, cfg.JWT.AccessExpirationMins)
	assert.False(t, cfg.Seed.Enabled)
}

func TestDSNFormat(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "svc")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "leave")
	t.Setenv("DB_SSL_MODE", "require")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "host=db.internal port=5433 user=svc password=pw dbname=leave sslmode=require", cfg.DB.GetDSN())
}
