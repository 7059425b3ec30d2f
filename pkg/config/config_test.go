package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.JWT.AccessMinutes)
	assert.Equal(t, 24, cfg.JWT.RefreshHours)
	assert.Equal(t, 10, cfg.App.PageSize)
	assert.Equal(t, "http://localhost:3000", cfg.HTTP.CORSOrigins)
	assert.Equal(t, "models/sales_prediction", cfg.Prediction.ModelsDir)
	assert.Equal(t, 5*time.Minute, cfg.Redis.ReportCacheTTL)
}

func TestLoad_EnvSobrescribe(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("JWT_ACCESS_MINUTES", "15")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, 15, cfg.JWT.AccessMinutes)
	assert.True(t, cfg.Redis.Enabled())
	assert.True(t, cfg.MinIO.UseSSL)
	assert.False(t, cfg.MinIO.Enabled())
}

func TestLoad_ProduccionSinSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "ventas", SSLMode: "disable"}
	dsn := c.DSN()
	assert.Contains(t, dsn, "p%40ss%3Aw%2Frd")
	assert.Equal(t, dsn, c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
