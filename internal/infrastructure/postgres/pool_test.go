package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/pkg/config"
)

func TestPoolConfig_ValoresPorDefecto(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{
		Host: "localhost", Port: 5432, User: "postgres", Password: "p@ss:word", DBName: "ventas", SSLMode: "disable",
	})
	require.NoError(t, err)

	assert.EqualValues(t, defaultMaxConns, pc.MaxConns)
	assert.EqualValues(t, defaultMinConns, pc.MinConns)
	assert.Equal(t, time.Hour, pc.MaxConnLifetime)
	assert.Equal(t, "p@ss:word", pc.ConnConfig.Password)
	assert.Equal(t, "ventas", pc.ConnConfig.Database)
	assert.NotNil(t, pc.AfterConnect)
	assert.NotNil(t, pc.ConnConfig.DialFunc)
}

func TestPoolConfig_DatabaseURLYOpciones(t *testing.T) {
	pc, err := poolConfig(
		config.DBConfig{DatabaseURL: "postgres://u:p@db.internal:6543/otra?sslmode=disable", Host: "ignorado"},
		PoolOptions{MaxConns: 4},
	)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", pc.ConnConfig.Host)
	assert.EqualValues(t, 6543, pc.ConnConfig.Port)
	assert.EqualValues(t, 4, pc.MaxConns)
	assert.EqualValues(t, defaultMinConns, pc.MinConns)
}

func TestPoolConfig_MinNoSuperaMax(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@localhost:5432/db"}, PoolOptions{MaxConns: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 1, pc.MinConns)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@localhost:notaport/db"})
	assert.Error(t, err)
}
