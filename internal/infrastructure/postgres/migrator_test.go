package postgres

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/migrations"
)

func TestLoadMigrations_OrdenaPorVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"0002_ventas.up.sql":   {Data: []byte("CREATE TABLE b ();")},
		"0002_ventas.down.sql": {Data: []byte("DROP TABLE b;")},
		"0001_init.up.sql":     {Data: []byte("CREATE TABLE a ();")},
		"0001_init.down.sql":   {Data: []byte("DROP TABLE a;")},
		"README.md":            {Data: []byte("ignorado")},
	}

	got, err := LoadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Version)
	assert.Equal(t, "init", got[0].Description)
	assert.Equal(t, "DROP TABLE a;", got[0].Down)
	assert.Equal(t, 2, got[1].Version)
}

func TestLoadMigrations_SinDownEsError(t *testing.T) {
	fsys := fstest.MapFS{
		"0001_init.up.sql": {Data: []byte("CREATE TABLE a ();")},
	}
	_, err := LoadMigrations(fsys)
	assert.Error(t, err)
}

func TestLoadMigrations_ArchivosEmbebidos(t *testing.T) {
	got, err := LoadMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, 1, got[0].Version)
	assert.Contains(t, got[0].Up, "CREATE TABLE IF NOT EXISTS sales")
}
