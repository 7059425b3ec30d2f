package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type report struct {
	SalesCount int `json:"sales_count"`
}

func newTestCache(t *testing.T) (*ReportCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewReportCache(client, ""), mr
}

func TestNewReportCache_PrefijoPorDefecto(t *testing.T) {
	c := NewReportCache(redis.NewClient(&redis.Options{Addr: "localhost:0"}), "")
	assert.Equal(t, "ventas:reports:c1:version", c.versionKey("c1"))

	c = NewReportCache(nil, "staging")
	assert.Equal(t, "staging:reports:c1:version", c.versionKey("c1"))
}

func TestReportCache_GuardarLeerEInvalidar(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	var got report
	found, v, err := c.Get(ctx, "c1", "statistics", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, v)

	require.NoError(t, c.Set(ctx, "c1", "statistics", v, report{SalesCount: 3}, time.Minute))
	assert.True(t, mr.Exists("ventas:reports:c1:v0:statistics"))
	assert.Equal(t, time.Minute, mr.TTL("ventas:reports:c1:v0:statistics"))

	found, _, err = c.Get(ctx, "c1", "statistics", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, got.SalesCount)

	// otra compañía no se ve afectada
	require.NoError(t, c.Set(ctx, "c2", "statistics", 0, report{SalesCount: 9}, time.Minute))
	require.NoError(t, c.Invalidate(ctx, "c1"))

	found, v, err = c.Get(ctx, "c1", "statistics", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.EqualValues(t, 1, v)

	found, _, err = c.Get(ctx, "c2", "statistics", &got)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestReportCache_SetConVersionVencidaNoQuedaVigente(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	var got report
	_, v, err := c.Get(ctx, "c1", "statistics", &got)
	require.NoError(t, err)

	// una venta invalida mientras el reporte se calcula con datos anteriores
	require.NoError(t, c.Invalidate(ctx, "c1"))
	require.NoError(t, c.Set(ctx, "c1", "statistics", v, report{SalesCount: 1}, time.Minute))

	found, v2, err := c.Get(ctx, "c1", "statistics", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.EqualValues(t, 1, v2)
}

func TestReportCache_EntradaIlegibleCuentaComoAusente(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("ventas:reports:c1:v0:statistics", "{no es json"))

	var got report
	found, v, err := c.Get(context.Background(), "c1", "statistics", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, v)
}

func TestReportCache_RedisCaido(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	var got report
	_, _, err := c.Get(context.Background(), "c1", "statistics", &got)
	assert.Error(t, err)
}
