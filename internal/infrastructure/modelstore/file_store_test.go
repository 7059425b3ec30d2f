package modelstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/prediction"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/forecast"
)

func trainedModel(t *testing.T) *forecast.Model {
	t.Helper()
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	points := make([]forecast.Point, 0, 10)
	for i := 0; i < 10; i++ {
		points = append(points, forecast.Point{Period: start.AddDate(0, 0, i), Quantity: float64(i % 4)})
	}
	m, err := forecast.Train(points, forecast.UnitDay, start.AddDate(0, 0, 10))
	require.NoError(t, err)
	return m
}

func TestFileStore_GuardarYLeer(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	key := prediction.ModelKey{CompanyID: "c1", TimeUnit: "day"}
	m := trainedModel(t)

	require.NoError(t, s.Save(context.Background(), key, m))
	got, err := s.Load(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, m.Points, got.Points)
	assert.True(t, m.LastTrained.Equal(*got.LastTrained))
	assert.InDeltaSlice(t, m.Regression.Coef, got.Regression.Coef, 1e-9)
}

func TestFileStore_InexistenteEsObsoleto(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Load(context.Background(), prediction.ModelKey{CompanyID: "x", TimeUnit: "day"})
	assert.ErrorIs(t, err, domain.ErrModelStale)
}

func TestFileStore_CorruptoEsObsoleto(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	key := prediction.ModelKey{CompanyID: "c1", TimeUnit: "week"}
	require.NoError(t, os.WriteFile(s.Path(key), []byte(`{"points": 3}`), 0o644))

	_, err = s.Load(context.Background(), key)
	assert.ErrorIs(t, err, domain.ErrModelStale)

	require.NoError(t, os.WriteFile(s.Path(key), []byte(`no es json`), 0o644))
	_, err = s.Load(context.Background(), key)
	assert.ErrorIs(t, err, domain.ErrModelStale)
}
