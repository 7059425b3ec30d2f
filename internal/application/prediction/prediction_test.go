package prediction_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/apptest"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/ports"
	"github.com/jhoicas/ventas-api/internal/application/prediction"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/internal/infrastructure/modelstore"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

type fakeSeries struct {
	mu     sync.Mutex
	points []repository.SalesPeriod
	err    error
	calls  int
	last   repository.SalesSeriesQuery
}

func (f *fakeSeries) SeriesByPeriod(_ context.Context, q repository.SalesSeriesQuery) ([]repository.SalesPeriod, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = q
	return f.points, f.err
}

// constantSeries n días consecutivos vendiendo qty unidades.
func constantSeries(n int, qty int64) []repository.SalesPeriod {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	out := make([]repository.SalesPeriod, n)
	for i := range out {
		out[i] = repository.SalesPeriod{Period: start.AddDate(0, 0, i), Quantity: qty, Total: float64(qty) * 1000}
	}
	return out
}

type fakeQueue struct{ got []ports.TrainRequest }

func (q *fakeQueue) EnqueueTrain(_ context.Context, req ports.TrainRequest) (string, error) {
	q.got = append(q.got, req)
	return "task-1", nil
}

type env struct {
	r      *apptest.Repos
	owner  *entity.User
	c      *entity.Company
	series *fakeSeries
	store  *modelstore.FileStore
	pred   *prediction.Predictor
}

func newEnv(t *testing.T, points []repository.SalesPeriod) *env {
	t.Helper()
	r := apptest.New()
	owner := r.AddUser("dueno@test.com")
	c := r.AddCompany(owner, "Tienda")
	store, err := modelstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	series := &fakeSeries{points: points}
	return &env{r: r, owner: owner, c: c, series: series, store: store, pred: prediction.NewPredictor(series, store, logger.Nop())}
}

func (e *env) useCase(queue ports.TaskQueue) *prediction.UseCase {
	return prediction.NewUseCase(e.pred, e.r.Products, e.r.Companies, usecase.NewTenantResolver(e.r.Companies), queue, logger.Nop())
}

func request(productID string) dto.PredictRequest {
	in := dto.PredictRequest{ProductID: productID}
	in.ApplyDefaults()
	return in
}

// ──────────────────────────────────────────────────────────────────────────────
// Predictor
// ──────────────────────────────────────────────────────────────────────────────

func TestModelKey_NombreEstable(t *testing.T) {
	assert.Equal(t, "company_c1_day", prediction.ModelKey{CompanyID: "c1", TimeUnit: "day"}.String())
	assert.Equal(t, "company_c1_product_p1_week", prediction.ModelKey{CompanyID: "c1", ProductID: "p1", TimeUnit: "week"}.String())
}

func TestPredictor_ReusaModeloVigente(t *testing.T) {
	e := newEnv(t, constantSeries(10, 5))
	key := prediction.ModelKey{CompanyID: e.c.ID, TimeUnit: "day"}

	_, err := e.pred.PredictFutureSales(context.Background(), key, 7, 90)
	require.NoError(t, err)
	_, err = e.pred.PredictFutureSales(context.Background(), key, 7, 90)
	require.NoError(t, err)
	assert.Equal(t, 1, e.series.calls)
	assert.FileExists(t, e.store.Path(key))
}

func TestPredictor_SerieConstante(t *testing.T) {
	e := newEnv(t, constantSeries(10, 5))
	key := prediction.ModelKey{CompanyID: e.c.ID, TimeUnit: "day"}

	got, err := e.pred.PredictFutureSales(context.Background(), key, 7, 90)
	require.NoError(t, err)
	require.Len(t, got, 7)
	for _, f := range got {
		assert.InDelta(t, 5, f.Quantity, 0.01)
	}
	assert.Equal(t, "day", e.series.last.TimeUnit)
}

func TestPredictor_DatosInsuficientesListaVacia(t *testing.T) {
	e := newEnv(t, constantSeries(2, 5))

	got, err := e.pred.PredictFutureSales(context.Background(), prediction.ModelKey{CompanyID: e.c.ID, TimeUnit: "day"}, 7, 90)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPredictor_ConcurrenciaEntrenaUnaVez(t *testing.T) {
	e := newEnv(t, constantSeries(10, 5))
	key := prediction.ModelKey{CompanyID: e.c.ID, TimeUnit: "day"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.pred.Model(context.Background(), key, 90)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	// singleflight comparte el entrenamiento en curso; luego el modelo ya está vigente en disco
	assert.LessOrEqual(t, e.series.calls, 8)
	assert.GreaterOrEqual(t, e.series.calls, 1)
}

// ctxSeries falla como lo haría la BD si el contexto del entrenamiento está cancelado.
// Con started/release permite dejar un entrenamiento en curso.
type ctxSeries struct {
	points  []repository.SalesPeriod
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (f *ctxSeries) SeriesByPeriod(ctx context.Context, _ repository.SalesSeriesQuery) ([]repository.SalesPeriod, error) {
	if f.started != nil {
		f.once.Do(func() { close(f.started) })
		<-f.release
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.points, nil
}

func TestPredictor_CancelacionDelPrimeroNoAfectaElEntrenamiento(t *testing.T) {
	e := newEnv(t, nil)
	pred := prediction.NewPredictor(&ctxSeries{points: constantSeries(10, 5)}, e.store, logger.Nop())
	key := prediction.ModelKey{CompanyID: e.c.ID, TimeUnit: "day"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m, err := pred.Model(ctx, key, 90)
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestPredictor_EsperandoTrasUnaCancelacionRecibenElModelo(t *testing.T) {
	e := newEnv(t, nil)
	series := &ctxSeries{points: constantSeries(10, 5), started: make(chan struct{}), release: make(chan struct{})}
	pred := prediction.NewPredictor(series, e.store, logger.Nop())
	key := prediction.ModelKey{CompanyID: e.c.ID, TimeUnit: "day"}
	ctx, cancel := context.WithCancel(context.Background())

	errs := make(chan error, 2)
	go func() {
		_, err := pred.Model(ctx, key, 90)
		errs <- err
	}()
	<-series.started
	go func() {
		_, err := pred.Model(context.Background(), key, 90)
		errs <- err
	}()
	cancel()
	close(series.release)

	for i := 0; i < 2; i++ {
		assert.NoError(t, <-errs)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// UseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestPredict_PorProductoIncluyeVentasEstimadas(t *testing.T) {
	e := newEnv(t, constantSeries(10, 5))
	p := e.r.AddProduct(e.c, "Café", "1000", 10)

	got, err := e.useCase(nil).Predict(context.Background(), e.owner.ID, request(p.ID))
	require.NoError(t, err)
	require.Len(t, got.Predictions, dto.DefaultDaysAhead)
	first := got.Predictions[0]
	assert.Equal(t, "Café", first.ProductName)
	require.NotNil(t, first.PredictedSales)
	assert.InDelta(t, first.PredictedQuantity*1000, *first.PredictedSales, 0.01)
	assert.Equal(t, p.ID, e.series.last.ProductID)
}

func TestPredict_ProductoDeOtraCompania(t *testing.T) {
	e := newEnv(t, constantSeries(10, 5))
	otherOwner := e.r.AddUser("otro@test.com")
	other := e.r.AddCompany(otherOwner, "Otra")
	p := e.r.AddProduct(other, "Té", "1000", 1)

	_, err := e.useCase(nil).Predict(context.Background(), e.owner.ID, request(p.ID))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEnqueueTrain_SinColaNoDisponible(t *testing.T) {
	e := newEnv(t, nil)

	_, err := e.useCase(nil).EnqueueTrain(context.Background(), e.owner.ID, request(""))
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestEnqueueTrain_EncolaConLaCompania(t *testing.T) {
	e := newEnv(t, nil)
	q := &fakeQueue{}

	got, err := e.useCase(q).EnqueueTrain(context.Background(), e.owner.ID, request(""))
	require.NoError(t, err)
	assert.Equal(t, "task-1", got.TaskID)
	require.Len(t, q.got, 1)
	assert.Equal(t, e.c.ID, q.got[0].CompanyID)
	assert.Equal(t, dto.DefaultDaysHistory, q.got[0].DaysHistory)
}

func TestTrain_DatosInsuficientesNoEsError(t *testing.T) {
	e := newEnv(t, constantSeries(1, 5))

	err := e.useCase(nil).Train(context.Background(), ports.TrainRequest{CompanyID: e.c.ID, TimeUnit: "day"})
	assert.NoError(t, err)
}

func TestTrain_UnidadInvalida(t *testing.T) {
	e := newEnv(t, nil)

	err := e.useCase(nil).Train(context.Background(), ports.TrainRequest{CompanyID: e.c.ID, TimeUnit: "year"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRetrainAll_ContinuaTrasUnFallo(t *testing.T) {
	e := newEnv(t, constantSeries(10, 5))
	p := e.r.AddProduct(e.c, "Café", "1000", 10)
	e.r.DB.Sales["s1"] = &entity.Sale{ID: "s1", CompanyID: e.c.ID, ProductID: p.ID, Quantity: 1}

	n, err := e.useCase(nil).RetrainAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	e.series.err = errors.New("db caída")
	n, err = e.useCase(nil).RetrainAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
