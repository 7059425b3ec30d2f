package inventory_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/apptest"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

type countingCache struct {
	invalidated []string
	err         error
}

func (c *countingCache) Invalidate(_ context.Context, companyID string) error {
	c.invalidated = append(c.invalidated, companyID)
	return c.err
}

type fixture struct {
	r       *apptest.Repos
	owner   *entity.User
	company *entity.Company
	cache   *countingCache
	sales   *inventory.SaleUseCase
	buys    *inventory.PurchaseUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	r := apptest.New()
	owner := r.AddUser("dueno@test.com")
	c := r.AddCompany(owner, "Tienda")
	cache := &countingCache{}
	tenant := usecase.NewTenantResolver(r.Companies)
	return &fixture{
		r:       r,
		owner:   owner,
		company: c,
		cache:   cache,
		sales:   inventory.NewSaleUseCase(r.Tx, r.Sales, tenant, cache, logger.Nop()),
		buys:    inventory.NewPurchaseUseCase(r.Tx, r.Purchases, tenant, cache, logger.Nop()),
	}
}

func saleReq(productID string, qty int, price string) dto.SaleRequest {
	return dto.SaleRequest{ProductID: productID, Customer: "Cliente", Quantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

func purchaseReq(productID string, qty int, cost string) dto.PurchaseRequest {
	return dto.PurchaseRequest{ProductID: productID, Supplier: "Proveedor", Quantity: qty, UnitCost: decimal.RequireFromString(cost)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleCreate_DescuentaStockYCalculaTotal(t *testing.T) {
	f := newFixture(t)
	p := f.r.AddProduct(f.company, "Café", "12000", 10)

	got, err := f.sales.Create(context.Background(), f.owner.ID, saleReq(p.ID, 3, "12000.50"))
	require.NoError(t, err)
	assert.Equal(t, 7, f.r.DB.Stock(p.ID))
	assert.Equal(t, "36001.50", got.TotalPrice.StringFixed(2))
	assert.Equal(t, "Café", got.ProductName)
	assert.Equal(t, f.owner.ID, got.SoldBy)
	assert.Equal(t, []string{f.company.ID}, f.cache.invalidated)
}

func TestSaleCreate_StockInsuficienteNoGuardaNada(t *testing.T) {
	f := newFixture(t)
	p := f.r.AddProduct(f.company, "Café", "12000", 2)

	_, err := f.sales.Create(context.Background(), f.owner.ID, saleReq(p.ID, 3, "12000"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, f.r.DB.Stock(p.ID))
	assert.Empty(t, f.r.DB.Sales)
	assert.Empty(t, f.cache.invalidated)
}

func TestSaleCreate_VenderTodoElStock(t *testing.T) {
	f := newFixture(t)
	p := f.r.AddProduct(f.company, "Café", "12000", 3)

	_, err := f.sales.Create(context.Background(), f.owner.ID, saleReq(p.ID, 3, "12000"))
	require.NoError(t, err)
	assert.Zero(t, f.r.DB.Stock(p.ID))
}

func TestSaleCreate_ProductoDeOtraCompania(t *testing.T) {
	f := newFixture(t)
	otherOwner := f.r.AddUser("otro@test.com")
	other := f.r.AddCompany(otherOwner, "Otra")
	p := f.r.AddProduct(other, "Té", "8000", 10)

	_, err := f.sales.Create(context.Background(), f.owner.ID, saleReq(p.ID, 1, "8000"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 10, f.r.DB.Stock(p.ID))
}

func TestSaleUpdate_RebalanceaMismoProducto(t *testing.T) {
	f := newFixture(t)
	p := f.r.AddProduct(f.company, "Café", "12000", 10)
	s, err := f.sales.Create(context.Background(), f.owner.ID, saleReq(p.ID, 3, "12000"))
	require.NoError(t, err)

	got, err := f.sales.Update(context.Background(), f.owner.ID, s.ID, saleReq(p.ID, 5, "12000"))
	require.NoError(t, err)
	assert.Equal(t, 5, f.r.DB.Stock(p.ID))
	assert.Equal(t, "60000.00", got.TotalPrice.StringFixed(2))

	_, err = f.sales.Update(context.Background(), f.owner.ID, s.ID, saleReq(p.ID, 11, "12000"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, f.r.DB.Stock(p.ID))
}

func TestSaleUpdate_CambioDeProducto(t *testing.T) {
	f := newFixture(t)
	a := f.r.AddProduct(f.company, "Café", "12000", 10)
	b := f.r.AddProduct(f.company, "Té", "8000", 4)
	s, err := f.sales.Create(context.Background(), f.owner.ID, saleReq(a.ID, 3, "12000"))
	require.NoError(t, err)

	_, err = f.sales.Update(context.Background(), f.owner.ID, s.ID, saleReq(b.ID, 4, "8000"))
	require.NoError(t, err)
	assert.Equal(t, 10, f.r.DB.Stock(a.ID))
	assert.Equal(t, 0, f.r.DB.Stock(b.ID))
}

func TestSaleUpdate_CambioDeProductoSinStockRevierteTodo(t *testing.T) {
	f := newFixture(t)
	a := f.r.AddProduct(f.company, "Café", "12000", 10)
	b := f.r.AddProduct(f.company, "Té", "8000", 1)
	s, err := f.sales.Create(context.Background(), f.owner.ID, saleReq(a.ID, 3, "12000"))
	require.NoError(t, err)

	_, err = f.sales.Update(context.Background(), f.owner.ID, s.ID, saleReq(b.ID, 2, "8000"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 7, f.r.DB.Stock(a.ID))
	assert.Equal(t, 1, f.r.DB.Stock(b.ID))
}

func TestSaleDelete_DevuelveStock(t *testing.T) {
	f := newFixture(t)
	p := f.r.AddProduct(f.company, "Café", "12000", 10)
	s, err := f.sales.Create(context.Background(), f.owner.ID, saleReq(p.ID, 4, "12000"))
	require.NoError(t, err)

	require.NoError(t, f.sales.Delete(context.Background(), f.owner.ID, s.ID))
	assert.Equal(t, 10, f.r.DB.Stock(p.ID))

	_, err = f.sales.GetByID(context.Background(), f.owner.ID, s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// interleavedTx ejecuta before una sola vez, justo antes de abrir la primera transacción,
// para simular otra petición que termina mientras esta ya está en curso.
type interleavedTx struct {
	inner  inventory.TxRunner
	before func()
}

func (t *interleavedTx) Run(ctx context.Context, fn func(repository.ProductRepository, repository.SaleRepository, repository.PurchaseRepository) error) error {
	if hook := t.before; hook != nil {
		t.before = nil
		hook()
	}
	return t.inner.Run(ctx, fn)
}

func TestSaleDelete_ConcurrenteDevuelveStockUnaSolaVez(t *testing.T) {
	f := newFixture(t)
	p := f.r.AddProduct(f.company, "Café", "12000", 10)
	s, err := f.sales.Create(context.Background(), f.owner.ID, saleReq(p.ID, 4, "12000"))
	require.NoError(t, err)
	require.Equal(t, 6, f.r.DB.Stock(p.ID))

	tx := &interleavedTx{inner: f.r.Tx}
	uc := inventory.NewSaleUseCase(tx, f.r.Sales, usecase.NewTenantResolver(f.r.Companies), nil, logger.Nop())
	tx.before = func() {
		require.NoError(t, uc.Delete(context.Background(), f.owner.ID, s.ID))
	}

	err = uc.Delete(context.Background(), f.owner.ID, s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 10, f.r.DB.Stock(p.ID))
}

func TestSaleUpdate_UsaLaVentaVigenteDentroDeLaTransaccion(t *testing.T) {
	f := newFixture(t)
	p := f.r.AddProduct(f.company, "Café", "12000", 10)
	s, err := f.sales.Create(context.Background(), f.owner.ID, saleReq(p.ID, 4, "12000"))
	require.NoError(t, err)

	tx := &interleavedTx{inner: f.r.Tx}
	uc := inventory.NewSaleUseCase(tx, f.r.Sales, usecase.NewTenantResolver(f.r.Companies), nil, logger.Nop())
	tx.before = func() {
		_, err := uc.Update(context.Background(), f.owner.ID, s.ID, saleReq(p.ID, 1, "12000"))
		require.NoError(t, err)
	}

	_, err = uc.Update(context.Background(), f.owner.ID, s.ID, saleReq(p.ID, 3, "12000"))
	require.NoError(t, err)
	// 10 - 4, luego 4 -> 1, luego 1 -> 3
	assert.Equal(t, 7, f.r.DB.Stock(p.ID))
}

func TestSaleUpdate_BorradaEnParaleloNoTocaStock(t *testing.T) {
	f := newFixture(t)
	p := f.r.AddProduct(f.company, "Café", "12000", 10)
	s, err := f.sales.Create(context.Background(), f.owner.ID, saleReq(p.ID, 4, "12000"))
	require.NoError(t, err)

	tx := &interleavedTx{inner: f.r.Tx}
	uc := inventory.NewSaleUseCase(tx, f.r.Sales, usecase.NewTenantResolver(f.r.Companies), nil, logger.Nop())
	tx.before = func() {
		require.NoError(t, uc.Delete(context.Background(), f.owner.ID, s.ID))
	}

	_, err = uc.Update(context.Background(), f.owner.ID, s.ID, saleReq(p.ID, 2, "12000"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 10, f.r.DB.Stock(p.ID))
	assert.Empty(t, f.r.DB.Sales)
}

func TestSale_EmpleadoDeOtraCompaniaProhibido(t *testing.T) {
	f := newFixture(t)
	p := f.r.AddProduct(f.company, "Café", "12000", 10)
	s, err := f.sales.Create(context.Background(), f.owner.ID, saleReq(p.ID, 1, "12000"))
	require.NoError(t, err)
	otherOwner := f.r.AddUser("otro@test.com")
	other := f.r.AddCompany(otherOwner, "Otra")
	emp := f.r.AddEmployee(other, "emp@test.com")

	_, err = f.sales.GetByID(context.Background(), emp.ID, s.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSaleCreate_FalloDeCacheNoRevierte(t *testing.T) {
	f := newFixture(t)
	f.cache.err = errors.New("redis caído")
	p := f.r.AddProduct(f.company, "Café", "12000", 10)

	_, err := f.sales.Create(context.Background(), f.owner.ID, saleReq(p.ID, 1, "12000"))
	require.NoError(t, err)
	assert.Equal(t, 9, f.r.DB.Stock(p.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Compras
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchaseCreate_SumaStock(t *testing.T) {
	f := newFixture(t)
	p := f.r.AddProduct(f.company, "Café", "12000", 0)

	got, err := f.buys.Create(context.Background(), f.owner.ID, purchaseReq(p.ID, 20, "7000"))
	require.NoError(t, err)
	assert.Equal(t, 20, f.r.DB.Stock(p.ID))
	assert.Equal(t, "140000.00", got.TotalCost.StringFixed(2))
}

func TestPurchaseUpdate_ReducirPorDebajoDeLoVendido(t *testing.T) {
	f := newFixture(t)
	p := f.r.AddProduct(f.company, "Café", "12000", 0)
	buy, err := f.buys.Create(context.Background(), f.owner.ID, purchaseReq(p.ID, 10, "7000"))
	require.NoError(t, err)
	_, err = f.sales.Create(context.Background(), f.owner.ID, saleReq(p.ID, 8, "12000"))
	require.NoError(t, err)

	_, err = f.buys.Update(context.Background(), f.owner.ID, buy.ID, purchaseReq(p.ID, 5, "7000"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, f.r.DB.Stock(p.ID))

	_, err = f.buys.Update(context.Background(), f.owner.ID, buy.ID, purchaseReq(p.ID, 8, "7000"))
	require.NoError(t, err)
	assert.Equal(t, 0, f.r.DB.Stock(p.ID))
}

func TestPurchaseDelete_RevierteStock(t *testing.T) {
	f := newFixture(t)
	p := f.r.AddProduct(f.company, "Café", "12000", 5)
	buy, err := f.buys.Create(context.Background(), f.owner.ID, purchaseReq(p.ID, 10, "7000"))
	require.NoError(t, err)

	require.NoError(t, f.buys.Delete(context.Background(), f.owner.ID, buy.ID))
	assert.Equal(t, 5, f.r.DB.Stock(p.ID))
}

func TestPurchaseDelete_YaVendidoFalla(t *testing.T) {
	f := newFixture(t)
	p := f.r.AddProduct(f.company, "Café", "12000", 0)
	buy, err := f.buys.Create(context.Background(), f.owner.ID, purchaseReq(p.ID, 10, "7000"))
	require.NoError(t, err)
	_, err = f.sales.Create(context.Background(), f.owner.ID, saleReq(p.ID, 6, "12000"))
	require.NoError(t, err)

	assert.ErrorIs(t, f.buys.Delete(context.Background(), f.owner.ID, buy.ID), domain.ErrInsufficientStock)
	assert.Equal(t, 4, f.r.DB.Stock(p.ID))
}

func TestPurchaseDelete_ConcurrenteRevierteUnaSolaVez(t *testing.T) {
	f := newFixture(t)
	p := f.r.AddProduct(f.company, "Café", "12000", 0)
	pu, err := f.buys.Create(context.Background(), f.owner.ID, purchaseReq(p.ID, 10, "8000"))
	require.NoError(t, err)
	_, err = f.buys.Create(context.Background(), f.owner.ID, purchaseReq(p.ID, 10, "8000"))
	require.NoError(t, err)
	require.Equal(t, 20, f.r.DB.Stock(p.ID))

	tx := &interleavedTx{inner: f.r.Tx}
	uc := inventory.NewPurchaseUseCase(tx, f.r.Purchases, usecase.NewTenantResolver(f.r.Companies), nil, logger.Nop())
	tx.before = func() {
		require.NoError(t, uc.Delete(context.Background(), f.owner.ID, pu.ID))
	}

	err = uc.Delete(context.Background(), f.owner.ID, pu.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 10, f.r.DB.Stock(p.ID))
}

func TestPurchaseDelete_Inexistente(t *testing.T) {
	f := newFixture(t)
	err := f.buys.Delete(context.Background(), f.owner.ID, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurchaseStatistics_TotalYPromedio(t *testing.T) {
	f := newFixture(t)
	p := f.r.AddProduct(f.company, "Café", "12000", 0)
	_, err := f.buys.Create(context.Background(), f.owner.ID, purchaseReq(p.ID, 1, "100"))
	require.NoError(t, err)
	_, err = f.buys.Create(context.Background(), f.owner.ID, purchaseReq(p.ID, 2, "100"))
	require.NoError(t, err)

	got, err := f.buys.Statistics(context.Background(), f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "300.00", got.TotalPurchases.StringFixed(2))
	assert.Equal(t, "150.00", got.AveragePurchase.StringFixed(2))
}

// ──────────────────────────────────────────────────────────────────────────────
// Generador de ventas
// ──────────────────────────────────────────────────────────────────────────────

func newGenerator(f *fixture) *inventory.SalesGenerator {
	return inventory.NewSalesGenerator(f.r.Companies, f.r.Users, f.r.Products, f.sales, logger.Nop(), rand.New(rand.NewPCG(1, 2)))
}

func TestGenerate_CreaVentasPorDia(t *testing.T) {
	f := newFixture(t)
	p := f.r.AddProduct(f.company, "Café", "12000", 1000)

	res, err := newGenerator(f).Generate(context.Background(), inventory.GenerateOptions{
		CompanyID: f.company.ID, UserID: f.owner.ID, Days: 3, Min: 2, Max: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, res.Created)
	assert.Zero(t, res.Skipped)
	require.Len(t, f.r.DB.Sales, 6)

	sold := 0
	oldest := time.Now()
	for _, s := range f.r.DB.Sales {
		sold += s.Quantity
		assert.True(t, p.Price.Equal(s.UnitPrice))
		assert.Contains(t, s.Customer, "Cliente de prueba ")
		if s.Date.Before(oldest) {
			oldest = s.Date
		}
	}
	assert.Equal(t, 1000-sold, f.r.DB.Stock(p.ID))
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -2), oldest, time.Minute)
}

func TestGenerate_SinStockSeOmiten(t *testing.T) {
	f := newFixture(t)
	f.r.AddProduct(f.company, "Café", "12000", 0)

	res, err := newGenerator(f).Generate(context.Background(), inventory.GenerateOptions{
		CompanyID: f.company.ID, UserID: f.owner.ID, Days: 2, Min: 1, Max: 3,
	})
	require.NoError(t, err)
	assert.Zero(t, res.Created)
	assert.GreaterOrEqual(t, res.Skipped, 2)
}

func TestGenerate_Validaciones(t *testing.T) {
	f := newFixture(t)
	g := newGenerator(f)

	_, err := g.Generate(context.Background(), inventory.GenerateOptions{CompanyID: f.company.ID, UserID: f.owner.ID, Days: 0, Min: 1, Max: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = g.Generate(context.Background(), inventory.GenerateOptions{CompanyID: f.company.ID, UserID: f.owner.ID, Days: 1, Min: 3, Max: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = g.Generate(context.Background(), inventory.GenerateOptions{CompanyID: "no-existe", UserID: f.owner.ID, Days: 1, Min: 1, Max: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = g.Generate(context.Background(), inventory.GenerateOptions{CompanyID: f.company.ID, UserID: "no-existe", Days: 1, Min: 1, Max: 1})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// compañía sin productos
	_, err = g.Generate(context.Background(), inventory.GenerateOptions{CompanyID: f.company.ID, UserID: f.owner.ID, Days: 1, Min: 1, Max: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
