package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/apptest"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

type countingInvalidator struct{ companies []string }

func (c *countingInvalidator) Invalidate(_ context.Context, companyID string) error {
	c.companies = append(c.companies, companyID)
	return nil
}

func newProductUC(r *apptest.Repos, cache *countingInvalidator) *usecase.ProductUseCase {
	tenant := usecase.NewTenantResolver(r.Companies)
	if cache == nil {
		return usecase.NewProductUseCase(r.Products, tenant, nil, logger.Nop())
	}
	return usecase.NewProductUseCase(r.Products, tenant, cache, logger.Nop())
}

func TestProductCreate_EnLaCompaniaDelUsuario(t *testing.T) {
	r := apptest.New()
	owner := r.AddUser("dueno@test.com")
	c := r.AddCompany(owner, "Tienda")
	uc := newProductUC(r, nil)

	got, err := uc.Create(context.Background(), owner.ID, dto.CreateProductRequest{
		Name: "Café", Price: decimal.RequireFromString("12000"), Stock: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.CompanyID)
	assert.Equal(t, 5, r.DB.Stock(got.ID))
}

func TestProductCreate_UsuarioSinCompania(t *testing.T) {
	r := apptest.New()
	u := r.AddUser("suelto@test.com")

	_, err := newProductUC(r, nil).
		Create(context.Background(), u.ID, dto.CreateProductRequest{Name: "Café"})
	assert.ErrorIs(t, err, domain.ErrNoCompany)
}

func TestProductEmpleado_VeProductosDeSuCompania(t *testing.T) {
	r := apptest.New()
	owner := r.AddUser("dueno@test.com")
	c := r.AddCompany(owner, "Tienda")
	emp := r.AddEmployee(c, "emp@test.com")
	p := r.AddProduct(c, "Café", "12000", 5)

	got, err := newProductUC(r, nil).GetByID(context.Background(), emp.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Café", got.Name)
}

func TestProductOtraCompania_Prohibido(t *testing.T) {
	r := apptest.New()
	a := r.AddUser("a@test.com")
	r.AddCompany(a, "A")
	b := r.AddUser("b@test.com")
	cb := r.AddCompany(b, "B")
	p := r.AddProduct(cb, "Té", "8000", 1)
	uc := newProductUC(r, nil)

	_, err := uc.GetByID(context.Background(), a.ID, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(context.Background(), a.ID, p.ID), domain.ErrForbidden)

	_, err = uc.GetByID(context.Background(), a.ID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUpdate_NoTocaElStock(t *testing.T) {
	r := apptest.New()
	owner := r.AddUser("dueno@test.com")
	c := r.AddCompany(owner, "Tienda")
	p := r.AddProduct(c, "Café", "12000", 7)
	price := decimal.RequireFromString("15000")

	got, err := newProductUC(r, nil).
		Update(context.Background(), owner.ID, p.ID, dto.UpdateProductRequest{Price: &price})
	require.NoError(t, err)
	assert.True(t, price.Equal(got.Price))
	assert.Equal(t, 7, r.DB.Stock(p.ID))
}

func TestProductList_BuscaYPagina(t *testing.T) {
	r := apptest.New()
	owner := r.AddUser("dueno@test.com")
	c := r.AddCompany(owner, "Tienda")
	r.AddProduct(c, "Café molido", "12000", 1)
	r.AddProduct(c, "Café en grano", "14000", 1)
	r.AddProduct(c, "Té verde", "8000", 1)
	uc := newProductUC(r, nil)

	got, err := uc.List(context.Background(), owner.ID, " café ", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Page.Total)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Café en grano", got.Items[0].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestProductEscrituras_InvalidanReportes(t *testing.T) {
	r := apptest.New()
	owner := r.AddUser("dueno@test.com")
	c := r.AddCompany(owner, "Tienda")
	cache := &countingInvalidator{}
	uc := newProductUC(r, cache)
	ctx := context.Background()

	p, err := uc.Create(ctx, owner.ID, dto.CreateProductRequest{Name: "Café", Price: decimal.RequireFromString("12000"), Stock: 3})
	require.NoError(t, err)
	price := decimal.RequireFromString("15000")
	_, err = uc.Update(ctx, owner.ID, p.ID, dto.UpdateProductRequest{Price: &price})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, owner.ID, p.ID))

	assert.Equal(t, []string{c.ID, c.ID, c.ID}, cache.companies)
}

func TestProductEscrituras_FallidasNoInvalidan(t *testing.T) {
	r := apptest.New()
	owner := r.AddUser("dueno@test.com")
	r.AddCompany(owner, "Tienda")
	other := r.AddUser("otro@test.com")
	p := r.AddProduct(r.AddCompany(other, "Otra"), "Té", "5000", 1)
	cache := &countingInvalidator{}
	uc := newProductUC(r, cache)

	assert.ErrorIs(t, uc.Delete(context.Background(), owner.ID, p.ID), domain.ErrForbidden)
	assert.Empty(t, cache.companies)
}

func TestSupplierCreate_DuplicadoEnLaCompania(t *testing.T) {
	r := apptest.New()
	owner := r.AddUser("dueno@test.com")
	r.AddCompany(owner, "Tienda")
	uc := usecase.NewSupplierUseCase(r.Suppliers, usecase.NewTenantResolver(r.Companies))

	_, err := uc.Create(context.Background(), owner.ID, dto.SupplierRequest{Name: "Distribuidora"})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), owner.ID, dto.SupplierRequest{Name: "distribuidora"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSupplier_OtraCompaniaProhibido(t *testing.T) {
	r := apptest.New()
	a := r.AddUser("a@test.com")
	r.AddCompany(a, "A")
	b := r.AddUser("b@test.com")
	r.AddCompany(b, "B")
	uc := usecase.NewSupplierUseCase(r.Suppliers, usecase.NewTenantResolver(r.Companies))

	s, err := uc.Create(context.Background(), b.ID, dto.SupplierRequest{Name: "Distribuidora"})
	require.NoError(t, err)

	_, err = uc.GetByID(context.Background(), a.ID, s.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(context.Background(), a.ID, s.ID), domain.ErrForbidden)

	list, err := uc.List(context.Background(), a.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}
