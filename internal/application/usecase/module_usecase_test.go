package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/apptest"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

func TestHasPermission_DirectoOPorRol(t *testing.T) {
	r := apptest.New()
	owner := r.AddUser("dueno@test.com")
	c := r.AddCompany(owner, "Tienda")
	emp := r.AddEmployee(c, "emp@test.com")
	svc := usecase.NewPermissionService(r.Permissions)
	require.NoError(t, svc.SetupCatalog(context.Background()))
	require.NoError(t, r.Permissions.GrantToUser(context.Background(), emp.ID, []string{entity.PermCreateSale}))

	ok, err := svc.HasPermission(context.Background(), emp.ID, entity.PermCreateSale)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasPermission(context.Background(), emp.ID, entity.PermViewProducts)
	require.NoError(t, err)
	assert.True(t, ok, "view_products llega por el rol employee")

	ok, err = svc.HasPermission(context.Background(), emp.ID, entity.PermDeleteProduct)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.HasPermission(context.Background(), owner.ID, entity.PermDeleteProduct)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHasPermission_ArgumentosVacios(t *testing.T) {
	svc := usecase.NewPermissionService(apptest.New().Permissions)

	_, err := svc.HasPermission(context.Background(), "", entity.PermViewSales)
	assert.Error(t, err)
}
