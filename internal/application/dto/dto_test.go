package dto

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validUUID = "7f1d2c9e-3b4a-4c5d-8e6f-1a2b3c4d5e6f"

func TestDefaultPage(t *testing.T) {
	p := PageRequest{Limit: 0, Offset: -3}
	p.DefaultPage(10)
	assert.Equal(t, PageRequest{Limit: 10, Offset: 0}, p)

	p = PageRequest{Limit: 1000}
	p.DefaultPage(10)
	assert.Equal(t, MaxPageSize, p.Limit)
}

func TestSaleRequest_Validaciones(t *testing.T) {
	ok := SaleRequest{ProductID: validUUID, Quantity: 2, UnitPrice: decimal.RequireFromString("1500")}
	require.NoError(t, ok.Validate())

	cases := map[string]SaleRequest{
		"cantidad cero":    {ProductID: validUUID, Quantity: 0, UnitPrice: decimal.NewFromInt(1)},
		"precio cero":      {ProductID: validUUID, Quantity: 1, UnitPrice: decimal.Zero},
		"producto no uuid": {ProductID: "abc", Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			err := in.Validate()
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestCreateProductRequest_StockYPrecio(t *testing.T) {
	assert.NoError(t, CreateProductRequest{Name: "Café", Price: decimal.Zero}.Validate())
	assert.Error(t, CreateProductRequest{Name: "Café", Price: decimal.NewFromInt(-1)}.Validate())
	assert.Error(t, CreateProductRequest{Name: "Café", Stock: -1}.Validate())
	assert.Error(t, CreateProductRequest{Price: decimal.NewFromInt(1)}.Validate())

	neg := decimal.NewFromInt(-5)
	assert.Error(t, UpdateProductRequest{Price: &neg}.Validate())
	assert.NoError(t, UpdateProductRequest{}.Validate())
}

func TestPredictRequest_DefaultsYRangos(t *testing.T) {
	var in PredictRequest
	in.ApplyDefaults()
	assert.Equal(t, PredictRequest{DaysAhead: DefaultDaysAhead, TimeUnit: DefaultTimeUnit, DaysHistory: DefaultDaysHistory}, in)
	require.NoError(t, in.Validate())

	in.TimeUnit = "year"
	assert.Error(t, in.Validate())

	in = PredictRequest{DaysAhead: 400}
	in.ApplyDefaults()
	assert.Error(t, in.Validate())

	in = PredictRequest{DaysHistory: 10}
	in.ApplyDefaults()
	assert.Error(t, in.Validate())
}

func TestCreatePaymentRequest_MonedaEnMayusculas(t *testing.T) {
	in := CreatePaymentRequest{SubscriptionID: validUUID, Amount: decimal.NewFromInt(10000), Currency: "COP"}
	require.NoError(t, in.Validate())

	in.Currency = "cop"
	assert.Error(t, in.Validate())
}

func TestUpdateEmployeePermissions_ListaObligatoria(t *testing.T) {
	assert.Error(t, UpdateEmployeePermissionsRequest{Email: "emp@test.com"}.Validate())
	assert.NoError(t, UpdateEmployeePermissionsRequest{Email: "emp@test.com", Permissions: []string{}}.Validate())
}

func TestIsValidationError_ErrorComun(t *testing.T) {
	assert.False(t, IsValidationError(errors.New("db caída")))
}
