package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/apptest"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

func TestSimulatedIDs_Deterministas(t *testing.T) {
	txID, ref := usecase.SimulatedIDs("abc", decimal.RequireFromString("49900"))
	assert.Equal(t, "sim_abc_49900.00", txID)
	assert.Equal(t, "ref_abc_49900.00", ref)
}

// ──────────────────────────────────────────────────────────────────────────────
// Suscripciones
// ──────────────────────────────────────────────────────────────────────────────

func TestSubscriptionCreate_NaceInactiva(t *testing.T) {
	r := apptest.New()
	u := r.AddUser("ana@test.com")
	plan := r.AddPlan("Básico", "10000", 1)

	got, err := usecase.NewSubscriptionUseCase(r.Subscriptions, r.Plans).Create(context.Background(), u.ID, dto.CreateSubscriptionRequest{PlanID: plan.ID})
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, "Básico", got.PlanName)
	assert.WithinDuration(t, got.StartDate.Add(30*24*time.Hour), got.EndDate, time.Second)
}

func TestSubscriptionCreate_YaTieneUnaVigente(t *testing.T) {
	r := apptest.New()
	u := r.AddUser("ana@test.com")
	plan := r.AddPlan("Básico", "10000", 1)
	r.AddSubscription(u, plan, true, time.Now())

	_, err := usecase.NewSubscriptionUseCase(r.Subscriptions, r.Plans).Create(context.Background(), u.ID, dto.CreateSubscriptionRequest{PlanID: plan.ID})
	assert.ErrorIs(t, err, domain.ErrActiveSubscription)
}

func TestSubscriptionGet_AjenaNoExiste(t *testing.T) {
	r := apptest.New()
	u := r.AddUser("ana@test.com")
	other := r.AddUser("otro@test.com")
	sub := r.AddSubscription(u, r.AddPlan("Básico", "10000", 1), false, time.Now())

	_, err := usecase.NewSubscriptionUseCase(r.Subscriptions, r.Plans).GetByID(context.Background(), other.ID, sub.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlanList_TodosOrdenadosPorCreacionYNombre(t *testing.T) {
	r := apptest.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r.AddPlan("Pro", "50000", 3).CreatedAt = base.Add(time.Hour)
	r.AddPlan("Básico", "10000", 1).CreatedAt = base.Add(time.Hour)
	viejo := r.AddPlan("Viejo", "1000", 1)
	viejo.CreatedAt = base
	viejo.IsActive = false

	list, err := usecase.NewPlanUseCase(r.Plans).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Viejo", list[0].Name)
	assert.False(t, list[0].IsActive)
	assert.Equal(t, "Básico", list[1].Name)
	assert.Equal(t, "Pro", list[2].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagos
// ──────────────────────────────────────────────────────────────────────────────

func TestPaymentCreate_ApruebaYActivaSuscripcion(t *testing.T) {
	r := apptest.New()
	u := r.AddUser("ana@test.com")
	sub := r.AddSubscription(u, r.AddPlan("Básico", "10000", 1), false, time.Now())
	uc := usecase.NewPaymentUseCase(r.Payments, r.Subscriptions, r.Tx)

	got, err := uc.Create(context.Background(), u.ID, dto.CreatePaymentRequest{
		SubscriptionID: sub.ID,
		Amount:         decimal.RequireFromString("10000.50"),
		Currency:       "cop",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentApproved, got.Transaction.Status)
	assert.Equal(t, int64(1000050), got.Transaction.AmountInCents)
	assert.Equal(t, "COP", got.Transaction.Currency)
	assert.Equal(t, usecase.DefaultPaymentMethod, got.Transaction.PaymentMethodType)
	assert.True(t, r.DB.Subs[sub.ID].IsActive)

	list, err := uc.List(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPaymentCreate_GuardaRespuestaDeLaPasarela(t *testing.T) {
	r := apptest.New()
	u := r.AddUser("ana@test.com")
	sub := r.AddSubscription(u, r.AddPlan("Básico", "10000", 1), false, time.Now())

	got, err := usecase.NewPaymentUseCase(r.Payments, r.Subscriptions, r.Tx).Create(context.Background(), u.ID, dto.CreatePaymentRequest{
		SubscriptionID:    sub.ID,
		Amount:            decimal.RequireFromString("49900"),
		PaymentMethodType: "NEQUI",
	})
	require.NoError(t, err)

	stored := r.DB.Payments[got.Transaction.ID]
	require.NotNil(t, stored)
	assert.JSONEq(t, `{"type":"NEQUI","simulated":true}`, string(stored.PaymentMethodData))

	var gw map[string]any
	require.NoError(t, json.Unmarshal(stored.GatewayResponse, &gw))
	assert.Equal(t, got.Transaction.TransactionID, gw["id"])
	assert.Equal(t, entity.PaymentApproved, gw["status"])
	assert.EqualValues(t, 4990000, gw["amount_in_cents"])
	assert.Equal(t, "COP", gw["currency"])
	assert.Equal(t, true, gw["simulated"])
}

func TestPaymentCreate_MismoMontoDuplicado(t *testing.T) {
	r := apptest.New()
	u := r.AddUser("ana@test.com")
	sub := r.AddSubscription(u, r.AddPlan("Básico", "10000", 1), false, time.Now())
	uc := usecase.NewPaymentUseCase(r.Payments, r.Subscriptions, r.Tx)
	in := dto.CreatePaymentRequest{SubscriptionID: sub.ID, Amount: decimal.RequireFromString("10000")}

	_, err := uc.Create(context.Background(), u.ID, in)
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), u.ID, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestPaymentCreate_SuscripcionAjena(t *testing.T) {
	r := apptest.New()
	u := r.AddUser("ana@test.com")
	other := r.AddUser("otro@test.com")
	sub := r.AddSubscription(u, r.AddPlan("Básico", "10000", 1), false, time.Now())

	_, err := usecase.NewPaymentUseCase(r.Payments, r.Subscriptions, r.Tx).Create(context.Background(), other.ID, dto.CreatePaymentRequest{
		SubscriptionID: sub.ID, Amount: decimal.RequireFromString("10000"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPaymentGet_AjenoNoExiste(t *testing.T) {
	r := apptest.New()
	u := r.AddUser("ana@test.com")
	other := r.AddUser("otro@test.com")
	sub := r.AddSubscription(u, r.AddPlan("Básico", "10000", 1), false, time.Now())
	uc := usecase.NewPaymentUseCase(r.Payments, r.Subscriptions, r.Tx)
	created, err := uc.Create(context.Background(), u.ID, dto.CreatePaymentRequest{SubscriptionID: sub.ID, Amount: decimal.RequireFromString("10000")})
	require.NoError(t, err)

	_, err = uc.GetByID(context.Background(), other.ID, created.Transaction.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.GetByID(context.Background(), u.ID, created.Transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Transaction.Reference, got.Reference)
}
