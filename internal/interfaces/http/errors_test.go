package http

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/domain"
)

func statusFor(t *testing.T, handler func(*fiber.Ctx, error) error, err error) (int, string) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return handler(c, err) })
	resp, e := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, e)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestRespondError_MapeaErroresDeDominio(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNoCompany, http.StatusBadRequest, "NO_COMPANY"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("producto: %w", domain.ErrForbidden), http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrInsufficientStock, http.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.ErrEmailAlreadyExists, http.StatusConflict, "EMAIL_EXISTS"},
		{domain.ErrSubscriptionRequired, http.StatusForbidden, "SUBSCRIPTION_REQUIRED"},
		{domain.ErrCompanyLimit, http.StatusForbidden, "COMPANY_LIMIT"},
		{domain.ErrUnavailable, http.StatusServiceUnavailable, "UNAVAILABLE"},
		{validation.Errors{"email": validation.ErrRequired}, http.StatusBadRequest, "VALIDATION"},
		{errInvalidBody, http.StatusBadRequest, "INVALID_BODY"},
		{fmt.Errorf("conexión perdida"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		status, body := statusFor(t, respondError, tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Contains(t, body, tc.code, tc.err.Error())
	}
}

func TestRespondSaleError_SinCompaniaEs404(t *testing.T) {
	status, body := statusFor(t, respondSaleError, domain.ErrNoCompany)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "El usuario no tiene compañías asignadas")

	status, _ = statusFor(t, respondSaleError, domain.ErrInsufficientStock)
	assert.Equal(t, http.StatusConflict, status)
}

func TestQueryDate_FinDeDiaIncluyeElDiaCompleto(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		start, err := queryDate(c, "start", false)
		if err != nil {
			return respondError(c, err)
		}
		end, err := queryDate(c, "end", true)
		if err != nil {
			return respondError(c, err)
		}
		return c.SendString(start.Format("2006-01-02 15:04") + "|" + end.Format("2006-01-02 15:04"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/?start=2024-03-01&end=2024-03-31", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "2024-03-01 00:00|2024-03-31 23:59", string(body))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/?start=01/03/2024", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPathID_IDQueNoEsUUIDEs404(t *testing.T) {
	app := fiber.New()
	app.Get("/products/:id", func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return respondError(c, err)
		}
		return c.SendString(id)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/products/abc", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "NOT_FOUND")

	const valid = "6f1c2a9e-3b4d-4e5f-8a7b-9c0d1e2f3a4b"
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/products/"+valid, nil), -1)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, valid, string(body))
}
