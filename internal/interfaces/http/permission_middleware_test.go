package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	apphttp "github.com/jhoicas/ventas-api/internal/interfaces/http"
)

type fakeChecker struct {
	perms map[string]bool
	err   error
	calls int
}

func (f *fakeChecker) HasPermission(_ context.Context, userID, codename string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return userID == testUserID && f.perms[codename], nil
}

func buildPermissionApp(codename string, checker *fakeChecker) *fiber.App {
	app := fiber.New()
	app.Get("/products",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(codename, checker),
		func(c *fiber.Ctx) error { return c.SendString("ok") },
	)
	return app
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_ConPermiso_Pasa(t *testing.T) {
	checker := &fakeChecker{perms: map[string]bool{"view_products": true}}
	app := buildPermissionApp("view_products", checker)

	resp := doRequest(t, app, "/products", tokenForRole(t, "employee"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, checker.calls)
}

func TestRequirePermission_SinPermiso_Retorna403(t *testing.T) {
	checker := &fakeChecker{perms: map[string]bool{"view_products": true}}
	app := buildPermissionApp("delete_product", checker)

	resp := doRequest(t, app, "/products", tokenForRole(t, "employee"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "No tienes permiso para realizar esta acción")
}

func TestRequirePermission_FalloDeConsulta_Retorna503(t *testing.T) {
	checker := &fakeChecker{err: errors.New("conexión rechazada")}
	app := buildPermissionApp("view_products", checker)

	resp := doRequest(t, app, "/products", tokenForRole(t, "entrepreneur"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "PERMISSION_CHECK_FAILED")
}

func TestRequirePermission_SinToken_NoConsultaPermisos(t *testing.T) {
	checker := &fakeChecker{perms: map[string]bool{"view_products": true}}
	app := buildPermissionApp("view_products", checker)

	resp := doRequest(t, app, "/products", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, checker.calls)
}
