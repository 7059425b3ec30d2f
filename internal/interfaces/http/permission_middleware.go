package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/ventas-api/internal/application/dto"
)

// permissionChecker contrato mínimo del middleware. Lo implementa *usecase.PermissionService.
type permissionChecker interface {
	HasPermission(ctx context.Context, userID, codename string) (bool, error)
}

// RequirePermission verifica que el usuario del token tenga el permiso (directo o por su rol).
// Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 403 FORBIDDEN → sin el permiso.
//   - 503 PERMISSION_CHECK_FAILED → fallo de infraestructura al consultar la DB.
func RequirePermission(codename string, checker permissionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}

		ok, err := checker.HasPermission(c.Context(), userID, codename)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Str("permission", codename).Msg("verificación de permiso fallida")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_CHECK_FAILED",
				Message: "no se pudo verificar el permiso, intente más tarde",
			})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "No tienes permiso para realizar esta acción",
			})
		}
		return c.Next()
	}
}
