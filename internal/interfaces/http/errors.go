package http

import (
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
)

var errInvalidBody = errors.New("cuerpo inválido")

// isErr indica si err es alguno de targets.
func isErr(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// bind parsea el cuerpo JSON y aplica las reglas de validación del request.
func bind(c *fiber.Ctx, in dto.Validatable) error {
	if err := c.BodyParser(in); err != nil {
		return errInvalidBody
	}
	return in.Validate()
}

// fail escribe un ErrorResponse con el status indicado.
func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// respondError traduce errores de dominio y de validación a respuestas HTTP.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errInvalidBody):
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	case dto.IsValidationError(err):
		return fail(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	case errors.Is(err, domain.ErrNoCompany):
		return fail(c, fiber.StatusBadRequest, "NO_COMPANY", capitalize(err.Error()))
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado")
	case errors.Is(err, domain.ErrUserNotFound):
		return fail(c, fiber.StatusNotFound, "USER_NOT_FOUND", "usuario no encontrado")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fail(c, fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado")
	case errors.Is(err, domain.ErrDocumentExists):
		return fail(c, fiber.StatusConflict, "DUPLICATE_DOCUMENT", capitalize(err.Error()))
	case errors.Is(err, domain.ErrDuplicate):
		return fail(c, fiber.StatusConflict, "DUPLICATE", "el recurso ya existe")
	case errors.Is(err, domain.ErrInsufficientStock):
		return fail(c, fiber.StatusConflict, "INSUFFICIENT_STOCK", capitalize(err.Error()))
	case errors.Is(err, domain.ErrConflict):
		return fail(c, fiber.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas")
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", "No tienes permiso para realizar esta acción")
	case errors.Is(err, domain.ErrSubscriptionRequired):
		return fail(c, fiber.StatusForbidden, "SUBSCRIPTION_REQUIRED", capitalize(err.Error()))
	case errors.Is(err, domain.ErrCompanyLimit):
		return fail(c, fiber.StatusForbidden, "COMPANY_LIMIT", capitalize(err.Error()))
	case errors.Is(err, domain.ErrActiveSubscription):
		return fail(c, fiber.StatusBadRequest, "ACTIVE_SUBSCRIPTION", capitalize(err.Error()))
	case errors.Is(err, domain.ErrUnknownPermission):
		return fail(c, fiber.StatusBadRequest, "UNKNOWN_PERMISSION", err.Error())
	case errors.Is(err, domain.ErrNotEmployee):
		return fail(c, fiber.StatusBadRequest, "NOT_EMPLOYEE", capitalize(err.Error()))
	case errors.Is(err, domain.ErrUnavailable):
		return fail(c, fiber.StatusServiceUnavailable, "UNAVAILABLE", "servicio no disponible, intente más tarde")
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	return fail(c, fiber.StatusInternalServerError, "INTERNAL", "error interno")
}

// respondSaleError en ventas un usuario sin compañía responde 404.
func respondSaleError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNoCompany) {
		return fail(c, fiber.StatusNotFound, "NO_COMPANY", "El usuario no tiene compañías asignadas")
	}
	return respondError(c, err)
}

// pathID lee el parámetro :id. Un ID que no es UUID no existe: ErrNotFound.
func pathID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if uuid.Validate(id) != nil {
		return "", domain.ErrNotFound
	}
	return id, nil
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// queryDate lee un parámetro YYYY-MM-DD (o RFC3339). Vacío → tiempo cero.
// Una fecha sin hora como fin de período incluye el día completo.
func queryDate(c *fiber.Ctx, key string, endOfDay bool) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func page(c *fiber.Ctx, def int) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", def), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage(def)
	return p
}
