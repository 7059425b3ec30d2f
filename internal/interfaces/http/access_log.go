package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/pkg/logger"
)

// AccessLog registra cada petición con método, ruta, status, latencia y, si hay, usuario y compañía.
func AccessLog(log *logger.Logger) fiber.Handler {
	l := log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := l.Info()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP())
		if uid := GetUserID(c); uid != "" {
			ev.Str("user_id", uid)
		}
		if cid := GetCompanyID(c); cid != "" {
			ev.Str("company_id", cid)
		}
		ev.Msg("petición")
		return err
	}
}
