package ports

import (
	"context"
	"time"
)

// ReportCache define el puerto de salida para cachear reportes por compañía.
// Las entradas de una compañía se invalidan en bloque con Invalidate (cualquier
// venta o compra nueva vuelve obsoletos todos sus reportes).
//
// Get devuelve la versión de la compañía que leyó; Set escribe bajo esa versión, de modo
// que un reporte construido antes de una invalidación nunca queda como vigente.
type ReportCache interface {
	// Get decodifica en dst la entrada si existe. found=false si no hay entrada vigente.
	Get(ctx context.Context, companyID, key string, dst any) (found bool, version int64, err error)
	Set(ctx context.Context, companyID, key string, version int64, value any, ttl time.Duration) error
	Invalidate(ctx context.Context, companyID string) error
}
