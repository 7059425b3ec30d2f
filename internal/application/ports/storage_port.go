package ports

import (
	"context"
	"io"
)

// ObjectStorage almacenamiento de archivos (logos de compañía).
type ObjectStorage interface {
	// Upload guarda el objeto y devuelve su URL pública.
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}
