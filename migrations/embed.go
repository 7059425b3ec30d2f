// Package migrations contiene el esquema SQL versionado, embebido en el binario.
// Archivos: NNNN_nombre.up.sql / NNNN_nombre.down.sql.
package migrations

import "embed"

// FS sistema de archivos con todos los .sql.
//
//go:embed *.sql
var FS embed.FS
