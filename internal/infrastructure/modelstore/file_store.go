// Package modelstore persiste los modelos de predicción como archivos JSON en disco.
package modelstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/ventas-api/internal/application/prediction"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/forecast"
)

var _ prediction.ModelStore = (*FileStore)(nil)

// FileStore guarda cada modelo en {dir}/{clave}_model.json.
type FileStore struct {
	dir string
}

// NewFileStore crea el directorio si no existe.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("modelstore: crear %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Path ruta del archivo del modelo.
func (s *FileStore) Path(key prediction.ModelKey) string {
	return filepath.Join(s.dir, key.String()+"_model.json")
}

// Load lee el modelo. Inexistente, corrupto o sin fecha de entrenamiento → domain.ErrModelStale.
// La vigencia (24 h) la decide el predictor.
func (s *FileStore) Load(_ context.Context, key prediction.ModelKey) (*forecast.Model, error) {
	raw, err := os.ReadFile(s.Path(key))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModelStale, err)
	}
	var m forecast.Model
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModelStale, err)
	}
	if m.LastTrained == nil ||
		len(m.Regression.Coef) != forecast.NumFeatures ||
		len(m.Scaler.Mean) != forecast.NumFeatures ||
		len(m.Scaler.Scale) != forecast.NumFeatures {
		return nil, fmt.Errorf("%w: %s incompleto", domain.ErrModelStale, key)
	}
	return &m, nil
}

// Save escribe en un archivo temporal y lo renombra para no dejar modelos a medio escribir.
func (s *FileStore) Save(_ context.Context, key prediction.ModelKey, m *forecast.Model) error {
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("modelstore: serializar %s: %w", key, err)
	}
	tmp, err := os.CreateTemp(s.dir, key.String()+"_*.tmp")
	if err != nil {
		return fmt.Errorf("modelstore: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("modelstore: escribir %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("modelstore: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path(key)); err != nil {
		return fmt.Errorf("modelstore: %w", err)
	}
	return nil
}
