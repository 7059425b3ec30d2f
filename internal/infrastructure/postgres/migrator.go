package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ventas-api/pkg/logger"
)

const migrationsTableSQL = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version     INTEGER PRIMARY KEY,
    description TEXT NOT NULL,
    applied_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

var migrationFileRe = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.(up|down)\.sql$`)

// Migration par up/down de una versión del esquema.
type Migration struct {
	Version     int
	Description string
	Up          string
	Down        string
}

// LoadMigrations lee NNNN_nombre.up.sql / NNNN_nombre.down.sql de fsys, ordenadas por versión.
// Una versión sin up o sin down es un error.
func LoadMigrations(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("leer migraciones: %w", err)
	}
	byVersion := make(map[int]*Migration)
	for _, e := range entries {
		m := migrationFileRe.FindStringSubmatch(e.Name())
		if e.IsDir() || m == nil {
			continue
		}
		version, _ := strconv.Atoi(m[1])
		body, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", e.Name(), err)
		}
		mig, ok := byVersion[version]
		if !ok {
			mig = &Migration{Version: version, Description: m[2]}
			byVersion[version] = mig
		}
		if m[3] == "up" {
			mig.Up = string(body)
		} else {
			mig.Down = string(body)
		}
	}

	out := make([]Migration, 0, len(byVersion))
	for _, mig := range byVersion {
		if mig.Up == "" || mig.Down == "" {
			return nil, fmt.Errorf("migración %d incompleta: falta up o down", mig.Version)
		}
		out = append(out, *mig)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// Migrator aplica las migraciones y registra cada versión en schema_migrations.
type Migrator struct {
	pool       *pgxpool.Pool
	migrations []Migration
	log        *logger.Logger
}

// NewMigrator carga las migraciones de fsys.
func NewMigrator(pool *pgxpool.Pool, fsys fs.FS, log *logger.Logger) (*Migrator, error) {
	migrations, err := LoadMigrations(fsys)
	if err != nil {
		return nil, err
	}
	return &Migrator{pool: pool, migrations: migrations, log: log.Named("migrate")}, nil
}

// CurrentVersion última versión aplicada (0 si ninguna).
func (m *Migrator) CurrentVersion(ctx context.Context) (int, error) {
	if _, err := m.pool.Exec(ctx, migrationsTableSQL); err != nil {
		return 0, fmt.Errorf("crear schema_migrations: %w", err)
	}
	var v int
	err := m.pool.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&v)
	return v, err
}

// Up aplica, cada una en su transacción, las migraciones posteriores a la versión actual.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return 0, err
	}
	applied := 0
	for _, mig := range m.migrations {
		if mig.Version <= current {
			continue
		}
		err := m.inTx(ctx, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, mig.Up); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, description) VALUES ($1, $2)`,
				mig.Version, mig.Description)
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("aplicar migración %d: %w", mig.Version, err)
		}
		m.log.Info().Int("version", mig.Version).Str("description", mig.Description).Msg("migración aplicada")
		applied++
	}
	return applied, nil
}

// Down revierte la última migración aplicada. Sin migraciones aplicadas no hace nada.
func (m *Migrator) Down(ctx context.Context) (int, error) {
	current, err := m.CurrentVersion(ctx)
	if err != nil || current == 0 {
		return 0, err
	}
	for i := len(m.migrations) - 1; i >= 0; i-- {
		mig := m.migrations[i]
		if mig.Version != current {
			continue
		}
		err := m.inTx(ctx, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, mig.Down); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `DELETE FROM schema_migrations WHERE version = $1`, mig.Version)
			return err
		})
		if err != nil {
			return 0, fmt.Errorf("revertir migración %d: %w", mig.Version, err)
		}
		m.log.Info().Int("version", mig.Version).Msg("migración revertida")
		return 1, nil
	}
	return 0, fmt.Errorf("la versión aplicada %d no existe en los archivos de migración", current)
}

func (m *Migrator) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
