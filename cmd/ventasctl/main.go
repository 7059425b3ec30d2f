// ventasctl tareas de administración: migraciones, catálogo de permisos y ventas de prueba.
//
// Uso:
//
//	ventasctl migrate up|down
//	ventasctl setup-permissions
//	ventasctl generate-sales --company ID --user ID [--days 30] [--min 1] [--max 5]
//	ventasctl generate-sales --list
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ventas-api/pkg/config"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// app dependencias compartidas por los subcomandos; se arman en PersistentPreRunE.
type app struct {
	cfg  *config.Config
	log  *logger.Logger
	pool *pgxpool.Pool
}

func (a *app) connect(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "ventasctl"})
	pool, err := postgres.NewPool(ctx, cfg.DB, postgres.PoolOptions{MaxConns: 4})
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	a.pool = pool
	return nil
}

func (a *app) close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "ventasctl",
		Short:         "Administración de la API de ventas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.connect(cmd.Context())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.close()
		},
	}
	root.AddCommand(
		newMigrateCommand(a),
		newSetupPermissionsCommand(a),
		newGenerateSalesCommand(a),
	)
	return root
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
