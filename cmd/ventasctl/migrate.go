package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ventas-api/migrations"
)

func newMigrateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica o revierte las migraciones SQL embebidas",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica todas las migraciones pendientes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				m, err := postgres.NewMigrator(a.pool, migrations.FS, a.log)
				if err != nil {
					return err
				}
				n, err := m.Up(cmd.Context())
				if err != nil {
					return err
				}
				version, err := m.CurrentVersion(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d migraciones aplicadas; versión actual %d\n", n, version)
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revierte la última migración aplicada",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				m, err := postgres.NewMigrator(a.pool, migrations.FS, a.log)
				if err != nil {
					return err
				}
				n, err := m.Down(cmd.Context())
				if err != nil {
					return err
				}
				if n == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no hay migraciones para revertir")
					return nil
				}
				version, err := m.CurrentVersion(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "última migración revertida; versión actual %d\n", version)
				return nil
			},
		},
	)
	return cmd
}
