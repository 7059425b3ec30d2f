package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/infrastructure/postgres"
)

func newSetupPermissionsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "setup-permissions",
		Short: "Crea el catálogo de permisos y los asigna a los roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := usecase.NewPermissionService(postgres.NewPermissionRepository(a.pool))
			if err := svc.SetupCatalog(cmd.Context()); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d permisos en el catálogo\n", len(entity.PermissionCatalog))
			for _, role := range []string{entity.RoleEntrepreneur, entity.RoleEmployee} {
				fmt.Fprintf(out, "  %-13s %d permisos\n", role, len(entity.RolePermissions(role)))
			}
			return nil
		},
	}
}
