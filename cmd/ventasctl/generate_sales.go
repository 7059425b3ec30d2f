package main

import (
	"context"
	"fmt"
	"io"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/internal/infrastructure/postgres"
)

const (
	companyFlag = "company"
	userFlag    = "user"
)

var generateFlags = map[string]cobraflags.Flag{
	companyFlag: &cobraflags.StringFlag{
		Name:  companyFlag,
		Value: "",
		Usage: "ID de la compañía",
	},
	userFlag: &cobraflags.StringFlag{
		Name:  userFlag,
		Value: "",
		Usage: "ID del usuario que registra las ventas",
	},
}

func newGenerateSalesCommand(a *app) *cobra.Command {
	var (
		days, minSales, maxSales int
		list                     bool
	)
	cmd := &cobra.Command{
		Use:   "generate-sales",
		Short: "Genera ventas aleatorias de los últimos días para entrenar el predictor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			companies := postgres.NewCompanyRepository(a.pool)
			users := postgres.NewUserRepository(a.pool)
			if list {
				return printInventory(cmd.Context(), cmd.OutOrStdout(), companies, users)
			}

			companyID := generateFlags[companyFlag].GetString()
			userID := generateFlags[userFlag].GetString()
			if companyID == "" || userID == "" {
				return fmt.Errorf("--%s y --%s son obligatorios (use --list para ver los disponibles)", companyFlag, userFlag)
			}

			products := postgres.NewProductRepository(a.pool)
			sales := inventory.NewSaleUseCase(
				postgres.NewTxRunner(a.pool),
				postgres.NewSaleRepository(a.pool),
				usecase.NewTenantResolver(companies),
				nil,
				a.log,
			)
			gen := inventory.NewSalesGenerator(companies, users, products, sales, a.log, nil)
			res, err := gen.Generate(cmd.Context(), inventory.GenerateOptions{
				CompanyID: companyID,
				UserID:    userID,
				Days:      days,
				Min:       minSales,
				Max:       maxSales,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d ventas creadas, %d omitidas por falta de stock\n", res.Created, res.Skipped)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, generateFlags)
	cmd.Flags().IntVar(&days, "days", 30, "días hacia atrás")
	cmd.Flags().IntVar(&minSales, "min", 1, "ventas mínimas por día")
	cmd.Flags().IntVar(&maxSales, "max", 5, "ventas máximas por día")
	cmd.Flags().BoolVar(&list, "list", false, "lista compañías y usuarios disponibles")
	return cmd
}

func printInventory(ctx context.Context, out io.Writer, companies repository.CompanyRepository, users repository.UserRepository) error {
	summaries, err := companies.ListSummaries(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Compañías:")
	for _, s := range summaries {
		fmt.Fprintf(out, "  %s  %-30s %d productos\n", s.Company.ID, s.Company.Name, s.ProductsCount)
	}
	all, err := users.ListAll(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Usuarios:")
	for _, u := range all {
		fmt.Fprintf(out, "  %s  %-30s %-13s %s\n", u.ID, u.Email, u.RoleName, u.CompanyIDValue())
	}
	return nil
}
