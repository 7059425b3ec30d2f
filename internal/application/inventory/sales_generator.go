package inventory

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// SaleRecorder guarda una venta con su efecto en el stock (lo implementa *SaleUseCase).
type SaleRecorder interface {
	Record(ctx context.Context, s *entity.Sale) error
}

// GenerateOptions parámetros del generador de ventas de prueba.
type GenerateOptions struct {
	CompanyID string
	UserID    string
	Days      int
	Min       int // ventas mínimas por día
	Max       int // ventas máximas por día
}

// GenerateResult ventas creadas y omitidas por falta de stock.
type GenerateResult struct {
	Created int
	Skipped int
}

// SalesGenerator crea ventas aleatorias para tener histórico con qué entrenar el predictor.
type SalesGenerator struct {
	companies repository.CompanyRepository
	users     repository.UserRepository
	products  repository.ProductRepository
	sales     SaleRecorder
	log       *logger.Logger
	rnd       *rand.Rand
	now       func() time.Time
}

// NewSalesGenerator construye el generador. rnd nil usa una semilla aleatoria.
func NewSalesGenerator(
	companies repository.CompanyRepository,
	users repository.UserRepository,
	products repository.ProductRepository,
	sales SaleRecorder,
	log *logger.Logger,
	rnd *rand.Rand,
) *SalesGenerator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &SalesGenerator{
		companies: companies,
		users:     users,
		products:  products,
		sales:     sales,
		log:       log.Named("generate-sales"),
		rnd:       rnd,
		now:       time.Now,
	}
}

// Generate registra entre Min y Max ventas por día durante los últimos Days días.
// Las ventas que dejarían stock negativo se omiten y se cuentan en Skipped.
func (g *SalesGenerator) Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	if opts.CompanyID == "" || opts.UserID == "" {
		return nil, fmt.Errorf("%w: compañía y usuario son obligatorios", domain.ErrInvalidInput)
	}
	if opts.Days <= 0 || opts.Min < 0 || opts.Max < opts.Min {
		return nil, fmt.Errorf("%w: se requiere days > 0 y 0 <= min <= max", domain.ErrInvalidInput)
	}

	company, err := g.companies.GetByID(ctx, opts.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("no existe una compañía con ID %s: %w", opts.CompanyID, domain.ErrNotFound)
	}
	user, err := g.users.GetByID(ctx, opts.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("no existe un usuario con ID %s: %w", opts.UserID, domain.ErrUserNotFound)
	}
	products, err := g.products.ListAllByCompany(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("no hay productos para la compañía %s: %w", company.Name, domain.ErrInvalidInput)
	}

	res := &GenerateResult{}
	now := g.now()
	for day := 0; day < opts.Days; day++ {
		date := now.AddDate(0, 0, -day)
		n := opts.Min + g.rnd.IntN(opts.Max-opts.Min+1)
		for i := 0; i < n; i++ {
			product := products[g.rnd.IntN(len(products))]
			sale := NewSale(company.ID, user.ID, dto.SaleRequest{
				ProductID: product.ID,
				Customer:  fmt.Sprintf("Cliente de prueba %d", 1+g.rnd.IntN(100)),
				Quantity:  1 + g.rnd.IntN(10),
				UnitPrice: product.Price,
				Date:      &date,
			}, now)

			err := g.sales.Record(ctx, sale)
			switch {
			case errors.Is(err, domain.ErrInsufficientStock):
				res.Skipped++
			case err != nil:
				return res, err
			default:
				res.Created++
			}
		}
		if day%5 == 0 || day == opts.Days-1 {
			g.log.Info().Int("day", day+1).Int("days", opts.Days).Msg("progreso")
		}
	}
	g.log.Info().Int("created", res.Created).Int("skipped", res.Skipped).Str("company_id", company.ID).Msg("ventas de prueba generadas")
	return res, nil
}
