package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/analytics"
	"github.com/jhoicas/ventas-api/internal/application/auth"
	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/application/prediction"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	CompanyUC      *usecase.CompanyUseCase
	ProductUC      *usecase.ProductUseCase
	SupplierUC     *usecase.SupplierUseCase
	PurchaseUC     *inventory.PurchaseUseCase
	SaleUC         *inventory.SaleUseCase
	PredictionUC   *prediction.UseCase
	ReportUC       *analytics.ReportUseCase
	ExportUC       *analytics.ExportUseCase
	PlanUC         *usecase.PlanUseCase
	SubscriptionUC *usecase.SubscriptionUseCase
	PaymentUC      *usecase.PaymentUseCase
	Permissions    permissionChecker
	JWTSecret      string
	PageSize       int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	perm := func(codename string) fiber.Handler { return RequirePermission(codename, deps.Permissions) }

	// Auth (público salvo /me)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Plans (público)
	subscriptionHandler := NewSubscriptionHandler(deps.PlanUC, deps.SubscriptionUC, deps.PaymentUC)
	api.Get("/plans", subscriptionHandler.ListPlans)
	api.Get("/plans/:id", subscriptionHandler.GetPlan)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	subscriptions := protected.Group("/subscriptions")
	subscriptions.Get("/", subscriptionHandler.ListSubscriptions)
	subscriptions.Post("/", subscriptionHandler.CreateSubscription)
	subscriptions.Get("/:id", subscriptionHandler.GetSubscription)

	payments := protected.Group("/payments")
	payments.Get("/", subscriptionHandler.ListPayments)
	payments.Post("/", subscriptionHandler.CreatePayment)
	payments.Get("/:id", subscriptionHandler.GetPayment)

	// Companies: la propiedad se verifica en el caso de uso
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.AuthUC)
	companies := protected.Group("/companies")
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)
	companies.Post("/:id/logo", companyHandler.UploadLogo)
	companies.Get("/:id/employees", companyHandler.ListEmployees)
	companies.Post("/:id/employees", perm(entity.PermManageCompanyUsers), companyHandler.AddEmployee)
	companies.Put("/:id/employees/permissions", perm(entity.PermManageCompanyUsers), companyHandler.UpdateEmployeePermissions)

	productHandler := NewProductHandler(deps.ProductUC, deps.PageSize)
	products := protected.Group("/products")
	products.Get("/", perm(entity.PermViewProducts), productHandler.List)
	products.Post("/", perm(entity.PermCreateProduct), productHandler.Create)
	products.Get("/:id", perm(entity.PermViewProducts), productHandler.GetByID)
	products.Put("/:id", perm(entity.PermEditProduct), productHandler.Update)
	products.Delete("/:id", perm(entity.PermDeleteProduct), productHandler.Delete)

	supplierHandler := NewSupplierHandler(deps.SupplierUC, deps.PageSize)
	suppliers := protected.Group("/suppliers")
	suppliers.Get("/", perm(entity.PermViewSupplier), supplierHandler.List)
	suppliers.Post("/", perm(entity.PermAddSupplier), supplierHandler.Create)
	suppliers.Get("/:id", perm(entity.PermViewSupplier), supplierHandler.GetByID)
	suppliers.Put("/:id", perm(entity.PermChangeSupplier), supplierHandler.Update)
	suppliers.Delete("/:id", perm(entity.PermDeleteSupplier), supplierHandler.Delete)

	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, deps.PageSize)
	purchases := protected.Group("/purchases")
	purchases.Get("/statistics", perm(entity.PermViewPurchases), purchaseHandler.Statistics)
	purchases.Get("/", perm(entity.PermViewPurchases), purchaseHandler.List)
	purchases.Post("/", perm(entity.PermCreatePurchase), purchaseHandler.Create)
	purchases.Get("/:id", perm(entity.PermViewPurchases), purchaseHandler.GetByID)
	purchases.Put("/:id", perm(entity.PermEditPurchase), purchaseHandler.Update)
	purchases.Delete("/:id", perm(entity.PermDeletePurchase), purchaseHandler.Delete)

	saleHandler := NewSaleHandler(deps.SaleUC, deps.PredictionUC, deps.PageSize)
	sales := protected.Group("/sales")
	sales.Post("/predict", perm(entity.PermViewSales), saleHandler.Predict)
	sales.Post("/predict/train", perm(entity.PermViewSales), RequireRole(entity.RoleEntrepreneur), saleHandler.Train)
	sales.Get("/", perm(entity.PermViewSales), saleHandler.List)
	sales.Post("/", perm(entity.PermCreateSale), saleHandler.Create)
	sales.Get("/:id", perm(entity.PermViewSales), saleHandler.GetByID)
	sales.Put("/:id", perm(entity.PermEditSale), saleHandler.Update)
	sales.Delete("/:id", perm(entity.PermDeleteSale), saleHandler.Delete)

	reportHandler := NewReportHandler(deps.ReportUC, deps.ExportUC)
	reports := protected.Group("/reports", perm(entity.PermViewSales))
	reports.Get("/statistics", reportHandler.Statistics)
	reports.Get("/profitability", reportHandler.Profitability)
	reports.Get("/inventory-rotation", reportHandler.Rotation)
	reports.Get("/purchase-forecast", reportHandler.PurchaseForecast)
	reports.Get("/monthly-flow", reportHandler.MonthlyFlow)
	reports.Get("/monthly-flow.pdf", reportHandler.MonthlyFlowPDF)
	reports.Get("/recent-movements", reportHandler.RecentMovements)
	reports.Get("/export/sales.xlsx", reportHandler.ExportSales)
	reports.Get("/export/purchases.xlsx", reportHandler.ExportPurchases)
}
