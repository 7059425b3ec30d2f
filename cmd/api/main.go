package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/ventas-api/internal/application/analytics"
	"github.com/jhoicas/ventas-api/internal/application/auth"
	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/application/ports"
	"github.com/jhoicas/ventas-api/internal/application/prediction"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/infrastructure/cache"
	"github.com/jhoicas/ventas-api/internal/infrastructure/excel"
	"github.com/jhoicas/ventas-api/internal/infrastructure/modelstore"
	infrapdf "github.com/jhoicas/ventas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ventas-api/internal/infrastructure/queue"
	"github.com/jhoicas/ventas-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/ventas-api/internal/interfaces/http"
	"github.com/jhoicas/ventas-api/pkg/config"
	"github.com/jhoicas/ventas-api/pkg/jwt"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "api",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	permRepo := postgres.NewPermissionRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	permissionSvc := usecase.NewPermissionService(permRepo)
	if err := permissionSvc.SetupCatalog(ctx); err != nil {
		log.Fatal().Err(err).Msg("catálogo de permisos")
	}

	// Redis es opcional: sin él no hay cache de reportes ni cola de entrenamiento.
	var (
		reportCache ports.ReportCache
		taskQueue   ports.TaskQueue
	)
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		reportCache = cache.NewReportCache(rdb, cfg.App.Name)

		queueClient := queue.NewClient(queue.RedisOpt(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB))
		defer queueClient.Close()
		taskQueue = queueClient
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: reportes sin cache y entrenamiento en segundo plano deshabilitado")
	}

	var objectStorage ports.ObjectStorage
	if cfg.MinIO.Enabled() {
		minioStorage, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a MinIO")
		}
		objectStorage = minioStorage
	}

	models, err := modelstore.NewFileStore(cfg.Prediction.ModelsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de modelos")
	}

	tokens := jwt.Issuer{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		AccessTTL:  time.Duration(cfg.JWT.AccessMinutes) * time.Minute,
		RefreshTTL: time.Duration(cfg.JWT.RefreshHours) * time.Hour,
	}
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, permRepo, tokens, cfg.JWT.Secret)

	tenant := usecase.NewTenantResolver(companyRepo)
	companyUC := usecase.NewCompanyUseCase(companyRepo, userRepo, permRepo, subscriptionRepo, txRunner, objectStorage)
	productUC := usecase.NewProductUseCase(productRepo, tenant, reportCache, log)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, tenant)
	purchaseUC := inventory.NewPurchaseUseCase(txRunner, purchaseRepo, tenant, reportCache, log)
	saleUC := inventory.NewSaleUseCase(txRunner, saleRepo, tenant, reportCache, log)

	predictor := prediction.NewPredictor(saleRepo, models, log)
	predictionUC := prediction.NewUseCase(predictor, productRepo, companyRepo, tenant, taskQueue, log)

	reportUC := analytics.NewReportUseCase(reportRepo, tenant, reportCache, cfg.Redis.ReportCacheTTL, log)
	exportUC := analytics.NewExportUseCase(reportRepo, tenant, reportUC, excel.NewExporter(), infrapdf.NewMarotoFlowGenerator())

	planUC := usecase.NewPlanUseCase(planRepo)
	subscriptionUC := usecase.NewSubscriptionUseCase(subscriptionRepo, planRepo)
	paymentUC := usecase.NewPaymentUseCase(paymentRepo, subscriptionRepo, txRunner)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    4 << 20,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.AccessLog(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ventas API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CompanyUC:      companyUC,
		ProductUC:      productUC,
		SupplierUC:     supplierUC,
		PurchaseUC:     purchaseUC,
		SaleUC:         saleUC,
		PredictionUC:   predictionUC,
		ReportUC:       reportUC,
		ExportUC:       exportUC,
		PlanUC:         planUC,
		SubscriptionUC: subscriptionUC,
		PaymentUC:      paymentUC,
		Permissions:    permissionSvc,
		JWTSecret:      cfg.JWT.Secret,
		PageSize:       cfg.App.PageSize,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
