package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/ventas-api/internal/application/prediction"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/infrastructure/modelstore"
	"github.com/jhoicas/ventas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ventas-api/internal/infrastructure/queue"
	"github.com/jhoicas/ventas-api/pkg/config"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// Worker asynq: entrenamientos bajo demanda y reentrenamiento diario programado.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: "worker",
	})
	if !cfg.Redis.Enabled() {
		log.Fatal().Msg("REDIS_ADDR es obligatorio para el worker")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, postgres.PoolOptions{MaxConns: 4})
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	models, err := modelstore.NewFileStore(cfg.Prediction.ModelsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de modelos")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	predictor := prediction.NewPredictor(postgres.NewSaleRepository(pool), models, log)
	predictionUC := prediction.NewUseCase(
		predictor,
		postgres.NewProductRepository(pool),
		companyRepo,
		usecase.NewTenantResolver(companyRepo),
		nil, // el worker no encola
		log,
	)

	opt := queue.RedisOpt(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	srv := queue.NewServer(opt, 4, log)
	mux := asynq.NewServeMux()
	queue.NewHandlers(predictionUC, log).Register(mux)

	scheduler, err := queue.NewScheduler(opt, cfg.Prediction.RetrainCron)
	if err != nil {
		log.Fatal().Err(err).Str("cron", cfg.Prediction.RetrainCron).Msg("programar reentrenamiento")
	}
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("iniciar scheduler")
	}
	if err := srv.Start(mux); err != nil {
		log.Fatal().Err(err).Msg("iniciar worker")
	}
	log.Info().Str("cron", cfg.Prediction.RetrainCron).Msg("worker iniciado")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, deteniendo worker...")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Info().Msg("worker detenido")
}
