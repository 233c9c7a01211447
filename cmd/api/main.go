package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/shop-service/internal/api/http"
	"github.com/spec-kit/shop-service/internal/api/http/handlers"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/config"
	"github.com/spec-kit/shop-service/internal/events"
	"github.com/spec-kit/shop-service/internal/observability"
	"github.com/spec-kit/shop-service/internal/persistence"
	"github.com/spec-kit/shop-service/internal/repository"
	"github.com/spec-kit/shop-service/internal/service"
	"github.com/spec-kit/shop-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(cfg.Auth, userRepo, dispatcher)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, redis.ClientHandle(), logger)
	orderService := service.NewOrderService(orderRepo, productRepo, dispatcher)

	exemptions, err := auth.NewExemptionList(auth.DefaultExemptions())
	if err != nil {
		logger.Fatal("failed to compile exemption rules", zap.Error(err))
	}
	gate := auth.NewGate(exemptions, authService.AccessCodec())
	sessions := auth.NewSessionWriter(cfg.App.IsProduction())

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.CORSAllowOrigins)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:      handlers.NewUsersHandler(authService, userRepo, sessions),
		Products:   handlers.NewProductsHandler(catalogService),
		Categories: handlers.NewCategoriesHandler(catalogService),
		Orders:     handlers.NewOrdersHandler(orderService),
		Gate:       gate,
		UploadsDir: "./public/uploads",
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
