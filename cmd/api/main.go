package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/examhub/exam-service/internal/api/http"
	"github.com/examhub/exam-service/internal/api/http/handlers"
	"github.com/examhub/exam-service/internal/auth"
	"github.com/examhub/exam-service/internal/config"
	"github.com/examhub/exam-service/internal/events"
	"github.com/examhub/exam-service/internal/observability"
	"github.com/examhub/exam-service/internal/persistence"
	"github.com/examhub/exam-service/internal/repository"
	"github.com/examhub/exam-service/internal/service"
	"github.com/examhub/exam-service/internal/worker"
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

	redis, err := persistence.NewRedis(cfg.Redis, logger)
	if err != nil {
		logger.Fatal("failed to configure redis", zap.Error(err))
	}
	defer redis.Close()

	metrics := observability.NewMetrics()

	codec, err := auth.NewCodec(cfg.Auth.JWTSecret)
	if err != nil {
		logger.Fatal("failed to init token codec", zap.Error(err))
	}
	revocations := repository.NewRevocationRepository(redis.Client, nil)
	verifier := auth.NewVerifier(codec, revocations, cfg.Auth.RevocationTimeout)
	issuer := auth.NewIssuer(codec, cfg.Auth.TokenTTL)
	authMiddleware := auth.NewMiddleware(auth.NewGate(verifier), logger, metrics)

	credentials, err := service.NewPasswordCredentialStore(repository.NewUserRepository(pg.PoolHandle()), cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to init credential store", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	authService := service.NewAuthService(service.AuthDependencies{
		Credentials:       credentials,
		Issuer:            issuer,
		Verifier:          verifier,
		Revocations:       revocations,
		Dispatcher:        dispatcher,
		Logger:            logger,
		RevocationTimeout: cfg.Auth.RevocationTimeout,
	})

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Auth:           handlers.NewAuthHandler(authService),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
