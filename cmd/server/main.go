package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"algojudge/internal/api"
	"algojudge/internal/app/service"
	"algojudge/internal/common/security"
	"algojudge/internal/domain/repository"
	"algojudge/internal/judge/registry"
	"algojudge/internal/judge/sandbox"
	"algojudge/internal/platform/cache"
	"algojudge/internal/platform/config"
	"algojudge/internal/platform/database"

	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Could not initialize logger: %v", err)
	}
	defer logger.Sync()

	// 2. Initialize JWT
	security.InitJWT()

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	logger.Info("database connected")

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	logger.Info("redis connected")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	problemRepo := repository.NewPgProblemRepository(database.DB)
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)
	pointsRepo := repository.NewPgPointsRepository(database.DB)

	// 6. Initialize judging core
	reg := registry.New()
	engine := sandbox.NewEngine(reg, sandbox.Options{
		WorkspaceRoot: config.AppConfig.SandboxWorkspaceRoot,
		Timeout:       config.AppConfig.SandboxTimeout,
		MaxConcurrent: config.AppConfig.SandboxMaxConcurrent,
	}, logger)

	// 7. Initialize Services
	roleService := service.NewRoleService(userRepo, cache.RDB, config.AppConfig.RoleCacheTTL, logger)
	evaluator := service.NewTestCaseEvaluator(problemRepo, engine, config.AppConfig.RunVisibleTestCases, logger)
	scoringService := service.NewScoringService(database.DB, submissionRepo, problemRepo, pointsRepo, logger)
	executionService := service.NewExecutionService(reg, problemRepo, submissionRepo, evaluator, scoringService, roleService, logger)
	starterCodeService := service.NewStarterCodeService(problemRepo, roleService)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(executionService, starterCodeService, reg)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("port", config.AppConfig.APIPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("could not listen", zap.Error(err))
		}
	}()

	<-stop

	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped gracefully")
}
