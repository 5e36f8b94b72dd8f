package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"teams-api/internal/application"
	"teams-api/internal/config"
	"teams-api/internal/domain/repository"
	"teams-api/internal/infrastructure/database"
	"teams-api/internal/infrastructure/logger"
	"teams-api/internal/metrics"
	repoimpl "teams-api/internal/repository"
	"teams-api/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	sugar, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	if err := run(cfg, sugar); err != nil {
		sugar.Fatalw("server terminated", "error", err)
	}
}

func run(cfg *config.Config, sugar *zap.SugaredLogger) error {
	gin.SetMode(cfg.GinMode)

	teamsRepo, closeStore, err := newTeamsRepository(cfg, sugar)
	if err != nil {
		return err
	}
	defer closeStore()

	recorder := metrics.NewRecorder()
	teamsService := application.NewTeamsService(teamsRepo, sugar, recorder)
	engine := router.New(teamsService, recorder, sugar)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		sugar.Infow("Teams API server starting", "addr", srv.Addr, "mode", cfg.GinMode, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case sig := <-quit:
		sugar.Infow("shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	sugar.Info("server exited gracefully")
	return nil
}

// newTeamsRepository 設定に応じてストアを選択する
func newTeamsRepository(cfg *config.Config, sugar *zap.SugaredLogger) (repository.TeamsRepository, func(), error) {
	switch cfg.Store {
	case config.StorePostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := database.NewPostgreSQLClient(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		sugar.Info("Connected to PostgreSQL")
		return repoimpl.NewPostgresTeamsRepository(client), func() { _ = client.Close() }, nil
	default:
		client, err := database.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			return nil, nil, err
		}
		if err := client.HealthCheck(); err != nil {
			return nil, nil, err
		}
		sugar.Infow("Connected to Supabase", "url", client.URL())
		return repoimpl.NewSupabaseTeamsRepository(client), func() {}, nil
	}
}
