package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cargo-service/internal/api"
	"cargo-service/internal/config"
	"cargo-service/internal/db"
	"cargo-service/internal/db/queries"
	"cargo-service/internal/logger"

	"go.uber.org/zap"
)

func main() {
	// Загружаем конфигурацию
	cfg := config.LoadConfig()

	zapLogger, err := logger.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zapLogger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Устанавливаем соединение с базой данных
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	database, err := db.NewDatabase(connectCtx, &cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close()
	zapLogger.Info("connected to database")

	if err := database.EnsureSchema(connectCtx); err != nil {
		return err
	}

	cargoQueries := queries.NewCargoQueries(database)

	if cfg.SeedData {
		inserted, err := queries.SeedSampleCargo(connectCtx, cargoQueries, time.Now())
		if err != nil {
			// Без демонстрационных данных сервис остается рабочим
			zapLogger.Error("failed to seed sample cargo", zap.Error(err))
		} else if inserted > 0 {
			zapLogger.Info("sample cargo inserted", zap.Int("count", inserted))
		}
	}

	// Настраиваем маршруты
	router := api.SetupRouter(cfg, cargoQueries, zapLogger)

	// Настраиваем HTTP сервер
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		zapLogger.Info("server is starting",
			zap.String("port", cfg.Server.Port),
			zap.String("environment", cfg.Environment),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	zapLogger.Info("shutting down server")

	// Даем время на завершение текущих запросов
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	zapLogger.Info("server exited properly")
	return nil
}
