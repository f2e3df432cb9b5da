package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	spycatagency "spycatagency/internal"
	"spycatagency/internal/config"
	"spycatagency/internal/metrics"
	"spycatagency/internal/repositories"
	"spycatagency/internal/services"
	"spycatagency/pkg/catapi"

	_ "github.com/go-sql-driver/mysql"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := initDBConnection(cfg.DatabaseDSN)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	catRepo := repositories.NewMySQLCatRepository(db)
	missionRepo := repositories.NewMySQLMissionRepository(db)
	targetRepo := repositories.NewMySQLTargetRepository(db)
	noteRepo := repositories.NewMySQLNoteRepository(db)

	catAPI := catapi.NewCatAPIClient(cfg.BreedAPIURL, cfg.BreedAPITimeout)
	missionService := services.NewDefaultMissionService(missionRepo, targetRepo, noteRepo, catRepo)
	catService := services.NewDefaultCatService(catRepo, missionService, catAPI)

	server := spycatagency.NewServer(logger, catService, missionService, metrics.New())

	go func() {
		logger.Info("starting server", "addr", cfg.Addr)
		if err := server.Run(cfg.Addr); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited")
}

func initDBConnection(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetConnMaxLifetime(time.Minute * 3)
	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(10)
	return db, nil
}
