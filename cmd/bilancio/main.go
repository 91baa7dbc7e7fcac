package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"bilancio/internal/config"
	apphttp "bilancio/internal/http"
	"bilancio/internal/log"
	"bilancio/internal/report"
	"bilancio/internal/storage"
	"bilancio/internal/store"
	mem "bilancio/internal/store/memory"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}

	var (
		txReader  store.TransactionReader
		catReader store.CategoryReader
	)
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository",
				log.FieldError, err.Error(), log.FieldPath, cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		txReader, catReader = repo, repo
		logger.Info("Initialized SQLite backend", log.FieldBackend, cfg.DataBackend)
	default:
		s := mem.NewFromFiles(cfg.SeedDir)
		txReader, catReader = s, s
		logger.Info("Initialized memory backend", log.FieldBackend, cfg.DataBackend)
	}

	engine := report.NewEngine(txReader, catReader, logger.WithComponent(log.ComponentReport))
	srv := apphttp.NewServer(":"+cfg.Port, engine, logger, cfg.RequestTimeout)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err.Error())
		}
		cancel()
	}()

	logger.Info("Starting bilancio server", "port", cfg.Port, log.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err.Error(), "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
