package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/mortgage-simulator/internal/logging"
	"github.com/iwvelando/mortgage-simulator/internal/server"
	"github.com/iwvelando/mortgage-simulator/internal/store"
	"github.com/iwvelando/mortgage-simulator/pkg/constants"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}
	if *address != "" {
		cfg.Address = *address
	}

	logger, err := logging.New(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	st, err := store.New(startCtx, logger, cfg.Store)
	cancelStart()
	if err != nil {
		logger.Fatal("failed to open simulation store",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("failed to close simulation store",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}()

	var limiter *server.RateLimiter
	if !cfg.RateLimit.Disabled {
		limiter = server.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.WindowDuration())
		defer limiter.Stop()
	}

	srv := &http.Server{
		Addr: cfg.Address,
		Handler: server.NewHandler(logger, st, server.Options{
			MaxBodySize: cfg.BodySizeBytes(),
			Version:     version,
			Limiter:     limiter,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting mortgage simulator API",
			zap.String("op", "main"),
			zap.String("address", cfg.Address),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return
	case <-quit:
		logger.Info("shutting down server", zap.String("op", "main"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error during server shutdown",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	logger.Info("server exited", zap.String("op", "main"))
}
