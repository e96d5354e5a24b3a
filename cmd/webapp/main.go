package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dracarys/library/internal/client"
	"github.com/dracarys/library/internal/infrastructure/config"
	"github.com/dracarys/library/internal/infrastructure/logger"
	"github.com/dracarys/library/internal/localstore"
	"github.com/dracarys/library/internal/webapp"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("starting webapp",
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.Webapp.Port),
		zap.String("api", cfg.Webapp.APIBaseURL),
	)

	store, err := localstore.Open(cfg.Webapp.StorePath)
	if err != nil {
		log.Fatal("failed to open local store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close local store", zap.Error(err))
		}
	}()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	api := client.New(cfg.Webapp.APIBaseURL)
	server := webapp.NewServer(api, store, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Webapp.Port,
		Handler:      server.Engine(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("webapp failed", zap.Error(err))
		}
	}()
	log.Info("webapp listening", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down webapp")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("webapp stopped")
}
