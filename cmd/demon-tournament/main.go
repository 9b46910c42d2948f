package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/hyukkyo/demon-tournament/internal/api"
	"github.com/hyukkyo/demon-tournament/internal/constants"
	"github.com/hyukkyo/demon-tournament/internal/logging"
	"github.com/hyukkyo/demon-tournament/internal/realtime"
	"github.com/hyukkyo/demon-tournament/internal/service"
	"github.com/hyukkyo/demon-tournament/internal/version"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func main() {
	cfg := loadConfigOrExit()
	logging.Init(cfg.LogLevel, cfg.LogFormat)
	logging.Info("Starting demon-tournament", logging.Fields{"version": version.String()})

	repo := createRepositoryOrExit(cfg.DatabasePath)
	hub := realtime.NewHub()
	ctl := service.NewController(repo, hub, service.Options{
		EnergyPolicy:  cfg.EnergyPolicy,
		ActionTimeout: cfg.ActionTimeout,
		CleanupDelay:  cfg.CleanupDelay,
	})

	router := gin.Default()
	api.RegisterRoutes(router, api.NewMatchHandler(ctl, hub))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: cfg.ServerAddress, Handler: router}
	workerID := uuid.NewString()
	if err := serve(ctx, srv, ctl, cfg.ScanInterval, workerID); err != nil {
		logging.Fatal("Server stopped with error", err, logging.Fields{constants.LogFieldWorker: workerID})
	}
}
