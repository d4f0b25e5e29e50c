package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	domrepo "PortRisk/internal/domain/repository"
	"PortRisk/internal/usecase"
	"PortRisk/pkg/cache"
	"PortRisk/pkg/config"
	xhttp "PortRisk/pkg/http"
	"PortRisk/pkg/logger"
	"PortRisk/pkg/postgres"
)

// App owns the application lifecycle: the HTTP server, the daily ingest
// scheduler, and shutdown of the infrastructure clients.
type App struct {
	cfg       *config.Config
	log       *logger.Logger
	server    *xhttp.Server
	scheduler *usecase.Scheduler
	pg        *postgres.Client
	publisher domrepo.Publisher
	cache     cache.Service
}

// New creates the application.
func New(
	cfg *config.Config,
	log *logger.Logger,
	handlers []xhttp.Handler,
	scheduler *usecase.Scheduler,
	pg *postgres.Client,
	publisher domrepo.Publisher,
	cacheSvc cache.Service,
) *App {
	server := xhttp.NewServer(handlers,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(log),
	)
	return &App{
		cfg:       cfg,
		log:       log,
		server:    server,
		scheduler: scheduler,
		pg:        pg,
		publisher: publisher,
		cache:     cacheSvc,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.scheduler.Run(ctx)

	if err := a.server.Start(); err != nil {
		return err
	}
	a.log.Info("server started",
		logger.String("environment", a.cfg.Environment),
		logger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", logger.Error(err))
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("publisher close error", logger.Error(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("cache close error", logger.Error(err))
		}
	}
	if a.pg != nil {
		a.pg.Close()
	}

	a.log.Info("stopped")
	return nil
}
