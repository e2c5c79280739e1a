package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/abdos10/think-like-genius/internal/data/store"
	"github.com/abdos10/think-like-genius/internal/http"
	"github.com/abdos10/think-like-genius/internal/observability"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Store    store.Store
	DB       *gorm.DB
	Metrics  *observability.Metrics
	Services Services
	Server   *http.Server

	shutdownOtel func(context.Context) error
}

// New loads config from configPath (optional) and the environment, then
// wires every component.
func New(ctx context.Context, configPath string) (*App, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	a, err := NewWithConfig(ctx, log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}
	return a, nil
}

func NewWithConfig(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	setGinMode(cfg.LogMode)
	now := time.Now

	shutdownOtel := observability.InitOTel(ctx, log, cfg.Otel)

	var metrics *observability.Metrics
	if cfg.Metrics {
		metrics = observability.NewMetrics()
	}

	st, gdb, err := wireStore(ctx, log, cfg.Store, now)
	if err != nil {
		_ = shutdownOtel(ctx)
		return nil, err
	}

	serviceset, err := wireServices(ctx, log, cfg, st, metrics, now)
	if err != nil {
		closeDB(gdb)
		_ = shutdownOtel(ctx)
		return nil, err
	}

	handlerset := wireHandlers(log, serviceset)
	server := http.NewServer(routerConfig(log, cfg, handlerset, metrics))

	return &App{
		Log:          log,
		Cfg:          cfg,
		Store:        st,
		DB:           gdb,
		Metrics:      metrics,
		Services:     serviceset,
		Server:       server,
		shutdownOtel: shutdownOtel,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("HTTP server listening", "addr", a.Cfg.HTTPAddr)
		return a.Server.Run(a.Cfg.HTTPAddr)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Cfg.Shutdown)
		defer cancel()
		a.Log.Info("Shutting down HTTP server")
		return a.Server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Services.Mirror != nil {
		if err := a.Services.Mirror.Close(); err != nil {
			a.Log.Warn("Closing history mirror failed", "error", err)
		}
	}
	closeDB(a.DB)
	if a.shutdownOtel != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.shutdownOtel(ctx); err != nil {
			a.Log.Warn("OpenTelemetry shutdown failed", "error", err)
		}
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
