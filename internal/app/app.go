// Package app assembles the ledger, trading service and metrics from a
// config. Every binary starts here.
package app

import (
	"fmt"

	"energy-ledger/internal/config"
	"energy-ledger/internal/ledger"
	"energy-ledger/internal/metrics"
	"energy-ledger/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type App struct {
	Config   *config.Config
	Store    *ledger.Store
	Service  *service.Service
	Registry *prometheus.Registry
	Logger   *zap.Logger
}

// NewLogger returns a production logger for env "production" and a
// development logger otherwise.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	grid, err := cfg.InitialGrid()
	if err != nil {
		return nil, err
	}
	seed, err := cfg.SeedAssets()
	if err != nil {
		return nil, err
	}

	store, err := ledger.Open(ledger.Options{
		Backend: cfg.Ledger.Backend,
		Dir:     cfg.Ledger.Dir,
		Name:    cfg.Ledger.Name,
	}, logger)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	svc := service.New(store, service.Options{
		Seed:        seed,
		InitialGrid: grid,
		Metrics:     m,
		Logger:      logger,
	})

	g, err := svc.GridPower()
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("read grid state: %w", err)
	}
	// An existing ledger is not re-initialized, so seed the gauge here.
	m.SetGridPower(g)
	logger.Info("ledger opened",
		zap.String("backend", cfg.Ledger.Backend),
		zap.String("dir", cfg.Ledger.Dir),
		zap.String("grid_power", g.String()))

	return &App{Config: cfg, Store: store, Service: svc, Registry: reg, Logger: logger}, nil
}

func (a *App) Close() error {
	return a.Store.Close()
}
