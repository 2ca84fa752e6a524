// Package service exposes the ledger's named operations: asset CRUD, the
// trading batch and the read-only views. Each call runs in exactly one
// ledger transaction.
package service

import (
	"fmt"
	"time"

	"energy-ledger/internal/grid"
	"energy-ledger/internal/ledger"
	"energy-ledger/internal/metrics"
	"energy-ledger/internal/model"
	"energy-ledger/internal/trading"

	"go.uber.org/zap"
)

type Options struct {
	// Seed is written by InitLedger.
	Seed []model.Asset
	// InitialGrid is the grid state before the first trade. The zero value
	// means 10KW.
	InitialGrid model.GridState
	// Clock stamps transaction log entries. Defaults to time.Now.
	Clock   func() time.Time
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

type Service struct {
	store   *ledger.Store
	engine  *trading.Engine
	grid    *grid.Accumulator
	seed    []model.Asset
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func New(store *ledger.Store, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Nop()
	}
	if opts.InitialGrid.Unit == "" && opts.InitialGrid.Power.IsZero() {
		opts.InitialGrid = model.NewGridState(model.DefaultGridPower, model.DefaultGridUnit)
	}
	return &Service{
		store:   store,
		engine:  trading.New(),
		grid:    grid.New(opts.InitialGrid, opts.Clock),
		seed:    opts.Seed,
		metrics: opts.Metrics,
		logger:  opts.Logger.Named("service"),
	}
}

// TradeReport is the outcome of one committed trading batch.
type TradeReport struct {
	Result  *trading.Result
	Grid    model.GridState
	Entries []model.LogEntry
}

// String is the trade summary, e.g.
// "Net power change: 800KW, New grid power: 810KW".
func (r *TradeReport) String() string {
	return fmt.Sprintf("Net power change: %s%s, New grid power: %s",
		r.Result.NetGridDelta, r.Grid.Unit, r.Grid)
}

// Trade matches up to n producer/consumer pairs, settles them, persists the
// updated assets and folds the batch into grid power and the transaction
// log, all in one ledger transaction.
func (s *Service) Trade(n int) (*TradeReport, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: trade count must be >= 0, got %d", model.ErrMalformedInput, n)
	}
	var report *TradeReport
	err := s.store.Update(func(tx *ledger.Tx) error {
		assets := ledger.NewAssets(tx)
		all, err := assets.List()
		if err != nil {
			return err
		}
		res, err := s.engine.Run(all, n)
		if err != nil {
			return err
		}
		for _, a := range res.UpdatedAssets() {
			if err := assets.Put(a); err != nil {
				return fmt.Errorf("persist asset %s: %w", a.ID, err)
			}
		}
		applied, err := s.grid.Apply(ledger.NewJournal(tx), res.Settlements)
		if err != nil {
			return fmt.Errorf("apply grid batch: %w", err)
		}
		report = &TradeReport{Result: res, Grid: applied.After, Entries: applied.Entries}
		return nil
	})
	if err != nil {
		s.logger.Warn("trade aborted", zap.Int("n", n), zap.Error(err))
		return nil, err
	}

	s.metrics.ObserveTrade(report.Result.Settlements, report.Grid, len(report.Entries))
	s.logger.Info("trade settled",
		zap.Int("n", n),
		zap.Int("pairs", len(report.Result.Settlements)),
		zap.String("net_grid_delta", report.Result.NetGridDelta.String()),
		zap.String("grid_power", report.Grid.String()))
	return report, nil
}

// Ratios reports the consumption/generation ratio of every matchable pair.
func (s *Service) Ratios() ([]trading.Ratio, error) {
	var out []trading.Ratio
	err := s.store.View(func(tx *ledger.Tx) error {
		all, err := ledger.NewAssets(tx).List()
		if err != nil {
			return err
		}
		out = trading.Ratios(all)
		return nil
	})
	return out, err
}

func (s *Service) ViewRatios() (string, error) {
	ratios, err := s.Ratios()
	if err != nil {
		return "", err
	}
	return trading.FormatRatios(ratios), nil
}

func (s *Service) TransactionLog() ([]model.LogEntry, error) {
	var out []model.LogEntry
	err := s.store.View(func(tx *ledger.Tx) error {
		entries, err := ledger.NewJournal(tx).Entries()
		out = entries
		return err
	})
	return out, err
}

// ViewTransactionLog joins every log entry with newlines.
func (s *Service) ViewTransactionLog() (string, error) {
	entries, err := s.TransactionLog()
	if err != nil {
		return "", err
	}
	return model.JoinLog(entries), nil
}

func (s *Service) GridPower() (model.GridState, error) {
	var g model.GridState
	err := s.store.View(func(tx *ledger.Tx) error {
		var err error
		g, err = s.grid.State(ledger.NewJournal(tx))
		return err
	})
	return g, err
}

func (s *Service) ViewCurrentGridPower() (string, error) {
	g, err := s.GridPower()
	if err != nil {
		return "", err
	}
	return "Current grid power is " + g.String(), nil
}
