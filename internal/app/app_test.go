package app

import (
	"testing"

	"energy-ledger/internal/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func gridGauge(t *testing.T, reg *prometheus.Registry) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == "energy_grid_power" {
			require.Len(t, f.GetMetric(), 1)
			return f.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatal("energy_grid_power not registered")
	return 0
}

func TestNewReportsStoredGridPower(t *testing.T) {
	cfg := config.Default()
	cfg.Ledger.Backend = config.BackendGoLevelDB
	cfg.Ledger.Dir = t.TempDir()

	a, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, a.Service.InitLedger())
	_, err = a.Service.Trade(1)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	// Reopening an existing ledger must not wait for a trade to publish
	// the gauge.
	a, err = New(cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, 1060.0, gridGauge(t, a.Registry))
}

func TestNewMemLedgerStartsAtInitialGrid(t *testing.T) {
	a, err := New(config.Default(), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, 10.0, gridGauge(t, a.Registry))
}
