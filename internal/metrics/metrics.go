package metrics

import (
	"energy-ledger/internal/model"
	"energy-ledger/internal/trading"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const namespace = "energy"

// Metrics are the trading collectors. They are only touched after a trade
// has committed.
type Metrics struct {
	Trades     *prometheus.CounterVec
	SettledKW  *prometheus.CounterVec
	GridPower  prometheus.Gauge
	LogEntries prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Trades: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trades_total",
			Help:      "Settled producer/consumer pairs by outcome.",
		}, []string{"outcome"}),
		SettledKW: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settled_kw_total",
			Help:      "Energy settled in KW, by source.",
		}, []string{"source"}),
		GridPower: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "grid_power",
			Help:      "Current grid power after the last committed trade.",
		}),
		LogEntries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "txlog_entries_total",
			Help:      "Transaction log entries appended.",
		}),
	}
	reg.MustRegister(m.Trades, m.SettledKW, m.GridPower, m.LogEntries)
	return m
}

// Nop returns collectors bound to a private registry.
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) ObserveTrade(settlements []trading.Settlement, grid model.GridState, entries int) {
	for _, s := range settlements {
		m.Trades.WithLabelValues(string(s.Outcome)).Inc()
		m.SettledKW.WithLabelValues("producer").Add(toFloat(s.Transferred))
		m.SettledKW.WithLabelValues("grid").Add(toFloat(s.FromGrid))
	}
	m.GridPower.Set(toFloat(grid.Power))
	m.LogEntries.Add(float64(entries))
}

// SetGridPower is used at startup so the gauge reflects the stored state
// before any trade.
func (m *Metrics) SetGridPower(grid model.GridState) {
	m.GridPower.Set(toFloat(grid.Power))
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
