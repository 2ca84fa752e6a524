package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"energy-ledger/internal/app"
	"energy-ledger/internal/config"
	"energy-ledger/internal/trading"

	"go.uber.org/zap"
)

// Demo:
// - Seed an in-memory ledger with four producers and four consumers
// - Print the asset list and the CG ratios
// - Trade n pairs and show what moved, the log and the grid power
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	n := flag.Int("n", 4, "Number of pairs to trade")
	outCSV := flag.String("out", "", "Optional path to write the trade rows CSV (e.g. results/trade.csv)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			fail(err)
		}
	}
	// The demo never touches an on-disk ledger.
	cfg.Ledger.Backend = config.BackendMemDB

	a, err := app.New(cfg, zap.NewNop())
	if err != nil {
		fail(err)
	}
	defer a.Close()

	svc := a.Service
	if err := svc.InitLedger(); err != nil {
		fail(err)
	}

	view, err := svc.ViewAllAssets()
	if err != nil {
		fail(err)
	}
	fmt.Println(view)

	ratios, err := svc.ViewRatios()
	if err != nil {
		fail(err)
	}
	fmt.Println(ratios)

	start := time.Now()
	report, err := svc.Trade(*n)
	if err != nil {
		fail(err)
	}
	fmt.Printf("Traded %d pairs in %s\n\n", len(report.Result.Rows), time.Since(start).Round(time.Microsecond))

	for _, r := range report.Result.Rows {
		fmt.Printf(
			"%-10s -> %-10s  outcome=%-8s  prod=%6s->%-6s  cons=%6s->%-6s  grid=%7s  cum=%7s\n",
			r.ProducerName,
			r.ConsumerName,
			string(r.Outcome),
			r.ProducerBefore,
			r.ProducerAfter,
			r.ConsumerBefore,
			r.ConsumerAfter,
			r.GridDelta,
			r.CumGridDelta,
		)
	}
	fmt.Printf("\n%s\n\n", report)

	txlog, err := svc.ViewTransactionLog()
	if err != nil {
		fail(err)
	}
	fmt.Println(txlog)

	gridPower, err := svc.ViewCurrentGridPower()
	if err != nil {
		fail(err)
	}
	fmt.Printf("\n%s\n", gridPower)

	if *outCSV != "" {
		if err := trading.WriteRowsCSV(*outCSV, report.Result.Rows); err != nil {
			fail(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
