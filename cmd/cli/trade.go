package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"energy-ledger/internal/app"
	"energy-ledger/internal/model"
	"energy-ledger/internal/trading"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tradeCmd, ratiosCmd, logCmd, gridCmd)

	tradeCmd.Flags().String("out", "", "Optional: write the settled rows to this CSV path")
	tradeCmd.SetFlagErrorFunc(countFlagError)
}

// pflag reads "-1" as a shorthand flag, e.g. "unknown shorthand flag: '1' in -1".
var negativeCountRe = regexp.MustCompile(` in (-\d+)$`)

// countFlagError reports a negative trade count as such rather than as an
// unknown flag.
func countFlagError(_ *cobra.Command, err error) error {
	if m := negativeCountRe.FindStringSubmatch(err.Error()); m != nil {
		return fmt.Errorf("%w: trade count must be >= 0, got %s", model.ErrMalformedInput, m[1])
	}
	return err
}

func parseCount(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: N must be an integer, got %q", model.ErrMalformedInput, arg)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: trade count must be >= 0, got %d", model.ErrMalformedInput, n)
	}
	return n, nil
}

var tradeCmd = &cobra.Command{
	Use:     "trade N",
	Short:   "Match and settle up to N producer/consumer pairs",
	Example: "  cli trade 4 --out results/trade.csv",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseCount(args[0])
		if err != nil {
			return err
		}
		outPath, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}
		return withApp(cmd, func(a *app.App) error {
			report, err := a.Service.Trade(n)
			if err != nil {
				return err
			}
			for _, e := range report.Entries {
				fmt.Println(e.Message)
			}
			fmt.Println(report)

			if outPath == "" {
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return err
			}
			if err := trading.WriteRowsCSV(outPath, report.Result.Rows); err != nil {
				return err
			}
			fmt.Printf("Wrote %d rows to %s\n", len(report.Result.Rows), outPath)
			return nil
		})
	},
}

var ratiosCmd = &cobra.Command{
	Use:   "ratios",
	Short: "Print the consumer/grid ratio of every matched pair",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			out, err := a.Service.ViewRatios()
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		})
	},
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Print the transaction log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			out, err := a.Service.ViewTransactionLog()
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		})
	},
}

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Print the current grid power",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			out, err := a.Service.ViewCurrentGridPower()
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		})
	},
}
