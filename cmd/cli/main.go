package main

import (
	"fmt"
	"os"

	"energy-ledger/internal/app"
	"energy-ledger/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	configFlagName    = "config"
	ledgerDirFlagName = "ledger-dir"
	verboseFlagName   = "verbose"
)

var rootCmd = &cobra.Command{
	Use:          "cli",
	Short:        "Energy trading ledger",
	Long:         "Manage producer and consumer assets and run trading batches against the ledger.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String(configFlagName, "", "Path to YAML config")
	rootCmd.PersistentFlags().String(ledgerDirFlagName, "data", "Ledger directory when no config is given")
	rootCmd.PersistentFlags().Bool(verboseFlagName, false, "Write structured logs to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withApp opens the configured ledger, runs fn and closes the ledger.
// Without --config the CLI uses a goleveldb ledger under --ledger-dir so
// state survives between invocations.
func withApp(cmd *cobra.Command, fn func(a *app.App) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if verbose, _ := cmd.Flags().GetBool(verboseFlagName); verbose {
		if logger, err = app.NewLogger(cfg.Server.Env); err != nil {
			return err
		}
	}
	defer func() { _ = logger.Sync() }()

	a, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			logger.Error("failed to close ledger", zap.Error(cerr))
		}
	}()
	return fn(a)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString(configFlagName)
	if err != nil {
		return nil, err
	}
	var cfg *config.Config
	if path != "" {
		if cfg, err = config.Load(path); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	} else {
		dir, err := cmd.Flags().GetString(ledgerDirFlagName)
		if err != nil {
			return nil, err
		}
		cfg = config.Default()
		cfg.Ledger.Backend = config.BackendGoLevelDB
		cfg.Ledger.Dir = dir
	}
	cfg.ApplyEnv()
	return cfg, nil
}
