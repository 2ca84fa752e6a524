package main

import (
	"fmt"

	"energy-ledger/internal/app"
	"energy-ledger/internal/data"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotSaveCmd, snapshotLoadCmd)
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Export or restore the whole ledger",
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save PATH",
	Short: "Write every ledger record to a JSON snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			snap, err := data.Export(a.Store)
			if err != nil {
				return err
			}
			if err := data.SaveSnapshot(snap, args[0]); err != nil {
				return err
			}
			fmt.Printf("Saved %d records to %s\n", len(snap.Items), args[0])
			return nil
		})
	},
}

var snapshotLoadCmd = &cobra.Command{
	Use:   "load PATH",
	Short: "Replace the ledger with a JSON snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := data.LoadSnapshot(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, func(a *app.App) error {
			if err := data.Import(a.Store, snap); err != nil {
				return err
			}
			fmt.Printf("Restored %d records from %s\n", len(snap.Items), args[0])
			return nil
		})
	},
}
