package main

import (
	"encoding/json"
	"fmt"
	"os"

	"energy-ledger/internal/app"
	"energy-ledger/internal/data"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	rootCmd.AddCommand(initCmd, assetsCmd, viewCmd, createCmd, readCmd, updateCmd,
		deleteCmd, existsCmd, transferCmd, summaryCmd)

	assetsCmd.Flags().String(outputFlagName, outputFlagValJSON, "Specify the output format: json,yaml")
	createCmd.Flags().String("curr", "", "Current value (defaults to the original value)")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the seed assets and the initial grid state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			if err := a.Service.InitLedger(); err != nil {
				return err
			}
			fmt.Println("Ledger initialized")
			return nil
		})
	},
}

const (
	outputFlagName    = "output"
	outputFlagValJSON = "json"
	outputFlagValYAML = "yaml"
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Print every asset",
	Long:  "Print every asset. The yaml output is a seed list that can be used as assets_file.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, err := cmd.Flags().GetString(outputFlagName)
		if err != nil {
			return err
		}
		return withApp(cmd, func(a *app.App) error {
			switch output {
			case outputFlagValJSON:
				out, err := a.Service.GetAllAssetsJSON()
				if err != nil {
					return err
				}
				fmt.Println(out)
				return nil
			case outputFlagValYAML:
				all, err := a.Service.GetAllAssets()
				if err != nil {
					return err
				}
				records := make([]data.AssetRecord, 0, len(all))
				for _, asset := range all {
					records = append(records, data.RecordFromModel(asset))
				}
				enc := yaml.NewEncoder(os.Stdout)
				defer enc.Close()
				return enc.Encode(records)
			default:
				return fmt.Errorf("%s flag must be either %q or %q", outputFlagName, outputFlagValJSON, outputFlagValYAML)
			}
		})
	},
}

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Print the human-readable asset list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			out, err := a.Service.ViewAllAssets()
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		})
	},
}

var createCmd = &cobra.Command{
	Use:   "create ID NAME TYPE VALUE",
	Short: "Create a producer or consumer asset",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		curr, err := cmd.Flags().GetString("curr")
		if err != nil {
			return err
		}
		if curr == "" {
			curr = args[3]
		}
		return withApp(cmd, func(a *app.App) error {
			asset, err := a.Service.CreateAsset(args[0], args[1], args[2], args[3], curr)
			if err != nil {
				return err
			}
			return printJSON(asset)
		})
	},
}

var readCmd = &cobra.Command{
	Use:   "read ID",
	Short: "Print one asset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			asset, err := a.Service.ReadAsset(args[0])
			if err != nil {
				return err
			}
			return printJSON(asset)
		})
	},
}

var updateCmd = &cobra.Command{
	Use:   "update ID NAME TYPE ORG_VALUE CURR_VALUE",
	Short: "Overwrite an existing asset",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			asset, err := a.Service.UpdateAsset(args[0], args[1], args[2], args[3], args[4])
			if err != nil {
				return err
			}
			return printJSON(asset)
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Remove an asset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			if err := a.Service.DeleteAsset(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		})
	},
}

var existsCmd = &cobra.Command{
	Use:   "exists ID",
	Short: "Report whether an asset exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			ok, err := a.Service.AssetExists(args[0])
			if err != nil {
				return err
			}
			fmt.Println(ok)
			return nil
		})
	},
}

var transferCmd = &cobra.Command{
	Use:   "transfer ID NEW_OWNER",
	Short: "Change the owner of an asset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			old, err := a.Service.TransferAsset(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Transferred %s from %q to %q\n", args[0], old, args[1])
			return nil
		})
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print open supply, demand and the projected grid delta",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			b, err := a.Service.Summary()
			if err != nil {
				return err
			}
			return printJSON(b)
		})
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
