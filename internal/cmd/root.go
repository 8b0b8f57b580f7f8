package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/warlice/backlightctl/internal/config"
	"github.com/warlice/backlightctl/internal/displayconfig"
)

var Version = "0.1.0"

// newService is a hook so tests can run the commands against a fake
// service instead of a live session bus.
var newService = func() (displayconfig.Service, func(), error) {
	client, err := displayconfig.Connect(config.Load())
	if err != nil {
		return nil, nil, err
	}
	return client, func() { client.Close() }, nil
}

var rootCmd = &cobra.Command{
	Use:           "backlightctl [--status] [--set CONNECTOR VALUE]",
	Version:       Version,
	Short:         "Interact with the backlight control",
	Long:          "backlightctl reports and adjusts per-connector display backlight state through the session's display configuration service",
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if status, _ := cmd.Flags().GetBool("status"); status {
			asJSON, _ := cmd.Flags().GetBool("json")
			return runStatus(cmd.OutOrStdout(), asJSON)
		}
		if set, _ := cmd.Flags().GetBool("set"); set {
			if len(args) != 2 {
				return fmt.Errorf("--set needs CONNECTOR and VALUE, got %d argument(s)", len(args))
			}
			value, err := strconv.ParseInt(args[1], 10, 32)
			if err != nil {
				return fmt.Errorf("backlight value %q is not an integer", args[1])
			}
			return runSet(args[0], int32(value))
		}

		fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("status", false, "Print the current backlight state of every connector")
	rootCmd.Flags().Bool("set", false, "Set CONNECTOR's backlight to the integer VALUE")
	rootCmd.Flags().Bool("json", false, "Output backlight state in json format (with --status)")

	rootCmd.AddCommand(debugCmd)
}
