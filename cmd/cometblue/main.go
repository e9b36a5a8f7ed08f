// Cometblue is a command line tool for Comet Blue radiator thermostats
// (also sold as Eurotronic, Sygonix and Xavax Hama models).
//
// It talks GATT to a device through a BLE gateway and exposes every
// reverse-engineered characteristic: clock, temperature settings, weekly
// schedules, holiday periods, battery, status flags, LCD timer and PIN.
// Device settings can be backed up to a JSON file and restored later.
//
// Usage:
//
//	cometblue [command] [flags]
//
// See 'cometblue --help' for available commands.
package main

import (
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/cometblue/internal/codec"
	"github.com/muurk/cometblue/internal/device"
	"github.com/muurk/cometblue/internal/logging"
	"github.com/muurk/cometblue/internal/transport"
	"github.com/muurk/cometblue/internal/ui"
	"github.com/muurk/cometblue/internal/version"
)

func main() {
	logging.InitializeFromEnv()
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		ui.NewPrinter(nil).PrintError("Command failed", err, troubleshooting(err))
		os.Exit(1)
	}
}

// troubleshooting maps an error to tips for the failure box. Codec errors
// explain themselves, so they get none.
func troubleshooting(err error) []string {
	switch {
	case errors.Is(err, device.ErrPINRequired):
		return []string{
			"Pass the PIN with --pin or --pin-file",
			"Store it once with 'cometblue device add <alias> <address> --pin <pin>'",
		}
	case codec.IsRangeError(err), codec.IsMalformedDataError(err),
		codec.IsTooManyPeriodsError(err), codec.IsInvalidPinError(err):
		return nil
	}

	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return []string{
			"Check that the BLE gateway daemon is running",
			"Verify the gateway URL (--gateway, default " + transport.DefaultGatewayURL + ")",
			"cometblue-gatewaysim runs a local gateway for testing without hardware",
		}
	}
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "cometblue",
	Short: "Comet Blue Thermostat Utility",
	Long: `A command line tool for Comet Blue Bluetooth radiator thermostats.

Provides device discovery, reading and writing of all thermostat
settings (clock, temperatures, weekly schedules, holidays, PIN) and
backup/restore of the full device configuration.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cometblue %s\n", version.Full())
	},
}
