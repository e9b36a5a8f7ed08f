// Cometblue-gatewaysim runs a BLE gateway simulator for development and
// testing. It serves the gateway WebSocket protocol on /gatt, backed by
// an in-memory Comet Blue thermostat, so the cometblue CLI can be used
// without Bluetooth hardware:
//
//	cometblue-gatewaysim --listen 127.0.0.1:8723 --pin 1234 &
//	cometblue discover
//	cometblue get temperatures --device E0:E5:CF:00:00:01 --pin 1234
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/cometblue/internal/config"
	"github.com/muurk/cometblue/internal/gatewaysim"
	"github.com/muurk/cometblue/internal/logging"
	"github.com/muurk/cometblue/internal/version"
)

var (
	listenAddr    string
	deviceAddress string
	deviceName    string
	devicePIN     int64
)

func main() {
	logging.InitializeFromEnv()
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cometblue-gatewaysim",
	Short: "Comet Blue gateway simulator",
	Long: `Run a BLE gateway simulator backed by an in-memory thermostat.

The simulator speaks the same WebSocket protocol as a real gateway
daemon, so every cometblue command works against it unmodified.`,
	Version:      version.Version,
	SilenceUsage: true,
	RunE:         runSim,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.Flags().StringVar(&listenAddr, "listen", "127.0.0.1:8723", "Listen address")
	rootCmd.Flags().StringVar(&deviceAddress, "address", "E0:E5:CF:00:00:01", "Simulated Bluetooth address")
	rootCmd.Flags().StringVar(&deviceName, "name", "Comet Blue", "Simulated device name")
	rootCmd.Flags().Int64Var(&devicePIN, "pin", 0, "Simulated device PIN")
}

func runSim(cmd *cobra.Command, args []string) error {
	if err := config.ValidateAddress(deviceAddress); err != nil {
		return err
	}

	sim, err := gatewaysim.NewSimDevice(gatewaysim.Config{
		Address: deviceAddress,
		Name:    deviceName,
		PIN:     devicePIN,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Simulating %s (%s) on ws://%s/gatt\n", deviceName, deviceAddress, listenAddr)
	return gatewaysim.NewServer(sim).ListenAndServe(listenAddr)
}
