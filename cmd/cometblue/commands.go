package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/cometblue/internal/backup"
	"github.com/muurk/cometblue/internal/config"
	"github.com/muurk/cometblue/internal/device"
	"github.com/muurk/cometblue/internal/format"
	"github.com/muurk/cometblue/internal/logging"
	"github.com/muurk/cometblue/internal/transport"
	"github.com/muurk/cometblue/internal/ui"
)

// Persistent command flags
var (
	deviceArg    string
	pinArg       int64
	pinFile      string
	gatewayURL   string
	outputFormat string
	scanTimeout  int
	assumeYes    bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&deviceArg, "device", "d", "", "Device alias or Bluetooth address")
	rootCmd.PersistentFlags().Int64VarP(&pinArg, "pin", "p", 0, "Device PIN")
	rootCmd.PersistentFlags().StringVar(&pinFile, "pin-file", "", "Read device PIN from file")
	rootCmd.PersistentFlags().StringVar(&gatewayURL, "gateway", "", "BLE gateway WebSocket URL")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "",
		"Output format ("+strings.Join(format.Kinds(), ", ")+")")

	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(deviceCmd)
}

// newFormatter builds the output formatter from the --format flag, falling
// back to the configured default and then to human-readable output.
func newFormatter(reg *config.Registry) (format.Formatter, error) {
	kind := outputFormat
	if kind == "" && reg.Preferences != nil {
		kind = reg.Preferences.DefaultFormat
	}
	if kind == "" {
		kind = format.KindHuman
	}
	return format.New(kind, os.Stdout)
}

// gatewayFor resolves the gateway URL: flag, then config, then default
func gatewayFor(reg *config.Registry) string {
	if gatewayURL != "" {
		return gatewayURL
	}
	if reg.Preferences != nil && reg.Preferences.Gateway != "" {
		return reg.Preferences.Gateway
	}
	return transport.DefaultGatewayURL
}

// resolvePIN decides which PIN to use for a connection: the --pin flag
// wins, then --pin-file, then any PIN stored for the device. When the
// operation needs a PIN and none was supplied, the user is prompted.
func resolvePIN(cmd *cobra.Command, address string, stored *int64, protected bool) (*int64, error) {
	if cmd.Flags().Changed("pin") {
		pin := pinArg
		return &pin, nil
	}

	if pinFile != "" {
		data, err := os.ReadFile(pinFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read PIN file: %w", err)
		}
		pin, err := ui.ParsePIN(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, fmt.Errorf("PIN file %s: %w", pinFile, err)
		}
		return &pin, nil
	}

	if stored != nil {
		return stored, nil
	}

	if protected {
		pin, err := ui.PromptPIN(address)
		if err != nil {
			return nil, err
		}
		return &pin, nil
	}

	return nil, nil
}

// connectDevice resolves --device, dials the gateway and connects. The
// returned cleanup closes both the device connection and the gateway.
func connectDevice(cmd *cobra.Command, protected bool) (*device.Client, *config.Registry, func(), error) {
	reg, err := config.LoadRegistry()
	if err != nil {
		return nil, nil, nil, err
	}

	if deviceArg == "" {
		return nil, nil, nil, fmt.Errorf("no device specified: use --device <alias-or-address>")
	}
	address, storedPIN, err := reg.Resolve(deviceArg)
	if err != nil {
		return nil, nil, nil, err
	}

	pin, err := resolvePIN(cmd, address, storedPIN, protected)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx := cmd.Context()
	gw, err := transport.DialGateway(ctx, gatewayFor(reg))
	if err != nil {
		return nil, nil, nil, err
	}

	conn, err := gw.Connect(ctx, address)
	if err != nil {
		gw.Close()
		return nil, nil, nil, fmt.Errorf("failed to connect to %s: %w", address, err)
	}

	client := device.NewClient(conn, pin)
	cleanup := func() {
		client.Close()
		gw.Close()
	}

	reg.UpdateDeviceLastSeen(address)
	if err := reg.Save(); err != nil {
		logging.Debug("Could not persist last-seen time", zap.Error(err))
	}
	return client, reg, cleanup, nil
}

// discoverCmd scans for devices through the gateway
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Scan for Comet Blue devices",
	Long: `Scan for Comet Blue devices in radio range.

The scan runs through the BLE gateway and lists every advertising
device with its name, address and signal strength.`,
	Example: `  # Scan with the default 10 second timeout
  cometblue discover

  # Quick scan
  cometblue discover --timeout 3

  # Pick a device interactively and print its address
  cometblue discover --pick`,
	RunE: runDiscover,
}

var pickDevice bool

func init() {
	discoverCmd.Flags().IntVar(&scanTimeout, "timeout", 0, "Scan timeout in seconds")
	discoverCmd.Flags().BoolVar(&pickDevice, "pick", false, "Choose a device interactively")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	reg, err := config.LoadRegistry()
	if err != nil {
		return err
	}

	timeout := scanTimeout
	if timeout <= 0 {
		timeout = 10
		if reg.Preferences != nil && reg.Preferences.DiscoverTimeout > 0 {
			timeout = reg.Preferences.DiscoverTimeout
		}
	}

	ctx := cmd.Context()
	gw, err := transport.DialGateway(ctx, gatewayFor(reg))
	if err != nil {
		return err
	}
	defer gw.Close()

	if pickDevice {
		chosen, err := ui.PickDevice(func() ([]transport.Advertisement, error) {
			return gw.Scan(ctx, time.Duration(timeout)*time.Second)
		})
		if err != nil {
			return err
		}
		fmt.Println(chosen.Address)
		return nil
	}

	devices, err := gw.Scan(ctx, time.Duration(timeout)*time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	f, err := newFormatter(reg)
	if err != nil {
		return err
	}
	return f.DiscoveredDevices(devices)
}

// backupCmd saves all device settings to a JSON file
var backupCmd = &cobra.Command{
	Use:   "backup <file>",
	Short: "Back up device settings to a file",
	Long: `Read every writable setting from the device and store it as JSON.

The backup covers temperature settings, the LCD timer, all seven weekly
schedules and all eight holiday periods. The device clock is not part of
the backup. Use "-" to write the backup to stdout.`,
	Example: `  cometblue backup bedroom.json --device bedroom

  # Backup to stdout
  cometblue backup - --device E0:E5:CF:00:11:22 --pin 1234`,
	Args: cobra.ExactArgs(1),
	RunE: runBackup,
}

func runBackup(cmd *cobra.Command, args []string) error {
	client, _, cleanup, err := connectDevice(cmd, true)
	if err != nil {
		return err
	}
	defer cleanup()

	snapshot, err := client.Backup(cmd.Context())
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	if args[0] == "-" {
		return snapshot.Write(os.Stdout)
	}
	if err := snapshot.SaveFile(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Backup written to %s\n", args[0])
	return nil
}

// restoreCmd writes a saved backup onto the device
var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore device settings from a backup file",
	Long: `Write a previously saved backup onto the device.

Only fields present in the backup file are written, so a hand-trimmed
backup restores just the settings it names. The whole file is validated
before the first write. Use "-" to read the backup from stdin.`,
	Example: `  cometblue restore bedroom.json --device bedroom

  # Skip the confirmation prompt
  cometblue restore bedroom.json --device bedroom --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runRestore(cmd *cobra.Command, args []string) error {
	var snapshot *backup.Snapshot
	var err error
	if args[0] == "-" {
		snapshot, err = backup.Read(os.Stdin)
	} else {
		snapshot, err = backup.LoadFile(args[0])
	}
	if err != nil {
		return err
	}

	if !assumeYes {
		if !ui.RestoreConfirmation(deviceArg, snapshot.WriteCount()) {
			return fmt.Errorf("restore cancelled")
		}
	}

	client, _, cleanup, err := connectDevice(cmd, true)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := client.Restore(cmd.Context(), snapshot); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	printer := ui.NewPrinter(nil)
	printer.PrintSuccess("DEVICE RESTORED", map[string]string{
		"Device": deviceArg,
		"Writes": fmt.Sprintf("%d", snapshot.WriteCount()),
	})
	return nil
}

// deviceCmd manages the registry of known devices
var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Manage known devices",
	Long: `Manage the registry of known devices.

Registered devices get an alias that every other command accepts in
place of a Bluetooth address. A PIN stored with the device saves
retyping it; leave it out to be prompted instead.`,
}

var deviceAddCmd = &cobra.Command{
	Use:   "add <alias> <address>",
	Short: "Register a device under an alias",
	Example: `  cometblue device add bedroom E0:E5:CF:00:11:22

  # Store the PIN alongside the alias
  cometblue device add bedroom E0:E5:CF:00:11:22 --pin 1234`,
	Args: cobra.ExactArgs(2),
	RunE: runDeviceAdd,
}

var deviceRemoveCmd = &cobra.Command{
	Use:   "remove <alias>",
	Short: "Remove a registered device",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeviceRemove,
}

var deviceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered devices",
	Args:  cobra.NoArgs,
	RunE:  runDeviceList,
}

func init() {
	deviceCmd.AddCommand(deviceAddCmd)
	deviceCmd.AddCommand(deviceRemoveCmd)
	deviceCmd.AddCommand(deviceListCmd)
}

func runDeviceAdd(cmd *cobra.Command, args []string) error {
	reg, err := config.LoadRegistry()
	if err != nil {
		return err
	}

	var pin *int64
	if cmd.Flags().Changed("pin") {
		p := pinArg
		pin = &p
	}

	if err := reg.AddDevice(args[0], args[1], pin); err != nil {
		return err
	}
	if err := reg.Save(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Registered %s as %s\n", args[1], args[0])
	return nil
}

func runDeviceRemove(cmd *cobra.Command, args []string) error {
	reg, err := config.LoadRegistry()
	if err != nil {
		return err
	}

	if !reg.RemoveDevice(args[0]) {
		return fmt.Errorf("no device registered as %q", args[0])
	}
	if err := reg.Save(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Removed %s\n", args[0])
	return nil
}

func runDeviceList(cmd *cobra.Command, args []string) error {
	reg, err := config.LoadRegistry()
	if err != nil {
		return err
	}

	if len(reg.Devices) == 0 {
		fmt.Fprintln(os.Stderr, "No devices registered. Use 'cometblue device add' to register one.")
		return nil
	}

	for alias, d := range reg.Devices {
		line := fmt.Sprintf("%s\t%s", alias, d.Address)
		if d.PIN != nil {
			line += "\t(PIN stored)"
		}
		fmt.Println(line)
	}
	return nil
}
