package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/muurk/cometblue/internal/device"
	"github.com/muurk/cometblue/internal/format"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Read a value from the device",
	Long: `Read one value from the device and print it.

Reading the identity characteristics (device-name, model, firmware-rev,
software-rev, manufacturer) needs no PIN; everything else does.`,
	Example: `  cometblue get temperatures --device bedroom
  cometblue get battery --device E0:E5:CF:00:11:22 --pin 1234
  cometblue get days --device bedroom --format json`,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.AddCommand(
		getTextCmd("device-name", "Read the device name", false, (*device.Client).DeviceName),
		getTextCmd("model", "Read the model number", false, (*device.Client).ModelNumber),
		getTextCmd("firmware-rev", "Read the firmware revision", false, (*device.Client).FirmwareRevision),
		getTextCmd("software-rev", "Read the software revision", false, (*device.Client).SoftwareRevision),
		getTextCmd("manufacturer", "Read the manufacturer name", false, (*device.Client).ManufacturerName),
		getTextCmd("firmware-rev2", "Read the vendor firmware revision", true, (*device.Client).FirmwareRevision2),
		getDateTimeCmd,
		getBatteryCmd,
		getFlagsCmd,
		getTemperaturesCmd,
		getLCDTimerCmd,
		getDaysCmd,
		getDayCmd,
		getHolidaysCmd,
	)
}

// withDevice runs fn against a connected device with a formatter attached
func withDevice(cmd *cobra.Command, protected bool, fn func(ctx context.Context, c *device.Client, f format.Formatter) error) error {
	client, reg, cleanup, err := connectDevice(cmd, protected)
	if err != nil {
		return err
	}
	defer cleanup()

	f, err := newFormatter(reg)
	if err != nil {
		return err
	}
	return fn(cmd.Context(), client, f)
}

// getTextCmd builds a get subcommand for one string characteristic
func getTextCmd(name, short string, protected bool, read func(*device.Client, context.Context) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDevice(cmd, protected, func(ctx context.Context, c *device.Client, f format.Formatter) error {
				value, err := read(c, ctx)
				if err != nil {
					return err
				}
				return f.Text(name, value)
			})
		},
	}
}

var getDateTimeCmd = &cobra.Command{
	Use:   "datetime",
	Short: "Read the device clock",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(cmd, true, func(ctx context.Context, c *device.Client, f format.Formatter) error {
			dt, err := c.DateTime(ctx)
			if err != nil {
				return err
			}
			return f.DateTime(dt)
		})
	},
}

var getBatteryCmd = &cobra.Command{
	Use:   "battery",
	Short: "Read the battery charge",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(cmd, true, func(ctx context.Context, c *device.Client, f format.Formatter) error {
			b, err := c.Battery(ctx)
			if err != nil {
				return err
			}
			return f.Battery(b)
		})
	},
}

var getFlagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "Read the status flags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(cmd, true, func(ctx context.Context, c *device.Client, f format.Formatter) error {
			flags, err := c.Flags(ctx)
			if err != nil {
				return err
			}
			return f.Flags(flags)
		})
	},
}

var getTemperaturesCmd = &cobra.Command{
	Use:   "temperatures",
	Short: "Read the temperature settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(cmd, true, func(ctx context.Context, c *device.Client, f format.Formatter) error {
			t, err := c.Temperatures(ctx)
			if err != nil {
				return err
			}
			return f.Temperatures(t)
		})
	},
}

var getLCDTimerCmd = &cobra.Command{
	Use:   "lcd-timer",
	Short: "Read the LCD timer setting",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(cmd, true, func(ctx context.Context, c *device.Client, f format.Formatter) error {
			t, err := c.LCDTimer(ctx)
			if err != nil {
				return err
			}
			return f.LCDTimer(t)
		})
	},
}

var getDaysCmd = &cobra.Command{
	Use:   "days",
	Short: "Read all weekly schedules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(cmd, true, func(ctx context.Context, c *device.Client, f format.Formatter) error {
			days, err := c.Days(ctx)
			if err != nil {
				return err
			}
			return f.Days(days)
		})
	},
}

var getDayCmd = &cobra.Command{
	Use:   "day <weekday>",
	Short: "Read the schedule for one weekday",
	Example: `  cometblue get day monday --device bedroom
  cometblue get day 6 --device bedroom`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := device.ParseWeekday(args[0])
		if err != nil {
			return err
		}
		return withDevice(cmd, true, func(ctx context.Context, c *device.Client, f format.Formatter) error {
			periods, err := c.Day(ctx, w)
			if err != nil {
				return err
			}
			return f.Day(int(w), periods)
		})
	},
}

var getHolidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "Read all holiday periods",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(cmd, true, func(ctx context.Context, c *device.Client, f format.Formatter) error {
			holidays, err := c.Holidays(ctx)
			if err != nil {
				return err
			}
			return f.Holidays(holidays)
		})
	},
}

// parseHolidaySlot parses a 1-based holiday slot number
func parseHolidaySlot(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > device.NumHolidays {
		return 0, fmt.Errorf("holiday slot must be 1..%d, got %q", device.NumHolidays, s)
	}
	return n, nil
}
