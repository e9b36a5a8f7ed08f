package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/cometblue/internal/backup"
	"github.com/muurk/cometblue/internal/codec"
	"github.com/muurk/cometblue/internal/device"
	"github.com/muurk/cometblue/internal/format"
	"github.com/muurk/cometblue/internal/ui"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Write a value to the device",
	Long: `Write one value to the device.

All writes need the device PIN. Temperature writes only change the
fields you pass; the device keeps its current value for the rest.`,
	Example: `  cometblue set datetime now --device bedroom
  cometblue set temperatures --manual 21.5 --device bedroom
  cometblue set day monday 06:00-08:30 17:00-22:00 --device bedroom`,
}

func init() {
	rootCmd.AddCommand(setCmd)

	setCmd.AddCommand(setDateTimeCmd)
	setCmd.AddCommand(setTemperaturesCmd)
	setCmd.AddCommand(setLCDTimerCmd)
	setCmd.AddCommand(setFlagsCmd)
	setCmd.AddCommand(setDayCmd)
	setCmd.AddCommand(setHolidayCmd)
	setCmd.AddCommand(setPINCmd)
}

var setDateTimeCmd = &cobra.Command{
	Use:   "datetime [value]",
	Short: "Set the device clock",
	Long: `Set the device clock.

The value is "YYYY-MM-DD HH:MM" (a T separator also works). Without an
argument, or with "now", the current local time is written.`,
	Example: `  cometblue set datetime now --device bedroom
  cometblue set datetime "2026-08-29 12:30" --device bedroom`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var dt codec.DateTime
		var err error
		if len(args) == 0 || args[0] == "now" {
			dt, err = codec.DateTimeOf(time.Now())
		} else {
			dt, err = backup.ParseDateTime(args[0])
		}
		if err != nil {
			return err
		}

		return withDevice(cmd, true, func(ctx context.Context, c *device.Client, f format.Formatter) error {
			if err := c.SetDateTime(ctx, dt); err != nil {
				return err
			}
			return f.DateTime(dt)
		})
	},
}

// Temperature setting flags
var (
	manualTemp     float64
	targetLowTemp  float64
	targetHighTemp float64
	offsetTemp     float64
	windowOpenSens int
	windowOpenMins int
)

func init() {
	flags := setTemperaturesCmd.Flags()
	flags.Float64Var(&manualTemp, "manual", 0, "Manual mode temperature in °C")
	flags.Float64Var(&targetLowTemp, "target-low", 0, "Low target temperature in °C")
	flags.Float64Var(&targetHighTemp, "target-high", 0, "High target temperature in °C")
	flags.Float64Var(&offsetTemp, "offset", 0, "Offset temperature in °C")
	flags.IntVar(&windowOpenSens, "window-open-detection", 0, "Window open detection sensitivity")
	flags.IntVar(&windowOpenMins, "window-open-minutes", 0, "Minutes heating stays off after window open")
}

var setTemperaturesCmd = &cobra.Command{
	Use:   "temperatures",
	Short: "Set temperature settings",
	Long: `Set temperature settings.

Pass only the flags you want to change. Temperatures are in °C with
half-degree resolution; other values round to the nearest half degree.`,
	Example: `  cometblue set temperatures --manual 21.5 --device bedroom
  cometblue set temperatures --target-low 16 --target-high 22 --offset -0.5 --device bedroom`,
	Args: cobra.NoArgs,
	RunE: runSetTemperatures,
}

func runSetTemperatures(cmd *cobra.Command, args []string) error {
	var t codec.Temperatures
	var err error
	changed := false

	temp := func(flag string, value float64) (codec.Temperature, error) {
		if !cmd.Flags().Changed(flag) {
			return codec.NoTemperature, nil
		}
		changed = true
		return codec.NewTemperature(value)
	}
	setting := func(flag string, value int) (codec.Setting, error) {
		if !cmd.Flags().Changed(flag) {
			return codec.NoSetting, nil
		}
		changed = true
		return codec.NewSetting(value)
	}

	if t.Manual, err = temp("manual", manualTemp); err != nil {
		return err
	}
	if t.TargetLow, err = temp("target-low", targetLowTemp); err != nil {
		return err
	}
	if t.TargetHigh, err = temp("target-high", targetHighTemp); err != nil {
		return err
	}
	if t.Offset, err = temp("offset", offsetTemp); err != nil {
		return err
	}
	if t.WindowOpenSensitivity, err = setting("window-open-detection", windowOpenSens); err != nil {
		return err
	}
	if t.WindowOpenMinutes, err = setting("window-open-minutes", windowOpenMins); err != nil {
		return err
	}

	if !changed {
		return fmt.Errorf("nothing to set: pass at least one temperature flag")
	}

	return withDevice(cmd, true, func(ctx context.Context, c *device.Client, f format.Formatter) error {
		return c.SetTemperatures(ctx, t)
	})
}

var setLCDTimerCmd = &cobra.Command{
	Use:   "lcd-timer <value>",
	Short: "Set the LCD timer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 || n > 255 {
			return fmt.Errorf("LCD timer must be 0..255, got %q", args[0])
		}
		return withDevice(cmd, true, func(ctx context.Context, c *device.Client, f format.Formatter) error {
			return c.SetLCDTimer(ctx, codec.LCDTimer(n))
		})
	},
}

var setFlagsCmd = &cobra.Command{
	Use:   "flags <value>",
	Short: "Set the status flags",
	Long: `Set the status flags byte.

The value may be decimal or hex (0x..). Individual bit meanings are
undocumented; write back a value previously read with 'get flags'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseUint(args[0], 0, 8)
		if err != nil {
			return fmt.Errorf("flags must be a byte value, got %q", args[0])
		}
		return withDevice(cmd, true, func(ctx context.Context, c *device.Client, f format.Formatter) error {
			return c.SetFlags(ctx, codec.Flags(value))
		})
	},
}

var setDayCmd = &cobra.Command{
	Use:   "day <weekday> [period...]",
	Short: "Set the schedule for one weekday",
	Long: `Set the heating schedule for one weekday.

Each period is "HH:MM-HH:MM", up to four per day. Without periods the
day's schedule is cleared.`,
	Example: `  cometblue set day monday 06:00-08:30 17:00-22:00 --device bedroom

  # Clear Saturday's schedule
  cometblue set day saturday --device bedroom`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := device.ParseWeekday(args[0])
		if err != nil {
			return err
		}
		periods, err := parsePeriods(args[1:])
		if err != nil {
			return err
		}
		return withDevice(cmd, true, func(ctx context.Context, c *device.Client, f format.Formatter) error {
			return c.SetDay(ctx, w, periods)
		})
	},
}

// parsePeriods parses "HH:MM-HH:MM" period arguments
func parsePeriods(args []string) ([]codec.Period, error) {
	var periods []codec.Period
	for _, arg := range args {
		startStr, endStr, ok := strings.Cut(arg, "-")
		if !ok {
			return nil, fmt.Errorf("invalid period %q, want HH:MM-HH:MM", arg)
		}
		start, err := backup.ParseClock(startStr)
		if err != nil {
			return nil, fmt.Errorf("period %q: %w", arg, err)
		}
		end, err := backup.ParseClock(endStr)
		if err != nil {
			return nil, fmt.Errorf("period %q: %w", arg, err)
		}
		periods = append(periods, codec.Period{Start: start, End: end})
	}
	return periods, nil
}

var setHolidayCmd = &cobra.Command{
	Use:   "holiday <slot> [<start> <end> <temp>]",
	Short: "Set or clear one holiday period",
	Long: `Set one of the eight holiday periods.

Start and end are "YYYY-MM-DDTHH:MM" (a quoted space also works in
place of the T). With only the slot number, the holiday is cleared.`,
	Example: `  cometblue set holiday 1 2026-12-20T10:00 2027-01-03T18:00 8.0 --device bedroom

  # Clear holiday slot 1
  cometblue set holiday 1 --device bedroom`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 && len(args) != 4 {
			return fmt.Errorf("expects a slot number alone (clear) or slot, start, end and temperature")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := parseHolidaySlot(args[0])
		if err != nil {
			return err
		}

		var h codec.Holiday
		if len(args) == 4 {
			if h.Start, err = backup.ParseDateTime(args[1]); err != nil {
				return fmt.Errorf("start: %w", err)
			}
			if h.End, err = backup.ParseDateTime(args[2]); err != nil {
				return fmt.Errorf("end: %w", err)
			}
			celsius, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("invalid temperature %q", args[3])
			}
			if h.Temp, err = codec.NewTemperature(celsius); err != nil {
				return err
			}
		}

		return withDevice(cmd, true, func(ctx context.Context, c *device.Client, f format.Formatter) error {
			return c.SetHoliday(ctx, slot, h)
		})
	},
}

var setPINCmd = &cobra.Command{
	Use:   "pin <new-pin>",
	Short: "Change the device PIN",
	Long: `Change the device PIN.

The connection authenticates with the current PIN (via --pin,
--pin-file, the device registry, or a prompt) before writing the new
one. Registered devices with a stored PIN are updated on success.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		newPIN, err := ui.ParsePIN(args[0])
		if err != nil {
			return err
		}

		client, reg, cleanup, err := connectDevice(cmd, true)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := client.SetPIN(cmd.Context(), newPIN); err != nil {
			return err
		}

		// Keep the registry in sync when the alias stores a PIN
		if d := reg.GetDevice(deviceArg); d != nil && d.PIN != nil {
			d.PIN = &newPIN
			if err := reg.Save(); err != nil {
				return fmt.Errorf("PIN changed on device but registry update failed: %w", err)
			}
		}

		fmt.Fprintln(cmd.ErrOrStderr(), "PIN changed")
		return nil
	},
}
