package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muurk/cometblue/internal/codec"
)

// Snapshot is the JSON backup of every writable device setting. Every field
// is optional: a snapshot missing a field restores nothing for it (no
// implicit clearing), and unknown keys in a snapshot file are ignored so
// backups from newer versions still restore.
type Snapshot struct {
	Temperatures *TemperatureSettings `json:"temperatures,omitempty"`
	LCDTimer     *int                 `json:"lcd_timer,omitempty"`
	Days         [][]Period           `json:"days,omitempty"`     // Monday first, up to 7
	Holidays     []Holiday            `json:"holidays,omitempty"` // slot 1 first, up to 8
}

// TemperatureSettings is the writable part of the temperatures block.
// A nil field means "leave the device setting unchanged".
type TemperatureSettings struct {
	Manual                *float64 `json:"manual_temp,omitempty"`
	TargetLow             *float64 `json:"target_temp_l,omitempty"`
	TargetHigh            *float64 `json:"target_temp_h,omitempty"`
	Offset                *float64 `json:"offset_temp,omitempty"`
	WindowOpenSensitivity *int     `json:"window_open_detection,omitempty"`
	WindowOpenMinutes     *int     `json:"window_open_minutes,omitempty"`
}

// Period is one schedule window, times as "HH:MM"
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Holiday is one holiday row. Null dates mean the row is cleared.
type Holiday struct {
	Start *string  `json:"start"`
	End   *string  `json:"end"`
	Temp  *float64 `json:"temp"`
}

// Read decodes a snapshot from JSON
func Read(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse backup: %w", err)
	}
	if len(s.Days) > 7 {
		return nil, fmt.Errorf("backup holds %d day schedules, device has 7", len(s.Days))
	}
	if len(s.Holidays) > 8 {
		return nil, fmt.Errorf("backup holds %d holidays, device has 8", len(s.Holidays))
	}
	return &s, nil
}

// WriteCount returns how many characteristic writes a restore of this
// snapshot performs.
func (s *Snapshot) WriteCount() int {
	count := len(s.Days) + len(s.Holidays)
	if s.Temperatures != nil {
		count++
	}
	if s.LCDTimer != nil {
		count++
	}
	return count
}

// Write encodes a snapshot as indented JSON
func (s *Snapshot) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// LoadFile reads a snapshot from a JSON file
func LoadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// SaveFile writes a snapshot to a JSON file
func (s *Snapshot) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	if err := s.Write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// TemperaturesFromDevice maps a decoded temperatures block into snapshot
// form. The current temperature is a sensor reading, not a setting, so it
// is not backed up.
func TemperaturesFromDevice(t codec.Temperatures) *TemperatureSettings {
	ts := &TemperatureSettings{}
	if !t.Manual.IsAbsent() {
		ts.Manual = floatPtr(t.Manual.Celsius())
	}
	if !t.TargetLow.IsAbsent() {
		ts.TargetLow = floatPtr(t.TargetLow.Celsius())
	}
	if !t.TargetHigh.IsAbsent() {
		ts.TargetHigh = floatPtr(t.TargetHigh.Celsius())
	}
	if !t.Offset.IsAbsent() {
		ts.Offset = floatPtr(t.Offset.Celsius())
	}
	if !t.WindowOpenSensitivity.IsAbsent() {
		ts.WindowOpenSensitivity = intPtr(t.WindowOpenSensitivity.Value())
	}
	if !t.WindowOpenMinutes.IsAbsent() {
		ts.WindowOpenMinutes = intPtr(t.WindowOpenMinutes.Value())
	}
	return ts
}

// ToDevice re-encodes the settings for writing. Nil fields become the
// "leave unchanged" sentinel on the wire.
func (ts *TemperatureSettings) ToDevice() (codec.Temperatures, error) {
	var t codec.Temperatures
	var err error

	if ts.Manual != nil {
		if t.Manual, err = codec.NewTemperature(*ts.Manual); err != nil {
			return t, err
		}
	}
	if ts.TargetLow != nil {
		if t.TargetLow, err = codec.NewTemperature(*ts.TargetLow); err != nil {
			return t, err
		}
	}
	if ts.TargetHigh != nil {
		if t.TargetHigh, err = codec.NewTemperature(*ts.TargetHigh); err != nil {
			return t, err
		}
	}
	if ts.Offset != nil {
		if t.Offset, err = codec.NewTemperature(*ts.Offset); err != nil {
			return t, err
		}
	}
	if ts.WindowOpenSensitivity != nil {
		if t.WindowOpenSensitivity, err = codec.NewSetting(*ts.WindowOpenSensitivity); err != nil {
			return t, err
		}
	}
	if ts.WindowOpenMinutes != nil {
		if t.WindowOpenMinutes, err = codec.NewSetting(*ts.WindowOpenMinutes); err != nil {
			return t, err
		}
	}
	return t, nil
}

// PeriodsFromDevice maps decoded schedule periods into snapshot form
func PeriodsFromDevice(periods []codec.Period) []Period {
	out := make([]Period, 0, len(periods))
	for _, p := range periods {
		out = append(out, Period{
			Start: formatClock(p.Start),
			End:   formatClock(p.End),
		})
	}
	return out
}

// ToDevice parses the snapshot periods back into schedule form
func PeriodsToDevice(periods []Period) ([]codec.Period, error) {
	out := make([]codec.Period, 0, len(periods))
	for i, p := range periods {
		start, err := ParseClock(p.Start)
		if err != nil {
			return nil, fmt.Errorf("period %d start: %w", i, err)
		}
		end, err := ParseClock(p.End)
		if err != nil {
			return nil, fmt.Errorf("period %d end: %w", i, err)
		}
		out = append(out, codec.Period{Start: start, End: end})
	}
	return out, nil
}

// HolidayFromDevice maps a decoded holiday row into snapshot form
func HolidayFromDevice(h codec.Holiday) Holiday {
	if h.IsCleared() {
		return Holiday{}
	}
	out := Holiday{
		Start: strPtr(h.Start.String()),
		End:   strPtr(h.End.String()),
	}
	if !h.Temp.IsAbsent() {
		out.Temp = floatPtr(h.Temp.Celsius())
	}
	return out
}

// ToDevice parses the snapshot holiday back into wire form
func (h Holiday) ToDevice() (codec.Holiday, error) {
	var out codec.Holiday
	var err error

	if h.Start != nil {
		if out.Start, err = ParseDateTime(*h.Start); err != nil {
			return out, fmt.Errorf("holiday start: %w", err)
		}
	}
	if h.End != nil {
		if out.End, err = ParseDateTime(*h.End); err != nil {
			return out, fmt.Errorf("holiday end: %w", err)
		}
	}
	if h.Temp != nil {
		if out.Temp, err = codec.NewTemperature(*h.Temp); err != nil {
			return out, err
		}
	}
	return out, nil
}

// ParseClock parses "HH:MM" into minutes since midnight
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour*60 + minute, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDateTime parses "YYYY-MM-DD HH:MM" (T separator and trailing
// seconds also accepted) into a device date/time
func ParseDateTime(s string) (codec.DateTime, error) {
	s = strings.Replace(strings.TrimSpace(s), "T", " ", 1)
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return codec.NoDateTime, fmt.Errorf("invalid date/time %q, want YYYY-MM-DD HH:MM", s)
	}

	dateParts := strings.Split(fields[0], "-")
	if len(dateParts) != 3 {
		return codec.NoDateTime, fmt.Errorf("invalid date in %q", s)
	}
	timeParts := strings.Split(fields[1], ":")
	if len(timeParts) != 2 && len(timeParts) != 3 {
		return codec.NoDateTime, fmt.Errorf("invalid time in %q", s)
	}

	nums := make([]int, 0, 5)
	for _, part := range append(dateParts, timeParts[0], timeParts[1]) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return codec.NoDateTime, fmt.Errorf("invalid number %q in %q", part, s)
		}
		nums = append(nums, n)
	}

	return codec.NewDateTime(nums[0], nums[1], nums[2], nums[3], nums[4])
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func strPtr(s string) *string     { return &s }
