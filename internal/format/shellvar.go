package format

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/muurk/cometblue/internal/codec"
	"github.com/muurk/cometblue/internal/transport"
)

// shellVarPrefix is prepended to every variable name emitted by the
// shell-var formatter, so `eval "$(cometblue ... --format shell-var)"` never
// clobbers unrelated variables.
const shellVarPrefix = "COMETBLUE_"

// shellVarFormatter prints values as shell variable assignments
type shellVarFormatter struct {
	w io.Writer
}

func (f *shellVarFormatter) assign(name, value string) error {
	_, err := fmt.Fprintf(f.w, "%s%s=%s\n", shellVarPrefix, strings.ToUpper(name), shellQuote(value))
	return err
}

func (f *shellVarFormatter) Text(name, value string) error {
	return f.assign(name, value)
}

func (f *shellVarFormatter) DiscoveredDevices(devices []transport.Advertisement) error {
	if err := f.assign("devices", fmt.Sprintf("%d", len(devices))); err != nil {
		return err
	}
	for i, d := range devices {
		if err := f.assign(fmt.Sprintf("device_%d_name", i), d.Name); err != nil {
			return err
		}
		if err := f.assign(fmt.Sprintf("device_%d_address", i), d.Address); err != nil {
			return err
		}
	}
	return nil
}

func (f *shellVarFormatter) DateTime(dt codec.DateTime) error {
	if dt.IsAbsent() {
		return f.assign("datetime", "")
	}
	return f.assign("datetime", dt.String())
}

func (f *shellVarFormatter) Battery(b codec.Battery) error {
	if b.IsAbsent() {
		return f.assign("battery", "")
	}
	return f.assign("battery", fmt.Sprintf("%d", b.Percent()))
}

func (f *shellVarFormatter) Flags(flags codec.Flags) error {
	return f.assign("flags", fmt.Sprintf("%d", uint8(flags)))
}

func (f *shellVarFormatter) Temperatures(t codec.Temperatures) error {
	temps := []struct {
		name  string
		value codec.Temperature
	}{
		{"current_temp", t.Current},
		{"manual_temp", t.Manual},
		{"target_temp_l", t.TargetLow},
		{"target_temp_h", t.TargetHigh},
		{"offset_temp", t.Offset},
	}
	for _, tv := range temps {
		value := ""
		if !tv.value.IsAbsent() {
			value = fmt.Sprintf("%.1f", tv.value.Celsius())
		}
		if err := f.assign(tv.name, value); err != nil {
			return err
		}
	}

	settings := []struct {
		name  string
		value codec.Setting
	}{
		{"window_open_detection", t.WindowOpenSensitivity},
		{"window_open_minutes", t.WindowOpenMinutes},
	}
	for _, sv := range settings {
		value := ""
		if !sv.value.IsAbsent() {
			value = fmt.Sprintf("%d", sv.value.Value())
		}
		if err := f.assign(sv.name, value); err != nil {
			return err
		}
	}
	return nil
}

func (f *shellVarFormatter) LCDTimer(t codec.LCDTimer) error {
	return f.assign("lcd_timer", fmt.Sprintf("%d", t))
}

func (f *shellVarFormatter) Day(day int, periods []codec.Period) error {
	for j, p := range periods {
		if err := f.assign(fmt.Sprintf("day_%d_period_%d_start", day, j), clock(p.Start)); err != nil {
			return err
		}
		if err := f.assign(fmt.Sprintf("day_%d_period_%d_end", day, j), clock(p.End)); err != nil {
			return err
		}
	}
	return nil
}

func (f *shellVarFormatter) Days(days [][]codec.Period) error {
	for i, day := range days {
		if err := f.Day(i, day); err != nil {
			return err
		}
	}
	return nil
}

func (f *shellVarFormatter) Holidays(holidays []codec.Holiday) error {
	for i, h := range holidays {
		start, end, temp := "", "", ""
		if !h.Start.IsAbsent() {
			start = h.Start.String()
		}
		if !h.End.IsAbsent() {
			end = h.End.String()
		}
		if !h.Temp.IsAbsent() {
			temp = fmt.Sprintf("%.1f", h.Temp.Celsius())
		}
		if err := f.assign(fmt.Sprintf("holiday_%d_start", i), start); err != nil {
			return err
		}
		if err := f.assign(fmt.Sprintf("holiday_%d_end", i), end); err != nil {
			return err
		}
		if err := f.assign(fmt.Sprintf("holiday_%d_temp", i), temp); err != nil {
			return err
		}
	}
	return nil
}

// shellSafe matches values that need no quoting in POSIX shells
var shellSafe = regexp.MustCompile(`^[a-zA-Z0-9_@%+=:,./-]+$`)

// shellQuote single-quotes a value for safe use in `eval`. Empty values
// become '' and embedded single quotes use the '"'"' dance.
func shellQuote(s string) string {
	if shellSafe.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
