package format

import (
	"encoding/json"
	"io"

	"github.com/muurk/cometblue/internal/codec"
	"github.com/muurk/cometblue/internal/transport"
)

// jsonFormatter prints each value as one JSON document, for scripting.
// Absent values become null.
type jsonFormatter struct {
	w io.Writer
}

func (f *jsonFormatter) emit(v any) error {
	enc := json.NewEncoder(f.w)
	return enc.Encode(v)
}

func (f *jsonFormatter) Text(_ string, value string) error {
	return f.emit(value)
}

func (f *jsonFormatter) DiscoveredDevices(devices []transport.Advertisement) error {
	type jsonDevice struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	}
	out := make([]jsonDevice, 0, len(devices))
	for _, d := range devices {
		out = append(out, jsonDevice{Name: d.Name, Address: d.Address})
	}
	return f.emit(out)
}

func (f *jsonFormatter) DateTime(dt codec.DateTime) error {
	if dt.IsAbsent() {
		return f.emit(nil)
	}
	return f.emit(dt.String())
}

func (f *jsonFormatter) Battery(b codec.Battery) error {
	if b.IsAbsent() {
		return f.emit(nil)
	}
	return f.emit(b.Percent())
}

func (f *jsonFormatter) Flags(flags codec.Flags) error {
	return f.emit(uint8(flags))
}

func (f *jsonFormatter) Temperatures(t codec.Temperatures) error {
	out := map[string]any{
		"current_temp":          jsonTemp(t.Current),
		"manual_temp":           jsonTemp(t.Manual),
		"target_temp_l":         jsonTemp(t.TargetLow),
		"target_temp_h":         jsonTemp(t.TargetHigh),
		"offset_temp":           jsonTemp(t.Offset),
		"window_open_detection": jsonSetting(t.WindowOpenSensitivity),
		"window_open_minutes":   jsonSetting(t.WindowOpenMinutes),
	}
	return f.emit(out)
}

func (f *jsonFormatter) LCDTimer(t codec.LCDTimer) error {
	return f.emit(int(t))
}

type jsonPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func jsonPeriods(periods []codec.Period) []jsonPeriod {
	out := make([]jsonPeriod, 0, len(periods))
	for _, p := range periods {
		out = append(out, jsonPeriod{Start: clock(p.Start), End: clock(p.End)})
	}
	return out
}

func (f *jsonFormatter) Day(_ int, periods []codec.Period) error {
	return f.emit(jsonPeriods(periods))
}

func (f *jsonFormatter) Days(days [][]codec.Period) error {
	out := make([][]jsonPeriod, 0, len(days))
	for _, day := range days {
		out = append(out, jsonPeriods(day))
	}
	return f.emit(out)
}

func (f *jsonFormatter) Holidays(holidays []codec.Holiday) error {
	type jsonHoliday struct {
		Start *string  `json:"start"`
		End   *string  `json:"end"`
		Temp  *float64 `json:"temp"`
	}
	out := make([]jsonHoliday, 0, len(holidays))
	for _, h := range holidays {
		var jh jsonHoliday
		if !h.Start.IsAbsent() {
			s := h.Start.String()
			jh.Start = &s
		}
		if !h.End.IsAbsent() {
			s := h.End.String()
			jh.End = &s
		}
		if !h.Temp.IsAbsent() {
			c := h.Temp.Celsius()
			jh.Temp = &c
		}
		out = append(out, jh)
	}
	return f.emit(out)
}

func jsonTemp(t codec.Temperature) any {
	if t.IsAbsent() {
		return nil
	}
	return t.Celsius()
}

func jsonSetting(s codec.Setting) any {
	if s.IsAbsent() {
		return nil
	}
	return s.Value()
}
