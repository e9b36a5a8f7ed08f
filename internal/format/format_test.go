package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/muurk/cometblue/internal/codec"
	"github.com/muurk/cometblue/internal/transport"
)

func mustTemperature(t *testing.T, celsius float64) codec.Temperature {
	t.Helper()
	temp, err := codec.NewTemperature(celsius)
	if err != nil {
		t.Fatalf("NewTemperature(%v): %v", celsius, err)
	}
	return temp
}

func mustDateTime(t *testing.T, y, mo, d, h, mi int) codec.DateTime {
	t.Helper()
	dt, err := codec.NewDateTime(y, mo, d, h, mi)
	if err != nil {
		t.Fatalf("NewDateTime: %v", err)
	}
	return dt
}

func mustSetting(t *testing.T, v int) codec.Setting {
	t.Helper()
	s, err := codec.NewSetting(v)
	if err != nil {
		t.Fatalf("NewSetting(%d): %v", v, err)
	}
	return s
}

func TestNew(t *testing.T) {
	for _, kind := range Kinds() {
		if _, err := New(kind, &bytes.Buffer{}); err != nil {
			t.Errorf("New(%q) error = %v", kind, err)
		}
	}
	if _, err := New("xml", &bytes.Buffer{}); err == nil {
		t.Error("New(\"xml\") accepted")
	}
}

func TestHumanBattery(t *testing.T) {
	var buf bytes.Buffer
	f := &humanFormatter{w: &buf}

	b, err := codec.DecodeBattery([]byte{87})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Battery(b); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "87%\n" {
		t.Errorf("got %q, want %q", got, "87%\n")
	}

	buf.Reset()
	if err := f.Battery(codec.NoBattery); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "No information\n" {
		t.Errorf("got %q, want %q", got, "No information\n")
	}
}

func TestHumanTemperatures(t *testing.T) {
	var buf bytes.Buffer
	f := &humanFormatter{w: &buf}

	temps := codec.Temperatures{
		Current:           mustTemperature(t, 22.5),
		Manual:            mustTemperature(t, 21.0),
		WindowOpenMinutes: mustSetting(t, 10),
	}
	if err := f.Temperatures(temps); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"Current temperature: 22.5 °C\n",
		"Temperature for manual mode: 21.0 °C\n",
		"Target temperature low: --\n",
		"Window open minutes: 10\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHumanDaysTable(t *testing.T) {
	var buf bytes.Buffer
	f := &humanFormatter{w: &buf}

	days := make([][]codec.Period, 7)
	days[0] = []codec.Period{{Start: 360, End: 510}, {Start: 1020, End: 1320}}
	if err := f.Days(days); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"Monday", "Sunday", "Period #4", "06:00 - 08:30", "17:00 - 22:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestHumanSingleDay(t *testing.T) {
	var buf bytes.Buffer
	f := &humanFormatter{w: &buf}

	periods := []codec.Period{{Start: 360, End: 510}}
	if err := f.Day(4, periods); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"Friday", "06:00 - 08:30"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Monday") {
		t.Errorf("single day table lists other days:\n%s", out)
	}
}

func TestHumanDiscoveredDevices(t *testing.T) {
	var buf bytes.Buffer
	f := &humanFormatter{w: &buf}

	devices := []transport.Advertisement{
		{Name: "Comet Blue", Address: "E0:E5:CF:00:11:22", RSSI: -60},
	}
	if err := f.DiscoveredDevices(devices); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "Comet Blue (E0:E5:CF:00:11:22)\n" {
		t.Errorf("got %q", got)
	}
}

func TestJSONTemperatures(t *testing.T) {
	var buf bytes.Buffer
	f := &jsonFormatter{w: &buf}

	temps := codec.Temperatures{
		Manual:            mustTemperature(t, 21.5),
		WindowOpenMinutes: mustSetting(t, 10),
	}
	if err := f.Temperatures(temps); err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if got["manual_temp"] != 21.5 {
		t.Errorf("manual_temp = %v, want 21.5", got["manual_temp"])
	}
	if got["current_temp"] != nil {
		t.Errorf("current_temp = %v, want null", got["current_temp"])
	}
	if got["window_open_minutes"] != 10.0 {
		t.Errorf("window_open_minutes = %v, want 10", got["window_open_minutes"])
	}
}

func TestJSONBatteryAndDateTime(t *testing.T) {
	var buf bytes.Buffer
	f := &jsonFormatter{w: &buf}

	if err := f.Battery(codec.NoBattery); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != "null" {
		t.Errorf("absent battery = %q, want null", got)
	}

	buf.Reset()
	if err := f.DateTime(mustDateTime(t, 2014, 8, 27, 12, 23)); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != `"2014-08-27 12:23"` {
		t.Errorf("datetime = %q", got)
	}
}

func TestJSONHolidays(t *testing.T) {
	var buf bytes.Buffer
	f := &jsonFormatter{w: &buf}

	holidays := []codec.Holiday{
		{},
		{
			Start: mustDateTime(t, 2024, 12, 20, 10, 0),
			End:   mustDateTime(t, 2025, 1, 3, 18, 0),
			Temp:  mustTemperature(t, 8.0),
		},
	}
	if err := f.Holidays(holidays); err != nil {
		t.Fatal(err)
	}

	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got[0]["start"] != nil || got[0]["temp"] != nil {
		t.Errorf("cleared holiday = %v, want nulls", got[0])
	}
	if got[1]["start"] != "2024-12-20 10:00" || got[1]["temp"] != 8.0 {
		t.Errorf("holiday = %v", got[1])
	}
}

func TestShellVarAssignments(t *testing.T) {
	var buf bytes.Buffer
	f := &shellVarFormatter{w: &buf}

	if err := f.Text("device_name", "Comet Blue"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "COMETBLUE_DEVICE_NAME='Comet Blue'\n" {
		t.Errorf("got %q", got)
	}

	buf.Reset()
	if err := f.Battery(codec.NoBattery); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "COMETBLUE_BATTERY=''\n" {
		t.Errorf("absent battery = %q", got)
	}

	buf.Reset()
	if err := f.LCDTimer(codec.LCDTimer(15)); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "COMETBLUE_LCD_TIMER=15\n" {
		t.Errorf("lcd timer = %q", got)
	}
}

func TestShellVarDays(t *testing.T) {
	var buf bytes.Buffer
	f := &shellVarFormatter{w: &buf}

	days := make([][]codec.Period, 7)
	days[2] = []codec.Period{{Start: 360, End: 510}}
	if err := f.Days(days); err != nil {
		t.Fatal(err)
	}

	want := "COMETBLUE_DAY_2_PERIOD_0_START=06:00\nCOMETBLUE_DAY_2_PERIOD_0_END=08:30\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestJSONSingleDay(t *testing.T) {
	var buf bytes.Buffer
	f := &jsonFormatter{w: &buf}

	periods := []codec.Period{{Start: 360, End: 510}, {Start: 1020, End: 1320}}
	if err := f.Day(0, periods); err != nil {
		t.Fatal(err)
	}

	var got []map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(got) != 2 || got[0]["start"] != "06:00" || got[1]["end"] != "22:00" {
		t.Errorf("got %v", got)
	}
}

func TestShellVarSingleDay(t *testing.T) {
	var buf bytes.Buffer
	f := &shellVarFormatter{w: &buf}

	periods := []codec.Period{{Start: 360, End: 510}}
	if err := f.Day(2, periods); err != nil {
		t.Fatal(err)
	}

	want := "COMETBLUE_DAY_2_PERIOD_0_START=06:00\nCOMETBLUE_DAY_2_PERIOD_0_END=08:30\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestShellVarDiscoveredDevices(t *testing.T) {
	var buf bytes.Buffer
	f := &shellVarFormatter{w: &buf}

	devices := []transport.Advertisement{
		{Name: "Comet Blue", Address: "E0:E5:CF:00:11:22"},
	}
	if err := f.DiscoveredDevices(devices); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"COMETBLUE_DEVICES=1\n",
		"COMETBLUE_DEVICE_0_NAME='Comet Blue'\n",
		"COMETBLUE_DEVICE_0_ADDRESS=E0:E5:CF:00:11:22\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "simple", want: "simple"},
		{in: "06:00", want: "06:00"},
		{in: "21.5", want: "21.5"},
		{in: "", want: "''"},
		{in: "two words", want: "'two words'"},
		{in: "it's", want: `'it'"'"'s'`},
		{in: "$HOME", want: "'$HOME'"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := shellQuote(tt.in); got != tt.want {
				t.Errorf("shellQuote(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}
