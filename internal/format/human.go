package format

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/muurk/cometblue/internal/codec"
	"github.com/muurk/cometblue/internal/transport"
)

// humanFormatter prints values for a person at a terminal
type humanFormatter struct {
	w io.Writer
}

func (f *humanFormatter) Text(_ string, value string) error {
	_, err := fmt.Fprintln(f.w, value)
	return err
}

func (f *humanFormatter) DiscoveredDevices(devices []transport.Advertisement) error {
	for _, d := range devices {
		if _, err := fmt.Fprintf(f.w, "%s (%s)\n", d.Name, d.Address); err != nil {
			return err
		}
	}
	return nil
}

func (f *humanFormatter) DateTime(dt codec.DateTime) error {
	_, err := fmt.Fprintln(f.w, dt)
	return err
}

func (f *humanFormatter) Battery(b codec.Battery) error {
	if b.IsAbsent() {
		_, err := fmt.Fprintln(f.w, "No information")
		return err
	}
	_, err := fmt.Fprintf(f.w, "%d%%\n", b.Percent())
	return err
}

func (f *humanFormatter) Flags(flags codec.Flags) error {
	_, err := fmt.Fprintln(f.w, flags)
	return err
}

func (f *humanFormatter) Temperatures(t codec.Temperatures) error {
	var b []byte
	b = fmt.Appendf(b, "Current temperature: %s\n", t.Current)
	b = fmt.Appendf(b, "Temperature for manual mode: %s\n", t.Manual)
	b = fmt.Appendf(b, "Target temperature low: %s\n", t.TargetLow)
	b = fmt.Appendf(b, "Target temperature high: %s\n", t.TargetHigh)
	b = fmt.Appendf(b, "Offset temperature: %s\n", t.Offset)
	b = fmt.Appendf(b, "Window open detection: %s\n", t.WindowOpenSensitivity)
	b = fmt.Appendf(b, "Window open minutes: %s\n", t.WindowOpenMinutes)
	_, err := f.w.Write(b)
	return err
}

func (f *humanFormatter) LCDTimer(t codec.LCDTimer) error {
	_, err := fmt.Fprintf(f.w, "%d\n", t)
	return err
}

func (f *humanFormatter) Day(day int, periods []codec.Period) error {
	t := dayTable()
	t.Row(dayRow(day, periods)...)
	_, err := fmt.Fprintln(f.w, t)
	return err
}

func (f *humanFormatter) Days(days [][]codec.Period) error {
	t := dayTable()
	for i, day := range days {
		t.Row(dayRow(i, day)...)
	}
	_, err := fmt.Fprintln(f.w, t)
	return err
}

func dayTable() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("N", "Day", "Period #1", "Period #2", "Period #3", "Period #4")
}

func dayRow(day int, periods []codec.Period) []string {
	row := []string{fmt.Sprintf("%d", day+1), dayName(day), "", "", "", ""}
	for j, p := range periods {
		if j+2 < len(row) {
			row[j+2] = fmt.Sprintf("%s - %s", clock(p.Start), clock(p.End))
		}
	}
	return row
}

func (f *humanFormatter) Holidays(holidays []codec.Holiday) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("N", "Start", "End", "Temperature")

	for i, h := range holidays {
		if h.IsCleared() {
			t.Row(fmt.Sprintf("%d", i+1), "", "", "")
			continue
		}
		t.Row(fmt.Sprintf("%d", i+1), h.Start.String(), h.End.String(), h.Temp.String())
	}

	_, err := fmt.Fprintln(f.w, t)
	return err
}

var dayNames = [...]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

func dayName(i int) string {
	if i < 0 || i >= len(dayNames) {
		return fmt.Sprintf("Day %d", i+1)
	}
	return dayNames[i]
}

// clock renders minutes since midnight as HH:MM
func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
