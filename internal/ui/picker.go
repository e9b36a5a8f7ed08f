package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/cometblue/internal/transport"
)

// ErrPickerCancelled is returned when the user quits the device picker
// without choosing a device.
var ErrPickerCancelled = fmt.Errorf("device selection cancelled")

// ScanFunc performs one discovery scan and returns the advertisements seen
type ScanFunc func() ([]transport.Advertisement, error)

// scanResultMsg carries the scan outcome back into the picker model
type scanResultMsg struct {
	devices []transport.Advertisement
	err     error
}

// pickerModel is the Bubble Tea model behind PickDevice: a spinner while
// the scan runs, then an arrow-key list of discovered devices.
type pickerModel struct {
	spinner  spinner.Model
	scan     ScanFunc
	scanning bool
	devices  []transport.Advertisement
	cursor   int
	chosen   bool
	err      error
	width    int
	height   int
}

func newPickerModel(scan ScanFunc) pickerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(PrimaryColor)
	width, height := GetTerminalSize()
	return pickerModel{
		spinner:  s,
		scan:     scan,
		scanning: true,
		width:    width,
		height:   height,
	}
}

func (m pickerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runScan())
}

func (m pickerModel) runScan() tea.Cmd {
	return func() tea.Msg {
		devices, err := m.scan()
		return scanResultMsg{devices: devices, err: err}
	}
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = GetTerminalSize()
		return m, nil

	case spinner.TickMsg:
		if !m.scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case scanResultMsg:
		m.scanning = false
		m.devices = msg.devices
		m.err = msg.err
		if m.err != nil || len(m.devices) == 0 {
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.devices)-1 {
				m.cursor++
			}
		case "enter":
			if !m.scanning && len(m.devices) > 0 {
				m.chosen = true
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

func (m pickerModel) View() string {
	if m.scanning {
		return fmt.Sprintf("\n  %s Scanning for devices...\n", m.spinner.View())
	}
	if m.err != nil || len(m.devices) == 0 {
		return ""
	}

	dividerWidth := m.width - 4
	if dividerWidth < 10 {
		dividerWidth = 10
	}

	out := "\n  Select a device:\n"
	out += "  " + RenderHorizontalDivider(dividerWidth, "─") + "\n\n"
	for i, d := range m.devices {
		name := d.Name
		if name == "" {
			name = "(unnamed)"
		}
		line := fmt.Sprintf("%s  %s  %s",
			name, d.Address, MutedItemStyle.Render(fmt.Sprintf("%d dBm", d.RSSI)))
		if i == m.cursor {
			out += SelectedItemStyle.Render("  > "+line) + "\n"
		} else {
			out += "    " + line + "\n"
		}
	}
	out += MutedItemStyle.Render("\n  enter: select • q: cancel\n")
	return out
}

// PickDevice scans for devices and lets the user choose one interactively.
// The picker renders on stderr so formatted output on stdout stays clean.
func PickDevice(scan ScanFunc) (transport.Advertisement, error) {
	p := tea.NewProgram(newPickerModel(scan), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return transport.Advertisement{}, err
	}

	m, ok := final.(pickerModel)
	if !ok {
		return transport.Advertisement{}, fmt.Errorf("unexpected picker model type")
	}
	if m.err != nil {
		return transport.Advertisement{}, m.err
	}
	if len(m.devices) == 0 {
		return transport.Advertisement{}, fmt.Errorf("no devices found")
	}
	if !m.chosen {
		return transport.Advertisement{}, ErrPickerCancelled
	}
	return m.devices[m.cursor], nil
}
