package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Confirm prints a yes/no prompt and returns true only on an explicit
// "y" or "yes" answer.
func Confirm(prompt string) bool {
	promptStyle := lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	fmt.Fprint(os.Stderr, promptStyle.Render(prompt+" [y/N]: "))

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Fprintln(os.Stderr)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// ConfirmDangerousOperation displays a warning box listing what the
// operation is about to do and prompts for confirmation. Returns true if
// the user confirmed.
func ConfirmDangerousOperation(title string, warnings []string) bool {
	width := GetTerminalWidth()

	var lines []string

	titleLine := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true).
		Render(fmt.Sprintf("   ⚠  WARNING  -  %s", title))
	lines = append(lines, "", titleLine, "")

	bulletStyle := lipgloss.NewStyle().Foreground(TextColor)
	for _, warning := range warnings {
		lines = append(lines, bulletStyle.Render("   • "+warning))
	}
	lines = append(lines, "")

	content := strings.Join(lines, "\n")
	box := WarningBoxStyle(width).Render(content)

	fmt.Fprintln(os.Stderr, box)
	fmt.Fprintln(os.Stderr)

	if Confirm("Proceed?") {
		fmt.Fprintln(os.Stderr)
		return true
	}

	fmt.Fprintln(os.Stderr)
	cancelStyle := lipgloss.NewStyle().Foreground(MutedColor)
	fmt.Fprintln(os.Stderr, cancelStyle.Render("  Operation cancelled."))
	fmt.Fprintln(os.Stderr)
	return false
}

// RestoreConfirmation is a pre-configured confirmation for restoring a
// backup onto a device.
func RestoreConfirmation(device string, writes int) bool {
	return ConfirmDangerousOperation(
		"RESTORE DEVICE SETTINGS",
		[]string{
			fmt.Sprintf("This will overwrite settings on %s", device),
			fmt.Sprintf("The restore performs %d characteristic writes", writes),
			"Weekly schedules and holiday periods in the backup replace those on the device",
			"Keep the device in radio range until the restore completes",
		},
	)
}
