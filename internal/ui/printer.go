package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Printer provides methods for printing styled UI components to a writer.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stderr is used; styled boxes are chrome, not output,
// and must not pollute formatted stdout.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stderr
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details map[string]string) {
	_, _ = fmt.Fprint(p.out, RenderSuccessBox(title, details, p.width))
	p.Newline()
}

// PrintError prints an error result box with troubleshooting tips
func (p *Printer) PrintError(title string, err error, troubleshooting []string) {
	_, _ = fmt.Fprint(p.out, RenderErrorBox(title, err, troubleshooting, p.width))
	p.Newline()
}

// RenderSuccessBox renders a success result box
func RenderSuccessBox(title string, details map[string]string, width int) string {
	var lines []string

	titleLine := SuccessTitleStyle.Render("   " + SuccessMarker + "  SUCCESS  -  " + title)
	lines = append(lines, "", titleLine, "")

	for key, value := range details {
		keyStyled := ResultKeyStyle.Render("   " + key + ":")
		valueStyled := ResultValueStyle.Render(value)
		lines = append(lines, keyStyled+" "+valueStyled)
	}

	lines = append(lines, "")

	content := strings.Join(lines, "\n")
	return SuccessBoxStyle(width).Render(content)
}

// RenderErrorBox renders an error result box with troubleshooting
func RenderErrorBox(title string, err error, troubleshooting []string, width int) string {
	var lines []string

	titleLine := ErrorTitleStyle.Render("   " + FailureMarker + "  FAILED  -  " + title)
	lines = append(lines, "", titleLine, "")

	if err != nil {
		lines = append(lines, ErrorMessageStyle.Render("   Error: "+err.Error()), "")
	}

	if len(troubleshooting) > 0 {
		lines = append(lines, MutedItemStyle.Render("   Troubleshooting:"))
		for _, tip := range troubleshooting {
			lines = append(lines, MutedItemStyle.Render("     • "+tip))
		}
		lines = append(lines, "")
	}

	content := strings.Join(lines, "\n")
	return ErrorBoxStyle(width).Render(content)
}
