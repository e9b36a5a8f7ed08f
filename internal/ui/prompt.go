package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// PromptPIN asks for the device PIN without echoing it. Falls back to a
// plain line read when stdin is not a terminal (pipes, scripts).
func PromptPIN(device string) (int64, error) {
	fmt.Fprintf(os.Stderr, "PIN for %s: ", device)

	var raw string
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		bytes, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return 0, fmt.Errorf("failed to read PIN: %w", err)
		}
		raw = string(bytes)
	} else {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return 0, fmt.Errorf("failed to read PIN: %w", err)
		}
		raw = line
	}

	return ParsePIN(strings.TrimSpace(raw))
}

// ParsePIN parses a PIN string into the numeric form the device expects
func ParsePIN(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty PIN")
	}
	pin, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("PIN must be a decimal number: %q", s)
	}
	if pin < 0 || pin > 0xffffffff {
		return 0, fmt.Errorf("PIN %d is out of range", pin)
	}
	return pin, nil
}
