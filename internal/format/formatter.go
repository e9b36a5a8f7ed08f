package format

import (
	"fmt"
	"io"

	"github.com/muurk/cometblue/internal/codec"
	"github.com/muurk/cometblue/internal/transport"
)

// Output format names accepted on the command line
const (
	KindHuman    = "human-readable"
	KindJSON     = "json"
	KindShellVar = "shell-var"
)

// Formatter renders device values to an output stream. Each method prints
// one read result; the three implementations differ only in presentation,
// never in which values they accept.
type Formatter interface {
	// Text prints a named free-form string value (device name, firmware
	// revision and friends).
	Text(name, value string) error

	// DiscoveredDevices prints the result of a scan
	DiscoveredDevices(devices []transport.Advertisement) error

	DateTime(dt codec.DateTime) error
	Battery(b codec.Battery) error
	Flags(f codec.Flags) error
	Temperatures(t codec.Temperatures) error
	LCDTimer(t codec.LCDTimer) error

	// Day prints the schedule of one weekday, 0-based Monday first.
	Day(day int, periods []codec.Period) error
	Days(days [][]codec.Period) error
	Holidays(holidays []codec.Holiday) error
}

// Kinds lists the accepted format names, for flag help text
func Kinds() []string {
	return []string{KindJSON, KindHuman, KindShellVar}
}

// New creates the formatter named by kind, writing to w
func New(kind string, w io.Writer) (Formatter, error) {
	switch kind {
	case KindHuman:
		return &humanFormatter{w: w}, nil
	case KindJSON:
		return &jsonFormatter{w: w}, nil
	case KindShellVar:
		return &shellVarFormatter{w: w}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", kind)
	}
}
