package codec

import "fmt"

// Wire sizes of the single-byte characteristics
const (
	BatterySize  = 1
	FlagsSize    = 1
	LCDTimerSize = 1
)

// Battery is the device battery charge in percent, or absent when the
// device has no reading yet (all-bits-set sentinel).
//
// The zero value is the absent reading.
type Battery struct {
	percent uint8
	set     bool
}

// NoBattery is the absent battery reading.
var NoBattery = Battery{}

// IsAbsent reports whether the device provided no battery information
func (b Battery) IsAbsent() bool {
	return !b.set
}

// Percent returns the charge percentage. Only meaningful when not absent.
func (b Battery) Percent() int {
	return int(b.percent)
}

// String returns a human-readable rendering, "--" for absent
func (b Battery) String() string {
	if b.IsAbsent() {
		return "--"
	}
	return fmt.Sprintf("%d%%", b.percent)
}

// DecodeBattery decodes the one-byte battery charge characteristic
func DecodeBattery(data []byte) (Battery, error) {
	if len(data) != BatterySize {
		return NoBattery, NewMalformedDataError(
			"battery value must be %d byte, got %d", BatterySize, len(data))
	}
	if data[0] == unsetByte {
		return NoBattery, nil
	}
	return Battery{percent: data[0], set: true}, nil
}

// Flags is the device status bitmask. Bit meanings are undocumented, so the
// value is carried opaquely; no bit is interpreted or named here.
type Flags uint8

// String renders the bitmask in hex
func (f Flags) String() string {
	return fmt.Sprintf("0x%02x", uint8(f))
}

// DecodeFlags decodes the one-byte status flags characteristic
func DecodeFlags(data []byte) (Flags, error) {
	if len(data) != FlagsSize {
		return 0, NewMalformedDataError(
			"flags value must be %d byte, got %d", FlagsSize, len(data))
	}
	return Flags(data[0]), nil
}

// EncodeFlags encodes the status bitmask unchanged
func EncodeFlags(f Flags) []byte {
	return []byte{byte(f)}
}

// LCDTimer is the display backlight timer setting (device units)
type LCDTimer uint8

// DecodeLCDTimer decodes the one-byte LCD timer characteristic
func DecodeLCDTimer(data []byte) (LCDTimer, error) {
	if len(data) != LCDTimerSize {
		return 0, NewMalformedDataError(
			"LCD timer value must be %d byte, got %d", LCDTimerSize, len(data))
	}
	return LCDTimer(data[0]), nil
}

// EncodeLCDTimer encodes the LCD timer setting
func EncodeLCDTimer(t LCDTimer) []byte {
	return []byte{byte(t)}
}

// DecodeString decodes a fixed-length ASCII characteristic (model number,
// firmware revision and friends). Trailing NUL and space padding is
// stripped; a byte outside the ASCII range is malformed.
func DecodeString(data []byte) (string, error) {
	end := len(data)
	for end > 0 && (data[end-1] == 0 || data[end-1] == ' ') {
		end--
	}
	for i := 0; i < end; i++ {
		if data[i] > 0x7f {
			return "", NewMalformedDataError(
				"string value contains non-ASCII byte 0x%02x at offset %d", data[i], i)
		}
	}
	return string(data[:end]), nil
}
