package codec

import "fmt"

// TemperaturesSize is the wire size of the temperatures characteristic:
// seven signed bytes (current, manual, target low, target high, offset,
// window-open sensitivity, window-open minutes).
const TemperaturesSize = 7

// Setting is a small numeric device setting carried as one signed byte,
// with the same 0x80 "do not change" sentinel the temperature fields use.
//
// The zero value is the absent setting.
type Setting struct {
	value int8
	set   bool
}

// NoSetting is the absent ("leave unchanged") setting.
var NoSetting = Setting{}

// NewSetting creates a setting from a non-negative byte-sized count
func NewSetting(v int) (Setting, error) {
	if v < 0 || v > maxHalfDegrees {
		return NoSetting, NewRangeError("setting %d is outside 0..%d", v, maxHalfDegrees)
	}
	return Setting{value: int8(v), set: true}, nil
}

// IsAbsent reports whether the setting is "leave unchanged"
func (s Setting) IsAbsent() bool {
	return !s.set
}

// Value returns the setting count. Only meaningful when not absent.
func (s Setting) Value() int {
	return int(s.value)
}

// String returns a human-readable rendering, "--" for absent
func (s Setting) String() string {
	if s.IsAbsent() {
		return "--"
	}
	return fmt.Sprintf("%d", s.value)
}

// Temperatures is the device's temperature settings block. Every field
// supports the absent value: on write the sentinel tells the device to keep
// the current setting, and Current is read-only so it always encodes as the
// sentinel.
type Temperatures struct {
	Current               Temperature
	Manual                Temperature
	TargetLow             Temperature
	TargetHigh            Temperature
	Offset                Temperature
	WindowOpenSensitivity Setting
	WindowOpenMinutes     Setting
}

// DecodeTemperatures decodes the seven-byte temperatures characteristic
func DecodeTemperatures(data []byte) (Temperatures, error) {
	if len(data) != TemperaturesSize {
		return Temperatures{}, NewMalformedDataError(
			"temperatures value must be %d bytes, got %d", TemperaturesSize, len(data))
	}
	return Temperatures{
		Current:               DecodeTemperature(data[0]),
		Manual:                DecodeTemperature(data[1]),
		TargetLow:             DecodeTemperature(data[2]),
		TargetHigh:            DecodeTemperature(data[3]),
		Offset:                DecodeTemperature(data[4]),
		WindowOpenSensitivity: decodeSetting(data[5]),
		WindowOpenMinutes:     decodeSetting(data[6]),
	}, nil
}

// EncodeTemperatures encodes the temperatures block for writing. The
// current temperature byte is always the sentinel: the device rejects
// attempts to set its own reading.
func EncodeTemperatures(t Temperatures) ([]byte, error) {
	data := make([]byte, TemperaturesSize)
	data[0] = temperatureSentinel

	var err error
	for i, temp := range []Temperature{t.Manual, t.TargetLow, t.TargetHigh, t.Offset} {
		if data[i+1], err = EncodeTemperature(temp); err != nil {
			return nil, err
		}
	}
	data[5] = encodeSetting(t.WindowOpenSensitivity)
	data[6] = encodeSetting(t.WindowOpenMinutes)
	return data, nil
}

func decodeSetting(b byte) Setting {
	if b == temperatureSentinel {
		return NoSetting
	}
	return Setting{value: int8(b), set: true}
}

func encodeSetting(s Setting) byte {
	if s.IsAbsent() {
		return temperatureSentinel
	}
	return byte(s.value)
}
