package codec

import (
	"fmt"
	"math"
)

const (
	// TemperatureSize is the wire size of a single temperature field
	TemperatureSize = 1

	// temperatureSentinel is the wire byte for "not set / do not change".
	// As a signed byte this is -128, which is why -64.0 °C is not a
	// representable temperature.
	temperatureSentinel = 0x80

	// Representable half-degree counts: the full signed byte range minus
	// the sentinel value.
	minHalfDegrees = -127
	maxHalfDegrees = 127
)

// Temperature is a thermostat temperature in half-degree Celsius steps, or
// the explicit absent value. The device transmits temperatures as one signed
// byte holding twice the Celsius value; keeping the half-degree count as an
// integer means repeated encode/decode cycles cannot drift.
//
// The zero value is the absent temperature.
type Temperature struct {
	halves int16
	set    bool
}

// NoTemperature is the absent temperature ("not set" on the wire).
var NoTemperature = Temperature{}

// NewTemperature creates a temperature from a Celsius value. The value is
// rounded to the nearest half degree; a value that rounds outside the wire
// range fails with a range error.
func NewTemperature(celsius float64) (Temperature, error) {
	// NaN and huge values must be rejected before the float to int
	// conversion, whose result is unspecified out of range.
	if math.IsNaN(celsius) || celsius < minHalfDegrees || celsius > maxHalfDegrees {
		return NoTemperature, rangeErrorCelsius(celsius)
	}
	halves := roundHalfDegrees(celsius)
	if halves < minHalfDegrees || halves > maxHalfDegrees {
		return NoTemperature, rangeErrorCelsius(celsius)
	}
	return Temperature{halves: int16(halves), set: true}, nil
}

func rangeErrorCelsius(celsius float64) error {
	return NewRangeError(
		"temperature %.1f °C is outside the representable range %.1f..%.1f °C",
		celsius, float64(minHalfDegrees)/2, float64(maxHalfDegrees)/2)
}

// roundHalfDegrees rounds celsius*2 to the nearest integer, halves away
// from zero.
func roundHalfDegrees(celsius float64) int {
	doubled := celsius * 2
	if doubled < 0 {
		return int(doubled - 0.5)
	}
	return int(doubled + 0.5)
}

// IsAbsent reports whether the temperature is the explicit "not set" value
func (t Temperature) IsAbsent() bool {
	return !t.set
}

// Celsius returns the temperature in degrees Celsius. Only meaningful for a
// non-absent temperature.
func (t Temperature) Celsius() float64 {
	return float64(t.halves) / 2
}

// HalfDegrees returns the raw half-degree count carried on the wire
func (t Temperature) HalfDegrees() int {
	return int(t.halves)
}

// String returns a human-readable rendering, "--" for absent
func (t Temperature) String() string {
	if t.IsAbsent() {
		return "--"
	}
	return fmt.Sprintf("%.1f °C", t.Celsius())
}

// DecodeTemperature decodes a single temperature wire byte. The sentinel
// byte decodes to the absent temperature, never to -64.0 °C.
func DecodeTemperature(b byte) Temperature {
	if b == temperatureSentinel {
		return NoTemperature
	}
	return Temperature{halves: int16(int8(b)), set: true}
}

// EncodeTemperature encodes a temperature to its wire byte. The absent
// temperature encodes to the sentinel.
func EncodeTemperature(t Temperature) (byte, error) {
	if t.IsAbsent() {
		return temperatureSentinel, nil
	}
	if t.halves < minHalfDegrees || t.halves > maxHalfDegrees {
		return 0, NewRangeError(
			"temperature %d half-degrees is outside the representable range %d..%d",
			t.halves, minHalfDegrees, maxHalfDegrees)
	}
	return byte(int8(t.halves)), nil
}
