package codec

import (
	"math"
	"testing"
)

func TestDecodeTemperature(t *testing.T) {
	tests := []struct {
		name       string
		b          byte
		wantAbsent bool
		wantC      float64
	}{
		{name: "23.0 degrees", b: 0x2E, wantC: 23.0},
		{name: "half degree", b: 45, wantC: 22.5},
		{name: "zero", b: 0, wantC: 0},
		{name: "negative", b: 0xF6, wantC: -5.0}, // int8(-10)
		{name: "sentinel decodes to absent, never -64.0", b: 0x80, wantAbsent: true},
		{name: "minimum representable", b: 0x81, wantC: -63.5}, // int8(-127)
		{name: "maximum representable", b: 0x7F, wantC: 63.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			temp := DecodeTemperature(tt.b)

			if temp.IsAbsent() != tt.wantAbsent {
				t.Fatalf("IsAbsent() = %v, want %v", temp.IsAbsent(), tt.wantAbsent)
			}
			if !tt.wantAbsent && temp.Celsius() != tt.wantC {
				t.Errorf("Celsius() = %v, want %v", temp.Celsius(), tt.wantC)
			}
		})
	}
}

func TestEncodeTemperature(t *testing.T) {
	tests := []struct {
		name    string
		celsius float64
		want    byte
	}{
		{name: "23.0 degrees", celsius: 23.0, want: 0x2E},
		{name: "22.5 degrees", celsius: 22.5, want: 45},
		{name: "rounds to nearest half degree", celsius: 21.3, want: 43}, // 21.5
		{name: "rounds negative away from zero", celsius: -0.3, want: 0xFF},
		{name: "zero", celsius: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			temp, err := NewTemperature(tt.celsius)
			if err != nil {
				t.Fatalf("NewTemperature(%v) error = %v", tt.celsius, err)
			}

			b, err := EncodeTemperature(temp)
			if err != nil {
				t.Fatalf("EncodeTemperature() error = %v", err)
			}
			if b != tt.want {
				t.Errorf("EncodeTemperature() = 0x%02X, want 0x%02X", b, tt.want)
			}
		})
	}
}

func TestEncodeTemperatureAbsent(t *testing.T) {
	b, err := EncodeTemperature(NoTemperature)
	if err != nil {
		t.Fatalf("EncodeTemperature(NoTemperature) error = %v", err)
	}
	if b != 0x80 {
		t.Errorf("EncodeTemperature(NoTemperature) = 0x%02X, want 0x80", b)
	}
}

func TestNewTemperatureOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		celsius float64
	}{
		{name: "too hot", celsius: 64.0},
		{name: "too cold", celsius: -64.0}, // would round to the sentinel
		{name: "way too cold", celsius: -100.0},
		{name: "rounds out of range", celsius: 63.8},
		{name: "wraps around int16", celsius: 32818},
		{name: "wraps around negative", celsius: -32818},
		{name: "huge", celsius: 1e300},
		{name: "negative huge", celsius: -1e300},
		{name: "positive infinity", celsius: math.Inf(1)},
		{name: "negative infinity", celsius: math.Inf(-1)},
		{name: "not a number", celsius: math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTemperature(tt.celsius)
			if err == nil {
				t.Fatalf("NewTemperature(%v) expected error, got nil", tt.celsius)
			}
			if !IsRangeError(err) {
				t.Errorf("NewTemperature(%v) error = %v, want range error", tt.celsius, err)
			}
		})
	}
}

// TestTemperatureRoundTrip checks decode(encode(t)) == t for every
// representable half-degree value, and that the sentinel byte survives an
// encode(decode(b)) cycle.
func TestTemperatureRoundTrip(t *testing.T) {
	for halves := -127; halves <= 127; halves++ {
		temp, err := NewTemperature(float64(halves) / 2)
		if err != nil {
			t.Fatalf("NewTemperature(%d halves) error = %v", halves, err)
		}

		b, err := EncodeTemperature(temp)
		if err != nil {
			t.Fatalf("EncodeTemperature(%d halves) error = %v", halves, err)
		}

		got := DecodeTemperature(b)
		if got.IsAbsent() || got.HalfDegrees() != halves {
			t.Fatalf("round trip of %d halves gave %v", halves, got)
		}
	}

	b, err := EncodeTemperature(DecodeTemperature(0x80))
	if err != nil {
		t.Fatalf("sentinel round trip error = %v", err)
	}
	if b != 0x80 {
		t.Errorf("sentinel round trip = 0x%02X, want 0x80", b)
	}
}
