package codec

import (
	"bytes"
	"testing"
	"time"
)

func TestDecodeDateTime(t *testing.T) {
	tests := []struct {
		name       string
		data       []byte
		wantErr    bool
		wantAbsent bool
		verify     func(t *testing.T, dt DateTime)
	}{
		{
			name: "regular value",
			data: []byte{23, 12, 27, 8, 14},
			verify: func(t *testing.T, dt DateTime) {
				if dt.Year() != 2014 || dt.Month() != 8 || dt.Day() != 27 ||
					dt.Hour() != 12 || dt.Minute() != 23 {
					t.Errorf("decoded %v, want 2014-08-27 12:23", dt)
				}
			},
		},
		{
			name: "year byte 0x00 is year 2000",
			data: []byte{0, 0, 1, 1, 0},
			verify: func(t *testing.T, dt DateTime) {
				if dt.Year() != 2000 {
					t.Errorf("Year() = %d, want 2000", dt.Year())
				}
			},
		},
		{
			name: "year byte 0xff in a set value is year 2255, not unset",
			data: []byte{0, 0, 1, 1, 0xff},
			verify: func(t *testing.T, dt DateTime) {
				if dt.IsAbsent() {
					t.Fatal("decoded absent, want year 2255")
				}
				if dt.Year() != 2255 {
					t.Errorf("Year() = %d, want 2255", dt.Year())
				}
			},
		},
		{
			name:       "full unset pattern decodes to absent",
			data:       []byte{0xff, 0xff, 0xff, 0xff, 0xff},
			wantAbsent: true,
		},
		{name: "short buffer", data: []byte{1, 2, 3, 4}, wantErr: true},
		{name: "long buffer", data: []byte{1, 2, 3, 4, 5, 6}, wantErr: true},
		{name: "minute out of range", data: []byte{60, 0, 1, 1, 0}, wantErr: true},
		{name: "hour out of range", data: []byte{0, 24, 1, 1, 0}, wantErr: true},
		{name: "day zero", data: []byte{0, 0, 0, 1, 0}, wantErr: true},
		{name: "day out of range", data: []byte{0, 0, 32, 1, 0}, wantErr: true},
		{name: "month zero", data: []byte{0, 0, 1, 0, 0}, wantErr: true},
		{name: "month out of range", data: []byte{0, 0, 1, 13, 0}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dt, err := DecodeDateTime(tt.data)

			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeDateTime() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !IsMalformedDataError(err) {
					t.Errorf("error = %v, want malformed-data error", err)
				}
				return
			}
			if dt.IsAbsent() != tt.wantAbsent {
				t.Fatalf("IsAbsent() = %v, want %v", dt.IsAbsent(), tt.wantAbsent)
			}
			if tt.verify != nil {
				tt.verify(t, dt)
			}
		})
	}
}

func TestEncodeDateTime(t *testing.T) {
	dt, err := NewDateTime(2014, 8, 27, 12, 23)
	if err != nil {
		t.Fatalf("NewDateTime() error = %v", err)
	}

	data, err := EncodeDateTime(dt)
	if err != nil {
		t.Fatalf("EncodeDateTime() error = %v", err)
	}

	want := []byte{23, 12, 27, 8, 14}
	if !bytes.Equal(data, want) {
		t.Errorf("EncodeDateTime() = %v, want %v", data, want)
	}
}

func TestEncodeDateTimeAbsent(t *testing.T) {
	data, err := EncodeDateTime(NoDateTime)
	if err != nil {
		t.Fatalf("EncodeDateTime(NoDateTime) error = %v", err)
	}
	if !bytes.Equal(data, []byte{0xff, 0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("EncodeDateTime(NoDateTime) = %v, want unset pattern", data)
	}
}

func TestNewDateTimeValidation(t *testing.T) {
	tests := []struct {
		name                          string
		year, month, day, hour, minute int
		wantErr                       bool
	}{
		{name: "valid", year: 2020, month: 6, day: 15, hour: 10, minute: 30},
		{name: "minimum year", year: 2000, month: 1, day: 1, hour: 0, minute: 0},
		{name: "maximum year", year: 2255, month: 12, day: 31, hour: 23, minute: 59},
		{name: "year before 2000", year: 1999, month: 12, day: 31, hour: 23, minute: 59, wantErr: true},
		{name: "year after 2255", year: 2256, month: 1, day: 1, hour: 0, minute: 0, wantErr: true},
		{name: "bad month", year: 2020, month: 13, day: 1, hour: 0, minute: 0, wantErr: true},
		{name: "bad day", year: 2020, month: 1, day: 0, hour: 0, minute: 0, wantErr: true},
		{name: "bad hour", year: 2020, month: 1, day: 1, hour: 24, minute: 0, wantErr: true},
		{name: "bad minute", year: 2020, month: 1, day: 1, hour: 0, minute: 60, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDateTime(tt.year, tt.month, tt.day, tt.hour, tt.minute)

			if (err != nil) != tt.wantErr {
				t.Fatalf("NewDateTime() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !IsRangeError(err) {
				t.Errorf("error = %v, want range error", err)
			}
		})
	}
}

// TestDateTimeRoundTrip checks decode∘encode identity across the field
// ranges, including both year extremes.
func TestDateTimeRoundTrip(t *testing.T) {
	values := []struct{ year, month, day, hour, minute int }{
		{2000, 1, 1, 0, 0},
		{2014, 8, 27, 12, 23},
		{2099, 2, 28, 6, 1},
		{2255, 12, 31, 23, 59},
	}

	for _, v := range values {
		dt, err := NewDateTime(v.year, v.month, v.day, v.hour, v.minute)
		if err != nil {
			t.Fatalf("NewDateTime(%v) error = %v", v, err)
		}

		data, err := EncodeDateTime(dt)
		if err != nil {
			t.Fatalf("EncodeDateTime(%v) error = %v", dt, err)
		}

		got, err := DecodeDateTime(data)
		if err != nil {
			t.Fatalf("DecodeDateTime(%v) error = %v", data, err)
		}
		if got != dt {
			t.Errorf("round trip of %v gave %v", dt, got)
		}

		// encode∘decode side: the bytes must reproduce exactly
		again, err := EncodeDateTime(got)
		if err != nil {
			t.Fatalf("re-encode error = %v", err)
		}
		if !bytes.Equal(again, data) {
			t.Errorf("re-encode of %v = %v, want %v", got, again, data)
		}
	}
}

func TestDateTimeOf(t *testing.T) {
	dt, err := DateTimeOf(time.Date(2021, time.March, 4, 5, 6, 59, 0, time.UTC))
	if err != nil {
		t.Fatalf("DateTimeOf() error = %v", err)
	}
	if dt.Year() != 2021 || dt.Month() != 3 || dt.Day() != 4 || dt.Hour() != 5 || dt.Minute() != 6 {
		t.Errorf("DateTimeOf() = %v, want 2021-03-04 05:06", dt)
	}
}
