package codec

import (
	"bytes"
	"testing"
)

func TestDecodeBattery(t *testing.T) {
	tests := []struct {
		name       string
		data       []byte
		wantErr    bool
		wantAbsent bool
		wantPct    int
	}{
		{name: "normal reading", data: []byte{87}, wantPct: 87},
		{name: "empty battery", data: []byte{0}, wantPct: 0},
		{name: "sentinel means no information", data: []byte{0xff}, wantAbsent: true},
		{name: "empty buffer", data: nil, wantErr: true},
		{name: "too long", data: []byte{1, 2}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := DecodeBattery(tt.data)

			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeBattery() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !IsMalformedDataError(err) {
					t.Errorf("error = %v, want malformed-data error", err)
				}
				return
			}
			if b.IsAbsent() != tt.wantAbsent {
				t.Fatalf("IsAbsent() = %v, want %v", b.IsAbsent(), tt.wantAbsent)
			}
			if !tt.wantAbsent && b.Percent() != tt.wantPct {
				t.Errorf("Percent() = %d, want %d", b.Percent(), tt.wantPct)
			}
		})
	}
}

func TestFlagsPassThrough(t *testing.T) {
	for _, b := range []byte{0x00, 0x01, 0x80, 0xA5, 0xff} {
		f, err := DecodeFlags([]byte{b})
		if err != nil {
			t.Fatalf("DecodeFlags(0x%02X) error = %v", b, err)
		}
		if got := EncodeFlags(f); !bytes.Equal(got, []byte{b}) {
			t.Errorf("flags round trip of 0x%02X gave %v", b, got)
		}
	}

	if _, err := DecodeFlags([]byte{1, 2}); !IsMalformedDataError(err) {
		t.Errorf("DecodeFlags(2 bytes) error = %v, want malformed-data error", err)
	}
}

func TestLCDTimerRoundTrip(t *testing.T) {
	for _, b := range []byte{0, 15, 255} {
		v, err := DecodeLCDTimer([]byte{b})
		if err != nil {
			t.Fatalf("DecodeLCDTimer(%d) error = %v", b, err)
		}
		if got := EncodeLCDTimer(v); !bytes.Equal(got, []byte{b}) {
			t.Errorf("LCD timer round trip of %d gave %v", b, got)
		}
	}

	if _, err := DecodeLCDTimer(nil); !IsMalformedDataError(err) {
		t.Errorf("DecodeLCDTimer(nil) error = %v, want malformed-data error", err)
	}
}

func TestDecodeString(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    string
		wantErr bool
	}{
		{name: "plain", data: []byte("Comet Blue"), want: "Comet Blue"},
		{name: "NUL padded", data: []byte{'1', '.', '0', 0, 0, 0}, want: "1.0"},
		{name: "space padded", data: []byte("GENIUS BT  "), want: "GENIUS BT"},
		{name: "empty", data: nil, want: ""},
		{name: "all padding", data: []byte{0, 0, ' '}, want: ""},
		{name: "non-ASCII byte", data: []byte{'a', 0xC3, 'b'}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := DecodeString(tt.data)

			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !IsMalformedDataError(err) {
					t.Errorf("error = %v, want malformed-data error", err)
				}
				return
			}
			if s != tt.want {
				t.Errorf("DecodeString() = %q, want %q", s, tt.want)
			}
		})
	}
}
