package codec

import (
	"fmt"
	"time"
)

const (
	// DateTimeSize is the wire size of a date/time value
	DateTimeSize = 5

	// unsetByte is the per-byte "all bits set" sentinel used by unset
	// multi-byte fields
	unsetByte = 0xff

	// MinYear and MaxYear bound the single year byte (year - 2000)
	MinYear = 2000
	MaxYear = 2255
)

// DateTime is a device clock value with minute resolution, or the explicit
// absent value used to clear holidays. Wire layout is five bytes:
// minute, hour, day, month, year-2000; five 0xff bytes mean "unset".
//
// The zero value is the absent date/time.
type DateTime struct {
	year   int
	month  int
	day    int
	hour   int
	minute int
	set    bool
}

// NoDateTime is the absent date/time ("unset" on the wire).
var NoDateTime = DateTime{}

// NewDateTime creates a date/time after validating every field range.
// Day-of-month plausibility against the month (e.g. February 30) is not
// checked; the device itself only bounds the raw byte.
func NewDateTime(year, month, day, hour, minute int) (DateTime, error) {
	if year < MinYear || year > MaxYear {
		return NoDateTime, NewRangeError("year %d is outside %d..%d", year, MinYear, MaxYear)
	}
	if month < 1 || month > 12 {
		return NoDateTime, NewRangeError("month %d is outside 1..12", month)
	}
	if day < 1 || day > 31 {
		return NoDateTime, NewRangeError("day %d is outside 1..31", day)
	}
	if hour < 0 || hour > 23 {
		return NoDateTime, NewRangeError("hour %d is outside 0..23", hour)
	}
	if minute < 0 || minute > 59 {
		return NoDateTime, NewRangeError("minute %d is outside 0..59", minute)
	}
	return DateTime{year: year, month: month, day: day, hour: hour, minute: minute, set: true}, nil
}

// DateTimeOf converts a time.Time to a device date/time, dropping seconds
func DateTimeOf(t time.Time) (DateTime, error) {
	return NewDateTime(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute())
}

// IsAbsent reports whether the date/time is the explicit "unset" value
func (dt DateTime) IsAbsent() bool {
	return !dt.set
}

// Year returns the full four-digit year
func (dt DateTime) Year() int { return dt.year }

// Month returns the month 1..12
func (dt DateTime) Month() int { return dt.month }

// Day returns the day of month 1..31
func (dt DateTime) Day() int { return dt.day }

// Hour returns the hour 0..23
func (dt DateTime) Hour() int { return dt.hour }

// Minute returns the minute 0..59
func (dt DateTime) Minute() int { return dt.minute }

// Time converts to a time.Time in the given location. Only meaningful for a
// non-absent date/time.
func (dt DateTime) Time(loc *time.Location) time.Time {
	return time.Date(dt.year, time.Month(dt.month), dt.day, dt.hour, dt.minute, 0, 0, loc)
}

// String returns a human-readable rendering, "--" for absent
func (dt DateTime) String() string {
	if dt.IsAbsent() {
		return "--"
	}
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d", dt.year, dt.month, dt.day, dt.hour, dt.minute)
}

// DecodeDateTime decodes a five-byte date/time value. The full unset
// pattern is checked before field-wise decoding, so a year byte of 0xff in
// an otherwise set value still means year 2255.
func DecodeDateTime(data []byte) (DateTime, error) {
	if len(data) != DateTimeSize {
		return NoDateTime, NewMalformedDataError(
			"date/time value must be %d bytes, got %d", DateTimeSize, len(data))
	}
	if isUnsetPattern(data) {
		return NoDateTime, nil
	}

	minute, hour, day, month := int(data[0]), int(data[1]), int(data[2]), int(data[3])
	year := int(data[4]) + 2000

	if minute > 59 {
		return NoDateTime, NewMalformedDataError("minute byte %d is outside 0..59", minute)
	}
	if hour > 23 {
		return NoDateTime, NewMalformedDataError("hour byte %d is outside 0..23", hour)
	}
	if day < 1 || day > 31 {
		return NoDateTime, NewMalformedDataError("day byte %d is outside 1..31", day)
	}
	if month < 1 || month > 12 {
		return NoDateTime, NewMalformedDataError("month byte %d is outside 1..12", month)
	}

	return DateTime{year: year, month: month, day: day, hour: hour, minute: minute, set: true}, nil
}

// EncodeDateTime encodes a date/time to its five wire bytes. The absent
// value encodes to the unset pattern.
func EncodeDateTime(dt DateTime) ([]byte, error) {
	if dt.IsAbsent() {
		return unsetPattern(DateTimeSize), nil
	}
	if dt.year < MinYear || dt.year > MaxYear {
		return nil, NewRangeError("year %d is outside %d..%d", dt.year, MinYear, MaxYear)
	}
	return []byte{
		byte(dt.minute),
		byte(dt.hour),
		byte(dt.day),
		byte(dt.month),
		byte(dt.year - 2000),
	}, nil
}

// isUnsetPattern reports whether every byte carries the unset sentinel
func isUnsetPattern(data []byte) bool {
	for _, b := range data {
		if b != unsetByte {
			return false
		}
	}
	return true
}

// unsetPattern returns n sentinel bytes
func unsetPattern(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = unsetByte
	}
	return p
}
