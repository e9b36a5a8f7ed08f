package device

import (
	"fmt"
	"strconv"
	"strings"
)

// Weekday indexes the device's schedule table, Monday first. This matches
// the row order on the wire, not time.Weekday (which starts on Sunday).
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [NumDays]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// String returns the lowercase English day name
func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// ParseWeekday normalizes a user-supplied day: a full name ("monday"), any
// unambiguous prefix of at least three letters ("mon"), or a 1-based number
// ("1" = Monday).
func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty weekday")
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > NumDays {
			return 0, fmt.Errorf("weekday number %d is outside 1..%d", n, NumDays)
		}
		return Weekday(n - 1), nil
	}

	if len(s) >= 3 {
		for i, name := range weekdayNames {
			if strings.HasPrefix(name, s) {
				return Weekday(i), nil
			}
		}
	}

	return 0, fmt.Errorf("unknown weekday %q", s)
}
