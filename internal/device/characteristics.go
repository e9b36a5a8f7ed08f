package device

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// Standard GATT characteristics (Device Information / Generic Access)
const (
	UUIDDeviceName       = "00002a00-0000-1000-8000-00805f9b34fb"
	UUIDModelNumber      = "00002a24-0000-1000-8000-00805f9b34fb"
	UUIDFirmwareRevision = "00002a26-0000-1000-8000-00805f9b34fb"
	UUIDSoftwareRevision = "00002a28-0000-1000-8000-00805f9b34fb"
	UUIDManufacturerName = "00002a29-0000-1000-8000-00805f9b34fb"
)

// Vendor characteristics of the Comet Blue service. These are not in any
// published profile; the layout behind each one is reverse engineered.
const (
	UUIDDateTime          = "47e9ee01-47e9-11e4-8939-164230d1df67"
	UUIDFlags             = "47e9ee2a-47e9-11e4-8939-164230d1df67"
	UUIDTemperatures      = "47e9ee2b-47e9-11e4-8939-164230d1df67"
	UUIDBattery           = "47e9ee2c-47e9-11e4-8939-164230d1df67"
	UUIDFirmwareRevision2 = "47e9ee2d-47e9-11e4-8939-164230d1df67"
	UUIDLCDTimer          = "47e9ee2e-47e9-11e4-8939-164230d1df67"
	UUIDPIN               = "47e9ee30-47e9-11e4-8939-164230d1df67"

	// Table characteristic bases: row n lives at base+n
	uuidDayBase     = "47e9ee10-47e9-11e4-8939-164230d1df67"
	uuidHolidayBase = "47e9ee20-47e9-11e4-8939-164230d1df67"
)

const (
	// NumDays is the number of rows in the weekday schedule table
	NumDays = 7

	// NumHolidays is the number of rows in the holiday table
	NumHolidays = 8
)

// tableUUID computes the UUID of table row n by incrementing the first
// 32-bit field of the base UUID, the addressing scheme the device uses for
// its day and holiday tables.
func tableUUID(base string, n int) (string, error) {
	id, err := uuid.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid table base UUID %q: %w", base, err)
	}

	timeLow := binary.BigEndian.Uint32(id[0:4])
	binary.BigEndian.PutUint32(id[0:4], timeLow+uint32(n))
	return id.String(), nil
}

// DayUUID returns the characteristic UUID of the schedule row for weekday w
func DayUUID(w Weekday) (string, error) {
	if w < Monday || w > Sunday {
		return "", fmt.Errorf("invalid weekday %d", w)
	}
	return tableUUID(uuidDayBase, int(w))
}

// HolidayUUID returns the characteristic UUID of holiday slot n (1-based)
func HolidayUUID(n int) (string, error) {
	if n < 1 || n > NumHolidays {
		return "", fmt.Errorf("holiday slot %d is outside 1..%d", n, NumHolidays)
	}
	return tableUUID(uuidHolidayBase, n-1)
}
