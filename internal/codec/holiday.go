package codec

// HolidaySize is the wire size of one holiday table row:
// start date/time (5) + end date/time (5) + target temperature (1).
const HolidaySize = 11

// Holiday is one row of the device's holiday table: a date range during
// which the target temperature overrides the weekly schedule. A holiday
// with both dates absent is cleared.
type Holiday struct {
	Start DateTime
	End   DateTime
	Temp  Temperature
}

// IsCleared reports whether the holiday is deconfigured (both dates absent)
func (h Holiday) IsCleared() bool {
	return h.Start.IsAbsent() && h.End.IsAbsent()
}

// DecodeHoliday decodes an 11-byte holiday row. On a cleared holiday the
// temperature byte is don't-care on the device, so it decodes to the absent
// temperature no matter what the byte holds.
func DecodeHoliday(data []byte) (Holiday, error) {
	if len(data) != HolidaySize {
		return Holiday{}, NewMalformedDataError(
			"holiday value must be %d bytes, got %d", HolidaySize, len(data))
	}

	start, err := DecodeDateTime(data[0:DateTimeSize])
	if err != nil {
		return Holiday{}, err
	}
	end, err := DecodeDateTime(data[DateTimeSize : 2*DateTimeSize])
	if err != nil {
		return Holiday{}, err
	}

	h := Holiday{Start: start, End: end}
	if !h.IsCleared() {
		h.Temp = DecodeTemperature(data[2*DateTimeSize])
	}
	return h, nil
}

// EncodeHoliday encodes a holiday row. Clearing a holiday always forces the
// temperature byte to the sentinel as well, even if the caller supplied a
// real temperature; the device expects cleared rows to be fully unset.
func EncodeHoliday(h Holiday) ([]byte, error) {
	if h.IsCleared() {
		data := unsetPattern(HolidaySize)
		data[2*DateTimeSize] = temperatureSentinel
		return data, nil
	}

	start, err := EncodeDateTime(h.Start)
	if err != nil {
		return nil, err
	}
	end, err := EncodeDateTime(h.End)
	if err != nil {
		return nil, err
	}
	temp, err := EncodeTemperature(h.Temp)
	if err != nil {
		return nil, err
	}

	data := make([]byte, 0, HolidaySize)
	data = append(data, start...)
	data = append(data, end...)
	data = append(data, temp)
	return data, nil
}
