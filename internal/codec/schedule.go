package codec

import "fmt"

const (
	// PeriodsPerDay is the fixed number of period slots per weekday
	PeriodsPerDay = 4

	// periodSlotSize is the wire size of one period slot
	periodSlotSize = 4

	// DayScheduleSize is the wire size of a full weekday schedule
	DayScheduleSize = PeriodsPerDay * periodSlotSize

	// MinutesPerDay bounds a period start/end (minutes since midnight)
	MinutesPerDay = 24 * 60
)

// Period is one heating window within a weekday, expressed as minutes since
// midnight. The codec does not require Start < End: the device does not
// enforce period ordering or non-overlap, and the codec's job is to carry
// what the device carries.
type Period struct {
	Start int
	End   int
}

// String renders the period as "HH:MM-HH:MM"
func (p Period) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", p.Start/60, p.Start%60, p.End/60, p.End%60)
}

// DecodeDaySchedule decodes a 16-byte weekday schedule into its configured
// periods. Unset slots are skipped; slot order of the remaining periods is
// preserved, so decode-encode round trips are byte exact for any schedule
// the device can emit.
func DecodeDaySchedule(data []byte) ([]Period, error) {
	if len(data) != DayScheduleSize {
		return nil, NewMalformedDataError(
			"day schedule must be %d bytes, got %d", DayScheduleSize, len(data))
	}

	var periods []Period
	for slot := 0; slot < PeriodsPerDay; slot++ {
		raw := data[slot*periodSlotSize : (slot+1)*periodSlotSize]
		if isUnsetPattern(raw) {
			continue
		}

		startH, startM, endH, endM := int(raw[0]), int(raw[1]), int(raw[2]), int(raw[3])
		if startH > 23 || endH > 23 {
			return nil, NewMalformedDataError(
				"period slot %d hour bytes %d/%d are outside 0..23", slot, startH, endH)
		}
		if startM > 59 || endM > 59 {
			return nil, NewMalformedDataError(
				"period slot %d minute bytes %d/%d are outside 0..59", slot, startM, endM)
		}

		periods = append(periods, Period{
			Start: startH*60 + startM,
			End:   endH*60 + endM,
		})
	}

	return periods, nil
}

// EncodeDaySchedule encodes up to four periods into the 16-byte weekday
// schedule. Slot i always receives period i; remaining slots are padded
// with the unset pattern. More than four periods is an explicit error, not
// a truncation.
func EncodeDaySchedule(periods []Period) ([]byte, error) {
	if len(periods) > PeriodsPerDay {
		return nil, NewTooManyPeriodsError(len(periods))
	}

	data := unsetPattern(DayScheduleSize)
	for i, p := range periods {
		if p.Start < 0 || p.Start >= MinutesPerDay {
			return nil, NewRangeError(
				"period %d start %d is outside 0..%d minutes", i, p.Start, MinutesPerDay-1)
		}
		if p.End < 0 || p.End >= MinutesPerDay {
			return nil, NewRangeError(
				"period %d end %d is outside 0..%d minutes", i, p.End, MinutesPerDay-1)
		}

		slot := data[i*periodSlotSize : (i+1)*periodSlotSize]
		slot[0] = byte(p.Start / 60)
		slot[1] = byte(p.Start % 60)
		slot[2] = byte(p.End / 60)
		slot[3] = byte(p.End % 60)
	}

	return data, nil
}
