package codec

import (
	"encoding/binary"
	"math"
)

// PINSize is the wire size of the PIN authentication value
const PINSize = 4

// EncodePIN encodes the numeric device PIN into the four-byte little-endian
// form the PIN characteristic expects. The write must complete before any
// protected characteristic is read or written; sequencing that is the
// transport caller's job, not this package's.
func EncodePIN(pin int64) ([]byte, error) {
	if pin < 0 || pin > math.MaxUint32 {
		return nil, NewInvalidPinError(pin)
	}
	data := make([]byte, PINSize)
	binary.LittleEndian.PutUint32(data, uint32(pin))
	return data, nil
}
