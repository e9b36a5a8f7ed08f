package codec

import "fmt"

// Error types for wire codec operations

// ErrorType represents the category of codec error that occurred
type ErrorType int

const (
	// ErrTypeMalformedData indicates a wire buffer with the wrong length or a
	// field outside its valid range on decode
	ErrTypeMalformedData ErrorType = iota
	// ErrTypeRange indicates a domain value that cannot be represented on the wire
	ErrTypeRange
	// ErrTypeTooManyPeriods indicates more than PeriodsPerDay periods for a day schedule
	ErrTypeTooManyPeriods
	// ErrTypeInvalidPin indicates a PIN that does not fit the 32-bit wire form
	ErrTypeInvalidPin
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeMalformedData:
		return "Malformed Data"
	case ErrTypeRange:
		return "Out Of Range"
	case ErrTypeTooManyPeriods:
		return "Too Many Periods"
	case ErrTypeInvalidPin:
		return "Invalid PIN"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error represents a failed encode or decode. Codec errors are always
// synchronous and local: they are surfaced to the caller on the call that
// produced them, never retried or swallowed inside this package.
type Error struct {
	Type    ErrorType // Category of error
	Message string    // Human-readable error message
	Err     error     // Underlying error (if any)
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// NewMalformedDataError creates a decode error for a bad wire buffer
func NewMalformedDataError(format string, args ...interface{}) *Error {
	return &Error{
		Type:    ErrTypeMalformedData,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewRangeError creates an encode error for a non-representable domain value
func NewRangeError(format string, args ...interface{}) *Error {
	return &Error{
		Type:    ErrTypeRange,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewTooManyPeriodsError creates an encode error for an over-full day schedule
func NewTooManyPeriodsError(count int) *Error {
	return &Error{
		Type:    ErrTypeTooManyPeriods,
		Message: fmt.Sprintf("day schedule holds at most %d periods, got %d", PeriodsPerDay, count),
	}
}

// NewInvalidPinError creates an error for a PIN outside the unsigned 32-bit range
func NewInvalidPinError(pin int64) *Error {
	return &Error{
		Type:    ErrTypeInvalidPin,
		Message: fmt.Sprintf("PIN %d is not representable as an unsigned 32-bit integer", pin),
	}
}

// IsMalformedDataError checks if an error is a malformed-data decode error
func IsMalformedDataError(err error) bool {
	if cerr, ok := err.(*Error); ok {
		return cerr.Type == ErrTypeMalformedData
	}
	return false
}

// IsRangeError checks if an error is a range encode error
func IsRangeError(err error) bool {
	if cerr, ok := err.(*Error); ok {
		return cerr.Type == ErrTypeRange
	}
	return false
}

// IsTooManyPeriodsError checks if an error is a day schedule overflow error
func IsTooManyPeriodsError(err error) bool {
	if cerr, ok := err.(*Error); ok {
		return cerr.Type == ErrTypeTooManyPeriods
	}
	return false
}

// IsInvalidPinError checks if an error is a PIN range error
func IsInvalidPinError(err error) bool {
	if cerr, ok := err.(*Error); ok {
		return cerr.Type == ErrTypeInvalidPin
	}
	return false
}
