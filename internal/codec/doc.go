// Package codec implements the binary wire formats of the Comet Blue
// radiator thermostat's GATT characteristics.
//
// The device exposes its state as fixed-layout byte buffers: half-degree
// fixed-point temperatures, five-byte date/times, 16-byte weekday
// schedules, 11-byte holiday rows and a handful of one-byte scalars. This
// package translates between those buffers and structured Go values, and
// nothing else: no IO, no device state, no retries. Every function is a
// pure transform of its arguments, safe to call concurrently.
//
// # Sentinels and the absent value
//
// The device marks unconfigured fields with an all-bits-set pattern (0x80
// for the signed temperature byte, 0xff elsewhere). Rather than leaking
// those magic values, every field that supports them carries an explicit
// absent state (Temperature, DateTime, Battery, Setting), and encoding the
// absent value reproduces the exact wire pattern. Round-trip fidelity is
// the invariant everything here is built around: a malformed write can
// desynchronize the physical device.
//
// # Errors
//
// Failures use a small taxonomy mirrored from the wire's failure modes:
// malformed data (bad buffer on decode), range (value not representable on
// encode), too many periods (day schedule overflow) and invalid PIN. See
// the Is* helpers for classification.
package codec
