// Package transport carries bytes between this tool and a Comet Blue
// device's GATT characteristics.
//
// The codec layer treats the Bluetooth stack as an external collaborator:
// everything it needs is the capability triple connect/read/write, captured
// here as the Transport and Connection interfaces. The one backend shipped
// is Gateway, a client for a BLE-to-WebSocket gateway daemon, which keeps
// this binary free of adapter-specific Bluetooth code and lets the daemon
// run on whatever host actually has radio reach.
//
// No retries, no backoff: a failed read or write surfaces immediately and
// the caller decides what to do.
package transport
