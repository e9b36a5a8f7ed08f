package transport

import (
	"context"
	"time"
)

// Advertisement describes a device seen during a BLE scan
type Advertisement struct {
	// Address is the device MAC address (e.g. "C4:BE:84:74:86:37")
	Address string

	// Name is the advertised local name, if any
	Name string

	// RSSI is the received signal strength in dBm (more negative = weaker)
	RSSI int
}

// Connection is an open GATT connection to one device. Characteristics are
// addressed by their UUID string; payloads are the raw characteristic bytes,
// encoded and decoded elsewhere.
//
// A PIN-authentication write must complete on a connection before any
// protected characteristic is read or written; callers sequence that.
type Connection interface {
	// Read reads the current value of a characteristic
	Read(ctx context.Context, characteristic string) ([]byte, error)

	// Write writes a characteristic value
	Write(ctx context.Context, characteristic string, value []byte) error

	// Close disconnects from the device
	Close() error
}

// Transport provides device discovery and connections. The only
// implementation in this repository is the WebSocket gateway client; a
// native BLE stack can slot in behind the same interface.
type Transport interface {
	// Scan listens for device advertisements for the given duration
	Scan(ctx context.Context, timeout time.Duration) ([]Advertisement, error)

	// Connect opens a GATT connection to the device at address
	Connect(ctx context.Context, address string) (Connection, error)
}
