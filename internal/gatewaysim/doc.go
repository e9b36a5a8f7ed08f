// Package gatewaysim implements a BLE gateway simulator: the same JSON
// WebSocket protocol a real gateway daemon serves on /gatt, backed by an
// in-memory Comet Blue thermostat instead of a Bluetooth adapter.
//
// The simulated device keeps raw characteristic bytes and mimics the real
// device's access rules, including the write-PIN-before-anything-else
// authorization sequence, so the full client stack can run against it
// unmodified.
package gatewaysim
