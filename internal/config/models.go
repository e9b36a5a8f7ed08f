package config

import (
	"fmt"
	"strings"
	"time"
)

// Registry represents the entire user configuration file.
// This stores known devices keyed by alias plus application preferences.
type Registry struct {
	Version     int                `yaml:"version"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // Keyed by user-chosen alias
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Device represents one known Comet Blue device.
type Device struct {
	Address  string    `yaml:"address"`             // Bluetooth MAC address
	PIN      *int64    `yaml:"pin,omitempty"`       // Device PIN; omitted when the user prefers prompting
	LastSeen time.Time `yaml:"last_seen,omitempty"` // Last discovery/connection time
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	Gateway         string `yaml:"gateway,omitempty"`        // BLE gateway WebSocket URL override
	DiscoverTimeout int    `yaml:"discover_timeout"`         // Scan timeout in seconds
	DefaultFormat   string `yaml:"default_format,omitempty"` // Preferred output format
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Devices: make(map[string]*Device),
		Preferences: &Preferences{
			DiscoverTimeout: 10,
		},
	}
}

// GetDevice retrieves a device by alias. Returns nil if the alias is not
// in the registry.
func (r *Registry) GetDevice(alias string) *Device {
	return r.Devices[alias]
}

// AddDevice adds or replaces a device entry under the given alias.
func (r *Registry) AddDevice(alias, address string, pin *int64) error {
	if err := ValidateAddress(address); err != nil {
		return err
	}
	if alias == "" {
		return fmt.Errorf("device alias must not be empty")
	}

	if r.Devices == nil {
		r.Devices = make(map[string]*Device)
	}
	r.Devices[alias] = &Device{Address: address, PIN: pin}
	return nil
}

// RemoveDevice removes a device by alias. Returns false if the alias was
// not in the registry.
func (r *Registry) RemoveDevice(alias string) bool {
	if _, exists := r.Devices[alias]; !exists {
		return false
	}
	delete(r.Devices, alias)
	return true
}

// Resolve maps a user-supplied device argument to an address and any stored
// PIN. The argument may be a registered alias or a literal MAC address.
func (r *Registry) Resolve(nameOrAddress string) (address string, pin *int64, err error) {
	if device, exists := r.Devices[nameOrAddress]; exists {
		return device.Address, device.PIN, nil
	}
	if err := ValidateAddress(nameOrAddress); err != nil {
		return "", nil, fmt.Errorf("%q is neither a known device alias nor a MAC address", nameOrAddress)
	}
	return nameOrAddress, nil, nil
}

// UpdateDeviceLastSeen records a successful connection or discovery for
// every alias registered under the given address.
func (r *Registry) UpdateDeviceLastSeen(address string) {
	now := time.Now()
	for _, device := range r.Devices {
		if strings.EqualFold(device.Address, address) {
			device.LastSeen = now
		}
	}
}

// ValidateAddress checks that address looks like a Bluetooth MAC address
// (six colon-separated hex octets).
func ValidateAddress(address string) error {
	parts := strings.Split(address, ":")
	if len(parts) != 6 {
		return fmt.Errorf("invalid Bluetooth address %q: want six colon-separated octets", address)
	}
	for _, part := range parts {
		if len(part) != 2 || !isHexByte(part) {
			return fmt.Errorf("invalid Bluetooth address %q: bad octet %q", address, part)
		}
	}
	return nil
}

func isHexByte(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
