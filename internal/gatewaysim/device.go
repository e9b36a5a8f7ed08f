package gatewaysim

import (
	"fmt"
	"sync"

	"github.com/muurk/cometblue/internal/codec"
	"github.com/muurk/cometblue/internal/device"
)

// SimDevice is an in-memory Comet Blue thermostat. It stores raw
// characteristic bytes and enforces the device's PIN sequencing: the PIN
// characteristic must be written with the correct value before any other
// vendor characteristic responds.
type SimDevice struct {
	mu         sync.Mutex
	address    string
	name       string
	pin        int64
	connected  bool
	authorized bool
	values     map[string][]byte
}

// Config sets up a simulated device
type Config struct {
	Address string // Bluetooth address the device answers on
	Name    string // Advertised device name
	PIN     int64  // PIN required for protected access
}

// NewSimDevice creates a simulated device with factory-like defaults in
// every characteristic.
func NewSimDevice(cfg Config) (*SimDevice, error) {
	if cfg.Address == "" {
		cfg.Address = "E0:E5:CF:00:00:01"
	}
	if cfg.Name == "" {
		cfg.Name = "Comet Blue"
	}

	d := &SimDevice{
		address: cfg.Address,
		name:    cfg.Name,
		pin:     cfg.PIN,
		values:  make(map[string][]byte),
	}
	if err := d.seed(); err != nil {
		return nil, err
	}
	return d, nil
}

// seed fills the characteristic table with plausible factory values
func (d *SimDevice) seed() error {
	d.values[device.UUIDDeviceName] = []byte(d.name)
	d.values[device.UUIDModelNumber] = []byte("Comet Blue")
	d.values[device.UUIDFirmwareRevision] = []byte("COBL0126")
	d.values[device.UUIDSoftwareRevision] = []byte("0.0.6-sygonix1")
	d.values[device.UUIDManufacturerName] = []byte("EUROtronic GmbH")
	d.values[device.UUIDFirmwareRevision2] = []byte("GEN34BLE")

	dt, err := codec.NewDateTime(2026, 1, 1, 12, 0)
	if err != nil {
		return err
	}
	if d.values[device.UUIDDateTime], err = codec.EncodeDateTime(dt); err != nil {
		return err
	}

	temps, err := factoryTemperatures()
	if err != nil {
		return err
	}
	if d.values[device.UUIDTemperatures], err = codec.EncodeTemperatures(temps); err != nil {
		return err
	}

	d.values[device.UUIDBattery] = []byte{100}
	d.values[device.UUIDFlags] = []byte{0x00}
	d.values[device.UUIDLCDTimer] = []byte{0x00}

	empty, err := codec.EncodeDaySchedule(nil)
	if err != nil {
		return err
	}
	for w := device.Monday; w <= device.Sunday; w++ {
		uuid, err := device.DayUUID(w)
		if err != nil {
			return err
		}
		d.values[uuid] = append([]byte(nil), empty...)
	}

	cleared, err := codec.EncodeHoliday(codec.Holiday{})
	if err != nil {
		return err
	}
	for n := 1; n <= device.NumHolidays; n++ {
		uuid, err := device.HolidayUUID(n)
		if err != nil {
			return err
		}
		d.values[uuid] = append([]byte(nil), cleared...)
	}

	return nil
}

func factoryTemperatures() (codec.Temperatures, error) {
	var t codec.Temperatures
	var err error
	if t.Manual, err = codec.NewTemperature(20.0); err != nil {
		return t, err
	}
	if t.TargetLow, err = codec.NewTemperature(16.0); err != nil {
		return t, err
	}
	if t.TargetHigh, err = codec.NewTemperature(21.0); err != nil {
		return t, err
	}
	if t.Offset, err = codec.NewTemperature(0.0); err != nil {
		return t, err
	}
	if t.WindowOpenSensitivity, err = codec.NewSetting(4); err != nil {
		return t, err
	}
	if t.WindowOpenMinutes, err = codec.NewSetting(10); err != nil {
		return t, err
	}
	return t, nil
}

// Address returns the simulated Bluetooth address
func (d *SimDevice) Address() string {
	return d.address
}

// Name returns the advertised device name
func (d *SimDevice) Name() string {
	return d.name
}

// Connect marks the device connected. Authorization starts fresh on every
// connection, like the real device.
func (d *SimDevice) Connect(address string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if address != d.address {
		return fmt.Errorf("no device at %s", address)
	}
	d.connected = true
	d.authorized = false
	return nil
}

// Disconnect drops the connection
func (d *SimDevice) Disconnect() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connected = false
	d.authorized = false
}

// unprotected lists the characteristics readable without a PIN
var unprotected = map[string]bool{
	device.UUIDDeviceName:       true,
	device.UUIDModelNumber:      true,
	device.UUIDFirmwareRevision: true,
	device.UUIDSoftwareRevision: true,
	device.UUIDManufacturerName: true,
}

// Read returns the stored value of one characteristic
func (d *SimDevice) Read(characteristic string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil, fmt.Errorf("not connected")
	}
	if characteristic == device.UUIDPIN {
		return nil, fmt.Errorf("PIN characteristic is write-only")
	}
	if !unprotected[characteristic] && !d.authorized {
		return nil, fmt.Errorf("insufficient authorization")
	}

	value, ok := d.values[characteristic]
	if !ok {
		return nil, fmt.Errorf("unknown characteristic %s", characteristic)
	}
	return append([]byte(nil), value...), nil
}

// Write stores a characteristic value. Writing the PIN characteristic
// authorizes the connection when unauthorized, and changes the PIN once
// authorized.
func (d *SimDevice) Write(characteristic string, value []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return fmt.Errorf("not connected")
	}

	if characteristic == device.UUIDPIN {
		if len(value) != codec.PINSize {
			return fmt.Errorf("PIN value must be %d bytes", codec.PINSize)
		}
		offered := int64(value[0]) | int64(value[1])<<8 | int64(value[2])<<16 | int64(value[3])<<24
		if !d.authorized {
			if offered != d.pin {
				return fmt.Errorf("insufficient authorization")
			}
			d.authorized = true
			return nil
		}
		d.pin = offered
		return nil
	}

	if !d.authorized {
		return fmt.Errorf("insufficient authorization")
	}
	if _, ok := d.values[characteristic]; !ok {
		return fmt.Errorf("unknown characteristic %s", characteristic)
	}

	d.values[characteristic] = append([]byte(nil), value...)
	return nil
}
