package device

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/muurk/cometblue/internal/backup"
	"github.com/muurk/cometblue/internal/codec"
	"github.com/muurk/cometblue/internal/logging"
	"github.com/muurk/cometblue/internal/transport"
)

// ErrPINRequired is returned by protected operations when the client was
// created without a PIN
var ErrPINRequired = errors.New("operation requires the device PIN")

// Client is a typed view of one connected Comet Blue device. Every getter
// and setter is one characteristic read or write plus the matching codec
// transform; the client adds only the PIN sequencing the device demands
// (the PIN characteristic must be written before any protected access on a
// connection).
type Client struct {
	conn          transport.Connection
	pin           *int64
	authenticated bool
}

// NewClient wraps an open connection. pin may be nil for the unprotected
// identity characteristics; everything else will fail with ErrPINRequired.
func NewClient(conn transport.Connection, pin *int64) *Client {
	return &Client{conn: conn, pin: pin}
}

// Close disconnects from the device
func (c *Client) Close() error {
	return c.conn.Close()
}

// Authenticate writes the PIN characteristic. Protected operations call
// this lazily; it is exported for callers that want to fail fast on a
// wrong PIN.
func (c *Client) Authenticate(ctx context.Context) error {
	if c.pin == nil {
		return ErrPINRequired
	}
	if c.authenticated {
		return nil
	}

	value, err := codec.EncodePIN(*c.pin)
	if err != nil {
		return err
	}
	if err := c.conn.Write(ctx, UUIDPIN, value); err != nil {
		return fmt.Errorf("PIN authentication failed: %w", err)
	}

	c.authenticated = true
	logging.Debug("PIN accepted by device")
	return nil
}

// readRaw reads one characteristic, authenticating first when required
func (c *Client) readRaw(ctx context.Context, uuid string, protected bool) ([]byte, error) {
	if protected {
		if err := c.Authenticate(ctx); err != nil {
			return nil, err
		}
	}
	value, err := c.conn.Read(ctx, uuid)
	if err != nil {
		return nil, err
	}
	logging.LogCharacteristic("read", uuid, value)
	return value, nil
}

// writeRaw writes one characteristic; all writes are protected
func (c *Client) writeRaw(ctx context.Context, uuid string, value []byte) error {
	if err := c.Authenticate(ctx); err != nil {
		return err
	}
	logging.LogCharacteristic("write", uuid, value)
	return c.conn.Write(ctx, uuid, value)
}

func (c *Client) readString(ctx context.Context, uuid string) (string, error) {
	value, err := c.readRaw(ctx, uuid, false)
	if err != nil {
		return "", err
	}
	return codec.DecodeString(value)
}

// DeviceName reads the advertised device name
func (c *Client) DeviceName(ctx context.Context) (string, error) {
	return c.readString(ctx, UUIDDeviceName)
}

// ModelNumber reads the model number string
func (c *Client) ModelNumber(ctx context.Context) (string, error) {
	return c.readString(ctx, UUIDModelNumber)
}

// FirmwareRevision reads the firmware revision string
func (c *Client) FirmwareRevision(ctx context.Context) (string, error) {
	return c.readString(ctx, UUIDFirmwareRevision)
}

// SoftwareRevision reads the software revision string
func (c *Client) SoftwareRevision(ctx context.Context) (string, error) {
	return c.readString(ctx, UUIDSoftwareRevision)
}

// ManufacturerName reads the manufacturer name string
func (c *Client) ManufacturerName(ctx context.Context) (string, error) {
	return c.readString(ctx, UUIDManufacturerName)
}

// FirmwareRevision2 reads the vendor firmware revision (requires PIN)
func (c *Client) FirmwareRevision2(ctx context.Context) (string, error) {
	value, err := c.readRaw(ctx, UUIDFirmwareRevision2, true)
	if err != nil {
		return "", err
	}
	return codec.DecodeString(value)
}

// DateTime reads the device clock (requires PIN)
func (c *Client) DateTime(ctx context.Context) (codec.DateTime, error) {
	value, err := c.readRaw(ctx, UUIDDateTime, true)
	if err != nil {
		return codec.NoDateTime, err
	}
	return codec.DecodeDateTime(value)
}

// SetDateTime sets the device clock
func (c *Client) SetDateTime(ctx context.Context, dt codec.DateTime) error {
	value, err := codec.EncodeDateTime(dt)
	if err != nil {
		return err
	}
	return c.writeRaw(ctx, UUIDDateTime, value)
}

// Flags reads the opaque status bitmask (requires PIN)
func (c *Client) Flags(ctx context.Context) (codec.Flags, error) {
	value, err := c.readRaw(ctx, UUIDFlags, true)
	if err != nil {
		return 0, err
	}
	return codec.DecodeFlags(value)
}

// SetFlags writes the status bitmask back unchanged except for the bits the
// caller flipped. Bit meanings are undocumented; use with care.
func (c *Client) SetFlags(ctx context.Context, f codec.Flags) error {
	return c.writeRaw(ctx, UUIDFlags, codec.EncodeFlags(f))
}

// Temperatures reads the temperature settings block (requires PIN)
func (c *Client) Temperatures(ctx context.Context) (codec.Temperatures, error) {
	value, err := c.readRaw(ctx, UUIDTemperatures, true)
	if err != nil {
		return codec.Temperatures{}, err
	}
	return codec.DecodeTemperatures(value)
}

// SetTemperatures writes the temperature settings block. Absent fields
// leave the corresponding device setting unchanged.
func (c *Client) SetTemperatures(ctx context.Context, t codec.Temperatures) error {
	value, err := codec.EncodeTemperatures(t)
	if err != nil {
		return err
	}
	return c.writeRaw(ctx, UUIDTemperatures, value)
}

// Battery reads the battery charge (requires PIN)
func (c *Client) Battery(ctx context.Context) (codec.Battery, error) {
	value, err := c.readRaw(ctx, UUIDBattery, true)
	if err != nil {
		return codec.NoBattery, err
	}
	return codec.DecodeBattery(value)
}

// LCDTimer reads the display timer setting (requires PIN)
func (c *Client) LCDTimer(ctx context.Context) (codec.LCDTimer, error) {
	value, err := c.readRaw(ctx, UUIDLCDTimer, true)
	if err != nil {
		return 0, err
	}
	return codec.DecodeLCDTimer(value)
}

// SetLCDTimer writes the display timer setting
func (c *Client) SetLCDTimer(ctx context.Context, t codec.LCDTimer) error {
	return c.writeRaw(ctx, UUIDLCDTimer, codec.EncodeLCDTimer(t))
}

// SetPIN changes the device PIN. The connection authenticates with the old
// PIN first; subsequent operations on this client use the new one.
func (c *Client) SetPIN(ctx context.Context, pin int64) error {
	value, err := codec.EncodePIN(pin)
	if err != nil {
		return err
	}
	if err := c.writeRaw(ctx, UUIDPIN, value); err != nil {
		return err
	}
	c.pin = &pin
	return nil
}

// Day reads the schedule for one weekday (requires PIN)
func (c *Client) Day(ctx context.Context, w Weekday) ([]codec.Period, error) {
	uuid, err := DayUUID(w)
	if err != nil {
		return nil, err
	}
	value, err := c.readRaw(ctx, uuid, true)
	if err != nil {
		return nil, err
	}
	return codec.DecodeDaySchedule(value)
}

// SetDay writes the schedule for one weekday
func (c *Client) SetDay(ctx context.Context, w Weekday, periods []codec.Period) error {
	uuid, err := DayUUID(w)
	if err != nil {
		return err
	}
	value, err := codec.EncodeDaySchedule(periods)
	if err != nil {
		return err
	}
	return c.writeRaw(ctx, uuid, value)
}

// Days reads all seven weekday schedules, Monday first
func (c *Client) Days(ctx context.Context) ([][]codec.Period, error) {
	days := make([][]codec.Period, 0, NumDays)
	for w := Monday; w <= Sunday; w++ {
		periods, err := c.Day(ctx, w)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s schedule: %w", w, err)
		}
		days = append(days, periods)
	}
	return days, nil
}

// Holiday reads one holiday slot, 1-based (requires PIN)
func (c *Client) Holiday(ctx context.Context, n int) (codec.Holiday, error) {
	uuid, err := HolidayUUID(n)
	if err != nil {
		return codec.Holiday{}, err
	}
	value, err := c.readRaw(ctx, uuid, true)
	if err != nil {
		return codec.Holiday{}, err
	}
	return codec.DecodeHoliday(value)
}

// SetHoliday writes one holiday slot, 1-based
func (c *Client) SetHoliday(ctx context.Context, n int, h codec.Holiday) error {
	uuid, err := HolidayUUID(n)
	if err != nil {
		return err
	}
	value, err := codec.EncodeHoliday(h)
	if err != nil {
		return err
	}
	return c.writeRaw(ctx, uuid, value)
}

// Holidays reads all eight holiday slots
func (c *Client) Holidays(ctx context.Context) ([]codec.Holiday, error) {
	holidays := make([]codec.Holiday, 0, NumHolidays)
	for n := 1; n <= NumHolidays; n++ {
		h, err := c.Holiday(ctx, n)
		if err != nil {
			return nil, fmt.Errorf("failed to read holiday %d: %w", n, err)
		}
		holidays = append(holidays, h)
	}
	return holidays, nil
}

// Backup reads every writable setting into a snapshot. The device clock is
// deliberately not part of the snapshot; restoring a stale clock helps
// nobody.
func (c *Client) Backup(ctx context.Context) (*backup.Snapshot, error) {
	logging.Info("Backing up device settings")

	temps, err := c.Temperatures(ctx)
	if err != nil {
		return nil, err
	}
	lcd, err := c.LCDTimer(ctx)
	if err != nil {
		return nil, err
	}
	days, err := c.Days(ctx)
	if err != nil {
		return nil, err
	}
	holidays, err := c.Holidays(ctx)
	if err != nil {
		return nil, err
	}

	s := &backup.Snapshot{
		Temperatures: backup.TemperaturesFromDevice(temps),
		LCDTimer:     intPtr(int(lcd)),
	}
	for _, day := range days {
		s.Days = append(s.Days, backup.PeriodsFromDevice(day))
	}
	for _, h := range holidays {
		s.Holidays = append(s.Holidays, backup.HolidayFromDevice(h))
	}
	return s, nil
}

// Restore writes a snapshot back to the device. Only fields present in the
// snapshot are written; everything re-encodes before the first write so a
// bad snapshot cannot leave the device half restored.
func (c *Client) Restore(ctx context.Context, s *backup.Snapshot) error {
	plan, err := buildRestorePlan(s)
	if err != nil {
		return fmt.Errorf("backup cannot be encoded: %w", err)
	}

	logging.Info("Restoring device settings", zap.Int("writes", len(plan)))
	for _, step := range plan {
		if err := c.writeRaw(ctx, step.uuid, step.value); err != nil {
			return err
		}
	}
	return nil
}

// restoreStep is one pre-encoded characteristic write
type restoreStep struct {
	uuid  string
	value []byte
}

// buildRestorePlan encodes every field present in the snapshot. Encoding
// everything up front keeps restore all-or-nothing on the codec side.
func buildRestorePlan(s *backup.Snapshot) ([]restoreStep, error) {
	var plan []restoreStep

	if s.Temperatures != nil {
		temps, err := s.Temperatures.ToDevice()
		if err != nil {
			return nil, err
		}
		value, err := codec.EncodeTemperatures(temps)
		if err != nil {
			return nil, err
		}
		plan = append(plan, restoreStep{uuid: UUIDTemperatures, value: value})
	}

	if s.LCDTimer != nil {
		if *s.LCDTimer < 0 || *s.LCDTimer > 255 {
			return nil, fmt.Errorf("LCD timer %d is outside 0..255", *s.LCDTimer)
		}
		plan = append(plan, restoreStep{
			uuid:  UUIDLCDTimer,
			value: codec.EncodeLCDTimer(codec.LCDTimer(*s.LCDTimer)),
		})
	}

	for i, day := range s.Days {
		periods, err := backup.PeriodsToDevice(day)
		if err != nil {
			return nil, fmt.Errorf("day %d: %w", i+1, err)
		}
		value, err := codec.EncodeDaySchedule(periods)
		if err != nil {
			return nil, fmt.Errorf("day %d: %w", i+1, err)
		}
		uuid, err := DayUUID(Weekday(i))
		if err != nil {
			return nil, err
		}
		plan = append(plan, restoreStep{uuid: uuid, value: value})
	}

	for i, h := range s.Holidays {
		holiday, err := h.ToDevice()
		if err != nil {
			return nil, fmt.Errorf("holiday %d: %w", i+1, err)
		}
		value, err := codec.EncodeHoliday(holiday)
		if err != nil {
			return nil, fmt.Errorf("holiday %d: %w", i+1, err)
		}
		uuid, err := HolidayUUID(i + 1)
		if err != nil {
			return nil, err
		}
		plan = append(plan, restoreStep{uuid: uuid, value: value})
	}

	return plan, nil
}

func intPtr(i int) *int { return &i }
