package gatewaysim

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/muurk/cometblue/internal/codec"
	"github.com/muurk/cometblue/internal/device"
	"github.com/muurk/cometblue/internal/transport"
)

// startSim brings up a simulator and returns a gateway client dialed
// into it.
func startSim(t *testing.T, cfg Config) (*transport.Gateway, *SimDevice) {
	t.Helper()

	sim, err := NewSimDevice(cfg)
	if err != nil {
		t.Fatalf("NewSimDevice() error = %v", err)
	}
	srv := httptest.NewServer(NewServer(sim).Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/gatt"
	gw, err := transport.DialGateway(context.Background(), url)
	if err != nil {
		t.Fatalf("DialGateway() error = %v", err)
	}
	t.Cleanup(func() { gw.Close() })

	return gw, sim
}

func TestScanFindsSimulatedDevice(t *testing.T) {
	gw, sim := startSim(t, Config{Name: "Comet Blue", PIN: 0})

	devices, err := gw.Scan(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("got %d devices, want 1", len(devices))
	}
	if devices[0].Address != sim.Address() || devices[0].Name != "Comet Blue" {
		t.Errorf("advertisement = %+v", devices[0])
	}
}

func TestFullClientRoundTrip(t *testing.T) {
	gw, sim := startSim(t, Config{PIN: 1234})

	conn, err := gw.Connect(context.Background(), sim.Address())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	pin := int64(1234)
	client := device.NewClient(conn, &pin)
	ctx := context.Background()

	// Identity works before any PIN write
	name, err := client.DeviceName(ctx)
	if err != nil {
		t.Fatalf("DeviceName() error = %v", err)
	}
	if name != "Comet Blue" {
		t.Errorf("DeviceName() = %q", name)
	}

	// Protected read triggers authorization
	temps, err := client.Temperatures(ctx)
	if err != nil {
		t.Fatalf("Temperatures() error = %v", err)
	}
	if temps.Manual.Celsius() != 20.0 {
		t.Errorf("factory manual temp = %v, want 20.0", temps.Manual.Celsius())
	}

	// Write-read round trip through the whole stack
	periods := []codec.Period{{Start: 360, End: 510}}
	if err := client.SetDay(ctx, device.Wednesday, periods); err != nil {
		t.Fatalf("SetDay() error = %v", err)
	}
	got, err := client.Day(ctx, device.Wednesday)
	if err != nil {
		t.Fatalf("Day() error = %v", err)
	}
	if len(got) != 1 || got[0] != periods[0] {
		t.Errorf("Day() = %v, want %v", got, periods)
	}

	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestWrongPINRejected(t *testing.T) {
	gw, sim := startSim(t, Config{PIN: 1234})

	conn, err := gw.Connect(context.Background(), sim.Address())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	pin := int64(9999)
	client := device.NewClient(conn, &pin)

	if _, err := client.Battery(context.Background()); err == nil {
		t.Error("protected read succeeded with wrong PIN")
	}
}

func TestConnectUnknownAddress(t *testing.T) {
	gw, _ := startSim(t, Config{})

	if _, err := gw.Connect(context.Background(), "FF:FF:FF:FF:FF:FF"); err == nil {
		t.Error("Connect() accepted an unknown address")
	}
}

func TestPINChange(t *testing.T) {
	gw, sim := startSim(t, Config{PIN: 1234})

	conn, err := gw.Connect(context.Background(), sim.Address())
	if err != nil {
		t.Fatal(err)
	}

	pin := int64(1234)
	client := device.NewClient(conn, &pin)
	ctx := context.Background()

	if err := client.SetPIN(ctx, 5678); err != nil {
		t.Fatalf("SetPIN() error = %v", err)
	}
	client.Close()

	// Reconnect: the old PIN must be rejected, the new one accepted
	conn, err = gw.Connect(ctx, sim.Address())
	if err != nil {
		t.Fatal(err)
	}
	oldPIN := int64(1234)
	if _, err := device.NewClient(conn, &oldPIN).Battery(ctx); err == nil {
		t.Error("old PIN still authorizes after change")
	}

	conn, err = gw.Connect(ctx, sim.Address())
	if err != nil {
		t.Fatal(err)
	}
	newPIN := int64(5678)
	if _, err := device.NewClient(conn, &newPIN).Battery(ctx); err != nil {
		t.Errorf("new PIN rejected after change: %v", err)
	}
}
