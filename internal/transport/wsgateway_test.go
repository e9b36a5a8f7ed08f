package transport

import (
	"context"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// newTestGateway runs an in-process gateway daemon that answers every
// request frame through handle.
func newTestGateway(t *testing.T, handle func(req gatewayRequest) gatewayResponse) *Gateway {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		for {
			var req gatewayRequest
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			if err := conn.WriteJSON(handle(req)); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	gw, err := DialGateway(context.Background(), url)
	if err != nil {
		t.Fatalf("DialGateway() error = %v", err)
	}
	t.Cleanup(func() { _ = gw.Close() })

	return gw
}

func TestGatewayScan(t *testing.T) {
	gw := newTestGateway(t, func(req gatewayRequest) gatewayResponse {
		if req.Op != "scan" {
			t.Errorf("op = %q, want scan", req.Op)
		}
		if req.TimeoutMS != 3000 {
			t.Errorf("timeout_ms = %d, want 3000", req.TimeoutMS)
		}
		resp := gatewayResponse{OK: true}
		resp.Devices = append(resp.Devices, struct {
			Address string `json:"address"`
			Name    string `json:"name"`
			RSSI    int    `json:"rssi"`
		}{Address: "C4:BE:84:74:86:37", Name: "Comet Blue", RSSI: -67})
		return resp
	})

	devices, err := gw.Scan(context.Background(), 3*time.Second)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("got %d devices, want 1", len(devices))
	}
	if devices[0].Address != "C4:BE:84:74:86:37" || devices[0].Name != "Comet Blue" || devices[0].RSSI != -67 {
		t.Errorf("device = %+v", devices[0])
	}
}

func TestGatewayReadWrite(t *testing.T) {
	stored := map[string][]byte{
		"47e9ee2c-47e9-11e4-8939-164230d1df67": {87},
	}

	gw := newTestGateway(t, func(req gatewayRequest) gatewayResponse {
		switch req.Op {
		case "connect", "disconnect":
			return gatewayResponse{OK: true}
		case "read":
			value, ok := stored[req.Characteristic]
			if !ok {
				return gatewayResponse{Error: "no such characteristic"}
			}
			return gatewayResponse{OK: true, Value: hex.EncodeToString(value)}
		case "write":
			value, err := hex.DecodeString(req.Value)
			if err != nil {
				return gatewayResponse{Error: "bad hex"}
			}
			stored[req.Characteristic] = value
			return gatewayResponse{OK: true}
		default:
			return gatewayResponse{Error: "unknown op"}
		}
	})

	conn, err := gw.Connect(context.Background(), "C4:BE:84:74:86:37")
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	value, err := conn.Read(context.Background(), "47e9ee2c-47e9-11e4-8939-164230d1df67")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(value) != 1 || value[0] != 87 {
		t.Errorf("Read() = %v, want [87]", value)
	}

	if err := conn.Write(context.Background(), "47e9ee2e-47e9-11e4-8939-164230d1df67", []byte{12}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got := stored["47e9ee2e-47e9-11e4-8939-164230d1df67"]; len(got) != 1 || got[0] != 12 {
		t.Errorf("written value = %v, want [12]", got)
	}

	if err := conn.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestGatewayErrorSurfaced(t *testing.T) {
	gw := newTestGateway(t, func(req gatewayRequest) gatewayResponse {
		return gatewayResponse{Error: "device unreachable"}
	})

	_, err := gw.Connect(context.Background(), "00:00:00:00:00:00")
	if err == nil {
		t.Fatal("Connect() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "device unreachable") {
		t.Errorf("error = %v, want gateway message surfaced", err)
	}
}

func TestDialGatewayRefused(t *testing.T) {
	_, err := DialGateway(context.Background(), "ws://127.0.0.1:1/gatt")
	if err == nil {
		t.Fatal("DialGateway() expected error, got nil")
	}
}
