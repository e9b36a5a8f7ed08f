package transport

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/cometblue/internal/logging"
)

const (
	// DefaultGatewayURL is where a locally running BLE gateway daemon
	// listens by default
	DefaultGatewayURL = "ws://127.0.0.1:8723/gatt"

	// writeWait bounds how long a request frame may take to send
	writeWait = 10 * time.Second

	// defaultScanTimeout is used when the caller passes no timeout
	defaultScanTimeout = 10 * time.Second
)

// gatewayRequest is one command frame sent to the gateway
type gatewayRequest struct {
	Op             string `json:"op"`
	Address        string `json:"address,omitempty"`
	Characteristic string `json:"characteristic,omitempty"`
	Value          string `json:"value,omitempty"` // hex encoded
	TimeoutMS      int64  `json:"timeout_ms,omitempty"`
}

// gatewayResponse is the gateway's reply to a single request
type gatewayResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	Value   string `json:"value,omitempty"` // hex encoded
	Devices []struct {
		Address string `json:"address"`
		Name    string `json:"name"`
		RSSI    int    `json:"rssi"`
	} `json:"devices,omitempty"`
}

// Gateway is a Transport backed by a BLE-to-WebSocket gateway daemon. The
// daemon owns the Bluetooth adapter; this client speaks a small JSON
// request/response protocol over a single WebSocket connection.
//
// Requests are serialized: the gateway protocol has no frame correlation
// IDs, so only one request may be in flight at a time.
type Gateway struct {
	url  string
	conn *websocket.Conn
	mu   sync.Mutex
}

// DialGateway connects to the gateway daemon at url. An empty url means
// DefaultGatewayURL.
func DialGateway(ctx context.Context, url string) (*Gateway, error) {
	if url == "" {
		url = DefaultGatewayURL
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to BLE gateway at %s: %w", url, err)
	}

	logging.Info("Connected to BLE gateway", zap.String("url", url))
	return &Gateway{url: url, conn: conn}, nil
}

// Scan implements Transport
func (g *Gateway) Scan(ctx context.Context, timeout time.Duration) ([]Advertisement, error) {
	if timeout <= 0 {
		timeout = defaultScanTimeout
	}

	resp, err := g.roundTrip(ctx, gatewayRequest{
		Op:        "scan",
		TimeoutMS: timeout.Milliseconds(),
	}, timeout+writeWait)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	devices := make([]Advertisement, 0, len(resp.Devices))
	for _, d := range resp.Devices {
		devices = append(devices, Advertisement{
			Address: d.Address,
			Name:    d.Name,
			RSSI:    d.RSSI,
		})
	}

	logging.Info("Scan completed", zap.Int("devices", len(devices)))
	return devices, nil
}

// Connect implements Transport
func (g *Gateway) Connect(ctx context.Context, address string) (Connection, error) {
	if _, err := g.roundTrip(ctx, gatewayRequest{
		Op:      "connect",
		Address: address,
	}, 0); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", address, err)
	}

	logging.Info("Connected to device", zap.String("address", address))
	return &gatewayConnection{gateway: g, address: address}, nil
}

// Close shuts down the WebSocket connection to the gateway
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.conn.Close()
}

// roundTrip sends one request frame and waits for the reply. extraWait
// widens the read deadline for long-running operations like scans.
func (g *Gateway) roundTrip(ctx context.Context, req gatewayRequest, extraWait time.Duration) (*gatewayResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	deadline := time.Now().Add(writeWait + extraWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := g.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return nil, fmt.Errorf("failed to set write deadline: %w", err)
	}
	if err := g.conn.WriteJSON(req); err != nil {
		return nil, fmt.Errorf("failed to send %q request: %w", req.Op, err)
	}

	if err := g.conn.SetReadDeadline(deadline); err != nil {
		return nil, fmt.Errorf("failed to set read deadline: %w", err)
	}
	var resp gatewayResponse
	if err := g.conn.ReadJSON(&resp); err != nil {
		return nil, fmt.Errorf("failed to read %q response: %w", req.Op, err)
	}

	if !resp.OK {
		return nil, fmt.Errorf("gateway rejected %q request: %s", req.Op, resp.Error)
	}
	return &resp, nil
}

// gatewayConnection is one device connection multiplexed over the gateway
type gatewayConnection struct {
	gateway *Gateway
	address string
}

// Read implements Connection
func (c *gatewayConnection) Read(ctx context.Context, characteristic string) ([]byte, error) {
	resp, err := c.gateway.roundTrip(ctx, gatewayRequest{
		Op:             "read",
		Address:        c.address,
		Characteristic: characteristic,
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("read of %s failed: %w", characteristic, err)
	}

	value, err := hex.DecodeString(resp.Value)
	if err != nil {
		return nil, fmt.Errorf("gateway returned invalid hex for %s: %w", characteristic, err)
	}

	logging.LogRawBytes("Characteristic read", value)
	return value, nil
}

// Write implements Connection
func (c *gatewayConnection) Write(ctx context.Context, characteristic string, value []byte) error {
	logging.LogRawBytes("Characteristic write", value)

	_, err := c.gateway.roundTrip(ctx, gatewayRequest{
		Op:             "write",
		Address:        c.address,
		Characteristic: characteristic,
		Value:          hex.EncodeToString(value),
	}, 0)
	if err != nil {
		return fmt.Errorf("write of %s failed: %w", characteristic, err)
	}
	return nil
}

// Close implements Connection
func (c *gatewayConnection) Close() error {
	_, err := c.gateway.roundTrip(context.Background(), gatewayRequest{
		Op:      "disconnect",
		Address: c.address,
	}, 0)
	if err != nil {
		return fmt.Errorf("disconnect from %s failed: %w", c.address, err)
	}
	logging.Info("Disconnected from device", zap.String("address", c.address))
	return nil
}
