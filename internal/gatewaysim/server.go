package gatewaysim

import (
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/cometblue/internal/logging"
)

const (
	// Time allowed to write a response frame to the peer
	writeWait = 10 * time.Second

	// Maximum request frame size accepted from a client
	maxMessageSize = 4096
)

// request is one command frame from a gateway client
type request struct {
	Op             string `json:"op"`
	Address        string `json:"address,omitempty"`
	Characteristic string `json:"characteristic,omitempty"`
	Value          string `json:"value,omitempty"` // hex encoded
	TimeoutMS      int64  `json:"timeout_ms,omitempty"`
}

// response is the reply to a single request
type response struct {
	OK      bool            `json:"ok"`
	Error   string          `json:"error,omitempty"`
	Value   string          `json:"value,omitempty"` // hex encoded
	Devices []advertisement `json:"devices,omitempty"`
}

type advertisement struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	RSSI    int    `json:"rssi"`
}

// Server is a stand-in for a BLE gateway daemon: it serves the gateway's
// JSON WebSocket protocol on /gatt, backed by a simulated device instead
// of a Bluetooth adapter. Useful for development and CI, where no radio
// hardware exists.
type Server struct {
	device   *SimDevice
	upgrader websocket.Upgrader
}

// NewServer creates a gateway server around one simulated device
func NewServer(device *SimDevice) *Server {
	return &Server{
		device: device,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Handler returns the HTTP handler serving the gateway endpoint
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/gatt", s.handleGATT)
	return mux
}

// ListenAndServe runs the gateway server on addr until it fails
func (s *Server) ListenAndServe(addr string) error {
	logging.Info("Gateway simulator listening",
		zap.String("addr", addr),
		zap.String("device", s.device.Address()),
	)
	return http.ListenAndServe(addr, s.Handler())
}

// handleGATT upgrades the connection and serves request frames until the
// client goes away
func (s *Server) handleGATT(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}
	remoteAddr := r.RemoteAddr
	logging.Info("Gateway client connected", zap.String("remote_addr", remoteAddr))

	defer func() {
		_ = conn.Close()
		s.device.Disconnect()
		logging.Info("Gateway client disconnected", zap.String("remote_addr", remoteAddr))
	}()

	conn.SetReadLimit(maxMessageSize)

	for {
		var req request
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Debug("Read from gateway client failed",
					zap.String("remote_addr", remoteAddr),
					zap.Error(err),
				)
			}
			return
		}

		resp := s.dispatch(req)
		logging.Debug("Gateway request served",
			zap.String("remote_addr", remoteAddr),
			zap.String("op", req.Op),
			zap.Bool("ok", resp.OK),
		)

		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := conn.WriteJSON(resp); err != nil {
			logging.Debug("Write to gateway client failed",
				zap.String("remote_addr", remoteAddr),
				zap.Error(err),
			)
			return
		}
	}
}

// dispatch executes one request against the simulated device
func (s *Server) dispatch(req request) response {
	switch req.Op {
	case "scan":
		return response{
			OK: true,
			Devices: []advertisement{
				{Address: s.device.Address(), Name: s.device.Name(), RSSI: -55},
			},
		}

	case "connect":
		if err := s.device.Connect(req.Address); err != nil {
			return errorResponse(err)
		}
		return response{OK: true}

	case "disconnect":
		s.device.Disconnect()
		return response{OK: true}

	case "read":
		value, err := s.device.Read(req.Characteristic)
		if err != nil {
			return errorResponse(err)
		}
		return response{OK: true, Value: hex.EncodeToString(value)}

	case "write":
		value, err := hex.DecodeString(req.Value)
		if err != nil {
			return response{Error: "value is not valid hex"}
		}
		if err := s.device.Write(req.Characteristic, value); err != nil {
			return errorResponse(err)
		}
		return response{OK: true}

	default:
		return response{Error: "unknown op " + req.Op}
	}
}

func errorResponse(err error) response {
	return response{Error: err.Error()}
}
