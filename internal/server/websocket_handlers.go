package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/MeKo-Tech/gs1scan/internal/gs1"
	"github.com/gorilla/websocket"
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin in development
		// In production, you should check against allowed origins
		return true
	},
}

// WebSocketDecodeRequest represents a decode request via WebSocket. A
// hardware scanner bridge typically sends one message per scan event.
type WebSocketDecodeRequest struct {
	Barcode string `json:"barcode"`
	Format  string `json:"format,omitempty"`
}

// WebSocketConnWriter is an interface for writing WebSocket messages.
type WebSocketConnWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// WebSocketDecodeResponse represents a decode response via WebSocket.
type WebSocketDecodeResponse struct {
	Type      string      `json:"type"`
	Status    string      `json:"status"` // "completed", "error"
	Result    interface{} `json:"result,omitempty"`
	Text      string      `json:"text,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorType string      `json:"error_type,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// decodeWebSocketHandler handles WebSocket connections for streaming
// barcode decoding, e.g. from a scanner device feed.
func (s *Server) decodeWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)

	s.handleWebSocketConnection(conn)
}

// handleWebSocketConnection processes messages from a WebSocket connection.
func (s *Server) handleWebSocketConnection(conn *websocket.Conn) {
	// Set read deadline to prevent hanging connections
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// Send ping messages to keep connection alive
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
				return
			}
		}
	}()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("WebSocket error", "error", err)
			}
			break
		}

		websocketMessagesTotal.WithLabelValues("received").Inc()

		if messageType == websocket.TextMessage {
			s.handleWebSocketMessage(conn, data)
		}
	}
}

// handleWebSocketMessage decodes one scanned barcode and replies.
func (s *Server) handleWebSocketMessage(conn *websocket.Conn, data []byte) {
	var req WebSocketDecodeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.sendWebSocketError(conn, "invalid_request", "Failed to parse request: "+err.Error())
		return
	}
	if req.Barcode == "" {
		s.sendWebSocketError(conn, "invalid_request", "No barcode provided")
		return
	}

	// Request IDs let a client correlate replies on a shared feed
	requestID := strconv.FormatInt(time.Now().UnixNano(), 10)

	barcodeLength.Observe(float64(len(req.Barcode)))

	res, err := s.scanner.Decode(req.Barcode).Get()
	if err != nil {
		decodeRequestsTotal.WithLabelValues("websocket", "error").Inc()
		decodeErrorsTotal.WithLabelValues(decodeErrorType(err)).Inc()
		s.sendWebSocketResponse(conn, WebSocketDecodeResponse{
			Type:      "decode_response",
			Status:    "error",
			Error:     err.Error(),
			ErrorType: decodeErrorType(err),
			RequestID: requestID,
		})
		return
	}

	decodeRequestsTotal.WithLabelValues("websocket", "success").Inc()
	decodedFields.WithLabelValues("websocket").Observe(float64(len(res.Fields)))

	response := WebSocketDecodeResponse{
		Type:      "decode_response",
		Status:    "completed",
		Result:    res,
		RequestID: requestID,
	}
	if req.Format == formatText {
		response.Text = gs1.ToPlainText(res)
	}
	s.sendWebSocketResponse(conn, response)
}

// sendWebSocketResponse sends a response message over WebSocket.
func (s *Server) sendWebSocketResponse(conn WebSocketConnWriter, response WebSocketDecodeResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		slog.Error("Failed to marshal WebSocket response", "error", err)
		return
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("Failed to send WebSocket message", "error", err)
		return
	}

	websocketMessagesTotal.WithLabelValues("sent").Inc()
}

// sendWebSocketError sends an error message over WebSocket.
func (s *Server) sendWebSocketError(conn WebSocketConnWriter, errorType, message string) {
	response := WebSocketDecodeResponse{
		Type:      "error",
		Status:    "error",
		Error:     message,
		ErrorType: errorType,
	}

	data, err := json.Marshal(response)
	if err != nil {
		slog.Error("Failed to marshal WebSocket error response", "error", err)
		return
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("Failed to send WebSocket error message", "error", err)
		return
	}

	websocketMessagesTotal.WithLabelValues("sent").Inc()
}
