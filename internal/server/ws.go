package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/keerththansana/taxmate/internal/domain"
)

const (
	wsWriteTimeout   = 10 * time.Second
	wsMaxMessageSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The chat contract carries no credentials and answers are public
	// reference data, so cross-origin clients are allowed.
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// handleWebSocket serves the chat contract per frame: each JSON request
// frame gets one JSON response frame on the same connection.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsMaxMessageSize)
	s.logger.Info("WebSocket client connected", zap.String("remote", conn.RemoteAddr().String()))

	for {
		var req domain.ChatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}

		resp := s.chatbot.Process(r.Context(), req)

		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(resp); err != nil {
			s.logger.Warn("WebSocket write error", zap.Error(err))
			return
		}
	}
}
