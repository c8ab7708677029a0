// Package server exposes the chat contract over HTTP and websocket. Both
// carry the same request/response JSON; every handled path answers with a
// structured {success, response} payload.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/keerththansana/taxmate/internal/domain"
)

// ChatService answers one chat request. Implemented by service.Chatbot.
type ChatService interface {
	Process(ctx context.Context, req domain.ChatRequest) domain.ChatResponse
}

type Server struct {
	chatbot ChatService
	logger  *zap.Logger
}

func NewServer(chatbot ChatService, logger *zap.Logger) *Server {
	return &Server{
		chatbot: chatbot,
		logger:  logger,
	}
}

// Router builds the HTTP surface: the chat endpoint, its websocket twin,
// and a health probe.
func (s *Server) Router(requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"taxmate"}`))
	})

	r.Post("/api/chatbot/chat", s.handleChat)
	r.Get("/ws", s.handleWebSocket)

	return r
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("Malformed chat request", zap.Error(err))
		s.writeJSON(w, http.StatusBadRequest, domain.ChatResponse{
			Success:  false,
			Response: "# ⚠️ Request body must be JSON with a \"message\" field",
		})
		return
	}

	resp := s.chatbot.Process(r.Context(), req)
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}
