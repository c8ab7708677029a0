package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/keerththansana/taxmate/internal/domain"
)

type stubChatService struct {
	lastReq domain.ChatRequest
	resp    domain.ChatResponse
}

func (s *stubChatService) Process(_ context.Context, req domain.ChatRequest) domain.ChatResponse {
	s.lastReq = req
	return s.resp
}

func newTestRouter(stub *stubChatService) http.Handler {
	return NewServer(stub, zap.NewNop()).Router(5 * time.Second)
}

func TestHandleChat(t *testing.T) {
	stub := &stubChatService{resp: domain.ChatResponse{Success: true, Response: "# 👋 Hello!"}}
	router := newTestRouter(stub)

	body := strings.NewReader(`{"message":"hello","conversation_id":"conv-1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chatbot/chat", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp domain.ChatResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || resp.Response != "# 👋 Hello!" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if stub.lastReq.Message != "hello" || stub.lastReq.ConversationID != "conv-1" {
		t.Fatalf("request not forwarded: %+v", stub.lastReq)
	}
}

func TestHandleChatMalformedBody(t *testing.T) {
	router := newTestRouter(&stubChatService{})

	req := httptest.NewRequest(http.MethodPost, "/api/chatbot/chat", strings.NewReader(`{"message":`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp domain.ChatResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Success {
		t.Fatalf("malformed request must report success=false")
	}
	if resp.Response == "" {
		t.Fatalf("error response must not be empty")
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(&stubChatService{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Fatalf("unexpected health payload: %s", rec.Body.String())
	}
}
