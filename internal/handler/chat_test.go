package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventbot/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type stubResponder struct {
	resp *model.ChatResponse
	err  error
	got  string
}

func (s *stubResponder) Respond(_ context.Context, message string) (*model.ChatResponse, error) {
	s.got = message
	return s.resp, s.err
}

func newTestRouter(responder ChatResponder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewChatHandler(responder, zerolog.Nop()).RegisterRoutes(r)
	return r
}

func postChat(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatSuccess(t *testing.T) {
	responder := &stubResponder{resp: &model.ChatResponse{
		Response: "Encontré un evento",
		Events:   []model.EventSummary{{Title: "Feria"}},
	}}
	w := postChat(t, newTestRouter(responder), `{"message": "eventos de hoy"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if responder.got != "eventos de hoy" {
		t.Errorf("service received %q, want the message", responder.got)
	}

	var resp model.ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Response != "Encontré un evento" || len(resp.Events) != 1 {
		t.Errorf("body = %+v, want the service response", resp)
	}
}

func TestChatTrimsMessage(t *testing.T) {
	responder := &stubResponder{resp: &model.ChatResponse{Response: "ok"}}
	postChat(t, newTestRouter(responder), `{"message": "  eventos  "}`)

	if responder.got != "eventos" {
		t.Errorf("service received %q, want trimmed message", responder.got)
	}
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	responder := &stubResponder{}
	for _, body := range []string{`{}`, `{"message": ""}`, `{"message": "   "}`, `no json`} {
		w := postChat(t, newTestRouter(responder), body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
	}
	if responder.got != "" {
		t.Errorf("service was called with %q, want no call", responder.got)
	}
}

func TestChatServiceErrorIsOpaque(t *testing.T) {
	responder := &stubResponder{err: errors.New("pq: connection refused")}
	w := postChat(t, newTestRouter(responder), `{"message": "eventos"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "pq:") {
		t.Errorf("body %q leaks the internal error", w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&stubResponder{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
