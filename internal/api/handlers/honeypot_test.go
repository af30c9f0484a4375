package handlers

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"honeytrap-lab/internal/domain/services"
	"honeytrap-lab/internal/infrastructure/store"
	"honeytrap-lab/pkg/logger"
)

func newTestHandler() *HoneypotHandler {
	log := logger.NewDefault()
	catalog := services.NewCatalog(nil)
	engine := services.NewEngine(
		services.NewDetector(catalog),
		services.NewExtractor(),
		services.NewAgent(rand.New(rand.NewSource(1))),
		store.NewMemory(),
		nil,
		nil,
		services.EngineConfig{MinCallbackTurns: 6, CallbackEnabled: false},
		log,
	)
	return NewHoneypotHandler(engine, log)
}

func postMessage(t *testing.T, h *HoneypotHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/honeypot", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandleScamMessage(t *testing.T) {
	h := newTestHandler()

	rec := postMessage(t, h, `{
		"sessionId": "s1",
		"message": {"sender": "scammer", "text": "Your a/c will be blocked, share OTP now or pay via test@upi", "timestamp": 1718000000}
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp MessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("status field = %q, want success", resp.Status)
	}
	if resp.Reply == "" || resp.Reply == services.NeutralReply {
		t.Errorf("reply = %q, want an engaged decoy reply", resp.Reply)
	}
}

func TestHandleBenignMessage(t *testing.T) {
	h := newTestHandler()

	rec := postMessage(t, h, `{
		"sessionId": "s2",
		"message": {"sender": "user", "text": "hello there, how are you", "timestamp": 1718000000}
	}`)

	var resp MessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Reply != services.NeutralReply {
		t.Errorf("reply = %q, want neutral %q", resp.Reply, services.NeutralReply)
	}
}

func TestHandleValidation(t *testing.T) {
	h := newTestHandler()

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{not json`},
		{"missing session id", `{"message":{"sender":"scammer","text":"hi","timestamp":1}}`},
		{"empty session id", `{"sessionId":"","message":{"sender":"scammer","text":"hi","timestamp":1}}`},
		{"missing text", `{"sessionId":"s1","message":{"sender":"scammer","text":"","timestamp":1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postMessage(t, h, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "Invalid API key or malformed request") {
				t.Errorf("body = %q, want uniform rejection message", rec.Body.String())
			}
		})
	}
}

func TestHandleChannelMetadata(t *testing.T) {
	h := newTestHandler()

	rec := postMessage(t, h, `{
		"sessionId": "s3",
		"message": {"sender": "scammer", "text": "complete your KYC today", "timestamp": 1718000000},
		"metadata": {"channel": "WhatsApp", "language": "en"}
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
