package handlers

import (
	"encoding/json"
	"net/http"

	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/internal/domain/services"
	"honeytrap-lab/pkg/logger"
)

// HoneypotHandler handles the inbound scam message endpoint
type HoneypotHandler struct {
	engine *services.Engine
	logger *logger.Logger
}

// NewHoneypotHandler creates a new honeypot handler
func NewHoneypotHandler(engine *services.Engine, log *logger.Logger) *HoneypotHandler {
	return &HoneypotHandler{
		engine: engine,
		logger: log.WithComponent("honeypot-handler"),
	}
}

// MessageRequest is the request body for the honeypot endpoint.
type MessageRequest struct {
	SessionID           string           `json:"sessionId"`
	Message             models.Message   `json:"message"`
	ConversationHistory []models.Message `json:"conversationHistory,omitempty"`
	Metadata            *models.Metadata `json:"metadata,omitempty"`
}

// MessageResponse is the reply envelope.
type MessageResponse struct {
	Status string `json:"status"`
	Reply  string `json:"reply"`
}

// Handle handles POST /api/honeypot - processes one inbound scam message
func (h *HoneypotHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		writeError(w, http.StatusBadRequest, errorMessage)
		return
	}

	if req.SessionID == "" || req.Message.Text == "" {
		writeError(w, http.StatusBadRequest, errorMessage)
		return
	}

	channel := ""
	if req.Metadata != nil {
		channel = req.Metadata.Channel
	}

	reply, err := h.engine.HandleMessage(r.Context(), req.SessionID, req.Message.Text, channel)
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", req.SessionID).Msg("failed to process message")
		writeError(w, http.StatusInternalServerError, "processing failed")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Status: "success", Reply: reply})
}
