package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/internal/domain/services"
	"honeytrap-lab/internal/infrastructure/store"
	"honeytrap-lab/pkg/logger"
)

// SessionsHandler exposes read-only inspection of live decoy conversations
type SessionsHandler struct {
	engine *services.Engine
	logger *logger.Logger
}

// NewSessionsHandler creates a new sessions handler
func NewSessionsHandler(engine *services.Engine, log *logger.Logger) *SessionsHandler {
	return &SessionsHandler{
		engine: engine,
		logger: log.WithComponent("sessions-handler"),
	}
}

// SessionSummary is the list-view projection of a conversation record.
type SessionSummary struct {
	ID              string              `json:"id"`
	State           models.SessionState `json:"state"`
	TurnCount       int                 `json:"turn_count"`
	IntelCount      int                 `json:"intel_count"`
	MatchedKeywords int                 `json:"matched_keywords"`
	UpdatedAt       string              `json:"updated_at"`
}

// List handles GET /api/honeypot/sessions
func (h *SessionsHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.engine.ListSessions(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list sessions")
		writeError(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}

	summaries := make([]SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		summaries = append(summaries, SessionSummary{
			ID:              s.ID,
			State:           s.State(),
			TurnCount:       s.TurnCount,
			IntelCount:      s.Intel.Total(),
			MatchedKeywords: len(s.MatchedKeywords),
			UpdatedAt:       s.UpdatedAt.Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "success",
		"count":    len(summaries),
		"sessions": summaries,
	})
}

// Get handles GET /api/honeypot/sessions/{sessionID}
func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	s, err := h.engine.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		h.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to load session")
		writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"session": s,
	})
}
