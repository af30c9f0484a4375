package services

import (
	"context"

	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/internal/infrastructure/store"
	"honeytrap-lab/internal/notifier"
	"honeytrap-lab/pkg/logger"
)

// NeutralReply is returned for traffic that has not been classified as a
// scam. Deliberately minimal engagement.
const NeutralReply = "Okay."

const engagedNotes = "Engaged scammer without revealing detection."

// ReportArchive persists dispatched reports. Optional; a nil archive skips
// persistence.
type ReportArchive interface {
	Save(ctx context.Context, report *models.Report) error
}

// EngineConfig tunes the conversation engine.
type EngineConfig struct {
	// MinCallbackTurns is the turn count at which the one-shot callback
	// fires for an engaged conversation.
	MinCallbackTurns int
	// CallbackEnabled disables callback delivery entirely when false.
	CallbackEnabled bool
}

// Engine is the per-conversation state machine. It sequences the detector,
// extractor and reply agent over the session record and enforces the sticky
// detection flag and the one-shot callback. All record mutation for one
// message happens inside the store's per-key serialized update.
type Engine struct {
	detector  *Detector
	extractor *Extractor
	agent     *Agent
	sessions  store.Store
	notifier  notifier.Notifier
	archive   ReportArchive
	cfg       EngineConfig
	logger    *logger.Logger
}

// NewEngine wires the conversation engine. notifier and archive may be nil;
// the engine then skips the corresponding dispatch step.
func NewEngine(
	detector *Detector,
	extractor *Extractor,
	agent *Agent,
	sessions store.Store,
	n notifier.Notifier,
	archive ReportArchive,
	cfg EngineConfig,
	log *logger.Logger,
) *Engine {
	if cfg.MinCallbackTurns <= 0 {
		cfg.MinCallbackTurns = 6
	}
	return &Engine{
		detector:  detector,
		extractor: extractor,
		agent:     agent,
		sessions:  sessions,
		notifier:  n,
		archive:   archive,
		cfg:       cfg,
		logger:    log.WithComponent("conversation-engine"),
	}
}

// HandleMessage processes one inbound message for a session and returns the
// outbound reply. It never fails for well-formed input; the only error
// source is the session store itself.
func (e *Engine) HandleMessage(ctx context.Context, sessionID, text, channel string) (string, error) {
	var (
		reply  string
		report *models.Report
	)

	s, err := e.sessions.Update(ctx, sessionID, func(s *models.Session) error {
		s.TurnCount++

		isScam, matched := e.detector.Detect(text)
		s.AddKeywords(matched)

		// Sticky: once flagged, a quiet turn never clears it
		if isScam {
			s.ScamDetected = true
		}

		if !s.ScamDetected {
			reply = NeutralReply
			return nil
		}

		s.Intel.Merge(e.extractor.Extract(text))
		s.AgentNotes = engagedNotes
		reply = e.agent.Reply(text, s.TurnCount, s.MatchedKeywords, s.Intel, channel)

		// One-shot: the flag flips inside the critical section, the
		// dispatch happens after it. A failed delivery stays final.
		if e.cfg.CallbackEnabled && !s.CallbackSent && s.TurnCount >= e.cfg.MinCallbackTurns {
			s.CallbackSent = true
			report = models.BuildReport(s)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	e.logger.Debug().
		Str("session_id", sessionID).
		Int("turn", s.TurnCount).
		Str("state", string(s.State())).
		Int("intel_total", s.Intel.Total()).
		Msg("message processed")

	if report != nil {
		e.dispatch(ctx, report)
	}

	return reply, nil
}

// dispatch delivers and archives a finalized report. Both steps are best
// effort; failures are logged and absorbed, never retried.
func (e *Engine) dispatch(ctx context.Context, report *models.Report) {
	if e.notifier != nil {
		if err := e.notifier.Notify(ctx, report); err != nil {
			e.logger.Warn().Err(err).
				Str("session_id", report.SessionID).
				Msg("callback delivery failed, not retrying")
		}
	}
	if e.archive != nil {
		if err := e.archive.Save(ctx, report); err != nil {
			e.logger.Warn().Err(err).
				Str("session_id", report.SessionID).
				Msg("failed to archive report")
		}
	}
}

// GetSession returns a snapshot of one conversation record.
func (e *Engine) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	return e.sessions.Get(ctx, sessionID)
}

// ListSessions returns snapshots of all conversation records.
func (e *Engine) ListSessions(ctx context.Context) ([]*models.Session, error) {
	return e.sessions.List(ctx)
}
