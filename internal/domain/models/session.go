package models

import (
	"sort"
	"time"
)

// SessionState describes where a conversation sits in its lifecycle.
// Transitions are one-directional: Unclassified -> Engaged -> Reported.
type SessionState string

const (
	// SessionStateUnclassified means no scam intent has been detected yet.
	SessionStateUnclassified SessionState = "unclassified"
	// SessionStateEngaged means scam intent was detected and the decoy is
	// actively prolonging the conversation.
	SessionStateEngaged SessionState = "engaged"
	// SessionStateReported means the one-shot intelligence callback has been
	// attempted for this conversation.
	SessionStateReported SessionState = "reported"
)

// Session is the per-conversation record, keyed by the opaque session ID.
// It is mutated only by the conversation engine, under the store's per-key
// serialization.
type Session struct {
	ID              string       `json:"id"`
	TurnCount       int          `json:"turn_count"`
	ScamDetected    bool         `json:"scam_detected"`
	CallbackSent    bool         `json:"callback_sent"`
	MatchedKeywords []string     `json:"matched_keywords"`
	Intel           Intelligence `json:"intel"`
	AgentNotes      string       `json:"agent_notes"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// NewSession creates an empty record in the unclassified state.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// State derives the lifecycle state from the sticky flags.
func (s *Session) State() SessionState {
	switch {
	case s.CallbackSent:
		return SessionStateReported
	case s.ScamDetected:
		return SessionStateEngaged
	default:
		return SessionStateUnclassified
	}
}

// AddKeywords unions newly matched keywords into the record, keeping the
// stored list sorted and free of duplicates. The set never shrinks.
func (s *Session) AddKeywords(matched []string) {
	if len(matched) == 0 {
		return
	}
	seen := make(map[string]struct{}, len(s.MatchedKeywords)+len(matched))
	for _, k := range s.MatchedKeywords {
		seen[k] = struct{}{}
	}
	for _, k := range matched {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			s.MatchedKeywords = append(s.MatchedKeywords, k)
		}
	}
	sort.Strings(s.MatchedKeywords)
}

// Intelligence holds the categorized artifacts extracted across a
// conversation. Each list is deduplicated and preserves first-seen order.
// A 10-digit run may legitimately appear in both PhoneNumbers and
// BankAccounts; categories are deduplicated independently, never against
// each other.
type Intelligence struct {
	BankAccounts  []string `json:"bankAccounts"`
	UPIIDs        []string `json:"upiIds"`
	PhishingLinks []string `json:"phishingLinks"`
	PhoneNumbers  []string `json:"phoneNumbers"`
}

// Merge appends artifacts from other that are not already present,
// preserving first-seen order per category.
func (i *Intelligence) Merge(other Intelligence) {
	i.BankAccounts = appendNew(i.BankAccounts, other.BankAccounts)
	i.UPIIDs = appendNew(i.UPIIDs, other.UPIIDs)
	i.PhishingLinks = appendNew(i.PhishingLinks, other.PhishingLinks)
	i.PhoneNumbers = appendNew(i.PhoneNumbers, other.PhoneNumbers)
}

// Total returns the number of artifacts across all categories.
func (i Intelligence) Total() int {
	return len(i.BankAccounts) + len(i.UPIIDs) + len(i.PhishingLinks) + len(i.PhoneNumbers)
}

func appendNew(dst, src []string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, v := range dst {
		seen[v] = struct{}{}
	}
	for _, v := range src {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			dst = append(dst, v)
		}
	}
	return dst
}
