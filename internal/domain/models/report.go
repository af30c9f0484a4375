package models

import "sort"

// DefaultAgentNotes is used when a report is dispatched before the engine
// recorded any notes for the conversation.
const DefaultAgentNotes = "Scam conversation engaged and intel extracted."

// Report is the finalized intelligence payload sent to the external callback
// once per conversation.
type Report struct {
	SessionID              string             `json:"sessionId"`
	ScamDetected           bool               `json:"scamDetected"`
	TotalMessagesExchanged int                `json:"totalMessagesExchanged"`
	ExtractedIntelligence  ReportIntelligence `json:"extractedIntelligence"`
	AgentNotes             string             `json:"agentNotes"`
}

// ReportIntelligence is the intel block of the callback payload: the four
// extraction categories plus the sorted, deduplicated keyword union.
type ReportIntelligence struct {
	BankAccounts       []string `json:"bankAccounts"`
	UPIIDs             []string `json:"upiIds"`
	PhishingLinks      []string `json:"phishingLinks"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

// BuildReport assembles the callback payload from a session record.
func BuildReport(s *Session) *Report {
	keywords := append([]string(nil), s.MatchedKeywords...)
	sort.Strings(keywords)

	notes := s.AgentNotes
	if notes == "" {
		notes = DefaultAgentNotes
	}

	return &Report{
		SessionID:              s.ID,
		ScamDetected:           true,
		TotalMessagesExchanged: s.TurnCount,
		ExtractedIntelligence: ReportIntelligence{
			BankAccounts:       emptyIfNil(s.Intel.BankAccounts),
			UPIIDs:             emptyIfNil(s.Intel.UPIIDs),
			PhishingLinks:      emptyIfNil(s.Intel.PhishingLinks),
			PhoneNumbers:       emptyIfNil(s.Intel.PhoneNumbers),
			SuspiciousKeywords: emptyIfNil(keywords),
		},
		AgentNotes: notes,
	}
}

// emptyIfNil keeps callback JSON arrays as [] rather than null.
func emptyIfNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
