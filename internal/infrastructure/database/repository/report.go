package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"honeytrap-lab/internal/domain/models"
)

// ReportRepository archives dispatched intelligence reports so extracted
// intel outlives process restarts.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new report repository
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

const reportsSchema = `
CREATE TABLE IF NOT EXISTS reports (
    id                  UUID PRIMARY KEY,
    session_id          TEXT NOT NULL,
    total_messages      INT NOT NULL,
    bank_accounts       TEXT[] NOT NULL DEFAULT '{}',
    upi_ids             TEXT[] NOT NULL DEFAULT '{}',
    phishing_links      TEXT[] NOT NULL DEFAULT '{}',
    phone_numbers       TEXT[] NOT NULL DEFAULT '{}',
    suspicious_keywords TEXT[] NOT NULL DEFAULT '{}',
    agent_notes         TEXT NOT NULL DEFAULT '',
    created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_reports_session_id ON reports (session_id);
`

// EnsureSchema creates the reports table if it does not exist yet.
func (r *ReportRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, reportsSchema); err != nil {
		return fmt.Errorf("failed to ensure reports schema: %w", err)
	}
	return nil
}

// Save inserts an archived copy of a dispatched report.
func (r *ReportRepository) Save(ctx context.Context, report *models.Report) error {
	const q = `
		INSERT INTO reports (
			id, session_id, total_messages,
			bank_accounts, upi_ids, phishing_links, phone_numbers,
			suspicious_keywords, agent_notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, q,
		uuid.New(),
		report.SessionID,
		report.TotalMessagesExchanged,
		report.ExtractedIntelligence.BankAccounts,
		report.ExtractedIntelligence.UPIIDs,
		report.ExtractedIntelligence.PhishingLinks,
		report.ExtractedIntelligence.PhoneNumbers,
		report.ExtractedIntelligence.SuspiciousKeywords,
		report.AgentNotes,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}
