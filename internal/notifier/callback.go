// Package notifier delivers the one-shot intelligence callback. Delivery is
// best effort: the conversation engine observes failures but never
// propagates or retries them.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"honeytrap-lab/internal/config"
	"honeytrap-lab/internal/domain/models"
	"honeytrap-lab/pkg/logger"
)

// Notifier receives a finalized intelligence report for a conversation.
type Notifier interface {
	Notify(ctx context.Context, report *models.Report) error
}

// HTTPNotifier posts reports as JSON to the configured callback URL with a
// short bounded timeout so the response path is never held up.
type HTTPNotifier struct {
	client *http.Client
	url    string
	logger *logger.Logger
}

// NewHTTP creates an HTTP callback notifier.
func NewHTTP(cfg config.CallbackConfig, log *logger.Logger) *HTTPNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPNotifier{
		client: &http.Client{Timeout: timeout},
		url:    cfg.URL,
		logger: log.WithComponent("callback-notifier"),
	}
}

// Notify posts the report. Non-2xx responses count as delivery failures so
// the caller can log them, but the attempt is still final either way.
func (n *HTTPNotifier) Notify(ctx context.Context, report *models.Report) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build callback request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("callback request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("callback returned status %d", resp.StatusCode)
	}

	n.logger.Info().
		Str("session_id", report.SessionID).
		Int("total_messages", report.TotalMessagesExchanged).
		Msg("intelligence report delivered")
	return nil
}
