package services

import (
	"regexp"
	"strings"

	"honeytrap-lab/internal/domain/models"
)

// Extractor pulls categorized scam artifacts out of message text using
// compiled regex patterns. It performs no merging into any session record;
// that is the conversation engine's job.
type Extractor struct {
	upiRe     *regexp.Regexp
	phoneRe   *regexp.Regexp
	linkRe    *regexp.Regexp
	accountRe *regexp.Regexp
}

// NewExtractor creates an extractor with all patterns compiled.
func NewExtractor() *Extractor {
	return &Extractor{
		// UPI IDs (common formats: name@bank, phone@upi)
		upiRe: regexp.MustCompile(`\b[a-zA-Z0-9.\-_]{2,}@[a-zA-Z]{2,}\b`),
		// Phone numbers: +91XXXXXXXXXX or bare 10-digit
		phoneRe: regexp.MustCompile(`(?:\+91[-\s]?)?\b\d{10}\b`),
		// Links, with or without scheme
		linkRe: regexp.MustCompile(`https?://\S+|www\.\S+`),
		// Account-like numeric runs. Deliberately loose: no checksum, and a
		// 10-digit phone number also satisfies this, so the same literal can
		// land in both categories.
		accountRe: regexp.MustCompile(`\b\d{9,18}\b`),
	}
}

// Extract returns the categorized artifacts found in text. Each category is
// deduplicated preserving first-occurrence order; categories are never
// deduplicated against each other. Total over arbitrary input: empty or
// garbage text yields empty results, never an error.
func (e *Extractor) Extract(text string) models.Intelligence {
	return models.Intelligence{
		BankAccounts:  dedupe(e.accountRe.FindAllString(text, -1)),
		UPIIDs:        dedupe(e.upiRe.FindAllString(text, -1)),
		PhishingLinks: dedupe(e.linkRe.FindAllString(text, -1)),
		PhoneNumbers:  dedupe(e.phoneRe.FindAllString(text, -1)),
	}
}

// dedupe trims entries and drops duplicates, keeping first-seen order.
func dedupe(xs []string) []string {
	seen := make(map[string]struct{}, len(xs))
	var out []string
	for _, x := range xs {
		x = strings.TrimSpace(x)
		if x == "" {
			continue
		}
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		out = append(out, x)
	}
	return out
}
