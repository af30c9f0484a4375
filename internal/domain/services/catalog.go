package services

import "regexp"

// Catalog is the static configuration behind the intent detector: the weak
// keyword list plus the fixed strong-pattern set. Patterns are compiled once
// at construction and shared across requests.
type Catalog struct {
	keywords []string
	strong   []*regexp.Regexp
}

// DefaultKeywords is the built-in scam keyword list, covering banking,
// payments/UPI, urgency and phishing vocabulary common in Indian scam SMS.
var DefaultKeywords = []string{
	// banking / account
	"bank",
	"account",
	"blocked",
	"freeze",
	"suspend",
	"suspension",
	"debit",
	"credit",
	"kyc",
	"verify",
	"verification",
	"otp",
	"pin",
	"cvv",
	"password",
	// payments / UPI
	"upi",
	"paytm",
	"phonepe",
	"gpay",
	"google pay",
	"bharatpe",
	"transaction",
	"refund",
	"reversal",
	// urgency / threats
	"urgent",
	"immediately",
	"within",
	"today",
	"last chance",
	// links / phishing
	"link",
	"click",
	"http",
	"www",
}

// strongPatterns are structural signals that flag scam intent on their own,
// independent of the keyword count. Not externally configurable.
var strongPatterns = []string{
	`\bupi\b`,
	`\botp\b`,
	`\bkyc\b`,
	`https?://\S+`,
	`\b\d{10}\b`, // 10-digit phone
	`\b\d{6}\b`,  // OTP-like code
	`\b(?:account|a/c)\b.*\b(?:blocked|freeze|suspend)\b`,
}

// NewCatalog builds a catalog from the given keyword list. An empty list
// falls back to DefaultKeywords.
func NewCatalog(keywords []string) *Catalog {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}

	strong := make([]*regexp.Regexp, 0, len(strongPatterns))
	for _, p := range strongPatterns {
		strong = append(strong, regexp.MustCompile(p))
	}

	return &Catalog{
		keywords: append([]string(nil), keywords...),
		strong:   strong,
	}
}

// Keywords returns the configured keyword list.
func (c *Catalog) Keywords() []string {
	return c.keywords
}
