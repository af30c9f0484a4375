package services

import (
	"regexp"
	"strings"
)

// Detector classifies scam intent in a single message using the catalog's
// weak keywords and strong structural patterns. It is a pure function of the
// input text and the static catalog; no state is kept between calls.
type Detector struct {
	catalog *Catalog
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// NewDetector creates a detector over the given catalog.
func NewDetector(catalog *Catalog) *Detector {
	return &Detector{catalog: catalog}
}

// Detect returns the scam verdict for text together with every catalog
// keyword that occurs in it. A single strong structural hit (URL, OTP-shaped
// code, account-suspension phrasing) is sufficient on its own; weak keyword
// matches need at least two to corroborate each other, which keeps ordinary
// banking-adjacent conversation from tripping the flag.
func (d *Detector) Detect(text string) (bool, []string) {
	t := normalize(text)
	if t == "" {
		return false, nil
	}

	var matched []string
	for _, k := range d.catalog.keywords {
		if strings.Contains(t, strings.ToLower(k)) {
			matched = append(matched, k)
		}
	}

	strongHit := false
	for _, re := range d.catalog.strong {
		if re.MatchString(t) {
			strongHit = true
			break
		}
	}

	return strongHit || len(matched) >= 2, matched
}

// normalize collapses whitespace runs, trims and lowercases.
func normalize(text string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), " ")
}
