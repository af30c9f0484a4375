package services

import (
	"strings"
	"testing"
)

func TestDetectStrongPatterns(t *testing.T) {
	d := NewDetector(NewCatalog(nil))

	tests := []struct {
		name string
		text string
	}{
		{"standalone upi token", "please pay via UPI to settle this"},
		{"standalone otp token", "share the OTP you just received"},
		{"standalone kyc token", "complete your KYC before tomorrow"},
		{"http url", "go to http://secure-pay.example/verify"},
		{"https url", "visit https://kyc-update.example now"},
		{"ten digit run", "reach me on 9876543210 for details"},
		{"six digit run", "the code 482916 was sent to you"},
		{"account blocked compound", "your a/c will be blocked unless you respond"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isScam, _ := d.Detect(tt.text)
			if !isScam {
				t.Errorf("Detect(%q) = false, want true", tt.text)
			}
		})
	}
}

func TestDetectKeywordThreshold(t *testing.T) {
	d := NewDetector(NewCatalog(nil))

	tests := []struct {
		name     string
		text     string
		wantScam bool
	}{
		{"no keywords", "hello, how are you doing", false},
		{"single weak keyword", "I need to verify something", false},
		{"two weak keywords", "urgent refund pending for you", true},
		{"many weak keywords", "your bank transaction needs immediate verification", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isScam, _ := d.Detect(tt.text)
			if isScam != tt.wantScam {
				t.Errorf("Detect(%q) = %v, want %v", tt.text, isScam, tt.wantScam)
			}
		})
	}
}

func TestDetectEmptyInput(t *testing.T) {
	d := NewDetector(NewCatalog(nil))

	for _, text := range []string{"", "   ", "\t\n  \n"} {
		isScam, matched := d.Detect(text)
		if isScam {
			t.Errorf("Detect(%q) = true, want false", text)
		}
		if len(matched) != 0 {
			t.Errorf("Detect(%q) matched %v, want none", text, matched)
		}
	}
}

func TestDetectMatchedKeywords(t *testing.T) {
	d := NewDetector(NewCatalog(nil))

	_, matched := d.Detect("Your account is blocked, complete verification today")

	want := map[string]bool{"account": true, "blocked": true, "today": true}
	for k := range want {
		if !contains(matched, k) {
			t.Errorf("matched keywords %v missing %q", matched, k)
		}
	}

	// Everything matched must come from the catalog
	catalog := NewCatalog(nil)
	for _, m := range matched {
		if !contains(catalog.Keywords(), m) {
			t.Errorf("matched keyword %q not in catalog", m)
		}
	}
}

func TestDetectNormalization(t *testing.T) {
	d := NewDetector(NewCatalog(nil))

	mixed := "  YOUR   Account\t IS \n BLOCKED, verify NOW  "
	plain := "your account is blocked, verify now"

	isScamMixed, matchedMixed := d.Detect(mixed)
	isScamPlain, matchedPlain := d.Detect(plain)

	if isScamMixed != isScamPlain {
		t.Errorf("verdict differs after normalization: %v vs %v", isScamMixed, isScamPlain)
	}
	if strings.Join(matchedMixed, ",") != strings.Join(matchedPlain, ",") {
		t.Errorf("matches differ after normalization: %v vs %v", matchedMixed, matchedPlain)
	}
}

func TestDetectAccountBlockedUpiMessage(t *testing.T) {
	d := NewDetector(NewCatalog(nil))

	isScam, matched := d.Detect("Your a/c will be blocked, share OTP now or pay via test@upi")
	if !isScam {
		t.Fatal("expected scam verdict")
	}
	if !contains(matched, "otp") || !contains(matched, "blocked") {
		t.Errorf("matched = %v, want otp and blocked included", matched)
	}
}

func TestDetectCustomKeywords(t *testing.T) {
	d := NewDetector(NewCatalog([]string{"lottery", "prize"}))

	isScam, matched := d.Detect("you won the lottery, claim your prize")
	if !isScam {
		t.Error("expected scam verdict with two custom keyword hits")
	}
	if len(matched) != 2 {
		t.Errorf("matched = %v, want 2 entries", matched)
	}
}

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
