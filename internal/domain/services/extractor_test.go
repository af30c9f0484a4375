package services

import (
	"reflect"
	"testing"
)

func TestExtractUPIIDs(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"simple handle", "pay to test@upi right now", []string{"test@upi"}},
		{"bank handle", "send to merchant.refunds@paytm please", []string{"merchant.refunds@paytm"}},
		{"multiple handles", "use a1@okaxis or b2@ybl", []string{"a1@okaxis", "b2@ybl"}},
		{"no handle", "no payment identifiers here", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text).UPIIDs
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("UPIIDs = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractPhoneNumbers(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"bare ten digits", "call 9876543210 now", []string{"9876543210"}},
		{"with country code", "call +91 9876543210 now", []string{"+91 9876543210"}},
		{"with hyphen separator", "call +91-9876543210 now", []string{"+91-9876543210"}},
		{"eleven digit run ignored", "ref 98765432101 is not a phone", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text).PhoneNumbers
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PhoneNumbers = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractPhishingLinks(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"http", "open http://fake-bank.example/login fast", []string{"http://fake-bank.example/login"}},
		{"https", "open https://kyc.example/verify?id=1", []string{"https://kyc.example/verify?id=1"}},
		{"www prefix", "visit www.fake-bank.example today", []string{"www.fake-bank.example"}},
		{"no link", "no urls in this message", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text).PhishingLinks
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PhishingLinks = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractBankAccounts(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"nine digits", "account 123456789 suspended", []string{"123456789"}},
		{"eighteen digits", "ref 123456789012345678 noted", []string{"123456789012345678"}},
		{"eight digits too short", "code 12345678 invalid", nil},
		{"nineteen digits too long", "id 1234567890123456789 invalid", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text).BankAccounts
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BankAccounts = %v, want %v", got, tt.want)
			}
		})
	}
}

// A 10-digit run satisfies both the phone and the account pattern; both
// categories keep it.
func TestExtractTenDigitOverlap(t *testing.T) {
	e := NewExtractor()

	intel := e.Extract("transfer to 9876543210 immediately")

	if !reflect.DeepEqual(intel.PhoneNumbers, []string{"9876543210"}) {
		t.Errorf("PhoneNumbers = %v, want the 10-digit run", intel.PhoneNumbers)
	}
	if !reflect.DeepEqual(intel.BankAccounts, []string{"9876543210"}) {
		t.Errorf("BankAccounts = %v, want the 10-digit run", intel.BankAccounts)
	}
}

func TestExtractDedupeKeepsFirstSeenOrder(t *testing.T) {
	e := NewExtractor()

	intel := e.Extract("use b@upi then a@upi then b@upi again")

	want := []string{"b@upi", "a@upi"}
	if !reflect.DeepEqual(intel.UPIIDs, want) {
		t.Errorf("UPIIDs = %v, want %v", intel.UPIIDs, want)
	}
}

func TestExtractIdempotent(t *testing.T) {
	e := NewExtractor()
	text := "call 9876543210, pay test@upi, open https://x.example/a and account 123456789"

	first := e.Extract(text)
	second := e.Extract(text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated extraction differs: %+v vs %+v", first, second)
	}
}

func TestExtractTotalFunction(t *testing.T) {
	e := NewExtractor()

	for _, text := range []string{"", "   ", "héllo wörld 🙂", "\x00\x01"} {
		intel := e.Extract(text)
		if intel.Total() != 0 {
			t.Errorf("Extract(%q) produced artifacts: %+v", text, intel)
		}
	}
}
