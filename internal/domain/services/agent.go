package services

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"honeytrap-lab/internal/domain/models"
)

// Agent generates the decoy's replies. It is a prioritized rule cascade,
// evaluated top to bottom with the first matching rule winning: re-eliciting
// already-captured high-value artifacts outranks generic stalling. The
// cascade never reveals that scam intent was detected.
type Agent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// Stalling replies for the first couple of turns: act worried and confused,
// ask for "official" details.
var earlyReplies = []string{
	"What do you mean my account will be blocked? Which bank are you from and what exactly happened?",
	"I'm outside right now. Can you tell me the last 4 digits or any reference number so I can confirm it's really my account?",
	"I didn't do any transaction today - what is the issue exactly? Please explain step by step.",
}

// Mid-conversation replies: ask for procedural details that surface the
// scam's operational steps.
var proceduralReplies = []string{
	"Okay, what should I do first - should I click any link or open my UPI app? Tell me the exact steps.",
	"You said it's urgent. What happens if I don't do it now, and what proof do you have that this is official?",
	"Can you send the official message format again? I want to show it to my family and be sure I'm doing it correctly.",
}

// NewAgent creates an agent using the given randomness source for tiered
// reply selection. Pass a seeded source in tests to pin the choice; a nil
// source falls back to a time-seeded one.
func NewAgent(rng *rand.Rand) *Agent {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Agent{rng: rng}
}

// Reply produces one outbound reply from the latest message text, the turn
// number, the accumulated matched keywords and extracted intelligence, and
// the transport channel hint. The cascade's output does not currently vary
// by channel; the hint is accepted so the policy can specialize later
// without a signature change.
func (a *Agent) Reply(latestText string, turn int, matchedKeywords []string, intel models.Intelligence, channel string) string {
	t := strings.ToLower(latestText)

	// Captured artifacts first: follow-ups that confirm or improve intel.
	if len(intel.PhishingLinks) > 0 {
		return "That link isn't opening for me. Can you send the exact full link again and tell me what I'm supposed to do after opening it?"
	}
	if len(intel.UPIIDs) > 0 {
		return "I'm not sure my UPI app is showing the right screen. Which app should I use (GPay/PhonePe/Paytm) and what exactly should I enter?"
	}
	if len(intel.PhoneNumbers) > 0 {
		return "I'm getting calls from different numbers. Which number should I call back or reply to so this gets fixed quickly?"
	}
	if strings.Contains(t, "otp") || strings.Contains(t, "pin") ||
		strings.Contains(t, "password") || strings.Contains(t, "cvv") {
		return "I received something but I'm confused - what is this code for, and why did it come now? Can you explain what step I'm on?"
	}

	if turn <= 2 {
		return a.pick(earlyReplies)
	}
	if turn <= 5 {
		return a.pick(proceduralReplies)
	}

	// Later turns: keep stalling while citing what the scammer said.
	if kw := keywordSummary(matchedKeywords, 4); kw != "" {
		return fmt.Sprintf("I'm trying to follow. You mentioned %s - can you confirm the exact process and the contact/UPI details one more time so I don't make a mistake?", kw)
	}

	return "I'm still confused. Can you explain the steps again and share the exact contact details so I can complete it?"
}

// pick selects uniformly from choices. The mutex guards the shared rand
// source under concurrent requests.
func (a *Agent) pick(choices []string) string {
	a.mu.Lock()
	n := a.rng.Intn(len(choices))
	a.mu.Unlock()
	return choices[n]
}

// keywordSummary joins up to max sorted, deduplicated keywords.
func keywordSummary(keywords []string, max int) string {
	sorted := dedupe(keywords)
	if len(sorted) == 0 {
		return ""
	}
	sort.Strings(sorted)
	if len(sorted) > max {
		sorted = sorted[:max]
	}
	return strings.Join(sorted, ", ")
}
