package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Domain contains the request-scoped entities exchanged with the analysis backend.

// SingleReview is one review text submitted for authenticity analysis.
type SingleReview string

// Validate rejects reviews that are empty after trimming.
func (r SingleReview) Validate() error {
	if strings.TrimSpace(string(r)) == "" {
		return &ValidationError{Field: "review_text", Reason: "review text is empty"}
	}
	return nil
}

// ReviewBatch is an ordered sequence of reviews submitted together for clarity analysis.
type ReviewBatch []string

// Validate requires a non-empty batch whose every element is non-empty after trimming.
func (b ReviewBatch) Validate() error {
	if len(b) == 0 {
		return &ValidationError{Field: "reviews", Reason: "review batch is empty"}
	}
	for i, r := range b {
		if strings.TrimSpace(r) == "" {
			return &ValidationError{Field: "reviews", Reason: fmt.Sprintf("review %d is empty", i)}
		}
	}
	return nil
}

// AuthenticityResult is the backend's estimate of how likely a single review is genuine.
type AuthenticityResult struct {
	Score     float64 `json:"authenticity_score"`
	Reasoning string  `json:"reasoning"`
}

// ClarityResult is either "no notable clarity issue" or an alert string. The zero
// value is the no-alert variant.
type ClarityResult struct {
	alert string
}

// NoClarityAlert returns the variant meaning the backend found nothing worth flagging.
func NoClarityAlert() ClarityResult { return ClarityResult{} }

// NewClarityAlert returns the alert variant holding alert exactly as given. A
// blank alert collapses to NoClarityAlert.
func NewClarityAlert(alert string) ClarityResult {
	if strings.TrimSpace(alert) == "" {
		return NoClarityAlert()
	}
	return ClarityResult{alert: alert}
}

// Alert returns the alert text and whether one is present.
func (c ClarityResult) Alert() (string, bool) {
	return c.alert, c.alert != ""
}

// HasAlert reports whether the backend flagged a clarity issue.
func (c ClarityResult) HasAlert() bool { return c.alert != "" }

// MarshalJSON renders the variant the same way the backend does: a string or null.
func (c ClarityResult) MarshalJSON() ([]byte, error) {
	var wire struct {
		ClarityAlert *string `json:"clarity_alert"`
	}
	if c.alert != "" {
		wire.ClarityAlert = &c.alert
	}
	return json.Marshal(wire)
}
