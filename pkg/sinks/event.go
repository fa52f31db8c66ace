package sinks

import (
	"time"

	"github.com/Gappu824/aura-ai-hackathon/internal/domain"
	"github.com/google/uuid"
)

// Outcome values carried by events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Operation names carried by events.
const (
	OperationClarity      = "clarity"
	OperationAuthenticity = "authenticity"
)

// Event is the payload published downstream once a slot resolves.
type Event struct {
	ID           string                     `json:"id"`
	Slot         string                     `json:"slot"`
	Operation    string                     `json:"operation"`
	Outcome      string                     `json:"outcome"`
	ErrorKind    string                     `json:"error_kind,omitempty"`
	Error        string                     `json:"error,omitempty"`
	Clarity      *domain.ClarityResult      `json:"clarity,omitempty"`
	Authenticity *domain.AuthenticityResult `json:"authenticity,omitempty"`
	ResolvedAt   time.Time                  `json:"resolved_at"`
}

// ClarityEvent records a successful clarity analysis for slot.
func ClarityEvent(slot string, res domain.ClarityResult) Event {
	return Event{
		ID:         uuid.NewString(),
		Slot:       slot,
		Operation:  OperationClarity,
		Outcome:    OutcomeSuccess,
		Clarity:    &res,
		ResolvedAt: time.Now().UTC(),
	}
}

// AuthenticityEvent records a successful authenticity analysis for slot.
func AuthenticityEvent(slot string, res domain.AuthenticityResult) Event {
	return Event{
		ID:           uuid.NewString(),
		Slot:         slot,
		Operation:    OperationAuthenticity,
		Outcome:      OutcomeSuccess,
		Authenticity: &res,
		ResolvedAt:   time.Now().UTC(),
	}
}

// FailureEvent records a failed operation for slot.
func FailureEvent(slot, operation string, err error) Event {
	evt := Event{
		ID:         uuid.NewString(),
		Slot:       slot,
		Operation:  operation,
		Outcome:    OutcomeFailure,
		ResolvedAt: time.Now().UTC(),
	}
	if err == nil {
		return evt
	}
	evt.Error = err.Error()
	if kind, ok := domain.KindOf(err); ok {
		evt.ErrorKind = kind.String()
	} else if domain.IsValidation(err) {
		evt.ErrorKind = "validation"
	}
	return evt
}

// Attributes returns the routing metadata every transport attaches to the
// message alongside the JSON body.
func (e Event) Attributes() map[string]string {
	attrs := map[string]string{
		"event_id":  e.ID,
		"slot":      e.Slot,
		"operation": e.Operation,
		"outcome":   e.Outcome,
	}
	if e.ErrorKind != "" {
		attrs["error_kind"] = e.ErrorKind
	}
	return attrs
}
