// Package view turns slot state into the strings and classes the front ends show.
package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/Gappu824/aura-ai-hackathon/internal/slots"
)

const (
	LabelAnalyzing    = "Analyzing..."
	LabelClarity      = "Loading Clarity Insights..."
	LabelNoClarity    = "No notable clarity issue detected."
	LabelEmptyReview  = "Please enter a review for analysis."
	errorStatusPrefix = "Error: "
)

// Percent renders a score as a whole percentage, e.g. 0.87 -> "87%".
// Scores outside [0, 1] are shown as received.
func Percent(score float64) string {
	return fmt.Sprintf("%d%%", int64(math.Round(score*100)))
}

// Band is the color class for an authenticity score.
func Band(score float64) string {
	switch {
	case score <= 0.2:
		return "red"
	case score <= 0.5:
		return "orange"
	case score <= 0.7:
		return "yellow-green"
	case score <= 0.9:
		return "green"
	default:
		return "dark-green"
	}
}

// Tone is the coarse level used in the compact example report.
func Tone(score float64) string {
	switch {
	case score > 0.7:
		return "high"
	case score > 0.4:
		return "medium"
	default:
		return "low"
	}
}

// IsClaritySlot reports whether id holds a clarity analysis.
func IsClaritySlot(id slots.ID) bool {
	return id == slots.OverallClarity || id == slots.InputClarity
}

// Status is the single line of text shown for a slot.
func Status(v slots.View) string {
	switch v.State {
	case slots.Loading:
		if IsClaritySlot(v.ID) {
			return LabelClarity
		}
		return LabelAnalyzing
	case slots.Failed:
		return errorStatusPrefix + v.Err
	case slots.Succeeded:
		if v.Clarity != nil {
			if alert, ok := v.Clarity.Alert(); ok {
				return alert
			}
			return LabelNoClarity
		}
		if v.Authenticity != nil {
			return Percent(v.Authenticity.Score)
		}
	}
	return ""
}

// Card is the render model of one slot.
type Card struct {
	ID        string
	State     string
	Status    string
	Loading   bool
	Failed    bool
	HasAlert  bool
	HasScore  bool
	Score     string
	Band      string
	Tone      string
	Reasoning string
}

// NewCard builds the render model for v.
func NewCard(v slots.View) Card {
	c := Card{
		ID:      string(v.ID),
		State:   string(v.State),
		Status:  Status(v),
		Loading: v.State == slots.Loading,
		Failed:  v.State == slots.Failed,
	}
	if v.State != slots.Succeeded {
		return c
	}
	if v.Clarity != nil {
		c.HasAlert = v.Clarity.HasAlert()
	}
	if a := v.Authenticity; a != nil {
		c.HasScore = true
		c.Score = Percent(a.Score)
		c.Band = Band(a.Score)
		c.Tone = Tone(a.Score)
		c.Reasoning = strings.TrimSpace(a.Reasoning)
	}
	return c
}
