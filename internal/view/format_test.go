package view

import (
	"testing"

	"github.com/Gappu824/aura-ai-hackathon/internal/domain"
	"github.com/Gappu824/aura-ai-hackathon/internal/slots"
)

func TestPercent(t *testing.T) {
	cases := map[float64]string{
		0.87:  "87%",
		0:     "0%",
		1:     "100%",
		0.125: "13%",
		1.7:   "170%",
	}
	for score, want := range cases {
		if got := Percent(score); got != want {
			t.Fatalf("Percent(%v) = %q, want %q", score, got, want)
		}
	}
}

func TestBandBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.2, "red"},
		{0.21, "orange"},
		{0.5, "orange"},
		{0.7, "yellow-green"},
		{0.9, "green"},
		{0.91, "dark-green"},
	}
	for _, tc := range cases {
		if got := Band(tc.score); got != tc.want {
			t.Fatalf("Band(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestTone(t *testing.T) {
	if Tone(0.71) != "high" || Tone(0.7) != "medium" || Tone(0.4) != "low" {
		t.Fatalf("unexpected tone boundaries")
	}
}

func TestStatus(t *testing.T) {
	alert := domain.NewClarityAlert("Multiple reviewers report sizing runs small.")
	none := domain.NoClarityAlert()
	score := domain.AuthenticityResult{Score: 0.12, Reasoning: "generic"}

	cases := []struct {
		name string
		view slots.View
		want string
	}{
		{"idle", slots.View{ID: slots.InputClarity, State: slots.Idle}, ""},
		{"clarity loading", slots.View{ID: slots.OverallClarity, State: slots.Loading}, LabelClarity},
		{"authenticity loading", slots.View{ID: slots.Example("good"), State: slots.Loading}, LabelAnalyzing},
		{"failed", slots.View{ID: slots.InputAuthenticity, State: slots.Failed, Err: "network error"}, "Error: network error"},
		{"alert", slots.View{ID: slots.OverallClarity, State: slots.Succeeded, Clarity: &alert}, "Multiple reviewers report sizing runs small."},
		{"no alert", slots.View{ID: slots.InputClarity, State: slots.Succeeded, Clarity: &none}, LabelNoClarity},
		{"score", slots.View{ID: slots.InputAuthenticity, State: slots.Succeeded, Authenticity: &score}, "12%"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Status(tc.view); got != tc.want {
				t.Fatalf("Status = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNewCard(t *testing.T) {
	score := domain.AuthenticityResult{Score: 0.95, Reasoning: " specific details "}
	c := NewCard(slots.View{ID: slots.Example("good"), State: slots.Succeeded, Authenticity: &score})
	if !c.HasScore || c.Score != "95%" || c.Band != "dark-green" || c.Tone != "high" || c.Reasoning != "specific details" {
		t.Fatalf("unexpected card %#v", c)
	}

	c = NewCard(slots.View{ID: slots.InputAuthenticity, State: slots.Failed, Err: "boom"})
	if !c.Failed || c.HasScore || c.Status != "Error: boom" {
		t.Fatalf("unexpected failed card %#v", c)
	}
}
