package scoring

import (
	"strings"
	"testing"
)

func TestPolicyDecide(t *testing.T) {
	t.Parallel()

	policy := DefaultPolicy()

	tests := []struct {
		name         string
		scores       Scores
		wantOverall  float64
		wantDecision Decision
	}{
		{
			name:         "strong fit accepted",
			scores:       Scores{Technical: 90, Budget: 100, Timeline: 100, Capacity: 100},
			wantOverall:  97,
			wantDecision: DecisionAccept,
		},
		{
			name:         "all zero rejected",
			scores:       Scores{},
			wantOverall:  0,
			wantDecision: DecisionReject,
		},
		{
			name:         "middling fit needs review",
			scores:       Scores{Technical: 70, Budget: 70, Timeline: 70, Capacity: 70},
			wantOverall:  70,
			wantDecision: DecisionReview,
		},
		{
			name:         "zero budget rejects despite high overall",
			scores:       Scores{Technical: 100, Budget: 0, Timeline: 100, Capacity: 100},
			wantOverall:  60,
			wantDecision: DecisionReject,
		},
		{
			name:         "low capacity rejects",
			scores:       Scores{Technical: 100, Budget: 100, Timeline: 100, Capacity: 39.99},
			wantOverall:  94,
			wantDecision: DecisionReject,
		},
		{
			name:         "exactly at accept threshold",
			scores:       Scores{Technical: 50, Budget: 100, Timeline: 75, Capacity: 100},
			wantOverall:  80,
			wantDecision: DecisionAccept,
		},
		{
			name:         "just under reject threshold",
			scores:       Scores{Technical: 0, Budget: 100, Timeline: 0, Capacity: 100},
			wantOverall:  50,
			wantDecision: DecisionReject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			overall := policy.Overall(tt.scores)
			if overall != tt.wantOverall {
				t.Fatalf("expected overall %v, got %v", tt.wantOverall, overall)
			}
			if got := policy.Decide(tt.scores, overall); got != tt.wantDecision {
				t.Fatalf("expected decision %s, got %s", tt.wantDecision, got)
			}
		})
	}
}

func TestPolicyValidate(t *testing.T) {
	t.Parallel()

	if err := DefaultPolicy().Validate(); err != nil {
		t.Fatalf("expected default policy to be valid, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(p *Policy)
	}{
		{name: "weights do not sum to one", mutate: func(p *Policy) { p.Weights.Budget = 0.5 }},
		{name: "negative weight", mutate: func(p *Policy) { p.Weights.Technical = -0.1; p.Weights.Budget = 0.8 }},
		{name: "reject above accept", mutate: func(p *Policy) { p.RejectBelow = 90 }},
		{name: "accept above hundred", mutate: func(p *Policy) { p.AcceptAt = 120 }},
		{name: "min capacity out of range", mutate: func(p *Policy) { p.MinCapacity = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := DefaultPolicy()
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestReasoningEmbedsScores(t *testing.T) {
	t.Parallel()

	got := Reasoning(Scores{Technical: 50, Budget: 100, Timeline: 90, Capacity: 100}, 85, DecisionAccept)
	want := "Technical fit: 50.00% | Budget fit: 100.00% | Timeline fit: 90.00% | Capacity fit: 100.00% | Overall: 85.00% → Decision: ACCEPT"
	if got != want {
		t.Fatalf("unexpected reasoning:\n got: %s\nwant: %s", got, want)
	}
	if !strings.Contains(got, string(DecisionAccept)) {
		t.Fatalf("expected decision in reasoning")
	}
}
