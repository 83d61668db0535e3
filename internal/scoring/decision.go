package scoring

import (
	"fmt"
	"math"
)

type Decision string

const (
	DecisionAccept Decision = "ACCEPT"
	DecisionReject Decision = "REJECT"
	DecisionReview Decision = "REVIEW"
)

// Weights are the per-dimension multipliers for the overall score.
type Weights struct {
	Technical float64 `json:"technical"`
	Budget    float64 `json:"budget"`
	Timeline  float64 `json:"timeline"`
	Capacity  float64 `json:"capacity"`
}

// Policy holds the weights and thresholds of the decision rule table.
type Policy struct {
	Weights     Weights `json:"weights"`
	RejectBelow float64 `json:"reject_below"`
	AcceptAt    float64 `json:"accept_at"`
	MinCapacity float64 `json:"min_capacity"`
}

// DefaultPolicy weights budget highest since a budget mismatch is the dominant disqualifier.
func DefaultPolicy() Policy {
	return Policy{
		Weights: Weights{
			Technical: 0.3,
			Budget:    0.4,
			Timeline:  0.2,
			Capacity:  0.1,
		},
		RejectBelow: 60,
		AcceptAt:    80,
		MinCapacity: 40,
	}
}

// Validate checks that the weights sum to 1 and the thresholds are ordered within [0, 100].
func (p Policy) Validate() error {
	w := p.Weights
	if w.Technical < 0 || w.Budget < 0 || w.Timeline < 0 || w.Capacity < 0 {
		return fmt.Errorf("scoring weights must be non-negative: %+v", w)
	}
	if sum := w.Technical + w.Budget + w.Timeline + w.Capacity; math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("scoring weights must sum to 1, got %.4f", sum)
	}
	if p.RejectBelow < 0 || p.RejectBelow > p.AcceptAt || p.AcceptAt > 100 {
		return fmt.Errorf("scoring thresholds must satisfy 0 <= reject_below (%.2f) <= accept_at (%.2f) <= 100",
			p.RejectBelow, p.AcceptAt)
	}
	if p.MinCapacity < 0 || p.MinCapacity > 100 {
		return fmt.Errorf("min_capacity must be within [0, 100], got %.2f", p.MinCapacity)
	}
	return nil
}

// Scores are the four sub-scores of an evaluation.
type Scores struct {
	Technical float64 `json:"technical"`
	Budget    float64 `json:"budget"`
	Timeline  float64 `json:"timeline"`
	Capacity  float64 `json:"capacity"`
}

// Overall returns the weighted overall score rounded to two decimals.
func (p Policy) Overall(s Scores) float64 {
	w := p.Weights
	return round2(s.Technical*w.Technical +
		s.Budget*w.Budget +
		s.Timeline*w.Timeline +
		s.Capacity*w.Capacity)
}

// Decide applies the rule table; the first matching rule wins.
func (p Policy) Decide(s Scores, overall float64) Decision {
	switch {
	case overall < p.RejectBelow || s.Capacity < p.MinCapacity || s.Budget == 0:
		return DecisionReject
	case overall >= p.AcceptAt:
		return DecisionAccept
	default:
		return DecisionReview
	}
}

// Reasoning renders the audit string for an evaluation. It is never parsed.
func Reasoning(s Scores, overall float64, d Decision) string {
	return fmt.Sprintf(
		"Technical fit: %.2f%% | Budget fit: %.2f%% | Timeline fit: %.2f%% | Capacity fit: %.2f%% | Overall: %.2f%% → Decision: %s",
		s.Technical, s.Budget, s.Timeline, s.Capacity, overall, d,
	)
}
