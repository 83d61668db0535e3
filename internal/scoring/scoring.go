// Package scoring converts resolved RFP attributes and a capability profile
// into fit scores and an accept/reject/review decision. Everything here is
// pure: no I/O and no shared state, so evaluations may run concurrently.
package scoring

// Result is the full outcome of scoring one RFP.
type Result struct {
	Scores
	Overall   float64  `json:"overall"`
	Decision  Decision `json:"decision"`
	Reasoning string   `json:"reasoning"`
}

// Evaluate scores attrs against the profile under the given policy.
func Evaluate(attrs Attributes, profile Profile, policy Policy) Result {
	scores := Scores{
		Technical: TechnicalFit(attrs.Keywords, profile),
		Budget:    BudgetFit(attrs.Budget, profile),
		Timeline:  TimelineFit(attrs.TimelineWeeks, profile),
		Capacity:  CapacityFit(attrs.TeamSize, profile),
	}

	overall := policy.Overall(scores)
	decision := policy.Decide(scores, overall)

	return Result{
		Scores:    scores,
		Overall:   overall,
		Decision:  decision,
		Reasoning: Reasoning(scores, overall, decision),
	}
}
