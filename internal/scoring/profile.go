package scoring

import (
	"errors"
	"fmt"
)

// ErrInvalidProfile is returned when a capability profile violates its range invariants.
var ErrInvalidProfile = errors.New("invalid capability profile")

// Profile is the evaluating organization's capability profile as seen by the scorers.
type Profile struct {
	TechKeywords     []string `json:"tech_keywords" mapstructure:"tech_keywords"`
	MinBudget        int64    `json:"min_budget" mapstructure:"min_budget"`
	MaxBudget        int64    `json:"max_budget" mapstructure:"max_budget"`
	MinTimelineWeeks int64    `json:"min_timeline_weeks" mapstructure:"min_timeline_weeks"`
	MaxTimelineWeeks int64    `json:"max_timeline_weeks" mapstructure:"max_timeline_weeks"`
	MaxTeamSize      int64    `json:"max_team_size" mapstructure:"max_team_size"`
}

// Validate reports range violations wrapped in ErrInvalidProfile.
func (p Profile) Validate() error {
	switch {
	case p.MinBudget < 0 || p.MaxBudget < 0:
		return fmt.Errorf("%w: budget bounds must be non-negative", ErrInvalidProfile)
	case p.MinBudget > p.MaxBudget:
		return fmt.Errorf("%w: min_budget %d exceeds max_budget %d", ErrInvalidProfile, p.MinBudget, p.MaxBudget)
	case p.MinTimelineWeeks < 0 || p.MaxTimelineWeeks < 0:
		return fmt.Errorf("%w: timeline bounds must be non-negative", ErrInvalidProfile)
	case p.MinTimelineWeeks > p.MaxTimelineWeeks:
		return fmt.Errorf("%w: min_timeline_weeks %d exceeds max_timeline_weeks %d",
			ErrInvalidProfile, p.MinTimelineWeeks, p.MaxTimelineWeeks)
	case p.MaxTeamSize <= 0:
		return fmt.Errorf("%w: max_team_size must be positive", ErrInvalidProfile)
	}
	return nil
}

// keywordSet lowercases, trims and de-duplicates keywords, dropping blanks.
func keywordSet(keywords []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		k = normalizeKeyword(k)
		if k == "" {
			continue
		}
		set[k] = struct{}{}
	}
	return set
}
