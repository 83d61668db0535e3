package scoring

import "math"

// timelineOverrunPenalty is the number of points lost per week beyond the
// profile's maximum timeline.
const timelineOverrunPenalty = 5.0

// TechnicalFit measures how many of the company's tech keywords appear in the
// document keywords. It is coverage of company skills, not of RFP terms.
func TechnicalFit(docKeywords []string, p Profile) float64 {
	doc := keywordSet(docKeywords)
	company := keywordSet(p.TechKeywords)
	if len(doc) == 0 || len(company) == 0 {
		return 0
	}

	overlap := 0
	for k := range company {
		if _, ok := doc[k]; ok {
			overlap++
		}
	}
	return round2(float64(overlap) / float64(len(company)) * 100)
}

// BudgetFit scores the RFP budget against the profile's budget range.
// Budgets above the range score 0.
func BudgetFit(budget int64, p Profile) float64 {
	if budget <= 0 {
		return 0
	}
	if p.MinBudget <= budget && budget <= p.MaxBudget {
		return 100
	}
	if budget < p.MinBudget && p.MinBudget > 0 {
		return round2(float64(budget) / float64(p.MinBudget) * 100)
	}
	return 0
}

// TimelineFit scores the RFP timeline in weeks. Short timelines ramp up to the
// minimum; long ones lose timelineOverrunPenalty points per extra week.
func TimelineFit(weeks int64, p Profile) float64 {
	if weeks <= 0 {
		return 0
	}
	if p.MinTimelineWeeks <= weeks && weeks <= p.MaxTimelineWeeks {
		return 100
	}
	if weeks < p.MinTimelineWeeks && p.MinTimelineWeeks > 0 {
		return round2(float64(weeks) / float64(p.MinTimelineWeeks) * 100)
	}
	extra := float64(weeks - p.MaxTimelineWeeks)
	return round2(math.Max(0, 100-timelineOverrunPenalty*extra))
}

// CapacityFit scores the required team size against the profile's maximum.
func CapacityFit(teamSize int64, p Profile) float64 {
	if teamSize <= 0 {
		return 0
	}
	if teamSize <= p.MaxTeamSize {
		return 100
	}
	if p.MaxTeamSize <= 0 {
		return 0
	}
	return round2(float64(p.MaxTeamSize) / float64(teamSize) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
