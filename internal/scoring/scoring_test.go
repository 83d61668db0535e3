package scoring

import (
	"reflect"
	"testing"
)

func testProfile() Profile {
	return Profile{
		TechKeywords:     []string{"python", "react"},
		MinBudget:        500000,
		MaxBudget:        2000000,
		MinTimelineWeeks: 4,
		MaxTimelineWeeks: 12,
		MaxTeamSize:      10,
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	attrs := Attributes{
		Budget:        800000,
		TimelineWeeks: 14,
		TeamSize:      5,
		Keywords:      []string{"python", "django"},
	}

	got := Evaluate(attrs, testProfile(), DefaultPolicy())

	want := Result{
		Scores:   Scores{Technical: 50, Budget: 100, Timeline: 90, Capacity: 100},
		Overall:  83,
		Decision: DecisionAccept,
		Reasoning: "Technical fit: 50.00% | Budget fit: 100.00% | Timeline fit: 90.00% | " +
			"Capacity fit: 100.00% | Overall: 83.00% → Decision: ACCEPT",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestEvaluateUnknownAttributesReject(t *testing.T) {
	t.Parallel()

	got := Evaluate(Attributes{}, testProfile(), DefaultPolicy())
	if got.Decision != DecisionReject {
		t.Fatalf("expected REJECT, got %s", got.Decision)
	}
	if got.Overall != 0 {
		t.Fatalf("expected overall 0, got %v", got.Overall)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	t.Parallel()

	attrs := Attributes{Budget: 300000, TimelineWeeks: 3, TeamSize: 15, Keywords: []string{"react"}}
	first := Evaluate(attrs, testProfile(), DefaultPolicy())
	second := Evaluate(attrs, testProfile(), DefaultPolicy())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestProfileValidate(t *testing.T) {
	t.Parallel()

	if err := testProfile().Validate(); err != nil {
		t.Fatalf("expected valid profile, got %v", err)
	}

	tests := []struct {
		name    string
		profile Profile
	}{
		{name: "budget range inverted", profile: Profile{MinBudget: 10, MaxBudget: 5, MaxTeamSize: 1}},
		{name: "timeline range inverted", profile: Profile{MinTimelineWeeks: 10, MaxTimelineWeeks: 5, MaxTeamSize: 1}},
		{name: "zero team size", profile: Profile{}},
		{name: "negative budget", profile: Profile{MinBudget: -1, MaxTeamSize: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.profile.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
