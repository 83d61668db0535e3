package scoring

import (
	"reflect"
	"testing"
)

func int64Ptr(v int64) *int64 { return &v }

func TestResolveAttributesPrecedence(t *testing.T) {
	t.Parallel()

	payload := DecodeMetadata(map[string]any{
		"budget_in_inr":      "5 lakh",
		"timeline_weeks":     "10 weeks",
		"team_size_required": 6.0,
		"confidence":         "high",
	})

	tests := []struct {
		name      string
		canonical Canonical
		want      Attributes
	}{
		{
			name: "canonical wins when non-zero",
			canonical: Canonical{
				Budget:        int64Ptr(800000),
				TimelineWeeks: int64Ptr(8),
				TeamSize:      int64Ptr(4),
			},
			want: Attributes{Budget: 800000, TimelineWeeks: 8, TeamSize: 4, Keywords: []string{}},
		},
		{
			name:      "nil canonical falls back to payload",
			canonical: Canonical{},
			want:      Attributes{Budget: 500000, TimelineWeeks: 10, TeamSize: 6, Keywords: []string{}},
		},
		{
			name: "zero canonical falls back to payload",
			canonical: Canonical{
				Budget:        int64Ptr(0),
				TimelineWeeks: int64Ptr(0),
				TeamSize:      int64Ptr(3),
			},
			want: Attributes{Budget: 500000, TimelineWeeks: 10, TeamSize: 3, Keywords: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ResolveAttributes(tt.canonical, payload, nil)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestResolveAttributesToleratesMissingPayload(t *testing.T) {
	t.Parallel()

	got := ResolveAttributes(Canonical{}, DecodeMetadata(nil), []string{" Go ", "go", "", "Postgres"})
	want := Attributes{Keywords: []string{"go", "postgres"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestResolveAttributesMalformedPayload(t *testing.T) {
	t.Parallel()

	payload := DecodeMetadata(map[string]any{
		"budget_in_inr":      map[string]any{"amount": "5 lakh"},
		"timeline_weeks":     "unknown",
		"team_size_required": true,
	})

	got := ResolveAttributes(Canonical{}, payload, nil)
	if got.Budget != 0 || got.TimelineWeeks != 0 || got.TeamSize != 0 {
		t.Fatalf("expected unknown values to resolve to 0, got %+v", got)
	}
}

func TestMetadataConfidenceAndNotes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload map[string]any
		want    string
	}{
		{name: "high", payload: map[string]any{"confidence": " HIGH "}, want: ConfidenceHigh},
		{name: "medium", payload: map[string]any{"confidence": "medium"}, want: ConfidenceMedium},
		{name: "unrecognized label", payload: map[string]any{"confidence": "very sure"}, want: ConfidenceLow},
		{name: "non string label", payload: map[string]any{"confidence": 0.9}, want: ConfidenceLow},
		{name: "missing label", payload: nil, want: ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DecodeMetadata(tt.payload).Confidence(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}

	notes := DecodeMetadata(map[string]any{"notes": "  budget stated in section 4  "}).Notes()
	if notes != "budget stated in section 4" {
		t.Fatalf("unexpected notes: %q", notes)
	}
}
