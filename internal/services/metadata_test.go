package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"alfredoptarigan/rfp-evaluator/internal/scoring"
)

var longRFPText = strings.Repeat("The department invites proposals for a citizen services portal. ", 4)

func TestMetadataExtractorParsesResponses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		response       string
		wantBudget     *int64
		wantEMD        *int64
		wantTeam       *int64
		wantConfidence string
	}{
		{
			name: "plain json",
			response: `{"budget_in_inr": 800000, "emd_in_inr": null, "timeline_weeks": 12,
				"team_size_required": 6, "confidence": "high", "notes": "explicit"}`,
			wantBudget:     int64Ptr(800000),
			wantTeam:       int64Ptr(6),
			wantConfidence: scoring.ConfidenceHigh,
		},
		{
			name: "fenced json with prose and strings",
			response: "Here you go:\n```json\n" +
				`{"budget_in_inr": "₹1.5 crore", "emd": "2 lakh", "team_size_required": "about 8 people", "confidence": "Medium"}` +
				"\n```",
			wantBudget:     int64Ptr(15000000),
			wantEMD:        int64Ptr(200000),
			wantTeam:       int64Ptr(8),
			wantConfidence: scoring.ConfidenceMedium,
		},
		{
			name:           "exponent numbers",
			response:       `{"budget_in_inr": 8e5, "emd_in_inr": 1.5E4, "team_size_required": 6.0, "confidence": "high"}`,
			wantBudget:     int64Ptr(800000),
			wantEMD:        int64Ptr(15000),
			wantTeam:       int64Ptr(6),
			wantConfidence: scoring.ConfidenceHigh,
		},
		{
			name:           "unknown confidence label",
			response:       `{"budget_in_inr": "TBD", "confidence": "certain"}`,
			wantConfidence: scoring.ConfidenceLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			extractor := NewMetadataExtractor(&stubGenerator{responses: []string{tt.response}}, 1, nil)
			got := extractor.Extract(context.Background(), longRFPText)

			assertInt64Ptr(t, "budget", tt.wantBudget, got.Normalized(keyBudget))
			assertInt64Ptr(t, "emd", tt.wantEMD, got.Normalized(keyEMD))
			assertInt64Ptr(t, "team size", tt.wantTeam, got.Normalized(keyTeamSize))
			if c := got.Metadata.Confidence(); c != tt.wantConfidence {
				t.Fatalf("expected confidence %q, got %q", tt.wantConfidence, c)
			}
		})
	}
}

func TestMetadataExtractorFallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		generator *stubGenerator
		text      string
		wantCalls int
		wantNotes string
	}{
		{
			name:      "short text skips the model",
			generator: &stubGenerator{responses: []string{`{"budget_in_inr": 1}`}},
			text:      "too short",
			wantCalls: 0,
			wantNotes: "Not enough text or model not configured.",
		},
		{
			name:      "garbage response",
			generator: &stubGenerator{responses: []string{"I could not find anything useful."}},
			text:      longRFPText,
			wantCalls: 1,
			wantNotes: "Failed to parse JSON from model response.",
		},
		{
			name:      "json array instead of object",
			generator: &stubGenerator{responses: []string{`[1, 2, 3]`}},
			text:      longRFPText,
			wantCalls: 1,
			wantNotes: "Failed to parse JSON from model response.",
		},
		{
			name:      "model error",
			generator: &stubGenerator{err: errors.New("quota exceeded")},
			text:      longRFPText,
			wantCalls: 1,
			wantNotes: "Model call failed: quota exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NewMetadataExtractor(tt.generator, 1, nil).Extract(context.Background(), tt.text)

			if calls := tt.generator.calls(); calls != tt.wantCalls {
				t.Fatalf("expected %d model calls, got %d", tt.wantCalls, calls)
			}
			if got.Metadata.Confidence() != scoring.ConfidenceLow {
				t.Fatalf("expected low confidence, got %q", got.Metadata.Confidence())
			}
			if got.Metadata.Notes() != tt.wantNotes {
				t.Fatalf("expected notes %q, got %q", tt.wantNotes, got.Metadata.Notes())
			}
			for _, key := range []string{keyBudget, keyEMD, keyTimelineWeeks, keyAnalysisDays, keySubmissionDays, keyTeamSize} {
				if v, ok := got.Payload[key]; !ok || v != nil {
					t.Fatalf("expected %s to be present and null, got %v", key, v)
				}
			}
		})
	}
}

func TestMetadataPromptTruncatesText(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{responses: []string{`{}`}}
	NewMetadataExtractor(generator, 1, nil).Extract(context.Background(), strings.Repeat("a", 20000)+"TAIL")

	if strings.Contains(generator.prompts[0], "TAIL") {
		t.Fatalf("expected prompt text to be truncated")
	}
}

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "object in fence", input: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "object in prose", input: "Result: {\"a\": {\"b\": 2}} done", want: `{"a": {"b": 2}}`},
		{name: "array", input: "[1,2]", want: "[1,2]"},
		{name: "no json", input: "  nothing here ", want: "nothing here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := extractJSON(tt.input); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func assertInt64Ptr(t *testing.T, field string, want, got *int64) {
	t.Helper()

	switch {
	case want == nil && got == nil:
	case want == nil || got == nil:
		t.Fatalf("%s: expected %v, got %v", field, want, got)
	case *want != *got:
		t.Fatalf("%s: expected %d, got %d", field, *want, *got)
	}
}
