package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"alfredoptarigan/rfp-evaluator/internal/repositories"
)

func TestKeywordExtractor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response string
		topN     int
		want     []repositories.KeywordScore
		wantErr  bool
	}{
		{
			name: "normalizes, deduplicates and sorts",
			response: "```json\n" + `{"keywords": [
				{"keyword": "Cloud  Hosting", "relevance": 0.4},
				{"keyword": "Python", "relevance": 0.9},
				{"keyword": "python", "relevance": 0.8},
				{"keyword": " ", "relevance": 0.99},
				{"keyword": "GIS", "relevance": 1.7}
			]}` + "\n```",
			topN: 10,
			want: []repositories.KeywordScore{
				{Keyword: "gis", Relevance: 1},
				{Keyword: "python", Relevance: 0.9},
				{Keyword: "cloud hosting", Relevance: 0.4},
			},
		},
		{
			name:     "caps at topN",
			response: `{"keywords": [{"keyword": "a", "relevance": 0.1}, {"keyword": "b", "relevance": 0.2}]}`,
			topN:     1,
			want:     []repositories.KeywordScore{{Keyword: "b", Relevance: 0.2}},
		},
		{
			name:     "unparseable response",
			response: "no keywords today",
			topN:     5,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			extractor := NewKeywordExtractor(&stubGenerator{responses: []string{tt.response}}, 1, nil)
			got, err := extractor.Extract(context.Background(), longRFPText, tt.topN)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestKeywordExtractorShortText(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{err: errors.New("must not be called")}
	got, err := NewKeywordExtractor(generator, 1, nil).Extract(context.Background(), "tiny", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
	if generator.calls() != 0 {
		t.Fatalf("expected no model call for short text")
	}
}

func TestSummarizer(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{responses: []string{"  A portal modernization project.  "}}
	summary, err := NewSummarizer(generator, 1).Summarize(context.Background(), longRFPText+longRFPText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != "A portal modernization project." {
		t.Fatalf("unexpected summary %q", summary)
	}

	summary, err = NewSummarizer(generator, 1).Summarize(context.Background(), "short")
	if err != nil || summary != "" {
		t.Fatalf("expected empty summary for short text, got %q, %v", summary, err)
	}
	if generator.calls() != 1 {
		t.Fatalf("expected one model call, got %d", generator.calls())
	}

	_, err = NewSummarizer(&stubGenerator{err: errors.New("boom")}, 1).Summarize(context.Background(), longRFPText+longRFPText)
	if err == nil {
		t.Fatalf("expected error from failing generator")
	}
}
