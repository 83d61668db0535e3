package scoring

import (
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Confidence labels reported by the metadata extractor.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Metadata is the untrusted payload returned by the metadata extractor.
// Every numeric field is left untyped until it passes through Normalize.
type Metadata struct {
	BudgetInINR           any `mapstructure:"budget_in_inr"`
	EMDInINR              any `mapstructure:"emd_in_inr"`
	TimelineWeeks         any `mapstructure:"timeline_weeks"`
	NoOfDaysForAnalysis   any `mapstructure:"no_of_days_for_analysis"`
	NoOfDaysForSubmission any `mapstructure:"no_of_days_for_submission"`
	TeamSizeRequired      any `mapstructure:"team_size_required"`
	RawConfidence         any `mapstructure:"confidence"`
	RawNotes              any `mapstructure:"notes"`
}

// DecodeMetadata maps a raw payload onto Metadata. A nil or malformed payload
// yields an empty Metadata, never an error.
func DecodeMetadata(payload map[string]any) Metadata {
	var m Metadata
	if len(payload) == 0 {
		return m
	}
	if err := mapstructure.Decode(payload, &m); err != nil {
		return Metadata{}
	}
	return m
}

// Confidence returns the normalized confidence label, defaulting to low.
func (m Metadata) Confidence() string {
	s, _ := m.RawConfidence.(string)
	switch c := strings.ToLower(strings.TrimSpace(s)); c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return c
	default:
		return ConfidenceLow
	}
}

func (m Metadata) Notes() string {
	s, _ := m.RawNotes.(string)
	return strings.TrimSpace(s)
}

// Canonical holds the typed RFP fields stored on the document record.
type Canonical struct {
	Budget        *int64
	TimelineWeeks *int64
	TeamSize      *int64
}

// Attributes are the resolved RFP inputs to the fit scorers. Unknown values are 0.
type Attributes struct {
	Budget        int64    `json:"budget"`
	TimelineWeeks int64    `json:"timeline_weeks"`
	TeamSize      int64    `json:"team_size"`
	Keywords      []string `json:"keywords"`
}

// ResolveAttributes picks one value per attribute: the canonical field when it
// is set and non-zero, otherwise the payload key. The payload's confidence
// label does not affect precedence.
func ResolveAttributes(c Canonical, m Metadata, keywords []string) Attributes {
	return Attributes{
		Budget:        resolve(c.Budget, m.BudgetInINR),
		TimelineWeeks: resolve(c.TimelineWeeks, m.TimelineWeeks),
		TeamSize:      resolve(c.TeamSize, m.TeamSizeRequired),
		Keywords:      NormalizeKeywords(keywords),
	}
}

func resolve(canonical *int64, fallback any) int64 {
	var raw any = fallback
	if canonical != nil && *canonical != 0 {
		raw = *canonical
	}
	return NormalizeOrZero(raw)
}

// NormalizeKeywords returns the sorted, lowercased, trimmed, de-duplicated keywords.
func NormalizeKeywords(keywords []string) []string {
	set := keywordSet(keywords)
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func normalizeKeyword(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}
