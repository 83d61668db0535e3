package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"alfredoptarigan/rfp-evaluator/internal/logger"
	"alfredoptarigan/rfp-evaluator/internal/scoring"
)

// minExtractableChars is the shortest text worth sending to the model.
const minExtractableChars = 50

// Metadata payload keys.
const (
	keyBudget         = "budget_in_inr"
	keyEMD            = "emd_in_inr"
	keyTimelineWeeks  = "timeline_weeks"
	keyAnalysisDays   = "no_of_days_for_analysis"
	keySubmissionDays = "no_of_days_for_submission"
	keyTeamSize       = "team_size_required"
	keyConfidence     = "confidence"
	keyNotes          = "notes"
)

// textGenerator is the part of GeminiService the extractors need.
type textGenerator interface {
	GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error)
}

// MetadataExtraction is the outcome of a metadata extraction. Payload is the
// raw object as stored on the document; Metadata is its decoded form.
type MetadataExtraction struct {
	Payload  map[string]any
	Metadata scoring.Metadata
}

// Normalized returns the payload value under key as a normalized integer, or
// nil when it is absent or malformed.
func (m MetadataExtraction) Normalized(key string) *int64 {
	n, ok := scoring.Normalize(m.Payload[key])
	if !ok {
		return nil
	}
	return &n
}

type MetadataExtractor interface {
	// Extract never fails: model or parse errors yield the low-confidence payload.
	Extract(ctx context.Context, text string) MetadataExtraction
}

type metadataExtractor struct {
	generator     textGenerator
	promptBuilder *PromptBuilder
	maxRetries    int
	log           *zap.Logger
}

func NewMetadataExtractor(generator textGenerator, maxRetries int, log *zap.Logger) MetadataExtractor {
	return &metadataExtractor{
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
		log:           logger.OrNop(log).Named("metadata"),
	}
}

// Extract implements MetadataExtractor.
func (e *metadataExtractor) Extract(ctx context.Context, text string) MetadataExtraction {
	if e.generator == nil || utf8.RuneCountInString(strings.TrimSpace(text)) < minExtractableChars {
		e.log.Info("metadata extraction skipped", zap.Int("text_length", utf8.RuneCountInString(text)))
		return fallbackExtraction("Not enough text or model not configured.")
	}

	raw, err := e.generator.GenerateTextWithRetry(ctx, e.promptBuilder.BuildMetadataPrompt(text), 0.1, e.maxRetries)
	if err != nil {
		e.log.Warn("metadata generation failed", zap.Error(err))
		return fallbackExtraction(fmt.Sprintf("Model call failed: %v", err))
	}

	payload, err := parseMetadataPayload(raw)
	if err != nil {
		e.log.Warn("failed to parse metadata response",
			zap.Error(err),
			zap.String("response_preview", logger.TruncateForLog(raw, 1000)),
		)
		return fallbackExtraction("Failed to parse JSON from model response.")
	}

	extraction := MetadataExtraction{
		Payload:  payload,
		Metadata: scoring.DecodeMetadata(payload),
	}

	e.log.Info("extracted rfp metadata",
		zap.Any(keyBudget, extraction.Normalized(keyBudget)),
		zap.Any(keyEMD, extraction.Normalized(keyEMD)),
		zap.Any(keyTimelineWeeks, extraction.Normalized(keyTimelineWeeks)),
		zap.Any(keyTeamSize, extraction.Normalized(keyTeamSize)),
		zap.String(keyConfidence, extraction.Metadata.Confidence()),
	)

	return extraction
}

func parseMetadataPayload(raw string) (map[string]any, error) {
	decoder := json.NewDecoder(strings.NewReader(extractJSON(raw)))
	decoder.UseNumber()

	var payload map[string]any
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	if payload == nil {
		return nil, fmt.Errorf("response is not a JSON object")
	}

	if _, ok := payload[keyEMD]; !ok {
		if emd, ok := payload["emd"]; ok {
			payload[keyEMD] = emd
		}
	}

	return payload, nil
}

// fallbackExtraction is the all-null low-confidence payload.
func fallbackExtraction(notes string) MetadataExtraction {
	payload := map[string]any{
		keyBudget:         nil,
		keyEMD:            nil,
		keyTimelineWeeks:  nil,
		keyAnalysisDays:   nil,
		keySubmissionDays: nil,
		keyTeamSize:       nil,
		keyConfidence:     scoring.ConfidenceLow,
		keyNotes:          notes,
	}

	return MetadataExtraction{
		Payload:  payload,
		Metadata: scoring.DecodeMetadata(payload),
	}
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return strings.TrimSpace(text)
}
