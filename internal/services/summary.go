package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	defaultSummaryWords = 350
	minSummaryChars     = 100
)

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type summarizer struct {
	generator     textGenerator
	promptBuilder *PromptBuilder
	maxRetries    int
	words         int
}

func NewSummarizer(generator textGenerator, maxRetries int) Summarizer {
	return &summarizer{
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
		words:         defaultSummaryWords,
	}
}

// Summarize implements Summarizer. Short texts are returned without a model call.
func (s *summarizer) Summarize(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minSummaryChars {
		return "", nil
	}

	summary, err := s.generator.GenerateTextWithRetry(ctx, s.promptBuilder.BuildSummaryPrompt(text, s.words), 0.5, s.maxRetries)
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}

	return strings.TrimSpace(summary), nil
}
