package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"alfredoptarigan/rfp-evaluator/internal/logger"
	"alfredoptarigan/rfp-evaluator/internal/repositories"
)

const defaultKeywordCount = 15

type KeywordExtractor interface {
	Extract(ctx context.Context, text string, topN int) ([]repositories.KeywordScore, error)
}

type keywordExtractor struct {
	generator     textGenerator
	promptBuilder *PromptBuilder
	maxRetries    int
	log           *zap.Logger
}

func NewKeywordExtractor(generator textGenerator, maxRetries int, log *zap.Logger) KeywordExtractor {
	return &keywordExtractor{
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
		log:           logger.OrNop(log).Named("keywords"),
	}
}

type keywordResponse struct {
	Keywords []struct {
		Keyword   string  `json:"keyword"`
		Relevance float64 `json:"relevance"`
	} `json:"keywords"`
}

// Extract implements KeywordExtractor. Keywords are lowercased, deduplicated
// and ordered by relevance, highest first.
func (k *keywordExtractor) Extract(ctx context.Context, text string, topN int) ([]repositories.KeywordScore, error) {
	if topN <= 0 {
		topN = defaultKeywordCount
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minExtractableChars {
		return []repositories.KeywordScore{}, nil
	}

	raw, err := k.generator.GenerateTextWithRetry(ctx, k.promptBuilder.BuildKeywordPrompt(text, topN), 0.2, k.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate keywords: %w", err)
	}

	var resp keywordResponse
	if err := json.Unmarshal([]byte(extractJSON(raw)), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse keyword response: %w", err)
	}

	seen := make(map[string]struct{}, len(resp.Keywords))
	keywords := make([]repositories.KeywordScore, 0, len(resp.Keywords))
	for _, kw := range resp.Keywords {
		phrase := strings.Join(strings.Fields(strings.ToLower(kw.Keyword)), " ")
		if phrase == "" {
			continue
		}
		if _, dup := seen[phrase]; dup {
			continue
		}
		seen[phrase] = struct{}{}

		keywords = append(keywords, repositories.KeywordScore{
			Keyword:   phrase,
			Relevance: clampRelevance(kw.Relevance),
		})
	}

	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Relevance > keywords[j].Relevance
	})
	if len(keywords) > topN {
		keywords = keywords[:topN]
	}

	k.log.Debug("extracted keywords", zap.Int("count", len(keywords)))

	return keywords, nil
}

func clampRelevance(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
