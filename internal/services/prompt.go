package services

import (
	"fmt"
)

// maxPromptTextChars caps the document text embedded into a prompt.
const maxPromptTextChars = 15000

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildKeywordPrompt asks for the topN key phrases of an RFP with relevance scores.
func (pb *PromptBuilder) BuildKeywordPrompt(text string, topN int) string {
	return fmt.Sprintf(`You extract key phrases from RFP (Request for Proposal) documents.

Return the %d most relevant one or two word key phrases of the document below, covering
technologies, domains and deliverables. Prefer diverse phrases over near duplicates.

Return your response in the following JSON format:
{
  "keywords": [
    {"keyword": "<lowercase phrase>", "relevance": <decimal 0-1>}
  ]
}

Do NOT include any extra text outside the JSON.

DOCUMENT:
%s`, topN, truncateRunes(text, maxPromptTextChars))
}

// BuildSummaryPrompt asks for a professional summary of roughly the given word count.
func (pb *PromptBuilder) BuildSummaryPrompt(text string, words int) string {
	return fmt.Sprintf(`Create a detailed, professional summary (~%d words) of this document.
Focus on main objectives, key methods, important results, and conclusions.

Document:
%s

Summary:`, words, truncateRunes(text, maxPromptTextChars))
}

// BuildMetadataPrompt asks for the structured commercial fields of an RFP.
func (pb *PromptBuilder) BuildMetadataPrompt(text string) string {
	return fmt.Sprintf(`You are an assistant that extracts structured information from RFP (Request for Proposal) documents.

Read the following RFP text and extract:
- project budget (convert to a single integer in INR, e.g. 800000 for ₹8,00,000),
- earnest money deposit (EMD) if mentioned (integer in INR, or null if not mentioned),
- overall project timeline in weeks,
- number of days for analysis of the project timeline,
- number of days for submission of the detailed project,
- approximate team size required.

If something is not explicitly mentioned, make your best reasonable guess based on the context,
and mark confidence as "low", "medium", or "high".

RESPOND WITH JSON ONLY in this exact format:
{
  "budget_in_inr": <integer or null>,
  "emd_in_inr": <integer or null>,
  "timeline_weeks": <integer or null>,
  "no_of_days_for_analysis": <integer or null>,
  "no_of_days_for_submission": <integer or null>,
  "team_size_required": <integer or null>,
  "confidence": "<high|medium|low>",
  "notes": "<short explanation>"
}

Do NOT include any extra text outside the JSON.

RFP TEXT:
%s`, truncateRunes(text, maxPromptTextChars))
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
