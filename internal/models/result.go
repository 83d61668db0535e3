package models

import "time"

type KeywordResponse struct {
	Keyword        string  `json:"keyword"`
	RelevanceScore float64 `json:"relevance_score"`
}

type EvaluationData struct {
	TechnicalFitScore float64 `json:"technical_fit_score"`
	BudgetFitScore    float64 `json:"budget_fit_score"`
	TimelineFitScore  float64 `json:"timeline_fit_score"`
	CapacityFitScore  float64 `json:"capacity_fit_score"`
	OverallFitScore   float64 `json:"overall_fit_score"`
	Decision          string  `json:"decision"`
	Reasoning         string  `json:"reasoning"`
}

type ExtractedMetadata struct {
	BudgetInINR           *int64 `json:"budget_in_inr"`
	EMDInINR              *int64 `json:"emd_in_inr"`
	TimelineWeeks         *int64 `json:"timeline_weeks"`
	NoOfDaysForAnalysis   *int64 `json:"no_of_days_for_analysis"`
	NoOfDaysForSubmission *int64 `json:"no_of_days_for_submission"`
	TeamSizeRequired      *int64 `json:"team_size_required"`
	Confidence            string `json:"extraction_confidence"`
	Notes                 string `json:"extraction_notes"`
}

type DocumentResponse struct {
	ID           string             `json:"id"`
	Filename     string             `json:"filename"`
	FileType     string             `json:"file_type"`
	UploadDate   time.Time          `json:"upload_date"`
	Processed    bool               `json:"processed"`
	Status       string             `json:"status"`
	Summary      string             `json:"summary"`
	Keywords     []KeywordResponse  `json:"keywords"`
	KeywordCount int                `json:"keyword_count"`
	Evaluation   *EvaluationData    `json:"evaluation,omitempty"`
	RFPMetadata  *ExtractedMetadata `json:"rfp_metadata,omitempty"`
}

type SimilarDocumentResponse struct {
	ID       string  `json:"id"`
	Filename string  `json:"filename"`
	Status   string  `json:"status"`
	Score    float32 `json:"score"`
	Excerpt  string  `json:"excerpt"`
}

// NewEvaluationData converts a persisted evaluation into its API shape.
func NewEvaluationData(e *RFPEvaluation) *EvaluationData {
	if e == nil {
		return nil
	}
	return &EvaluationData{
		TechnicalFitScore: e.TechnicalFitScore,
		BudgetFitScore:    e.BudgetFitScore,
		TimelineFitScore:  e.TimelineFitScore,
		CapacityFitScore:  e.CapacityFitScore,
		OverallFitScore:   e.OverallFitScore,
		Decision:          string(e.Decision),
		Reasoning:         e.Reasoning,
	}
}

// NewDocumentResponse converts a document with its preloaded relations into its API shape.
func NewDocumentResponse(d *Document) DocumentResponse {
	keywords := make([]KeywordResponse, 0, len(d.Keywords))
	for _, dk := range d.Keywords {
		keywords = append(keywords, KeywordResponse{
			Keyword:        dk.Keyword.Keyword,
			RelevanceScore: dk.RelevanceScore,
		})
	}

	return DocumentResponse{
		ID:           d.ID.String(),
		Filename:     d.OriginalFileName,
		FileType:     d.FileType,
		UploadDate:   d.CreatedAt,
		Processed:    d.Processed,
		Status:       string(d.Status),
		Summary:      d.Summary,
		Keywords:     keywords,
		KeywordCount: len(keywords),
		Evaluation:   NewEvaluationData(d.Evaluation),
		RFPMetadata:  NewExtractedMetadata(d),
	}
}

// NewExtractedMetadata reports the normalized metadata stored on the document.
func NewExtractedMetadata(d *Document) *ExtractedMetadata {
	m := &ExtractedMetadata{
		BudgetInINR:           d.RFPBudget,
		EMDInINR:              d.RFPEMD,
		TimelineWeeks:         d.RFPTimelineWeeks,
		NoOfDaysForAnalysis:   d.NoOfDaysForAnalysis,
		NoOfDaysForSubmission: d.NoOfDaysForSubmission,
		TeamSizeRequired:      d.RFPTeamSizeRequired,
	}
	if d.ExtractionConfidence != nil {
		m.Confidence = *d.ExtractionConfidence
	}
	if d.ExtractionNotes != nil {
		m.Notes = *d.ExtractionNotes
	}
	return m
}
