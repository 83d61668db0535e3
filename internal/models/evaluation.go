package models

import (
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/rfp-evaluator/internal/scoring"
)

// RFPEvaluation is the scoring record of a document; one per document.
type RFPEvaluation struct {
	ID                uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DocumentID        uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"document_id"`
	TechnicalFitScore float64          `gorm:"not null;default:0" json:"technical_fit_score"`
	BudgetFitScore    float64          `gorm:"not null;default:0" json:"budget_fit_score"`
	TimelineFitScore  float64          `gorm:"not null;default:0" json:"timeline_fit_score"`
	CapacityFitScore  float64          `gorm:"not null;default:0" json:"capacity_fit_score"`
	OverallFitScore   float64          `gorm:"not null;default:0" json:"overall_fit_score"`
	Decision          scoring.Decision `gorm:"type:varchar(10);not null;default:'REVIEW'" json:"decision"`
	Reasoning         string           `gorm:"type:text" json:"reasoning"`
	CreatedAt         time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (RFPEvaluation) TableName() string {
	return "rfp_evaluations"
}

// NewRFPEvaluation builds the record for documentID from a scoring result.
func NewRFPEvaluation(documentID uuid.UUID, r scoring.Result) *RFPEvaluation {
	return &RFPEvaluation{
		DocumentID:        documentID,
		TechnicalFitScore: r.Technical,
		BudgetFitScore:    r.Budget,
		TimelineFitScore:  r.Timeline,
		CapacityFitScore:  r.Capacity,
		OverallFitScore:   r.Overall,
		Decision:          r.Decision,
		Reasoning:         r.Reasoning,
	}
}
