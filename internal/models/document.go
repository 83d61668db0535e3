package models

import (
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/rfp-evaluator/internal/scoring"
)

type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "PENDING"
	DocumentAccepted DocumentStatus = "ACCEPTED"
	DocumentRejected DocumentStatus = "REJECTED"
	DocumentReview   DocumentStatus = "REVIEW"
)

// StatusForDecision maps an evaluation decision onto the document workflow status.
func StatusForDecision(d scoring.Decision) DocumentStatus {
	switch d {
	case scoring.DecisionAccept:
		return DocumentAccepted
	case scoring.DecisionReject:
		return DocumentRejected
	default:
		return DocumentReview
	}
}

type Document struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename         string         `gorm:"type:text" json:"filename"`
	OriginalFileName string         `gorm:"type:text" json:"original_filename"`
	FileType         string         `gorm:"type:varchar(10)" json:"file_type"`
	FilePath         string         `gorm:"type:text" json:"file_path"`
	ContentPreview   string         `gorm:"type:text" json:"content_preview"`
	Summary          string         `gorm:"type:text" json:"summary"`
	Processed        bool           `gorm:"not null;default:false;index" json:"processed"`
	Status           DocumentStatus `gorm:"type:varchar(10);not null;default:'PENDING';index" json:"status"`

	RFPBudget             *int64 `gorm:"column:rfp_budget" json:"rfp_budget"`
	RFPEMD                *int64 `gorm:"column:rfp_emd" json:"rfp_emd"`
	RFPTimelineWeeks      *int64 `gorm:"column:rfp_timeline_weeks" json:"rfp_timeline_weeks"`
	NoOfDaysForAnalysis   *int64 `json:"no_of_days_for_analysis"`
	NoOfDaysForSubmission *int64 `json:"no_of_days_for_submission"`
	RFPTeamSizeRequired   *int64 `gorm:"column:rfp_team_size_required" json:"rfp_team_size_required"`

	RFPMetadata          JSONMap `gorm:"column:rfp_metadata;type:jsonb" json:"rfp_metadata,omitempty"`
	ExtractionConfidence *string `gorm:"type:varchar(10)" json:"extraction_confidence,omitempty"`
	ExtractionNotes      *string `gorm:"type:text" json:"extraction_notes,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Relations
	Keywords   []DocumentKeyword `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"keywords,omitempty"`
	Evaluation *RFPEvaluation    `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"evaluation,omitempty"`
}

func (d *Document) TableName() string {
	return "documents"
}

// KeywordStrings returns the plain keyword texts attached to the document.
func (d *Document) KeywordStrings() []string {
	out := make([]string, 0, len(d.Keywords))
	for _, dk := range d.Keywords {
		if dk.Keyword.Keyword != "" {
			out = append(out, dk.Keyword.Keyword)
		}
	}
	return out
}

// Canonical returns the typed RFP fields used as first choice during attribute resolution.
func (d *Document) Canonical() scoring.Canonical {
	return scoring.Canonical{
		Budget:        d.RFPBudget,
		TimelineWeeks: d.RFPTimelineWeeks,
		TeamSize:      d.RFPTeamSizeRequired,
	}
}
