package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/rfp-evaluator/internal/models"
)

type EvaluationRepository interface {
	Upsert(eval *models.RFPEvaluation) (*models.RFPEvaluation, error)
	FindByDocumentID(documentID uuid.UUID) (*models.RFPEvaluation, error)
}

// evaluationScoreColumns are overwritten on re-evaluation; id and created_at are kept.
var evaluationScoreColumns = []string{
	"technical_fit_score",
	"budget_fit_score",
	"timeline_fit_score",
	"capacity_fit_score",
	"overall_fit_score",
	"decision",
	"reasoning",
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

// Upsert implements EvaluationRepository. The row is keyed by document_id and
// the stored row is returned.
func (r *evaluationRepository) Upsert(eval *models.RFPEvaluation) (*models.RFPEvaluation, error) {
	if eval.ID == uuid.Nil {
		eval.ID = uuid.New()
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "document_id"}},
		DoUpdates: clause.AssignmentColumns(evaluationScoreColumns),
	}).Create(eval).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert evaluation: %w", err)
	}

	return r.FindByDocumentID(eval.DocumentID)
}

func (r *evaluationRepository) FindByDocumentID(documentID uuid.UUID) (*models.RFPEvaluation, error) {
	var eval models.RFPEvaluation
	if err := r.db.Where("document_id = ?", documentID).First(&eval).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("evaluation for document %s: %w", documentID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find evaluation: %w", err)
	}
	return &eval, nil
}
