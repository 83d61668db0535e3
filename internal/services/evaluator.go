package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/rfp-evaluator/internal/logger"
	"alfredoptarigan/rfp-evaluator/internal/models"
	"alfredoptarigan/rfp-evaluator/internal/repositories"
	"alfredoptarigan/rfp-evaluator/internal/scoring"
)

type EvaluatorService interface {
	// EvaluateAndSave loads the document and evaluates it.
	EvaluateAndSave(ctx context.Context, documentID uuid.UUID) (*models.RFPEvaluation, error)
	// EvaluateDocument scores doc against the stored capability profile and
	// persists the evaluation together with the document status.
	EvaluateDocument(ctx context.Context, doc *models.Document) (*models.RFPEvaluation, error)
}

type evaluatorService struct {
	docRepo    repositories.DocumentRepository
	capRepo    repositories.CapabilityRepository
	transactor repositories.Transactor
	policy     scoring.Policy
	log        *zap.Logger
}

func NewEvaluatorService(
	docRepo repositories.DocumentRepository,
	capRepo repositories.CapabilityRepository,
	transactor repositories.Transactor,
	policy scoring.Policy,
	log *zap.Logger,
) EvaluatorService {
	return &evaluatorService{
		docRepo:    docRepo,
		capRepo:    capRepo,
		transactor: transactor,
		policy:     policy,
		log:        logger.OrNop(log).Named("evaluator"),
	}
}

// EvaluateAndSave implements EvaluatorService.
func (e *evaluatorService) EvaluateAndSave(ctx context.Context, documentID uuid.UUID) (*models.RFPEvaluation, error) {
	doc, err := e.docRepo.FindByID(documentID)
	if err != nil {
		return nil, err
	}

	return e.EvaluateDocument(ctx, doc)
}

// EvaluateDocument implements EvaluatorService.
func (e *evaluatorService) EvaluateDocument(ctx context.Context, doc *models.Document) (*models.RFPEvaluation, error) {
	capability, err := e.capRepo.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load company capability: %w", err)
	}

	attrs := scoring.ResolveAttributes(
		doc.Canonical(),
		scoring.DecodeMetadata(doc.RFPMetadata),
		doc.KeywordStrings(),
	)
	result := scoring.Evaluate(attrs, capability.Profile(), e.policy)
	status := models.StatusForDecision(result.Decision)

	var saved *models.RFPEvaluation
	err = e.transactor.WithinTransaction(ctx, func(repos repositories.TxRepositories) error {
		var err error
		saved, err = repos.Evaluations.Upsert(models.NewRFPEvaluation(doc.ID, result))
		if err != nil {
			return err
		}
		return repos.Documents.UpdateStatus(doc.ID, status)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist evaluation: %w", err)
	}

	doc.Status = status
	doc.Processed = true
	doc.Evaluation = saved

	e.log.Info("document evaluated",
		zap.String(logger.FieldDocumentID, doc.ID.String()),
		zap.String(logger.FieldDecision, string(result.Decision)),
		zap.Float64("overall", result.Overall),
		zap.Int64("budget", attrs.Budget),
		zap.Int64("timeline_weeks", attrs.TimelineWeeks),
		zap.Int64("team_size", attrs.TeamSize),
	)

	return saved, nil
}
