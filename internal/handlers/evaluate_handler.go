package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/rfp-evaluator/internal/models"
	"alfredoptarigan/rfp-evaluator/internal/repositories"
	"alfredoptarigan/rfp-evaluator/internal/scoring"
	"alfredoptarigan/rfp-evaluator/internal/services"
)

type EvaluationHandler struct {
	docRepo   repositories.DocumentRepository
	evaluator services.EvaluatorService
}

func NewEvaluationHandler(
	docRepo repositories.DocumentRepository,
	evaluator services.EvaluatorService,
) *EvaluationHandler {
	return &EvaluationHandler{
		docRepo:   docRepo,
		evaluator: evaluator,
	}
}

// HandleEvaluate handles POST /documents/:id/evaluate
func (h *EvaluationHandler) HandleEvaluate(c *fiber.Ctx) error {
	doc, err := loadDocument(h.docRepo, c.Params("id"))
	if err != nil {
		return err
	}

	evaluation, err := h.evaluator.EvaluateDocument(c.UserContext(), doc)
	if err != nil {
		if isCapabilityError(err) || errors.Is(err, scoring.ErrInvalidProfile) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return err
	}

	return c.JSON(fiber.Map{
		"document_id": doc.ID.String(),
		"status":      string(doc.Status),
		"evaluation":  models.NewEvaluationData(evaluation),
	})
}
