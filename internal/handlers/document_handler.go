package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/rfp-evaluator/internal/models"
	"alfredoptarigan/rfp-evaluator/internal/repositories"
	"alfredoptarigan/rfp-evaluator/internal/services"
)

const defaultListLimit = 50

type DocumentHandler struct {
	docRepo    repositories.DocumentRepository
	similarity services.SimilarityService
}

// NewDocumentHandler creates the document read endpoints. similarity may be nil.
func NewDocumentHandler(docRepo repositories.DocumentRepository, similarity services.SimilarityService) *DocumentHandler {
	return &DocumentHandler{
		docRepo:    docRepo,
		similarity: similarity,
	}
}

// HandleList handles GET /documents
func (h *DocumentHandler) HandleList(c *fiber.Ctx) error {
	status := models.DocumentStatus(strings.ToUpper(strings.TrimSpace(c.Query("status"))))
	switch status {
	case "", models.DocumentPending, models.DocumentAccepted, models.DocumentRejected, models.DocumentReview:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "status must be one of PENDING, ACCEPTED, REJECTED, REVIEW",
		})
	}

	limit := c.QueryInt("limit", defaultListLimit)
	if limit <= 0 {
		limit = defaultListLimit
	}

	docs, err := h.docRepo.List(status, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list documents",
		})
	}

	response := make([]models.DocumentResponse, 0, len(docs))
	for i := range docs {
		response = append(response, models.NewDocumentResponse(&docs[i]))
	}

	return c.JSON(fiber.Map{
		"documents": response,
		"count":     len(response),
	})
}

// HandleGet handles GET /documents/:id
func (h *DocumentHandler) HandleGet(c *fiber.Ctx) error {
	doc, err := h.findDocument(c)
	if err != nil {
		return err
	}

	return c.JSON(models.NewDocumentResponse(doc))
}

// HandleSimilar handles GET /documents/:id/similar
func (h *DocumentHandler) HandleSimilar(c *fiber.Ctx) error {
	if h.similarity == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": services.ErrVectorIndexDisabled.Error(),
		})
	}

	doc, err := h.findDocument(c)
	if err != nil {
		return err
	}

	similar, err := h.similarity.FindSimilar(c.UserContext(), doc, c.QueryInt("limit", 5))
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "similar document search failed",
		})
	}

	return c.JSON(fiber.Map{
		"document_id": doc.ID.String(),
		"similar":     similar,
	})
}

// findDocument loads the :id document. Failures are returned as *fiber.Error
// and rendered by ErrorHandler.
func (h *DocumentHandler) findDocument(c *fiber.Ctx) (*models.Document, error) {
	return loadDocument(h.docRepo, c.Params("id"))
}

func loadDocument(docRepo repositories.DocumentRepository, rawID string) (*models.Document, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid document ID format")
	}

	doc, err := docRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Document not found")
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	return doc, nil
}
