package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/rfp-evaluator/internal/logger"
	"alfredoptarigan/rfp-evaluator/internal/models"
	"alfredoptarigan/rfp-evaluator/internal/repositories"
	"alfredoptarigan/rfp-evaluator/internal/scoring"
)

type CapabilityHandler struct {
	capRepo    repositories.CapabilityRepository
	transactor repositories.Transactor
	log        *zap.Logger
}

func NewCapabilityHandler(
	capRepo repositories.CapabilityRepository,
	transactor repositories.Transactor,
	log *zap.Logger,
) *CapabilityHandler {
	return &CapabilityHandler{
		capRepo:    capRepo,
		transactor: transactor,
		log:        logger.OrNop(log).Named("capability"),
	}
}

// HandleGet handles GET /capability
func (h *CapabilityHandler) HandleGet(c *fiber.Ctx) error {
	capability, err := h.capRepo.Load()
	switch {
	case err == nil:
		return c.JSON(capability)
	case errors.Is(err, repositories.ErrCapabilityNotConfigured):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, repositories.ErrCapabilityAmbiguous):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, scoring.ErrInvalidProfile):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	default:
		return err
	}
}

// HandlePut handles PUT /capability. The profile is saved and every document
// marked unprocessed in one transaction, so the worker re-evaluates all of them
// against the new profile or the old profile stays in place.
func (h *CapabilityHandler) HandlePut(c *fiber.Ctx) error {
	var capability models.CompanyCapability
	if err := c.BodyParser(&capability); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}

	capability.TechKeywords = capability.TechKeywords.Clean()

	var (
		saved  *models.CompanyCapability
		queued int64
	)
	err := h.transactor.WithinTransaction(c.UserContext(), func(repos repositories.TxRepositories) error {
		var err error
		if saved, err = repos.Capabilities.Save(&capability); err != nil {
			return err
		}
		queued, err = repos.Documents.MarkAllUnprocessed()
		return err
	})
	if err != nil {
		if errors.Is(err, scoring.ErrInvalidProfile) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	h.log.Info("capability updated",
		zap.Int("tech_keywords", len(saved.TechKeywords)),
		zap.Int64("documents_queued", queued),
	)

	return c.JSON(fiber.Map{
		"capability":       saved,
		"documents_queued": queued,
	})
}
