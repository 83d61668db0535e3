package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/rfp-evaluator/internal/logger"
	"alfredoptarigan/rfp-evaluator/internal/models"
	"alfredoptarigan/rfp-evaluator/internal/repositories"
	"alfredoptarigan/rfp-evaluator/internal/services"
)

type UploadHandler struct {
	storageService services.StorageService
	pipeline       services.DocumentPipeline
	maxFileSize    int64
	log            *zap.Logger
}

func NewUploadHandler(
	storageService services.StorageService,
	pipeline services.DocumentPipeline,
	maxFileSize int64,
	log *zap.Logger,
) *UploadHandler {
	return &UploadHandler{
		storageService: storageService,
		pipeline:       pipeline,
		maxFileSize:    maxFileSize,
		log:            logger.OrNop(log).Named("upload"),
	}
}

// HandleUpload handles POST /documents/upload
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "multipart field 'file' is required",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	if fileType := services.FileTypeOf(file.Filename); !services.IsSupportedFileType(fileType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("unsupported file type %q, expected one of %v", fileType, services.SupportedFileTypes),
		})
	}

	stored, err := h.storageService.SaveFile(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save file: %v", err),
		})
	}

	result, err := h.pipeline.Process(c.UserContext(), stored, file.Filename)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrUnreadableDocument):
		if delErr := h.storageService.DeleteFile(stored.Filename); delErr != nil {
			h.log.Warn("failed to remove unreadable upload", zap.Error(delErr))
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case result != nil && isCapabilityError(err):
		// The document is stored as PENDING; the worker evaluates it once a profile exists.
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":    err.Error(),
			"document": models.NewDocumentResponse(result.Document),
		})
	default:
		h.log.Error("failed to process upload", zap.String("filename", file.Filename), zap.Error(err))
		if result == nil {
			if delErr := h.storageService.DeleteFile(stored.Filename); delErr != nil {
				h.log.Warn("failed to remove upload", zap.Error(delErr))
			}
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to process document",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.NewDocumentResponse(result.Document))
}

func isCapabilityError(err error) bool {
	return errors.Is(err, repositories.ErrCapabilityNotConfigured) ||
		errors.Is(err, repositories.ErrCapabilityAmbiguous)
}
