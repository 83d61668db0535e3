package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Upload     *UploadHandler
	Documents  *DocumentHandler
	Evaluation *EvaluationHandler
	Capability *CapabilityHandler
}

// Register mounts every endpoint on the /api/v1 group.
func (h *Handlers) Register(api fiber.Router) {
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/documents/upload", h.Upload.HandleUpload)
	api.Get("/documents", h.Documents.HandleList)
	api.Get("/documents/:id", h.Documents.HandleGet)
	api.Post("/documents/:id/evaluate", h.Evaluation.HandleEvaluate)
	api.Get("/documents/:id/similar", h.Documents.HandleSimilar)

	api.Get("/capability", h.Capability.HandleGet)
	api.Put("/capability", h.Capability.HandlePut)
}

// Endpoints lists the registered routes for the index page.
var Endpoints = []string{
	"GET /api/v1/health",
	"POST /api/v1/documents/upload",
	"GET /api/v1/documents",
	"GET /api/v1/documents/:id",
	"POST /api/v1/documents/:id/evaluate",
	"GET /api/v1/documents/:id/similar",
	"GET /api/v1/capability",
	"PUT /api/v1/capability",
}
