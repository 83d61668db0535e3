package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/rfp-evaluator/internal/app"
	"alfredoptarigan/rfp-evaluator/internal/config"
	"alfredoptarigan/rfp-evaluator/internal/handlers"
	"alfredoptarigan/rfp-evaluator/internal/logger"
)

const apiVersion = "1.0.0"

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	core, err := app.NewCore(cfg, log)
	if err != nil {
		return err
	}
	defer core.Close()

	ingestion, err := core.NewIngestion(ctx)
	if err != nil {
		return err
	}
	log.Info("services initialized", zap.Bool("similarity", ingestion.Similarity != nil))

	worker := core.NewWorker()
	worker.Start(ctx)

	h := &handlers.Handlers{
		Upload:     handlers.NewUploadHandler(ingestion.Storage, ingestion.Pipeline, cfg.Storage.MaxFileSize, log),
		Documents:  handlers.NewDocumentHandler(core.Documents, ingestion.Similarity),
		Evaluation: handlers.NewEvaluationHandler(core.Documents, core.Evaluator),
		Capability: handlers.NewCapabilityHandler(core.Capabilities, core.Transactor, log),
	}

	server := fiber.New(fiber.Config{
		AppName:      "RFP Evaluator API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		// Multipart overhead on top of the largest accepted file.
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.NewErrorHandler(log),
	})

	server.Use(recover.New())
	server.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	server.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	h.Register(server.Group("/api/v1"))

	server.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "RFP Evaluator API",
			"version":   apiVersion,
			"endpoints": handlers.Endpoints,
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		cancel()
		worker.Stop()
		if err := server.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Server.Env))

	if err := server.Listen(addr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
