// Package app wires configuration, storage and services into the graphs used
// by the API server, the rfpctl CLI and the ingestion script.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"alfredoptarigan/rfp-evaluator/internal/config"
	"alfredoptarigan/rfp-evaluator/internal/logger"
	"alfredoptarigan/rfp-evaluator/internal/repositories"
	"alfredoptarigan/rfp-evaluator/internal/services"
)

// Core holds what evaluation needs: the database, repositories and the evaluator.
type Core struct {
	Config       *config.Config
	Log          *zap.Logger
	DB           *gorm.DB
	Documents    repositories.DocumentRepository
	Capabilities repositories.CapabilityRepository
	Transactor   repositories.Transactor
	Evaluator    services.EvaluatorService
}

// Ingestion holds the upload side: file storage, the model-backed pipeline and
// the optional similarity index.
type Ingestion struct {
	Storage    services.StorageService
	Pipeline   services.DocumentPipeline
	Similarity services.SimilarityService
}

func NewCore(cfg *config.Config, log *zap.Logger) (*Core, error) {
	log = logger.OrNop(log)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	docRepo := repositories.NewDocumentRepository(db)
	capRepo := repositories.NewCapabilityRepository(db)
	transactor := repositories.NewTransactor(db)

	evaluator := services.NewEvaluatorService(
		docRepo,
		capRepo,
		transactor,
		cfg.Scoring,
		log,
	)

	return &Core{
		Config:       cfg,
		Log:          log,
		DB:           db,
		Documents:    docRepo,
		Capabilities: capRepo,
		Transactor:   transactor,
		Evaluator:    evaluator,
	}, nil
}

// NewIngestion builds the upload pipeline. The Qdrant index is only connected
// when enabled; otherwise Similarity is nil.
func (c *Core) NewIngestion(ctx context.Context) (*Ingestion, error) {
	cfg := c.Config

	storage := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storage.EnsureUploadDir(); err != nil {
		return nil, err
	}

	gemini, err := services.NewGeminiService(ctx, services.GeminiOptions{
		APIKey:     cfg.Gemini.APIKey,
		Model:      cfg.Gemini.Model,
		EmbedModel: cfg.Gemini.EmbedModel,
		RetryDelay: cfg.Worker.RetryInitialDelay,
	}, c.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini: %w", err)
	}

	var similarity services.SimilarityService
	if cfg.Qdrant.Enabled {
		index, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, c.Log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize qdrant: %w", err)
		}
		if err := index.InitCollection(ctx); err != nil {
			return nil, fmt.Errorf("failed to initialize qdrant collection: %w", err)
		}
		similarity = services.NewSimilarityService(index, gemini, c.Documents, c.Log)
	} else {
		c.Log.Info("qdrant disabled, similar-RFP search unavailable")
	}

	retries := cfg.Worker.RetryMaxAttempts
	pipeline := services.NewDocumentPipeline(
		services.NewDocumentParser(),
		services.NewKeywordExtractor(gemini, retries, c.Log),
		services.NewSummarizer(gemini, retries),
		services.NewMetadataExtractor(gemini, retries, c.Log),
		c.Documents,
		c.Evaluator,
		similarity,
		c.Log,
	)

	return &Ingestion{
		Storage:    storage,
		Pipeline:   pipeline,
		Similarity: similarity,
	}, nil
}

// NewWorker builds the background evaluator for unprocessed documents.
func (c *Core) NewWorker() services.Worker {
	return services.NewWorker(
		c.Documents,
		c.Evaluator,
		c.Config.Worker.Concurrency,
		c.Config.Worker.PollInterval,
		c.Log,
	)
}

// Close releases the database connection pool.
func (c *Core) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}
