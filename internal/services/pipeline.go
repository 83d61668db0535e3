package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/rfp-evaluator/internal/logger"
	"alfredoptarigan/rfp-evaluator/internal/models"
	"alfredoptarigan/rfp-evaluator/internal/repositories"
)

// ErrUnreadableDocument wraps parse failures of an uploaded document.
var ErrUnreadableDocument = errors.New("could not extract text from document")

const contentPreviewChars = 1000

// PipelineResult is what ingesting one document produced. Evaluation is nil
// when the document could not be evaluated yet.
type PipelineResult struct {
	Document   *models.Document
	Evaluation *models.RFPEvaluation
}

type DocumentPipeline interface {
	// Process ingests a stored file. When the document was persisted but could
	// not be evaluated, the result is returned together with the error.
	Process(ctx context.Context, file *StoredFile, originalName string) (*PipelineResult, error)
}

type documentPipeline struct {
	parser     DocumentParser
	keywords   KeywordExtractor
	summarizer Summarizer
	metadata   MetadataExtractor
	docRepo    repositories.DocumentRepository
	evaluator  EvaluatorService
	similarity SimilarityService
	log        *zap.Logger
}

// NewDocumentPipeline wires the ingestion steps. similarity may be nil when the
// vector index is disabled.
func NewDocumentPipeline(
	parser DocumentParser,
	keywords KeywordExtractor,
	summarizer Summarizer,
	metadata MetadataExtractor,
	docRepo repositories.DocumentRepository,
	evaluator EvaluatorService,
	similarity SimilarityService,
	log *zap.Logger,
) DocumentPipeline {
	return &documentPipeline{
		parser:     parser,
		keywords:   keywords,
		summarizer: summarizer,
		metadata:   metadata,
		docRepo:    docRepo,
		evaluator:  evaluator,
		similarity: similarity,
		log:        logger.OrNop(log).Named("pipeline"),
	}
}

// Process implements DocumentPipeline.
func (p *documentPipeline) Process(ctx context.Context, file *StoredFile, originalName string) (*PipelineResult, error) {
	parsed, err := p.parser.ExtractText(file.Path, file.FileType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableDocument, err)
	}
	text := parsed.Text

	p.log.Info("document parsed",
		zap.String("filename", originalName),
		zap.Int("text_length", len([]rune(text))),
	)

	keywords, err := p.keywords.Extract(ctx, text, defaultKeywordCount)
	if err != nil {
		p.log.Warn("keyword extraction failed", zap.Error(err))
		keywords = nil
	}

	summary, err := p.summarizer.Summarize(ctx, text)
	if err != nil {
		p.log.Warn("summary generation failed", zap.Error(err))
		summary = ""
	}

	extraction := p.metadata.Extract(ctx, text)
	confidence := extraction.Metadata.Confidence()
	notes := extraction.Metadata.Notes()

	doc := &models.Document{
		ID:                    uuid.New(),
		Filename:              file.Filename,
		OriginalFileName:      originalName,
		FileType:              file.FileType,
		FilePath:              file.Path,
		ContentPreview:        truncateRunes(text, contentPreviewChars),
		Summary:               summary,
		Processed:             false,
		Status:                models.DocumentPending,
		RFPBudget:             extraction.Normalized(keyBudget),
		RFPEMD:                extraction.Normalized(keyEMD),
		RFPTimelineWeeks:      extraction.Normalized(keyTimelineWeeks),
		NoOfDaysForAnalysis:   extraction.Normalized(keyAnalysisDays),
		NoOfDaysForSubmission: extraction.Normalized(keySubmissionDays),
		RFPTeamSizeRequired:   extraction.Normalized(keyTeamSize),
		RFPMetadata:           models.JSONMap(extraction.Payload),
		ExtractionConfidence:  &confidence,
		ExtractionNotes:       &notes,
	}

	if err := p.docRepo.CreateWithKeywords(doc, keywords); err != nil {
		return nil, err
	}

	// Reload so keywords come back through the same path as later evaluations.
	stored, err := p.docRepo.FindByID(doc.ID)
	if err != nil {
		return nil, err
	}
	result := &PipelineResult{Document: stored}

	p.index(ctx, stored.ID, text)

	evaluation, err := p.evaluator.EvaluateDocument(ctx, stored)
	if err != nil {
		p.log.Warn("document stored but not evaluated",
			zap.String(logger.FieldDocumentID, stored.ID.String()),
			zap.Error(err),
		)
		return result, err
	}
	result.Evaluation = evaluation

	return result, nil
}

func (p *documentPipeline) index(ctx context.Context, docID uuid.UUID, text string) {
	if p.similarity == nil {
		return
	}
	if err := p.similarity.IndexDocument(ctx, docID, text); err != nil {
		p.log.Warn("failed to index document",
			zap.String(logger.FieldDocumentID, docID.String()),
			zap.Error(err),
		)
	}
}
