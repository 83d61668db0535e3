package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/rfp-evaluator/internal/logger"
	"alfredoptarigan/rfp-evaluator/internal/models"
	"alfredoptarigan/rfp-evaluator/internal/repositories"
)

// ErrVectorIndexDisabled is returned when similar-RFP search is not configured.
var ErrVectorIndexDisabled = errors.New("vector index is disabled")

const defaultSimilarLimit = 5

type embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type SimilarityService interface {
	IndexDocument(ctx context.Context, docID uuid.UUID, text string) error
	FindSimilar(ctx context.Context, doc *models.Document, limit int) ([]models.SimilarDocumentResponse, error)
}

type similarityService struct {
	index   QdrantService
	embeds  embedder
	chunker TextChunker
	docRepo repositories.DocumentRepository
	log     *zap.Logger
}

func NewSimilarityService(
	index QdrantService,
	embeds embedder,
	docRepo repositories.DocumentRepository,
	log *zap.Logger,
) SimilarityService {
	return &similarityService{
		index:   index,
		embeds:  embeds,
		chunker: NewTextChunker(),
		docRepo: docRepo,
		log:     logger.OrNop(log).Named("similarity"),
	}
}

// IndexDocument implements SimilarityService. It replaces any chunks already
// indexed for the document; chunks that fail to embed are skipped.
func (s *similarityService) IndexDocument(ctx context.Context, docID uuid.UUID, text string) error {
	chunks := s.chunker.ChunkText(text, defaultChunkSize, defaultChunkOverlap)

	kept := make([]string, 0, len(chunks))
	embeddings := make([][]float32, 0, len(chunks))
	for i, chunk := range chunks {
		embedding, err := s.embeds.GenerateEmbedding(ctx, chunk)
		if err != nil {
			s.log.Warn("failed to embed chunk",
				zap.String(logger.FieldDocumentID, docID.String()),
				zap.Int("chunk_index", i),
				zap.Error(err),
			)
			continue
		}
		kept = append(kept, chunk)
		embeddings = append(embeddings, embedding)
	}

	if len(kept) == 0 {
		return fmt.Errorf("no chunks embedded for document %s", docID)
	}

	// Drop chunks left over from a previous, longer version of the document.
	if err := s.index.DeleteDocument(ctx, docID.String()); err != nil {
		return err
	}
	if err := s.index.UpsertChunks(ctx, docID.String(), kept, embeddings); err != nil {
		return err
	}

	s.log.Info("document indexed",
		zap.String(logger.FieldDocumentID, docID.String()),
		zap.Int("chunks", len(kept)),
	)
	return nil
}

// FindSimilar implements SimilarityService. Chunk hits are grouped per
// document, keeping each document's best scoring chunk.
func (s *similarityService) FindSimilar(ctx context.Context, doc *models.Document, limit int) ([]models.SimilarDocumentResponse, error) {
	if limit <= 0 {
		limit = defaultSimilarLimit
	}

	query := doc.Summary
	if query == "" {
		query = doc.ContentPreview
	}
	if query == "" {
		return []models.SimilarDocumentResponse{}, nil
	}

	embedding, err := s.embeds.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	hits, err := s.index.SearchSimilar(ctx, embedding, doc.ID.String(), limit*4)
	if err != nil {
		return nil, err
	}

	best := make(map[uuid.UUID]SearchResult)
	var order []uuid.UUID
	for _, hit := range hits {
		id, err := uuid.Parse(hit.DocumentID)
		if err != nil || id == doc.ID {
			continue
		}
		prev, seen := best[id]
		if !seen {
			order = append(order, id)
		}
		if !seen || hit.Score > prev.Score {
			best[id] = hit
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return best[order[i]].Score > best[order[j]].Score
	})
	if len(order) > limit {
		order = order[:limit]
	}
	if len(order) == 0 {
		return []models.SimilarDocumentResponse{}, nil
	}

	docs, err := s.docRepo.FindByIDs(order)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Document, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}

	results := make([]models.SimilarDocumentResponse, 0, len(order))
	for _, id := range order {
		d, ok := byID[id]
		if !ok {
			// Indexed but deleted from the database.
			continue
		}
		hit := best[id]
		results = append(results, models.SimilarDocumentResponse{
			ID:       id.String(),
			Filename: d.OriginalFileName,
			Status:   string(d.Status),
			Score:    hit.Score,
			Excerpt:  logger.TruncateForLog(hit.Text, 300),
		})
	}

	return results, nil
}
