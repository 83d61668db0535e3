package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/rfp-evaluator/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// KeywordScore is an extracted keyword with its relevance to the document.
type KeywordScore struct {
	Keyword   string
	Relevance float64
}

type DocumentRepository interface {
	Create(document *models.Document) error
	CreateWithKeywords(document *models.Document, keywords []KeywordScore) error
	FindByID(id uuid.UUID) (*models.Document, error)
	FindByIDs(ids []uuid.UUID) ([]models.Document, error)
	List(status models.DocumentStatus, limit int) ([]models.Document, error)
	UpdateStatus(id uuid.UUID, status models.DocumentStatus) error
	MarkAllUnprocessed() (int64, error)
	FindUnprocessed(limit int) ([]models.Document, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Create implements DocumentRepository.
func (d *documentRepository) Create(document *models.Document) error {
	if err := d.db.Create(document).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

// CreateWithKeywords implements DocumentRepository. The document, any new
// keywords and the document/keyword links are written in one transaction.
func (d *documentRepository) CreateWithKeywords(document *models.Document, keywords []KeywordScore) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(document).Error; err != nil {
			return fmt.Errorf("failed to create document: %w", err)
		}

		for _, ks := range keywords {
			keyword := models.Keyword{ID: uuid.New(), Keyword: ks.Keyword}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "keyword"}},
				DoNothing: true,
			}).Create(&keyword).Error; err != nil {
				return fmt.Errorf("failed to create keyword %q: %w", ks.Keyword, err)
			}

			var stored models.Keyword
			if err := tx.Where("keyword = ?", ks.Keyword).First(&stored).Error; err != nil {
				return fmt.Errorf("failed to load keyword %q: %w", ks.Keyword, err)
			}

			link := models.DocumentKeyword{
				ID:             uuid.New(),
				DocumentID:     document.ID,
				KeywordID:      stored.ID,
				RelevanceScore: ks.Relevance,
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return fmt.Errorf("failed to link keyword %q: %w", ks.Keyword, err)
			}
		}

		return nil
	})
}

// FindByID implements DocumentRepository.
func (d *documentRepository) FindByID(id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	err := d.db.
		Preload("Keywords", func(db *gorm.DB) *gorm.DB {
			return db.Order("relevance_score DESC")
		}).
		Preload("Keywords.Keyword").
		Preload("Evaluation").
		Where("id = ?", id).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
		}

		return nil, fmt.Errorf("failed to find document: %w", err)
	}

	return &doc, nil
}

// FindByIDs implements DocumentRepository.
func (d *documentRepository) FindByIDs(ids []uuid.UUID) ([]models.Document, error) {
	var docs []models.Document
	if err := d.db.Preload("Evaluation").Where("id IN ?", ids).Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to find documents: %w", err)
	}

	return docs, nil
}

// List implements DocumentRepository. An empty status lists every document.
func (d *documentRepository) List(status models.DocumentStatus, limit int) ([]models.Document, error) {
	query := d.db.
		Preload("Keywords.Keyword").
		Preload("Evaluation").
		Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var docs []models.Document
	if err := query.Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return docs, nil
}

// UpdateStatus implements DocumentRepository. It also marks the document processed.
func (d *documentRepository) UpdateStatus(id uuid.UUID, status models.DocumentStatus) error {
	result := d.db.Model(&models.Document{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"processed":  true,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update document status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("document %s: %w", id, ErrNotFound)
	}

	return nil
}

// MarkAllUnprocessed implements DocumentRepository. Used when the capability
// profile changes so every document gets re-evaluated.
func (d *documentRepository) MarkAllUnprocessed() (int64, error) {
	result := d.db.Model(&models.Document{}).
		Where("processed = ?", true).
		Updates(map[string]interface{}{
			"processed":  false,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to reset processed flags: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// FindUnprocessed implements DocumentRepository.
func (d *documentRepository) FindUnprocessed(limit int) ([]models.Document, error) {
	var docs []models.Document
	err := d.db.
		Where("processed = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&docs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find unprocessed documents: %w", err)
	}

	return docs, nil
}
