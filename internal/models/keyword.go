package models

import (
	"time"

	"github.com/google/uuid"
)

type Keyword struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Keyword   string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"keyword"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Keyword) TableName() string {
	return "keywords"
}

type DocumentKeyword struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"-"`
	DocumentID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_document_keyword" json:"-"`
	KeywordID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_document_keyword" json:"-"`
	RelevanceScore float64   `gorm:"not null" json:"relevance_score"`

	Keyword Keyword `gorm:"foreignKey:KeywordID" json:"keyword"`
}

func (DocumentKeyword) TableName() string {
	return "document_keywords"
}
