package repositories

import (
	"context"

	"gorm.io/gorm"
)

// TxRepositories are repositories bound to a single database transaction.
type TxRepositories struct {
	Documents    DocumentRepository
	Evaluations  EvaluationRepository
	Capabilities CapabilityRepository
}

// Transactor runs fn inside a transaction. Returning an error from fn rolls
// back every write made through the supplied repositories.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(repos TxRepositories) error) error
}

type gormTransactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db: db}
}

// WithinTransaction implements Transactor.
func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(repos TxRepositories) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(TxRepositories{
			Documents:    NewDocumentRepository(tx),
			Evaluations:  NewEvaluationRepository(tx),
			Capabilities: NewCapabilityRepository(tx),
		})
	})
}
