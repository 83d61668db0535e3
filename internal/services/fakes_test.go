package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/rfp-evaluator/internal/models"
	"alfredoptarigan/rfp-evaluator/internal/repositories"
)

var fixedCreatedAt = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// memStore is an in-memory stand-in for the database. Transactions work on a
// copy that replaces the store only when the callback succeeds.
type memStore struct {
	mu              sync.Mutex
	docs            map[uuid.UUID]models.Document
	evals           map[uuid.UUID]models.RFPEvaluation
	updateStatusErr error
}

func newMemStore() *memStore {
	return &memStore{
		docs:  make(map[uuid.UUID]models.Document),
		evals: make(map[uuid.UUID]models.RFPEvaluation),
	}
}

func (s *memStore) clone() *memStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := newMemStore()
	c.updateStatusErr = s.updateStatusErr
	for k, v := range s.docs {
		c.docs[k] = v
	}
	for k, v := range s.evals {
		c.evals[k] = v
	}
	return c
}

func (s *memStore) evaluation(docID uuid.UUID) (models.RFPEvaluation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.evals[docID]
	return e, ok
}

func (s *memStore) document(docID uuid.UUID) models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[docID]
}

type memDocRepo struct{ s *memStore }

func (r *memDocRepo) Create(doc *models.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.docs[doc.ID] = *doc
	return nil
}

func (r *memDocRepo) CreateWithKeywords(doc *models.Document, keywords []repositories.KeywordScore) error {
	for _, k := range keywords {
		doc.Keywords = append(doc.Keywords, models.DocumentKeyword{
			ID:             uuid.New(),
			DocumentID:     doc.ID,
			RelevanceScore: k.Relevance,
			Keyword:        models.Keyword{ID: uuid.New(), Keyword: k.Keyword},
		})
	}
	return r.Create(doc)
}

func (r *memDocRepo) FindByID(id uuid.UUID) (*models.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	doc, ok := r.s.docs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if eval, ok := r.s.evals[id]; ok {
		doc.Evaluation = &eval
	}
	return &doc, nil
}

func (r *memDocRepo) FindByIDs(ids []uuid.UUID) ([]models.Document, error) {
	var out []models.Document
	for _, id := range ids {
		if doc, err := r.FindByID(id); err == nil {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (r *memDocRepo) List(status models.DocumentStatus, limit int) ([]models.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.Document
	for _, doc := range r.s.docs {
		if status == "" || doc.Status == status {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memDocRepo) UpdateStatus(id uuid.UUID, status models.DocumentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.updateStatusErr != nil {
		return r.s.updateStatusErr
	}
	doc, ok := r.s.docs[id]
	if !ok {
		return repositories.ErrNotFound
	}
	doc.Status = status
	doc.Processed = true
	r.s.docs[id] = doc
	return nil
}

func (r *memDocRepo) MarkAllUnprocessed() (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, doc := range r.s.docs {
		if doc.Processed {
			doc.Processed = false
			r.s.docs[id] = doc
			n++
		}
	}
	return n, nil
}

func (r *memDocRepo) FindUnprocessed(limit int) ([]models.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.Document
	for _, doc := range r.s.docs {
		if !doc.Processed {
			out = append(out, doc)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memEvalRepo struct{ s *memStore }

func (r *memEvalRepo) Upsert(eval *models.RFPEvaluation) (*models.RFPEvaluation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *eval
	if existing, ok := r.s.evals[eval.DocumentID]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.ID = uuid.New()
		stored.CreatedAt = fixedCreatedAt
	}
	r.s.evals[eval.DocumentID] = stored

	out := stored
	return &out, nil
}

func (r *memEvalRepo) FindByDocumentID(documentID uuid.UUID) (*models.RFPEvaluation, error) {
	eval, ok := r.s.evaluation(documentID)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &eval, nil
}

type memTransactor struct{ s *memStore }

func (t *memTransactor) WithinTransaction(_ context.Context, fn func(repos repositories.TxRepositories) error) error {
	tx := t.s.clone()
	if err := fn(repositories.TxRepositories{
		Documents:   &memDocRepo{s: tx},
		Evaluations: &memEvalRepo{s: tx},
	}); err != nil {
		return err
	}

	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.s.docs = tx.docs
	t.s.evals = tx.evals
	return nil
}

type memCapRepo struct {
	mu         sync.Mutex
	capability *models.CompanyCapability
}

func (r *memCapRepo) Load() (*models.CompanyCapability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.capability == nil {
		return nil, repositories.ErrCapabilityNotConfigured
	}
	c := *r.capability
	return &c, nil
}

func (r *memCapRepo) Save(c *models.CompanyCapability) (*models.CompanyCapability, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := *c
	r.capability = &saved
	return &saved, nil
}

// stubGenerator returns canned responses in order, repeating the last one.
type stubGenerator struct {
	mu        sync.Mutex
	responses []string
	err       error
	prompts   []string
}

func (g *stubGenerator) GenerateTextWithRetry(_ context.Context, prompt string, _ float32, _ int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	if len(g.responses) == 0 {
		return "", errors.New("no canned response")
	}
	resp := g.responses[0]
	if len(g.responses) > 1 {
		g.responses = g.responses[1:]
	}
	return resp, nil
}

func (g *stubGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

func testCapability() *models.CompanyCapability {
	return &models.CompanyCapability{
		ID:               uuid.New(),
		TechKeywords:     models.StringList{"python", "react"},
		MinBudget:        500000,
		MaxBudget:        2000000,
		MinTimelineWeeks: 4,
		MaxTimelineWeeks: 12,
		MaxTeamSize:      10,
	}
}

func int64Ptr(v int64) *int64 { return &v }
