package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/rfp-evaluator/internal/models"
	"alfredoptarigan/rfp-evaluator/internal/scoring"
)

func TestWorkerReevaluatesUnprocessedDocuments(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	docs := &memDocRepo{s: store}
	caps := &memCapRepo{}
	evaluator := NewEvaluatorService(docs, caps, &memTransactor{s: store}, scoring.DefaultPolicy(), nil)

	ids := make([]uuid.UUID, 0, 3)
	for i := 0; i < 3; i++ {
		doc := &models.Document{
			ID:                  uuid.New(),
			Status:              models.DocumentPending,
			RFPBudget:           int64Ptr(1000000),
			RFPTimelineWeeks:    int64Ptr(8),
			RFPTeamSizeRequired: int64Ptr(4),
		}
		if err := docs.Create(doc); err != nil {
			t.Fatalf("seeding document: %v", err)
		}
		ids = append(ids, doc.ID)
	}

	w := NewWorker(docs, evaluator, 2, 10*time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	defer w.Stop()

	// Nothing can be evaluated until a capability exists.
	time.Sleep(50 * time.Millisecond)
	for _, id := range ids {
		if _, ok := store.evaluation(id); ok {
			t.Fatalf("expected no evaluation without capability")
		}
	}

	if _, err := caps.Save(testCapability()); err != nil {
		t.Fatalf("saving capability: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for _, id := range ids {
		for {
			if doc := store.document(id); doc.Processed {
				// No keyword overlap: 0.4*100 + 0.2*100 + 0.1*100 = 70.
				if doc.Status != models.DocumentReview {
					t.Fatalf("expected REVIEW, got %s", doc.Status)
				}
				break
			}
			if time.Now().After(deadline) {
				t.Fatalf("document %s was not evaluated in time", id)
			}
			time.Sleep(5 * time.Millisecond)
		}
	}
}

func TestWorkerStopIsIdempotent(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	docs := &memDocRepo{s: store}
	evaluator := NewEvaluatorService(docs, &memCapRepo{}, &memTransactor{s: store}, scoring.DefaultPolicy(), nil)

	w := NewWorker(docs, evaluator, 1, time.Hour, nil)
	w.Start(context.Background())
	w.Stop()
	w.Stop()

	// Enqueueing after stop must not block.
	done := make(chan struct{})
	go func() {
		w.EnqueueJob(uuid.New())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("EnqueueJob blocked after Stop")
	}
}
