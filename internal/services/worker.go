package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/rfp-evaluator/internal/logger"
	"alfredoptarigan/rfp-evaluator/internal/repositories"
)

const (
	jobQueueSize = 100
	pollBatch    = 10
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(documentID uuid.UUID)
}

type worker struct {
	docRepo          repositories.DocumentRepository
	evaluatorService EvaluatorService
	jobQueue         chan uuid.UUID
	concurrency      int
	pollInterval     time.Duration
	wg               sync.WaitGroup
	stopChan         chan struct{}
	stopOnce         sync.Once
	log              *zap.Logger

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

func NewWorker(
	docRepo repositories.DocumentRepository,
	evaluatorService EvaluatorService,
	concurrency int,
	pollInterval time.Duration,
	log *zap.Logger,
) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	if pollInterval <= 0 {
		pollInterval = 10 * time.Second
	}

	return &worker{
		docRepo:          docRepo,
		evaluatorService: evaluatorService,
		jobQueue:         make(chan uuid.UUID, jobQueueSize),
		concurrency:      concurrency,
		pollInterval:     pollInterval,
		stopChan:         make(chan struct{}),
		log:              logger.OrNop(log).Named("worker"),
		inFlight:         make(map[uuid.UUID]struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.log.Info("starting worker", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollUnprocessed(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		w.log.Info("stopping worker")
		close(w.stopChan)
	})
	w.wg.Wait()
	w.log.Info("worker stopped")
}

// EnqueueJob implements Worker. Documents already queued or running are skipped.
func (w *worker) EnqueueJob(documentID uuid.UUID) {
	w.mu.Lock()
	if _, busy := w.inFlight[documentID]; busy {
		w.mu.Unlock()
		return
	}
	w.inFlight[documentID] = struct{}{}
	w.mu.Unlock()

	select {
	case w.jobQueue <- documentID:
		w.log.Debug("job enqueued", zap.String(logger.FieldDocumentID, documentID.String()))
	case <-w.stopChan:
		w.done(documentID)
		w.log.Warn("worker stopped, cannot enqueue job", zap.String(logger.FieldDocumentID, documentID.String()))
	}
}

func (w *worker) done(documentID uuid.UUID) {
	w.mu.Lock()
	delete(w.inFlight, documentID)
	w.mu.Unlock()
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log := w.log.With(zap.Int("worker_id", workerID))

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case documentID := <-w.jobQueue:
			w.process(ctx, log, documentID)
		}
	}
}

func (w *worker) process(ctx context.Context, log *zap.Logger, documentID uuid.UUID) {
	defer w.done(documentID)

	evaluation, err := w.evaluatorService.EvaluateAndSave(ctx, documentID)
	switch {
	case errors.Is(err, repositories.ErrCapabilityNotConfigured):
		log.Debug("capability not configured, leaving document pending",
			zap.String(logger.FieldDocumentID, documentID.String()))
	case err != nil:
		log.Error("failed to evaluate document",
			zap.String(logger.FieldDocumentID, documentID.String()),
			zap.Error(err))
	default:
		log.Info("document re-evaluated",
			zap.String(logger.FieldDocumentID, documentID.String()),
			zap.String(logger.FieldDecision, string(evaluation.Decision)))
	}
}

func (w *worker) pollUnprocessed(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.PollOnce()
		}
	}
}

// PollOnce enqueues one batch of unprocessed documents.
func (w *worker) PollOnce() {
	docs, err := w.docRepo.FindUnprocessed(pollBatch)
	if err != nil {
		w.log.Warn("failed to fetch unprocessed documents", zap.Error(err))
		return
	}

	if len(docs) > 0 {
		w.log.Debug("found unprocessed documents", zap.Int("count", len(docs)))
	}

	for _, doc := range docs {
		w.EnqueueJob(doc.ID)
	}
}
