// Package worker runs background jobs on a bounded in-memory queue.
//
// Jobs are best-effort: the customer directory is read-only to this
// service, so nothing is persisted and queued jobs are lost on restart.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DukeRupert/carecrm/internal/metrics"
)

var (
	// ErrQueueFull is returned by Enqueue when no queue slot is free.
	ErrQueueFull = errors.New("worker: queue full")

	// ErrStopped is returned by Enqueue after Stop.
	ErrStopped = errors.New("worker: stopped")
)

// Job is one unit of queued work.
type Job struct {
	ID       uuid.UUID
	Type     string
	Payload  []byte
	Attempts int
}

// Worker manages background job processing with concurrent workers.
type Worker struct {
	handlers map[string]JobHandler
	config   Config
	logger   *slog.Logger

	queue chan Job

	mu      sync.RWMutex
	stopped bool

	// Synchronization
	wg       sync.WaitGroup
	retries  sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once
}

// New creates a new Worker with the given configuration.
// The worker must be started with Start() and stopped with Stop().
func New(config Config, logger *slog.Logger) (*Worker, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Worker{
		handlers: make(map[string]JobHandler),
		config:   config,
		logger:   logger,
		queue:    make(chan Job, config.QueueSize),
		stopCh:   make(chan struct{}),
	}, nil
}

// Register adds a job handler to the worker.
// The handler's Type() must be unique. Call this before Start().
func (w *Worker) Register(handler JobHandler) {
	jobType := handler.Type()
	if _, exists := w.handlers[jobType]; exists {
		w.logger.Warn("Overwriting existing handler", "job_type", jobType)
	}
	w.handlers[jobType] = handler
	w.logger.Debug("Registered job handler", "job_type", jobType)
}

// Start begins processing jobs with the configured number of concurrent
// workers. Workers exit when ctx is done or Stop is called.
func (w *Worker) Start(ctx context.Context) {
	for i := 0; i < w.config.Concurrency; i++ {
		w.wg.Add(1)
		go w.runWorker(ctx, i+1)
	}

	w.logger.Info("Worker started", "concurrency", w.config.Concurrency, "queue_size", w.config.QueueSize)
}

// Stop signals all workers to stop and waits for them to finish.
// It respects the configured ShutdownTimeout. Jobs still queued are
// dropped.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping worker...")

		w.mu.Lock()
		w.stopped = true
		w.mu.Unlock()
		close(w.stopCh)

		done := make(chan struct{})
		go func() {
			w.wg.Wait()
			w.retries.Wait()
			close(done)
		}()

		select {
		case <-done:
			w.logger.Info("Worker stopped gracefully", "dropped", len(w.queue))
		case <-time.After(w.config.ShutdownTimeout):
			w.logger.Warn("Worker shutdown timeout exceeded, some jobs may still be running")
		}
	})
}

// enqueue adds a job without blocking.
func (w *Worker) enqueue(job Job) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		return ErrStopped
	}
	select {
	case w.queue <- job:
		metrics.QueueDepth(len(w.queue))
		return nil
	default:
		metrics.JobDropped(job.Type)
		return ErrQueueFull
	}
}

// runWorker is the main loop for a worker goroutine.
func (w *Worker) runWorker(ctx context.Context, workerID int) {
	defer w.wg.Done()

	logger := w.logger.With("worker_id", workerID)
	logger.Debug("Worker started")

	for {
		select {
		case <-w.stopCh:
			logger.Debug("Worker stopping")
			return
		case <-ctx.Done():
			logger.Debug("Worker context done")
			return
		case job := <-w.queue:
			metrics.QueueDepth(len(w.queue))
			w.process(ctx, job, logger)
		}
	}
}

// process executes a job and schedules a retry on transient failure.
func (w *Worker) process(ctx context.Context, job Job, logger *slog.Logger) {
	job.Attempts++
	logger = logger.With("job_id", job.ID, "job_type", job.Type, "attempt", job.Attempts)
	logger.Debug("Processing job")

	start := time.Now()
	err := w.executeJob(ctx, job)
	if err == nil {
		metrics.JobCompleted(job.Type, time.Since(start))
		logger.Debug("Job completed")
		return
	}

	if IsPermanent(err) || job.Attempts >= w.config.MaxAttempts {
		metrics.JobFailed(job.Type)
		logger.Warn("Job failed, will not retry", "error", err)
		return
	}

	delay := w.config.RetryDelay << (job.Attempts - 1)
	logger.Info("Job failed, retrying", "error", err, "delay", delay)
	metrics.JobRetried(job.Type)
	w.retryAfter(job, delay, logger)
}

func (w *Worker) retryAfter(job Job, delay time.Duration, logger *slog.Logger) {
	w.retries.Add(1)
	go func() {
		defer w.retries.Done()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-w.stopCh:
			return
		case <-timer.C:
		}
		if err := w.enqueue(job); err != nil {
			logger.Warn("Failed to requeue job", "error", err)
		}
	}()
}

// executeJob runs the appropriate handler for the job with a timeout context.
func (w *Worker) executeJob(ctx context.Context, job Job) error {
	handler, ok := w.handlers[job.Type]
	if !ok {
		return NewPermanentError(fmt.Errorf("no handler registered for job type: %s", job.Type))
	}

	jobCtx, cancel := context.WithTimeout(ctx, w.config.JobTimeout)
	defer cancel()

	return handler.Handle(jobCtx, job.Payload)
}
