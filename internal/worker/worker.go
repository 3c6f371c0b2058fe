// FILE: internal/worker/worker.go
// PURPOSE: Poll and execute pending product-processing jobs

package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"shopchat-be/internal/entity"
	"shopchat-be/internal/pkg/logger"
	"shopchat-be/internal/repository/unitofwork"
	"shopchat-be/internal/service"
	"shopchat-be/pkg/events"
	"shopchat-be/pkg/marketplace"
	pktNats "shopchat-be/pkg/nats"

	"github.com/robfig/cron/v3"
)

// retryBackoff is the delay added per accumulated attempt before a failed
// job is polled again.
const retryBackoff = 60 * time.Second

type Config struct {
	PollInterval time.Duration
	BatchSize    int
}

// Worker drains the processing_jobs table on a fixed schedule. Each tick
// claims a batch of due jobs and runs them concurrently; a tick that fires
// while the previous one is still running is skipped.
type Worker struct {
	uowFactory          unitofwork.RepositoryFactory
	marketplaceProvider marketplace.SearchProvider
	segmentationService service.ISegmentationService
	eventPublisher      *pktNats.Publisher
	logger              logger.ILogger
	config              Config

	cron    *cron.Cron
	running atomic.Bool
}

func New(
	uowFactory unitofwork.RepositoryFactory,
	marketplaceProvider marketplace.SearchProvider,
	segmentationService service.ISegmentationService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	config Config,
) *Worker {
	if config.PollInterval <= 0 {
		config.PollInterval = 30 * time.Second
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 5
	}
	return &Worker{
		uowFactory:          uowFactory,
		marketplaceProvider: marketplaceProvider,
		segmentationService: segmentationService,
		eventPublisher:      eventPublisher,
		logger:              log,
		config:              config,
	}
}

// Start schedules the polling loop. It returns immediately; ticks run on
// the cron scheduler's goroutine.
func (w *Worker) Start() error {
	w.cron = cron.New()
	spec := fmt.Sprintf("@every %ds", int(w.config.PollInterval.Seconds()))
	if _, err := w.cron.AddFunc(spec, w.Tick); err != nil {
		return fmt.Errorf("schedule worker: %w", err)
	}
	w.cron.Start()
	w.logger.Info("worker", "Job worker started", map[string]interface{}{
		"poll_interval": w.config.PollInterval.String(),
		"batch_size":    w.config.BatchSize,
	})
	return nil
}

// Stop halts the scheduler and waits for the in-flight tick to finish.
func (w *Worker) Stop() {
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

// Tick claims and processes one batch of due jobs. Re-entrancy is guarded:
// overlapping ticks are dropped, not queued.
func (w *Worker) Tick() {
	if !w.running.CompareAndSwap(false, true) {
		w.logger.Debug("worker", "Tick skipped, previous batch still running", nil)
		return
	}
	defer w.running.Store(false)

	ctx := context.Background()
	uow := w.uowFactory.NewUnitOfWork(ctx)

	jobs, err := uow.JobRepository().FindDue(ctx, time.Now(), w.config.BatchSize)
	if err != nil {
		w.logger.Error("worker", "Failed to fetch due jobs", map[string]interface{}{"error": err.Error()})
		return
	}
	if len(jobs) == 0 {
		return
	}

	w.logger.Info("worker", "Processing job batch", map[string]interface{}{"count": len(jobs)})

	// Jobs in a batch are independent; one failure never blocks the rest.
	var wg sync.WaitGroup
	for _, job := range jobs {
		wg.Add(1)
		go func(job *entity.ProcessingJob) {
			defer wg.Done()
			w.processJob(ctx, job)
		}(job)
	}
	wg.Wait()
}

func (w *Worker) processJob(ctx context.Context, job *entity.ProcessingJob) {
	uow := w.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	job.Status = entity.JobStatusProcessing
	job.UpdatedAt = &now
	if err := uow.JobRepository().Update(ctx, job); err != nil {
		w.logger.Error("worker", "Failed to claim job", map[string]interface{}{
			"job_id": job.Id.String(), "error": err.Error(),
		})
		return
	}

	var err error
	switch job.Stage {
	case entity.JobStageEnrich:
		err = w.runEnrich(ctx, uow, job)
	case entity.JobStageCategorize:
		err = w.runCategorize(ctx, uow, job)
	case entity.JobStageSegment:
		err = w.runSegment(ctx, job)
	default:
		err = fmt.Errorf("unknown stage %q", job.Stage)
	}

	if err != nil {
		w.failJob(ctx, uow, job, err)
		return
	}
	w.completeJob(ctx, uow, job)
}

func (w *Worker) completeJob(ctx context.Context, uow unitofwork.UnitOfWork, job *entity.ProcessingJob) {
	now := time.Now()
	job.Status = entity.JobStatusCompleted
	job.Error = ""
	job.UpdatedAt = &now
	if err := uow.JobRepository().Update(ctx, job); err != nil {
		w.logger.Error("worker", "Failed to mark job completed", map[string]interface{}{
			"job_id": job.Id.String(), "error": err.Error(),
		})
		return
	}

	w.logger.Info("worker", "Job completed", map[string]interface{}{
		"job_id": job.Id.String(), "stage": job.Stage,
	})
	w.publishEvent(ctx, events.TypeJobCompleted, job, "")
}

// failJob applies the retry policy: attempts climbs by one, and the job
// either goes back to PENDING with a linearly growing delay or, once the
// budget is spent, lands in terminal FAILED.
func (w *Worker) failJob(ctx context.Context, uow unitofwork.UnitOfWork, job *entity.ProcessingJob, cause error) {
	now := time.Now()
	job.Attempts++
	job.Error = cause.Error()
	job.UpdatedAt = &now

	if job.Attempts < job.MaxAttempts {
		next := now.Add(time.Duration(job.Attempts) * retryBackoff)
		job.Status = entity.JobStatusPending
		job.ScheduledFor = &next
	} else {
		job.Status = entity.JobStatusFailed
	}

	if err := uow.JobRepository().Update(ctx, job); err != nil {
		w.logger.Error("worker", "Failed to record job failure", map[string]interface{}{
			"job_id": job.Id.String(), "error": err.Error(),
		})
		return
	}

	w.logger.Warn("worker", "Job attempt failed", map[string]interface{}{
		"job_id":   job.Id.String(),
		"stage":    job.Stage,
		"attempts": job.Attempts,
		"status":   job.Status,
		"cause":    cause.Error(),
	})
	if job.Status == entity.JobStatusFailed {
		w.publishEvent(ctx, events.TypeJobFailed, job, cause.Error())
	} else {
		w.publishEvent(ctx, events.TypeJobRetried, job, cause.Error())
	}
}

func (w *Worker) publishEvent(ctx context.Context, eventType string, job *entity.ProcessingJob, errText string) {
	evt := events.NewJobEvent(eventType, job.Id.String(), job.ProductId.String(), job.Stage, job.Attempts, errText)
	if err := w.eventPublisher.Publish(ctx, evt); err != nil {
		w.logger.Warn("worker", "Failed to publish job event", map[string]interface{}{
			"event": eventType, "error": err.Error(),
		})
	}
}
