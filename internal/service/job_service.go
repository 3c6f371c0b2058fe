// FILE: internal/service/job_service.go
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"shopchat-be/internal/dto"
	"shopchat-be/internal/entity"
	"shopchat-be/internal/repository/specification"
	"shopchat-be/internal/repository/unitofwork"
	"shopchat-be/pkg/events"
	pktNats "shopchat-be/pkg/nats"

	"github.com/google/uuid"
)

type IJobService interface {
	Stats(ctx context.Context) (*dto.JobStatsResponse, error)

	// Retry re-queues a FAILED job for immediate processing, resetting its
	// attempt counter.
	Retry(ctx context.Context, jobId uuid.UUID) (*dto.RetryJobResponse, error)
}

type jobService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	logger         *log.Logger
}

func NewJobService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	logger *log.Logger,
) IJobService {
	return &jobService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (s *jobService) Stats(ctx context.Context) (*dto.JobStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	counts, err := uow.JobRepository().StageStatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	res := &dto.JobStatsResponse{
		ByStage:   make(map[string]int64),
		ByStatus:  make(map[string]int64),
		Breakdown: make([]dto.JobStatsRow, 0, len(counts)),
	}
	for _, c := range counts {
		res.Total += c.Count
		res.ByStage[c.Stage] += c.Count
		res.ByStatus[c.Status] += c.Count
		res.Breakdown = append(res.Breakdown, dto.JobStatsRow{
			Stage:  c.Stage,
			Status: c.Status,
			Count:  c.Count,
		})
	}

	completed := res.ByStatus[entity.JobStatusCompleted]
	failed := res.ByStatus[entity.JobStatusFailed]
	if terminal := completed + failed; terminal > 0 {
		res.SuccessRate = float64(completed) / float64(terminal)
	}
	return res, nil
}

func (s *jobService) Retry(ctx context.Context, jobId uuid.UUID) (*dto.RetryJobResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	job, err := uow.JobRepository().FindOne(ctx, specification.ByID{ID: jobId})
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, fmt.Errorf("job not found: %s", jobId)
	}
	if job.Status != entity.JobStatusFailed {
		return nil, fmt.Errorf("job %s is %s, only FAILED jobs can be retried", jobId, job.Status)
	}

	now := time.Now()
	job.Status = entity.JobStatusPending
	job.Attempts = 0
	job.ScheduledFor = &now
	job.Error = ""
	job.UpdatedAt = &now

	if err := uow.JobRepository().Update(ctx, job); err != nil {
		return nil, err
	}

	evt := events.NewJobEvent(events.TypeJobRetried, job.Id.String(), job.ProductId.String(), job.Stage, job.Attempts, "")
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Printf("[WARN] Failed to publish JOB_RETRIED event: %v", err)
	}

	return &dto.RetryJobResponse{
		Id:           job.Id,
		Stage:        job.Stage,
		Status:       job.Status,
		Attempts:     job.Attempts,
		ScheduledFor: job.ScheduledFor,
	}, nil
}
