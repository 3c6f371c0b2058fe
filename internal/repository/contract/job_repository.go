package contract

import (
	"context"
	"time"

	"shopchat-be/internal/entity"
	"shopchat-be/internal/repository/specification"

	"github.com/google/uuid"
)

// StageStatusCount is one row of the job stats breakdown.
type StageStatusCount struct {
	Stage  string
	Status string
	Count  int64
}

type JobRepository interface {
	Create(ctx context.Context, job *entity.ProcessingJob) error
	Update(ctx context.Context, job *entity.ProcessingJob) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ProcessingJob, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProcessingJob, error)

	// FindDue returns up to limit PENDING jobs whose scheduled_for is null
	// or in the past, oldest first.
	FindDue(ctx context.Context, now time.Time, limit int) ([]*entity.ProcessingJob, error)

	// ExistsForProductStage reports whether the product already has a job in
	// the stage with one of the given statuses.
	ExistsForProductStage(ctx context.Context, productId uuid.UUID, stage string, statuses []string) (bool, error)

	// StageStatusCounts aggregates jobs per (stage, status).
	StageStatusCounts(ctx context.Context) ([]StageStatusCount, error)
}
