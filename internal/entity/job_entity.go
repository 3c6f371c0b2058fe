package entity

import (
	"time"

	"github.com/google/uuid"
)

// Processing stages. ENRICH and CATEGORIZE are scheduled at ingestion;
// SEGMENT is chained off a successful ENRICH.
const (
	JobStageEnrich     = "ENRICH"
	JobStageCategorize = "CATEGORIZE"
	JobStageSegment    = "SEGMENT"
)

// Job statuses. COMPLETED and FAILED are terminal.
const (
	JobStatusPending    = "PENDING"
	JobStatusProcessing = "PROCESSING"
	JobStatusCompleted  = "COMPLETED"
	JobStatusFailed     = "FAILED"
)

type ProcessingJob struct {
	Id           uuid.UUID
	ProductId    uuid.UUID
	Stage        string
	Status       string
	Attempts     int
	MaxAttempts  int
	ScheduledFor *time.Time
	Error        string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
