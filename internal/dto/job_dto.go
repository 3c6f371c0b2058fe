package dto

import (
	"time"

	"github.com/google/uuid"
)

type JobStatsResponse struct {
	Total     int64            `json:"total"`
	ByStage   map[string]int64 `json:"by_stage"`
	ByStatus  map[string]int64 `json:"by_status"`
	Breakdown []JobStatsRow    `json:"breakdown"`

	// SuccessRate is completed / (completed + failed); 0 when no job has
	// reached a terminal status yet.
	SuccessRate float64 `json:"success_rate"`
}

type JobStatsRow struct {
	Stage  string `json:"stage"`
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type RetryJobResponse struct {
	Id           uuid.UUID  `json:"id"`
	Stage        string     `json:"stage"`
	Status       string     `json:"status"`
	Attempts     int        `json:"attempts"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
}
