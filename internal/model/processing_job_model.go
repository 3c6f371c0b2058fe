package model

import (
	"time"

	"github.com/google/uuid"
)

type ProcessingJob struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Stage        string     `gorm:"type:varchar(16);not null;index:idx_job_poll"`
	Status       string     `gorm:"type:varchar(16);not null;index:idx_job_poll"`
	Attempts     int        `gorm:"default:0"`
	MaxAttempts  int        `gorm:"default:3"`
	ScheduledFor *time.Time `gorm:"index"`
	Error        string     `gorm:"type:text"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

func (ProcessingJob) TableName() string {
	return "processing_jobs"
}
