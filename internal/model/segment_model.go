package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Segment struct {
	Id         uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string                      `gorm:"type:varchar(255);not null;uniqueIndex:idx_segment_identity"`
	AgeRange   string                      `gorm:"type:varchar(16);not null;uniqueIndex:idx_segment_identity"`
	Gender     string                      `gorm:"type:varchar(16);not null;uniqueIndex:idx_segment_identity"`
	Categories datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Keywords   datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CreatedAt  time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt  time.Time                   `gorm:"autoUpdateTime"`
}

func (Segment) TableName() string {
	return "segments"
}
