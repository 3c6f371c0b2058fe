package model

import (
	"time"

	"github.com/google/uuid"
)

type ProductSegment struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductId  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_segment"`
	SegmentId  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_segment"`
	Confidence float64   `gorm:"type:numeric(4,3);not null"`
	Reasoning  string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (ProductSegment) TableName() string {
	return "product_segments"
}
