package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	Id           uuid.UUID                     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title        string                        `gorm:"type:varchar(512);not null;index"`
	Description  string                        `gorm:"type:text"`
	Brand        string                        `gorm:"type:varchar(255);index"`
	Category     string                        `gorm:"type:varchar(255);index"`
	Price        float64                       `gorm:"type:numeric(12,2)"`
	ImageUrl     string                        `gorm:"type:text"`
	ProductUrl   string                        `gorm:"type:text"`
	Asin         string                        `gorm:"type:varchar(32);index"`
	Rating       float64                       `gorm:"type:numeric(3,2)"`
	RatingsTotal int                           `gorm:"default:0"`
	Keywords     datatypes.JSONSlice[string]   `gorm:"type:jsonb"`
	EnrichedAt   *time.Time
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}
