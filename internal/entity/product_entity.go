package entity

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	Id           uuid.UUID
	Title        string
	Description  string
	Brand        string
	Category     string
	Price        float64
	ImageUrl     string
	ProductUrl   string
	Asin         string // external marketplace id, set by enrichment
	Rating       float64
	RatingsTotal int
	Keywords     []string
	EnrichedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}
