package entity

import (
	"time"

	"github.com/google/uuid"
)

// Segment is a named (age-range, gender) demographic bucket. Identified by
// the triple (Name, AgeRange, Gender); never deleted automatically.
type Segment struct {
	Id         uuid.UUID
	Name       string
	AgeRange   string
	Gender     string
	Categories []string
	Keywords   []string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// ProductSegment links a product to a segment. Confidence is always inside
// [0,1]; re-running classification updates the link instead of duplicating.
type ProductSegment struct {
	Id         uuid.UUID
	ProductId  uuid.UUID
	SegmentId  uuid.UUID
	Confidence float64
	Reasoning  string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
