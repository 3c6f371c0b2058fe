package contract

import (
	"context"

	"shopchat-be/internal/entity"
	"shopchat-be/internal/repository/specification"
)

type SegmentRepository interface {
	// Upsert creates or updates a segment keyed on (name, ageRange, gender)
	// and fills the entity's Id.
	Upsert(ctx context.Context, segment *entity.Segment) error

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Segment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Segment, error)
}
