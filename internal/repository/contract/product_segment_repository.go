package contract

import (
	"context"

	"shopchat-be/internal/entity"

	"github.com/google/uuid"
)

type ProductSegmentRepository interface {
	// Upsert creates or updates the (productId, segmentId) assignment.
	// Re-running classification updates confidence and reasoning instead of
	// duplicating the link.
	Upsert(ctx context.Context, assignment *entity.ProductSegment) error

	FindByProduct(ctx context.Context, productId uuid.UUID) ([]*entity.ProductSegment, error)

	// TopSegmentNameByProduct returns, per product, the name of its highest
	// confidence segment. Used to tag candidates with a primary segment.
	TopSegmentNameByProduct(ctx context.Context, productIds []uuid.UUID) (map[uuid.UUID]string, error)
}
