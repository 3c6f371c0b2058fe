package contract

import (
	"context"

	"shopchat-be/internal/entity"

	"github.com/google/uuid"
)

type CategoryRepository interface {
	// UpsertByName returns the category with the given name, creating it if
	// missing.
	UpsertByName(ctx context.Context, name string) (*entity.Category, error)

	// LinkProduct attaches a category to a product (idempotent).
	LinkProduct(ctx context.Context, productId, categoryId uuid.UUID) error

	FindByProduct(ctx context.Context, productId uuid.UUID) ([]*entity.Category, error)
}
