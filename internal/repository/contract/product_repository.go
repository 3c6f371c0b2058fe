package contract

import (
	"context"

	"shopchat-be/internal/entity"
	"shopchat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error)

	// SearchByKeywords matches tokens against title, brand and description
	// (case-insensitive). With requireAll every token must match; otherwise
	// any token may match.
	SearchByKeywords(ctx context.Context, tokens []string, requireAll bool, limit int) ([]*entity.Product, error)

	// FindBySegmentProfile returns products assigned (with at least
	// minConfidence) to segments matching the age range and gender,
	// ordered by assignment confidence.
	FindBySegmentProfile(ctx context.Context, ageRange, gender string, minConfidence float64, includeUnisex bool, limit int) ([]*entity.Product, error)

	// FindPopular returns well-reviewed products.
	FindPopular(ctx context.Context, minRating float64, minRatings, limit int) ([]*entity.Product, error)

	// FindRecent returns the most recently ingested products.
	FindRecent(ctx context.Context, limit int) ([]*entity.Product, error)
}
