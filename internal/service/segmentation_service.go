// FILE: internal/service/segmentation_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shopchat-be/internal/dto"
	"shopchat-be/internal/entity"
	"shopchat-be/internal/repository/specification"
	"shopchat-be/internal/repository/unitofwork"
	"shopchat-be/pkg/segmentation"

	"github.com/google/uuid"
)

// ProductClassifier is the LLM-backed classifier collaborator.
type ProductClassifier interface {
	Classify(ctx context.Context, product *entity.Product) *segmentation.Classification
}

type ISegmentationService interface {
	// SegmentProduct classifies the product and persists one segment
	// assignment per age range in the classification.
	SegmentProduct(ctx context.Context, productId uuid.UUID) (*dto.SegmentProductResponse, error)
}

type segmentationService struct {
	uowFactory unitofwork.RepositoryFactory
	classifier ProductClassifier
}

func NewSegmentationService(
	uowFactory unitofwork.RepositoryFactory,
	classifier ProductClassifier,
) ISegmentationService {
	return &segmentationService{
		uowFactory: uowFactory,
		classifier: classifier,
	}
}

func (s *segmentationService) SegmentProduct(ctx context.Context, productId uuid.UUID) (*dto.SegmentProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: productId})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product not found: %s", productId)
	}

	classification := s.classifier.Classify(ctx, product)

	// Fan out: one segment (and one assignment) per classified age range.
	// All writes share one transaction so a partial classification never
	// persists.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	segmentNames := make([]string, 0, len(classification.AgeRanges))
	for _, ageRange := range classification.AgeRanges {
		segment := &entity.Segment{
			Id:         uuid.New(),
			Name:       segmentName(product, classification),
			AgeRange:   ageRange,
			Gender:     classification.Gender,
			Categories: classification.SuggestedCategories,
			CreatedAt:  time.Now(),
		}
		if err := uow.SegmentRepository().Upsert(ctx, segment); err != nil {
			return nil, fmt.Errorf("upsert segment: %w", err)
		}

		assignment := &entity.ProductSegment{
			Id:         uuid.New(),
			ProductId:  product.Id,
			SegmentId:  segment.Id,
			Confidence: classification.Confidence,
			Reasoning:  classification.Reasoning,
			CreatedAt:  time.Now(),
		}
		if err := uow.ProductSegmentRepository().Upsert(ctx, assignment); err != nil {
			return nil, fmt.Errorf("upsert assignment: %w", err)
		}

		segmentNames = append(segmentNames, fmt.Sprintf("%s (%s)", segment.Name, ageRange))
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.SegmentProductResponse{
		ProductId:  product.Id,
		Segments:   segmentNames,
		Gender:     classification.Gender,
		Confidence: classification.Confidence,
		Reasoning:  classification.Reasoning,
	}, nil
}

// segmentName derives a stable segment name: the first suggested category,
// falling back to the product's own category, then a generic bucket.
func segmentName(product *entity.Product, c *segmentation.Classification) string {
	if len(c.SuggestedCategories) > 0 {
		return c.SuggestedCategories[0]
	}
	if product.Category != "" {
		return strings.ToLower(product.Category)
	}
	return "general"
}
