package worker

import (
	"context"
	"fmt"
	"time"

	"shopchat-be/internal/entity"
	"shopchat-be/internal/repository/specification"
	"shopchat-be/internal/repository/unitofwork"
	"shopchat-be/pkg/marketplace"

	"github.com/google/uuid"
)

// runEnrich fills product gaps from the first marketplace listing matching
// the title, then chains a SEGMENT job so classification runs against the
// enriched record.
func (w *Worker) runEnrich(ctx context.Context, uow unitofwork.UnitOfWork, job *entity.ProcessingJob) error {
	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: job.ProductId})
	if err != nil {
		return fmt.Errorf("load product: %w", err)
	}
	if product == nil {
		return fmt.Errorf("product not found: %s", job.ProductId)
	}

	resp, err := w.marketplaceProvider.Search(ctx, product.Title, marketplace.SearchOptions{
		Category: product.Category,
		MaxItems: 1,
	})
	if err != nil {
		return fmt.Errorf("marketplace lookup: %w", err)
	}

	if len(resp.Products) > 0 {
		listing := resp.Products[0]
		if product.Asin == "" {
			product.Asin = listing.Asin
		}
		if product.ImageUrl == "" {
			product.ImageUrl = listing.Image
		}
		if product.ProductUrl == "" {
			product.ProductUrl = listing.Link
		}
		if product.Price <= 0 {
			product.Price = listing.PriceValue
		}
		if product.Rating <= 0 {
			product.Rating = listing.Rating
			product.RatingsTotal = listing.RatingsTotal
		}
	} else {
		w.logger.Info("worker", "No marketplace match for product", map[string]interface{}{
			"product_id": product.Id.String(), "title": product.Title,
		})
	}

	now := time.Now()
	product.EnrichedAt = &now
	product.UpdatedAt = &now
	if err := uow.ProductRepository().Update(ctx, product); err != nil {
		return fmt.Errorf("save enriched product: %w", err)
	}

	return w.chainSegmentJob(ctx, uow, job)
}

// chainSegmentJob queues SEGMENT after a successful ENRICH, unless one is
// already queued, running or done for this product.
func (w *Worker) chainSegmentJob(ctx context.Context, uow unitofwork.UnitOfWork, job *entity.ProcessingJob) error {
	exists, err := uow.JobRepository().ExistsForProductStage(ctx, job.ProductId, entity.JobStageSegment,
		[]string{entity.JobStatusPending, entity.JobStatusProcessing, entity.JobStatusCompleted})
	if err != nil {
		return fmt.Errorf("check segment job: %w", err)
	}
	if exists {
		return nil
	}

	segmentJob := &entity.ProcessingJob{
		Id:          uuid.New(),
		ProductId:   job.ProductId,
		Stage:       entity.JobStageSegment,
		Status:      entity.JobStatusPending,
		MaxAttempts: job.MaxAttempts,
		CreatedAt:   time.Now(),
	}
	if err := uow.JobRepository().Create(ctx, segmentJob); err != nil {
		return fmt.Errorf("chain segment job: %w", err)
	}

	w.logger.Info("worker", "Chained SEGMENT job", map[string]interface{}{
		"product_id": job.ProductId.String(), "job_id": segmentJob.Id.String(),
	})
	return nil
}

// runCategorize links the product to every category its text matches.
func (w *Worker) runCategorize(ctx context.Context, uow unitofwork.UnitOfWork, job *entity.ProcessingJob) error {
	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: job.ProductId})
	if err != nil {
		return fmt.Errorf("load product: %w", err)
	}
	if product == nil {
		return fmt.Errorf("product not found: %s", job.ProductId)
	}

	matched := matchCategories(product.Title, product.Description)
	if product.Category != "" && !containsString(matched, product.Category) {
		matched = append(matched, product.Category)
	}

	for _, name := range matched {
		category, err := uow.CategoryRepository().UpsertByName(ctx, name)
		if err != nil {
			return fmt.Errorf("upsert category %q: %w", name, err)
		}
		if err := uow.CategoryRepository().LinkProduct(ctx, product.Id, category.Id); err != nil {
			return fmt.Errorf("link category %q: %w", name, err)
		}
	}

	w.logger.Info("worker", "Product categorized", map[string]interface{}{
		"product_id": product.Id.String(), "categories": matched,
	})
	return nil
}

// runSegment delegates to the segmentation service, which owns the
// classify-and-persist transaction.
func (w *Worker) runSegment(ctx context.Context, job *entity.ProcessingJob) error {
	_, err := w.segmentationService.SegmentProduct(ctx, job.ProductId)
	if err != nil {
		return fmt.Errorf("segment product: %w", err)
	}
	return nil
}

func containsString(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}
