// FILE: internal/service/product_service.go
package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"shopchat-be/internal/dto"
	"shopchat-be/internal/entity"
	"shopchat-be/internal/repository/unitofwork"
	"shopchat-be/pkg/discovery/intent"

	"github.com/google/uuid"
)

type IProductService interface {
	// Ingest persists a new product and announces it on the ingestion topic.
	// The announcement is what schedules the processing pipeline.
	Ingest(ctx context.Context, req *dto.IngestProductRequest) (*dto.IngestProductResponse, error)
}

type productService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewProductService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
) IProductService {
	return &productService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *productService) Ingest(ctx context.Context, req *dto.IngestProductRequest) (*dto.IngestProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	keywords := req.Keywords
	if len(keywords) == 0 {
		keywords = intent.Tokenize(req.Title)
	}
	for i, k := range keywords {
		keywords[i] = strings.ToLower(strings.TrimSpace(k))
	}

	product := &entity.Product{
		Id:          uuid.New(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Brand:       req.Brand,
		Category:    req.Category,
		Price:       req.Price,
		ImageUrl:    req.ImageUrl,
		ProductUrl:  req.ProductUrl,
		Keywords:    keywords,
		CreatedAt:   time.Now(),
	}

	if err := uow.ProductRepository().Create(ctx, product); err != nil {
		return nil, err
	}

	payload := dto.PublishProductIngestedMessage{
		ProductId: product.Id,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, payloadJson); err != nil {
		return nil, err
	}

	return &dto.IngestProductResponse{
		Id:        product.Id,
		CreatedAt: product.CreatedAt,
	}, nil
}
