// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"shopchat-be/internal/dto"
	"shopchat-be/internal/entity"
	"shopchat-be/internal/repository/specification"
	"shopchat-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	uowFactory  unitofwork.RepositoryFactory
	maxAttempts int
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	maxAttempts int,
) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		uowFactory:  uowFactory,
		maxAttempts: maxAttempts,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage schedules the initial pipeline jobs for an ingested
// product: ENRICH and CATEGORIZE. SEGMENT is chained later by the worker
// after a successful ENRICH.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishProductIngestedMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Scheduling pipeline jobs for ProductId: %s", payload.ProductId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: payload.ProductId})
	if err != nil {
		log.Printf("[ERROR] Failed to get product %s: %v", payload.ProductId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if product == nil {
		log.Printf("[ERROR] Product not found: %s", payload.ProductId)
		msg.Ack() // Product deleted? Ack.
		return
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	for _, stage := range []string{entity.JobStageEnrich, entity.JobStageCategorize} {
		exists, err := uow.JobRepository().ExistsForProductStage(ctx, product.Id, stage,
			[]string{entity.JobStatusPending, entity.JobStatusProcessing, entity.JobStatusCompleted})
		if err != nil {
			log.Printf("[ERROR] Failed to check existing %s job: %v", stage, err)
			msg.Nack()
			return
		}
		if exists {
			log.Printf("[INFO] %s job already scheduled for product %s, skipping", stage, product.Id)
			continue
		}

		job := &entity.ProcessingJob{
			Id:          uuid.New(),
			ProductId:   product.Id,
			Stage:       stage,
			Status:      entity.JobStatusPending,
			MaxAttempts: cs.maxAttempts,
			CreatedAt:   time.Now(),
		}
		if err := uow.JobRepository().Create(ctx, job); err != nil {
			log.Printf("[ERROR] Failed to create %s job: %v", stage, err)
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Pipeline jobs scheduled for ProductId: %s", payload.ProductId)
	msg.Ack()
}
