package bootstrap

import (
	"context"
	"log"
	"time"

	"shopchat-be/internal/config"
	"shopchat-be/internal/controller"
	"shopchat-be/internal/pkg/logger"
	"shopchat-be/internal/repository/implementation"
	"shopchat-be/internal/repository/memory"
	"shopchat-be/internal/repository/unitofwork"
	"shopchat-be/internal/service"
	"shopchat-be/internal/worker"
	"shopchat-be/pkg/cache"
	"shopchat-be/pkg/discovery/intent"
	"shopchat-be/pkg/discovery/relevance"
	"shopchat-be/pkg/discovery/retrieval"
	"shopchat-be/pkg/discovery/supplement"
	"shopchat-be/pkg/llm/factory"
	"shopchat-be/pkg/marketplace"
	"shopchat-be/pkg/segmentation"

	pktNats "shopchat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController    controller.IChatController
	ProductController controller.IProductController
	JobController     controller.IJobController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	JobWorker       *worker.Worker

	// Infrastructure handles exposed for graceful shutdown
	NatsPublisher *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	stdLogger := log.Default()

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Cache store (memory by default, redis when configured)
	var cacheStore cache.Store
	if cfg.Cache.Backend == "redis" {
		opt, err := redis.ParseURL(cfg.Cache.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.Cache.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		cacheStore = cache.NewRedisStore(rdb)
		sysLogger.Info("bootstrap", "Using Redis cache backend", nil)
	} else {
		cacheStore = cache.NewMemoryStore()
		sysLogger.Info("bootstrap", "Using in-memory cache backend", nil)
	}

	// 3. Providers
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.HuggingFaceKey,
		time.Duration(cfg.Ai.TimeoutSeconds)*time.Second,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	sysLogger.Info("bootstrap", "LLM provider initialized", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	marketplaceClient := marketplace.NewRainforestClient(
		cfg.Marketplace.RainforestAPIKey,
		cfg.Marketplace.AmazonDomain,
		time.Duration(cfg.Marketplace.TimeoutSeconds)*time.Second,
	)

	// 4. Discovery pipeline
	sessionRepo := memory.NewSessionRepository(cacheStore)
	productRepo := implementation.NewProductRepository(db)
	productSegmentRepo := implementation.NewProductSegmentRepository(db)

	extractor := intent.NewExtractor(llmProvider, stdLogger)
	engine := retrieval.NewEngine(productRepo, productSegmentRepo, cacheStore, stdLogger, retrieval.DefaultConfig())
	filter := relevance.NewFilter(llmProvider, stdLogger)
	supplementer := supplement.NewClient(marketplaceClient, cacheStore, stdLogger, cfg.Marketplace.MaxItems)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.IngestTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.IngestTopic,
		uowFactory,
		cfg.Worker.MaxAttempts,
	)

	classifier := segmentation.NewClassifier(llmProvider, stdLogger)
	segmentationService := service.NewSegmentationService(uowFactory, classifier)

	chatService := service.NewChatService(
		sessionRepo,
		extractor,
		engine,
		filter,
		supplementer,
		stdLogger,
	)
	productService := service.NewProductService(uowFactory, publisherService)
	jobService := service.NewJobService(uowFactory, natsPub, stdLogger)

	// 6. Background worker
	workerLogger := logger.NewIsolatedLogger("logs/worker.log")
	jobWorker := worker.New(
		uowFactory,
		marketplaceClient,
		segmentationService,
		natsPub,
		workerLogger,
		worker.Config{
			PollInterval: time.Duration(cfg.Worker.PollIntervalSeconds) * time.Second,
			BatchSize:    cfg.Worker.BatchSize,
		},
	)

	// 7. Controllers
	return &Container{
		ChatController:    controller.NewChatController(chatService),
		ProductController: controller.NewProductController(productService, segmentationService),
		JobController:     controller.NewJobController(jobService),

		ConsumerService: consumerService,
		JobWorker:       jobWorker,
		NatsPublisher:   natsPub,
	}
}
