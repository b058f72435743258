package bootstrap

import (
	"context"
	"log"
	"time"

	"shop-assistant-be/internal/config"
	"shop-assistant-be/internal/controller"
	"shop-assistant-be/internal/pkg/logger"
	"shop-assistant-be/internal/repository/implementation"
	"shop-assistant-be/internal/repository/unitofwork"
	"shop-assistant-be/internal/service"
	"shop-assistant-be/pkg/assistant/intent"
	"shop-assistant-be/pkg/assistant/query"
	"shop-assistant-be/pkg/assistant/resolver"
	"shop-assistant-be/pkg/assistant/search"
	"shop-assistant-be/pkg/assistant/session"
	"shop-assistant-be/pkg/llm/factory"

	pktNats "shop-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const interactionTopic = "INTERACTION_LOG"

type Container struct {
	// Controllers
	ChatController    controller.IChatController
	CatalogController controller.ICatalogController
	CartController    controller.ICartController
	AdminController   controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// 3. Services
	publisherService := service.NewPublisherService(pubSub, interactionTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		interactionTopic,
		uowFactory,
		sysLogger,
	)

	aliasCache := service.NewAliasCacheService(
		uowFactory,
		time.Duration(cfg.Assistant.AliasCacheMinutes)*time.Minute,
		sysLogger,
	)

	extractor := query.NewExtractor(aliasCache)
	productRepo := implementation.NewProductRepository(db)
	executor := search.NewExecutor(extractor, productRepo, sysLogger).
		WithTrigramThreshold(cfg.Assistant.TrigramThreshold)

	contextStore := service.NewContextStoreService(
		uowFactory,
		cfg.Assistant.ContextRetention,
		time.Duration(cfg.Assistant.ContextTTLMinutes)*time.Minute,
		sysLogger,
	)

	cartService := service.NewCartService(uowFactory, natsPub, sysLogger, cfg.Catalog.DefaultBranchID)
	classifier := intent.NewClassifier(llmProvider, sysLogger)

	turnResolver := resolver.NewResolver(
		contextStore,
		executor,
		service.NewCartGateway(cartService),
		service.NewClassifierAdapter(classifier),
		sysLogger,
		cfg.Catalog.DefaultBranchID,
	)

	locker := session.NewLocker()
	chatService := service.NewChatService(turnResolver, locker, service.NewMessageDeduper(rdb, sysLogger), publisherService, sysLogger)
	catalogService := service.NewCatalogService(executor, natsPub, sysLogger, cfg.Catalog.DefaultBranchID, cfg.Catalog.SearchLimit)
	adminService := service.NewAdminService(uowFactory, contextStore, aliasCache, sysLogger)

	// 4. Controllers
	return &Container{
		ChatController:    controller.NewChatController(chatService, adminService),
		CatalogController: controller.NewCatalogController(catalogService),
		CartController:    controller.NewCartController(cartService),
		AdminController:   controller.NewAdminController(adminService),

		ConsumerService: consumerService,
	}
}
