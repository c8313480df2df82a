package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-summarizer-be/internal/config"
	"ai-summarizer-be/internal/constant"
	"ai-summarizer-be/internal/controller"
	"ai-summarizer-be/internal/pkg/logger"
	"ai-summarizer-be/internal/pkg/serverutils"
	"ai-summarizer-be/internal/repository/contract"
	"ai-summarizer-be/internal/repository/memory"
	"ai-summarizer-be/internal/repository/redisstore"
	"ai-summarizer-be/internal/repository/unitofwork"
	"ai-summarizer-be/internal/service"
	"ai-summarizer-be/internal/websocket"
	"ai-summarizer-be/pkg/assistant"
	"ai-summarizer-be/pkg/chat/prompt"
	"ai-summarizer-be/pkg/events"
	"ai-summarizer-be/pkg/extractor"
	"ai-summarizer-be/pkg/llm/factory"
	"ai-summarizer-be/pkg/metrics"

	pktNats "ai-summarizer-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	HealthController    controller.IHealthController
	AuthController      controller.IAuthController
	ChatController      controller.IChatController
	SummarizeController controller.ISummarizeController

	JwtMiddleware fiber.Handler
	Logger        logger.ILogger
	Metrics       *metrics.Metrics
	Registry      *prometheus.Registry

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	closers []func()
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) *Container {
	c := &Container{}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c.Logger = sysLogger

	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	c.Metrics = metrics.New(c.Registry)

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. Infrastructure
	var sink service.EventSink
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(ctx, cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			sink = natsPub
			c.closers = append(c.closers, natsPub.Close)
			c.startAudit(ctx, cfg)
		}
	}

	var rdb *redis.Client
	var denylist contract.TokenDenylistRepository = memory.NewTokenDenylist()
	if cfg.App.RedisURL != "" {
		client, err := redisstore.Connect(ctx, cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v (using in-memory token denylist)", err)
		} else {
			rdb = client
			denylist = redisstore.NewTokenDenylist(rdb)
			c.closers = append(c.closers, func() { rdb.Close() })
		}
	}

	// WebSocket Hub
	c.WebSocketHub = websocket.NewHub(rdb, logger.NewIsolatedLogger("logs/websocket.log"))

	// LLM
	llmProvider, err := factory.NewLLMProvider(cfg.Ai)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	gateway := assistant.New(llmProvider, prompt.NewBuilder(prompt.DefaultSystemPrompt), cfg.Ai.Temperature)

	maxUpload := int64(cfg.App.BodyLimitMB) << 20
	files := extractor.NewFiles(int(maxUpload))
	pages := extractor.NewWeb(30*time.Second, extractor.DefaultMaxBytes)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Chat.EventsTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Chat.EventsTopic, sink, sysLogger)

	authService := service.NewAuthService(uowFactory, publisherService, denylist, cfg.Auth, sysLogger)
	chatService := service.NewChatService(uowFactory, gateway, files, publisherService, c.Metrics, cfg.Chat, sysLogger)
	summarizeService := service.NewSummarizeService(gateway, files, pages, publisherService, c.Metrics, cfg.Summarize, sysLogger)

	// 5. Controllers
	c.JwtMiddleware = serverutils.JwtMiddleware(cfg.Auth.JwtSecret, denylist)
	c.HealthController = controller.NewHealthController(cfg.App.Name, cfg.App.Version)
	c.AuthController = controller.NewAuthController(authService)
	c.ChatController = controller.NewChatController(chatService, c.WebSocketHub, maxUpload)
	c.SummarizeController = controller.NewSummarizeController(summarizeService, maxUpload)

	return c
}

// startAudit keeps a durable JetStream consumer that appends every event to
// its own log file, independent of which instance produced it.
func (c *Container) startAudit(ctx context.Context, cfg *config.Config) {
	auditLogger := logger.NewIsolatedLogger("logs/events.log")
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, func(subject string, err error) {
		auditLogger.Error("AUDIT", "Event handling failed", map[string]interface{}{
			"subject": subject,
			"error":   err.Error(),
		})
	})
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		return
	}
	c.closers = append(c.closers, natsSub.Close)

	err = natsSub.Subscribe(ctx, pktNats.Subject(">"), constant.EventsAuditDurable, func(ctx context.Context, event events.Event) error {
		auditLogger.Info("AUDIT", event.EventType(), event.Payload())
		return nil
	})
	if err != nil {
		log.Printf("[WARN] Failed to subscribe audit consumer: %v", err)
	}
}

// Close releases brokers and connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
