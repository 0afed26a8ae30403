package bootstrap

import (
	"context"
	"log"
	"time"

	"viewset-bot/internal/config"
	"viewset-bot/internal/controller"
	"viewset-bot/internal/handlers"
	"viewset-bot/internal/pkg/logger"
	"viewset-bot/internal/repository/cache"
	"viewset-bot/internal/repository/implementation"
	"viewset-bot/internal/repository/memory"
	"viewset-bot/internal/repository/unitofwork"
	"viewset-bot/internal/service"
	"viewset-bot/internal/viewsets"
	"viewset-bot/internal/websocket"
	"viewset-bot/pkg/bot"
	"viewset-bot/pkg/cursor"
	"viewset-bot/pkg/dispatcher"
	"viewset-bot/pkg/i18n"
	"viewset-bot/pkg/routing"
	"viewset-bot/pkg/worker"

	pktNats "viewset-bot/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	WebhookController controller.IWebhookController
	ConsoleController controller.IConsoleController
	HealthController  controller.IHealthController

	// Background Services (Exposed for main.go to run)
	AuditService    service.IAuditService
	ActivityService *service.ActivityService
	BotService      service.IBotService

	WebSocketHub *websocket.Hub
	Pool         *worker.Pool
	Logger       logger.ILogger

	closers []func()
}

// Close releases broker connections after the pool has drained.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	translator := i18n.MustNew()

	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	// NATS
	var publisher service.EventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		publisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}
	var subscriber service.EventSubscriber
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	} else {
		subscriber = natsSub
		c.closers = append(c.closers, natsSub.Close)
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
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	c.closers = append(c.closers, func() { _ = rdb.Close() })

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/console.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run(ctx)

	// Session cursors
	cursorTTL := time.Duration(cfg.Bot.CursorTTLHours) * time.Hour
	var cursors cursor.Store
	switch cfg.Bot.CursorBackend {
	case config.CursorBackendRedis:
		cursors = cache.NewCursorRepository(rdb, cursorTTL)
	case config.CursorBackendMemory:
		cursors = memory.NewCursorRepository(cursorTTL)
	default:
		cursors = implementation.NewParticipantCursorStore(db)
	}
	log.Printf("[INFO] Using cursor backend: %s", cfg.Bot.CursorBackend)

	// 4. Services
	participantService := service.NewParticipantService(uowFactory, publisher, cfg.Bot.IsStaff, cfg.Bot.DefaultLocale, sysLogger)
	menuService := service.NewMenuService(uowFactory)
	auditService := service.NewAuditService(pubSub, cfg.Bot.AuditTopic, uowFactory, publisher, sysLogger)

	// 5. Routes
	table := routing.NewTable()
	if err := viewsets.Register(table, uowFactory, translator); err != nil {
		log.Fatalf("[FATAL] Failed to mount viewsets: %v", err)
	}
	plain := handlers.New(table, viewsets.NewProfileViewset(uowFactory, translator), translator, sysLogger)
	if err := plain.Register(); err != nil {
		log.Fatalf("[FATAL] Failed to register handlers: %v", err)
	}

	var delivery bot.Delivery = wsHub
	d := dispatcher.New(dispatcher.Options{
		Table:        table,
		Cursors:      cursors,
		Participants: participantService,
		Fallback:     menuService,
		Delivery:     delivery,
		Auditor:      auditService,
		Translator:   translator,
		Logger:       sysLogger,
	})

	pool := worker.NewPool(cfg.Bot.WorkerPoolSize, sysLogger)
	botService := service.NewBotService(d, pool, sysLogger)

	wsHub.OnInbound(func(ctx context.Context, event *bot.Event) {
		if err := botService.Submit(ctx, event); err != nil {
			wsLogger.Warn("Console", "Failed to schedule console event", map[string]interface{}{
				"participant_id": event.ParticipantID,
				"error":          err.Error(),
			})
		}
	})

	var activityService *service.ActivityService
	if subscriber != nil {
		activityService = service.NewActivityService(subscriber, wsHub, wsLogger)
	}

	// 6. Controllers
	c.WebhookController = controller.NewWebhookController(botService, cfg.Bot.WebhookSecret, sysLogger)
	c.ConsoleController = controller.NewConsoleController(ctx, wsHub, cfg.Auth.JWTSecret, sysLogger)
	c.HealthController = controller.NewHealthController()
	c.AuditService = auditService
	c.ActivityService = activityService
	c.BotService = botService
	c.WebSocketHub = wsHub
	c.Pool = pool
	return c
}
