package bootstrap

import (
	"context"
	"time"

	"study-assistant-be/internal/config"
	"study-assistant-be/internal/controller"
	"study-assistant-be/internal/handler"
	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/internal/pkg/mailer"
	"study-assistant-be/internal/pkg/serverutils"
	"study-assistant-be/internal/repository/cache"
	"study-assistant-be/internal/repository/contract"
	"study-assistant-be/internal/repository/memory"
	"study-assistant-be/internal/repository/unitofwork"
	"study-assistant-be/internal/service"
	"study-assistant-be/internal/websocket"
	"study-assistant-be/pkg/events"
	"study-assistant-be/pkg/exam"
	"study-assistant-be/pkg/examgen"
	"study-assistant-be/pkg/llm"
	"study-assistant-be/pkg/llm/factory"
	"study-assistant-be/pkg/notegen"
	"study-assistant-be/pkg/tutor"

	pktNats "study-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	UserController    controller.IUserController
	ChatController    controller.IChatController
	SessionController controller.ISessionController
	NoteController    controller.INoteController
	ExamController    controller.IExamController

	// Realtime feed
	FeedHandler  *handler.FeedHandler
	WebSocketHub *websocket.Hub

	// Background services, started by Start
	ConsumerService     service.IConsumerService
	NotificationService *service.NotificationService

	// Database backs the health check
	Database unitofwork.RepositoryFactory

	Logger logger.ILogger

	closers []func()
}

// NewLLMProvider builds the configured model client with call logging to its own file.
func NewLLMProvider(cfg *config.Config) (llm.LLMProvider, error) {
	provider, err := factory.NewLLMProvider(factory.Config{
		Provider: cfg.Ai.Provider,
		Model:    cfg.Ai.Model,
		BaseURL:  cfg.Ai.BaseURL,
		APIKey:   cfg.Ai.APIKey,
		Timeout:  cfg.Ai.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return llm.WithLogging(provider, cfg.Ai.Provider, logger.NewIsolatedLogger(cfg.App.LLMLogFilePath)), nil
}

// NewContainer wires every component. Redis, NATS and SMTP are optional: without
// them the feed stays local, domain events are dropped and no mail is sent.
func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger, llmProvider llm.LLMProvider) *Container {
	c := &Container{Logger: sysLogger}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	c.Database = uowFactory
	tokens := serverutils.NewTokenManager(cfg.App.JWTSecret, cfg.App.JWTTTL)

	var emailService mailer.IEmailService = mailer.NopEmailService{}
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
		)
	}

	// 2. In-process bus for list changes
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	rdb := connectRedis(cfg.App.RedisURL, sysLogger)
	var blocklist contract.TokenBlocklist = memory.NewTokenBlocklist()
	if rdb != nil {
		blocklist = cache.NewRedisTokenBlocklist(rdb)
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	var eventPublisher service.EventPublisher
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect NATS publisher", map[string]interface{}{"error": err.Error()})
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}

		natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect NATS subscriber", map[string]interface{}{"error": err.Error()})
			natsSub = nil
		} else {
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	// 4. Realtime feed
	feedLogger := logger.NewIsolatedLogger(cfg.App.FeedLogFilePath)
	c.WebSocketHub = websocket.NewHub(rdb, feedLogger)
	c.ConsumerService = service.NewConsumerService(pubSub, events.CollectionChanged, uowFactory, c.WebSocketHub, feedLogger)
	c.WebSocketHub.OnConnect(func(userID uuid.UUID) {
		c.ConsumerService.PushAll(context.Background(), userID)
	})

	// 5. Services
	publisherService := service.NewPublisherService(events.CollectionChanged, pubSub, sysLogger)

	authService := service.NewAuthService(uowFactory, tokens, blocklist, c.WebSocketHub, eventPublisher, sysLogger)
	userService := service.NewUserService(uowFactory)
	attempts := memory.NewAttemptRepository(cfg.App.ExamAttemptTTL)
	sessionService := service.NewSessionService(uowFactory, attempts, publisherService)
	noteService := service.NewNoteService(uowFactory, notegen.New(llmProvider), publisherService, eventPublisher, sysLogger)
	examService := service.NewExamService(
		uowFactory,
		examgen.New(llmProvider),
		attempts,
		exam.GraderByName(cfg.App.ExamGrader),
		publisherService,
		eventPublisher,
		sysLogger,
	)
	chatService := service.NewChatService(
		uowFactory,
		tutor.New(llmProvider),
		notegen.New(llmProvider),
		noteService,
		examService,
		publisherService,
		sysLogger,
	)

	if natsSub != nil {
		c.NotificationService = service.NewNotificationService(natsSub, emailService, sysLogger)
	}

	// 6. Controllers
	authMiddleware := serverutils.JwtMiddleware(tokens, blocklist)

	c.AuthController = controller.NewAuthController(authService, authMiddleware)
	c.UserController = controller.NewUserController(userService, authMiddleware)
	c.ChatController = controller.NewChatController(chatService, authMiddleware)
	c.SessionController = controller.NewSessionController(sessionService, authMiddleware)
	c.NoteController = controller.NewNoteController(noteService, authMiddleware)
	c.ExamController = controller.NewExamController(examService, authMiddleware)
	c.FeedHandler = handler.NewFeedHandler(c.WebSocketHub, authMiddleware, feedLogger)

	return c
}

// Start runs the hub and the consumers until ctx is cancelled.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)

	if err := c.ConsumerService.Consume(ctx); err != nil {
		return err
	}

	if c.NotificationService != nil {
		if err := c.NotificationService.Start(ctx); err != nil {
			c.Logger.Warn("BOOTSTRAP", "Notification service not started", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func connectRedis(url string, log logger.ILogger) *redis.Client {
	if url == "" {
		return nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("BOOTSTRAP", "Failed to parse Redis URL, using it as address", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("BOOTSTRAP", "Failed to connect to Redis, feed stays local", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return nil
	}
	return rdb
}
