package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"loan-marketplace-be/internal/config"
	"loan-marketplace-be/internal/controller"
	"loan-marketplace-be/internal/pkg/logger"
	"loan-marketplace-be/internal/pkg/mailer"
	"loan-marketplace-be/internal/repository/session"
	"loan-marketplace-be/internal/repository/unitofwork"
	"loan-marketplace-be/internal/service"
	"loan-marketplace-be/internal/websocket"
	"loan-marketplace-be/pkg/chatflow"
	"loan-marketplace-be/pkg/credit"
	"loan-marketplace-be/pkg/extraction/factory"

	pkgNats "loan-marketplace-be/pkg/nats"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	DocumentController controller.IDocumentController
	KycController      controller.IKycController
	CreditController   controller.ICreditController
	LenderController   controller.ILenderController
	UserController     controller.IUserController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	extractor, err := factory.NewExtractionProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiApiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize extraction provider: %v", err)
	}
	log.Printf("[INFO] Using extraction provider: %s", cfg.Ai.Provider)

	bureau := credit.NewMockBureau(time.Duration(cfg.Bureau.DelayMs) * time.Millisecond)

	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)

	// Sessions live in Redis so chat survives restarts; the in-memory
	// store keeps local development working without one.
	sessionTTL := time.Duration(cfg.App.SessionTTLMinutes) * time.Minute
	var sessionStore session.IStore
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Using in-memory session store", err)
		rdb = nil
		sessionStore = session.NewMemoryStore(sessionTTL)
	} else {
		sessionStore = session.NewRedisStore(rdb, sessionTTL)
	}

	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run()

	// 4. Services
	offerService := service.NewOfferService(uowFactory, sysLogger)
	userService := service.NewUserService(uowFactory, sessionStore, sysLogger)

	machine := chatflow.NewMachine(extractor, bureau, offerService, userService, sysLogger)

	chatService := service.NewChatService(machine, sessionStore, sysLogger)
	documentService := service.NewDocumentService(uowFactory, sessionStore, extractor, sysLogger)

	publisherService := service.NewPublisherService(pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		service.TopicApplicationSubmitted,
		uowFactory,
		emailService,
		wsHub,
	)

	kycService := service.NewKycService(uowFactory, sessionStore, publisherService, sysLogger)
	creditService := service.NewCreditService(bureau)
	lenderService := service.NewLenderService(uowFactory, emailService, natsPub, sysLogger)
	messageService := service.NewMessageService(uowFactory, sessionStore, sysLogger)

	// 5. Controllers
	return &Container{
		ChatController:     controller.NewChatController(chatService),
		DocumentController: controller.NewDocumentController(documentService),
		KycController:      controller.NewKycController(kycService),
		CreditController:   controller.NewCreditController(creditService),
		LenderController:   controller.NewLenderController(lenderService, messageService),
		UserController:     controller.NewUserController(userService, messageService),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
	}
}
