package bootstrap

import (
	"context"
	"log"
	"time"

	"orgnotes-be/internal/config"
	"orgnotes-be/internal/controller"
	"orgnotes-be/internal/pkg/logger"
	"orgnotes-be/internal/pkg/mailer"
	"orgnotes-be/internal/repository/memory"
	"orgnotes-be/internal/repository/unitofwork"
	"orgnotes-be/internal/service"
	"orgnotes-be/internal/websocket"
	"orgnotes-be/pkg/storage"

	pktNats "orgnotes-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const noteChangesTopic = "note_changes"

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	OrgController        controller.IOrgController
	NoteController       controller.INoteController
	AttachmentController controller.IAttachmentController
	DigestController     controller.IDigestController

	// Background Services (Exposed for main.go to run)
	ChangefeedService service.IChangefeedService
	AuditService      service.IAuditService

	// WebSockets
	WebSocketHub *websocket.Hub
	WsHandler    *websocket.Handler
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

	// In-memory one-time sign-in tokens
	signInTokens := memory.NewSignInTokenRepository(
		time.Duration(cfg.Auth.SignInTokenTTLMin) * time.Minute,
	)

	// 3. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
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

	// Object storage
	store, err := storage.NewS3(context.Background(), storage.S3Config{
		Region:            cfg.Storage.Region,
		AccessKeyID:       cfg.Storage.AccessKeyID,
		SecretAccessKey:   cfg.Storage.SecretAccessKey,
		AttachmentsBucket: cfg.Storage.AttachmentsBucket,
		SignedURLTTLSec:   cfg.Storage.SignedURLTTLSec,
	}, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize object storage: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/changefeed.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Services
	publisherService := service.NewPublisherService(noteChangesTopic, pubSub)

	orgService := service.NewOrgService(uowFactory)
	authService := service.NewAuthService(uowFactory, emailService, signInTokens, wsHub, cfg.Auth, cfg.App.ClientURL)
	noteService := service.NewNoteService(uowFactory, orgService, publisherService, natsPub)
	attachmentService := service.NewAttachmentService(uowFactory, orgService, store)
	digestService := service.NewDigestService(uowFactory)

	changefeedService := service.NewChangefeedService(pubSub, noteChangesTopic, wsHub)

	var auditService service.IAuditService
	if natsSub != nil {
		auditService = service.NewAuditService(natsSub, sysLogger)
	}

	// 5. Controllers
	wsHandler := websocket.NewHandler(wsHub, orgService.RequireMembership)

	return &Container{
		AuthController:       controller.NewAuthController(authService),
		OrgController:        controller.NewOrgController(orgService),
		NoteController:       controller.NewNoteController(noteService),
		AttachmentController: controller.NewAttachmentController(attachmentService),
		DigestController:     controller.NewDigestController(digestService),

		ChangefeedService: changefeedService,
		AuditService:      auditService,

		WebSocketHub: wsHub,
		WsHandler:    wsHandler,
	}
}
