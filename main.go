package main

import (
	"context"
	"log"
	"strconv"
	"strings"

	api "jobdeck-backend/cmd/api"
	appdomain "jobdeck-backend/internal/application/domain"
	appRepo "jobdeck-backend/internal/application/repository"
	"jobdeck-backend/internal/application/scheduler"
	appUsecase "jobdeck-backend/internal/application/usecase"
	authdomain "jobdeck-backend/internal/auth/domain"
	authRepo "jobdeck-backend/internal/auth/repository"
	authUsecase "jobdeck-backend/internal/auth/usecase"
	"jobdeck-backend/internal/notification"
	taskdomain "jobdeck-backend/internal/task/domain"
	taskRepo "jobdeck-backend/internal/task/repository"
	taskUsecase "jobdeck-backend/internal/task/usecase"
	"jobdeck-backend/pkg/ai"
	"jobdeck-backend/pkg/chroma"
	"jobdeck-backend/pkg/config"
	"jobdeck-backend/pkg/database"
	"jobdeck-backend/pkg/fcm"
	"jobdeck-backend/pkg/gmail"
	"jobdeck-backend/pkg/imap"
	"jobdeck-backend/pkg/match"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&authdomain.FCMToken{},
		&taskdomain.Task{},
		&appdomain.Application{},
		&appdomain.Interaction{},
		&appdomain.SyncRun{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	fcmTokenRepo := authRepo.NewFCMTokenRepository(db)
	taskRepository := taskRepo.NewGormTaskRepository(db)
	applicationRepo := appRepo.NewGormApplicationRepository(db)
	syncRunRepo := appRepo.NewGormSyncRunRepository(db)

	// Mailbox services
	gmailService := gmail.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret)
	imapService := imap.NewService(cfg.SyncWindowDays)

	// AI extraction service
	extractor, err := ai.NewExtractorService(ai.Config{
		Provider:      ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey:  cfg.GeminiAPIKey,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
	})
	if err != nil {
		log.Fatal("Failed to initialize AI extraction service:", err)
	}
	log.Printf("AI extraction service initialized with provider: %s", cfg.AIProvider)

	// Semantic search over interactions (optional)
	var searcher appUsecase.InteractionSearcher
	if cfg.ChromaAPIKey != "" {
		chromaClient, err := chroma.NewChromaClient(cfg)
		if err != nil {
			log.Printf("[WARN] Failed to initialize Chroma client (semantic search disabled): %v", err)
		} else {
			searcher = chromaClient
		}
	} else {
		log.Println("[WARN] CHROMA_API_KEY not set, semantic search disabled")
	}

	// FCM push notifications (optional)
	var fcmClient *fcm.Client
	if cfg.FirebaseCredentials != "" {
		fcmClient, err = fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push notifications disabled): %v", err)
		}
	}

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, fcmTokenRepo, cfg)
	taskUsecaseInstance := taskUsecase.NewTaskUsecase(taskRepository)
	applicationUsecaseInstance := appUsecase.NewApplicationUsecase(applicationRepo, syncRunRepo, searcher)

	syncQuery := buildSyncQuery(cfg)
	provider := appUsecase.NewMailboxProvider(gmailService, imapService, userRepo)
	resolver := match.NewResolver(cfg.CompanyMatcher, cfg.FuzzyMaxDistance)
	syncUsecaseInstance := appUsecase.NewSyncUsecase(
		userRepo,
		applicationRepo,
		syncRunRepo,
		provider,
		extractor,
		resolver,
		searcher,
		appUsecase.SyncConfig{
			Query:       syncQuery,
			MaxResults:  cfg.SyncMaxResults,
			CallTimeout: cfg.SyncCallTimeout,
			PubSubTopic: cfg.GooglePubSubTopic,
		},
	)

	// Background sync scheduler
	syncScheduler := scheduler.NewSyncScheduler(userRepo, fcmTokenRepo, fcmClient, syncUsecaseInstance, cfg.SyncInterval, 3)
	syncScheduler.Start()
	defer syncScheduler.Stop()

	// Gmail push notifications via Pub/Sub (optional)
	if cfg.GoogleProjectID != "" {
		topicName := cfg.GooglePubSubTopic
		if parts := strings.Split(topicName, "/"); len(parts) > 1 {
			topicName = parts[len(parts)-1]
		}

		notifService, err := notification.NewService(cfg.GoogleProjectID, topicName, cfg.GoogleCredentials, userRepo, syncScheduler)
		if err != nil {
			log.Printf("[ERROR] Failed to initialize notification service: %v", err)
		} else {
			go notifService.Start(context.Background())
		}
	} else {
		log.Println("[WARN] GOOGLE_PROJECT_ID not configured, push-triggered sync disabled")
	}

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, taskUsecaseInstance, applicationUsecaseInstance, syncUsecaseInstance, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// buildSyncQuery combines the configured subject query with the recency
// window so one Gmail query covers both
func buildSyncQuery(cfg *config.Config) string {
	query := cfg.SyncQuery
	if cfg.SyncWindowDays > 0 {
		query = "newer_than:" + strconv.Itoa(cfg.SyncWindowDays) + "d " + query
	}
	return strings.TrimSpace(query)
}
