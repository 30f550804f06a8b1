package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobboard-backend/config"
	_ "jobboard-backend/docs" // Important for Swagger
	v1 "jobboard-backend/internal/delivery/http/v1"
	"jobboard-backend/internal/delivery/worker"
	"jobboard-backend/internal/domain"
	"jobboard-backend/internal/repository/postgres"
	"jobboard-backend/internal/scheduler"
	"jobboard-backend/internal/usecase"
	"jobboard-backend/pkg/auth"
	"jobboard-backend/pkg/database"
	"jobboard-backend/pkg/email"
	"jobboard-backend/pkg/logger"
	"jobboard-backend/pkg/queue"
	"jobboard-backend/pkg/redis"
	"jobboard-backend/pkg/storage"
	"jobboard-backend/pkg/upload"
	"jobboard-backend/pkg/validation"
)

//go:generate swag init -g cmd/api/main.go -o docs --dir ../../

// @title           Job Board API
// @version         1.0
// @description     Job board backend: jobs, applications, plan-gated CV repository, blog and notifications.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Log.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting job board backend", "port", cfg.Port, "env", cfg.Environment)

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Redis (optional, rate limiting falls back to memory)
	healthChecks := map[string]usecase.HealthCheck{
		"database": dbPool.Ping,
	}
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		} else {
			defer redis.Close()
		}
		healthChecks["redis"] = redis.HealthCheck
	}

	// 5. Object storage (optional, uploads return 503 without it)
	var objectStore domain.ObjectStorage
	s3Store, err := storage.NewS3Store(ctx, storage.Config{
		Endpoint:        cfg.S3Endpoint,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		PublicBaseURL:   cfg.S3PublicBaseURL,
		PresignTTL:      cfg.S3PresignTTL,
	})
	switch {
	case err == nil:
		objectStore = s3Store
		healthChecks["storage"] = s3Store.Ping
		if cfg.ClamAVAddr != "" {
			scanner := upload.NewClamAVScanner(cfg.ClamAVAddr, 30*time.Second)
			objectStore = storage.NewScanningStore(s3Store, scanner)
			healthChecks["antivirus"] = scanner.Ping
		}
	case errors.Is(err, storage.ErrNotConfigured):
		logger.Log.Warn("Object storage not configured - uploads are disabled")
	default:
		logger.Log.Error("Failed to initialise object storage", "error", err)
		os.Exit(1)
	}

	// 6. Email
	emailService := email.NewEmailService(cfg)
	var mailer email.Sender
	if emailService.IsConfigured() {
		mailer = emailService
	} else {
		logger.Log.Warn("Email service not fully configured - contact form and email notifications are unavailable")
	}

	// 7. Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	adminRepo := postgres.NewAdminRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	companyProfileRepo := postgres.NewCompanyProfileRepository(dbPool)
	viewRepo := postgres.NewViewRepository(dbPool)
	notificationRepo := postgres.NewNotificationRepository(dbPool)
	planRepo := postgres.NewPlanRepository(dbPool)
	paymentRepo := postgres.NewPaymentRepository(dbPool)
	cvRepo := postgres.NewCVRepository(dbPool)
	blogRepo := postgres.NewBlogRepository(dbPool)

	// 8. Task queue. Workers only run after publishing starts, so the
	// handler can be bound once the usecases exist.
	var tasks *worker.TaskHandler
	handle := func(ctx context.Context, routingKey string, body []byte) error {
		return tasks.Handle(ctx, routingKey, body)
	}

	var publisher queue.Publisher
	var consumer *queue.RabbitConsumer
	if cfg.RabbitMQURL != "" {
		rp, err := queue.NewRabbitPublisher(cfg.RabbitMQURL)
		if err != nil {
			logger.Log.Error("Failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		publisher = rp
		consumer, err = queue.NewRabbitConsumer(cfg.RabbitMQURL, cfg.WorkerCount)
		if err != nil {
			logger.Log.Error("Failed to start RabbitMQ consumer", "error", err)
			os.Exit(1)
		}
	} else {
		publisher = queue.NewWorkerPool(cfg.WorkerCount, cfg.WorkerBacklog, handle)
	}

	// 9. UseCases
	validate := validation.NewForBinding()
	policy := usecase.NewAccessPolicy(usecase.DefaultPlanPolicies(cfg.PlanFreeLimit, cfg.PlanStarterLimit, cfg.PlanProfessionalLimit))

	viewUC := usecase.NewViewUsecase(viewRepo, cfg.ViewDedupWindow)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo, jobRepo, applicationRepo, mailer, cfg.FrontendURL)
	planUC := usecase.NewPlanUsecase(planRepo, paymentRepo, notificationUC, mailer, policy, usecase.PlanConfig{
		WebhookSecret:    cfg.PaymentWebhookSecret,
		DurationDays:     cfg.PlanDurationDays,
		ReminderLeadDays: cfg.PlanReminderLeadDays,
		FrontendURL:      cfg.FrontendURL,
	})
	authUC := usecase.NewAuthUsecase(userRepo)
	jobUC := usecase.NewJobUsecase(jobRepo, companyProfileRepo, viewUC, publisher, validate)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, objectStore, validate)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, candidateRepo, notificationUC)
	companyProfileUC := usecase.NewCompanyProfileUsecase(companyProfileRepo, objectStore, validate)
	adminUC := usecase.NewAdminUsecase(adminRepo, userRepo, jobRepo)
	contactUC := usecase.NewContactUsecase(emailService, publisher)
	cvUC := usecase.NewCVUsecase(cvRepo, objectStore, planUC, policy, viewUC, validate)
	blogUC := usecase.NewBlogUsecase(blogRepo, viewUC, validate)
	healthUC := usecase.NewHealthUsecase(healthChecks)

	tasks = worker.NewTaskHandler(notificationUC, contactUC)

	consumerCtx, stopConsumer := context.WithCancel(ctx)
	defer stopConsumer()
	consumerDone := make(chan struct{})
	if consumer != nil {
		go func() {
			defer close(consumerDone)
			if err := consumer.Consume(consumerCtx, worker.QueueName, tasks.Bindings(), tasks.Handle); err != nil {
				logger.Log.Error("Task consumer stopped", "error", err)
			}
		}()
	} else {
		close(consumerDone)
	}

	// 10. Scheduler
	cronScheduler := scheduler.New(planUC, cfg.PlanReminderCron)
	if err := cronScheduler.Start(); err != nil {
		logger.Log.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}

	// 11. Auth (HS256 secret and/or JWKS)
	var jwksProvider *auth.Provider
	if cfg.JWKSURL != "" {
		jwksProvider = auth.NewProvider(cfg.JWKSURL)
	}
	if cfg.JWTSecret == "" && jwksProvider == nil {
		logger.Log.Warn("Neither JWT_SECRET nor JWKS_URL configured - every protected route will return 401")
	}

	// 12. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:           authUC,
		JobUC:            jobUC,
		CandidateUC:      candidateUC,
		ApplicationUC:    applicationUC,
		AdminUC:          adminUC,
		CompanyProfileUC: companyProfileUC,
		ContactUC:        contactUC,
		PlanUC:           planUC,
		CVUC:             cvUC,
		BlogUC:           blogUC,
		NotificationUC:   notificationUC,
		HealthUC:         healthUC,
		Verifier:         auth.NewVerifier(cfg.JWTSecret, jwksProvider),
		Config:           cfg,
	})

	// 13. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	cronScheduler.Stop()
	// In-flight deliveries must settle before the channel closes
	stopConsumer()
	select {
	case <-consumerDone:
	case <-shutdownCtx.Done():
		logger.Log.Warn("Timed out waiting for task consumer to drain")
	}
	if consumer != nil {
		consumer.Close()
	}
	// Drains queued in-process tasks
	publisher.Close()

	logger.Log.Info("Server exiting")
}
