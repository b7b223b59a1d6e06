package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coolrentals/config"
	"coolrentals/cron"
	"coolrentals/database"
	adminRepo "coolrentals/database/repository/admin"
	inquiryRepo "coolrentals/database/repository/inquiry"
	servicingRepo "coolrentals/database/repository/servicing"
	submissionsRepo "coolrentals/database/repository/submissions"
	unitRepo "coolrentals/database/repository/unit"
	"coolrentals/handlers"
	"coolrentals/routes"
	"coolrentals/services/admin"
	"coolrentals/services/inquiry"
	"coolrentals/services/notification"
	"coolrentals/services/servicing"
	"coolrentals/services/storage"
	"coolrentals/services/submissions"
	"coolrentals/services/units"
	"coolrentals/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	if err := utils.InitAuthCache(); err != nil {
		logger.Warn("Redis unavailable; admin logout will not revoke tokens", zap.Error(err))
	}

	rootCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(rootCtx, 30*time.Second, utils.AuthCacheClient, database.MongoClient)

	// notifications.
	sender := newSender(logger)
	var (
		queue   notification.Enqueuer
		qClient *asynq.Client
		qWorker *asynq.Server
	)
	if config.AppConfig.NotifyAsync && config.AppConfig.RedisAddr != "" {
		qClient = cron.NewQueueClient()
		queue = notification.QueueEnqueuer{Client: qClient}
		qWorker = cron.InitNotificationWorker(sender)
	}
	dispatcher := notification.NewDispatcher(sender, queue, config.AppConfig.AdminEmail, logger.Named("notification"))

	// repositories.
	unitStore := unitRepo.NewMongoUnitRepo()
	inquiryStore := inquiryRepo.NewMongoInquiryRepo()
	serviceStore := servicingRepo.NewMongoServiceRepo()
	bookingStore := servicingRepo.NewMongoBookingRepo()
	requestStore := servicingRepo.NewMongoRequestRepo()
	adminStore, err := adminRepo.NewMongoAdminRepo()
	if err != nil {
		logger.Fatal("main: failed to initialize admin repository", zap.Error(err))
	}

	// services.
	tokens := utils.NewTokenStore(utils.AuthCacheClient)
	unitService := units.NewDefaultUnitService(unitStore)
	inquiryService := inquiry.NewDefaultInquiryService(inquiryStore, unitService, dispatcher)
	catalogService := servicing.NewDefaultCatalogService(serviceStore)
	bookingService := servicing.NewDefaultBookingService(bookingStore, serviceStore, dispatcher, config.Location())
	requestService := servicing.NewDefaultRequestService(requestStore, dispatcher)
	submissionService := &submissions.DefaultSubmissionService{
		Leads:    submissionsRepo.NewMongoLeadRepo(),
		Vendors:  submissionsRepo.NewMongoVendorRepo(),
		Contacts: submissionsRepo.NewMongoContactRepo(),
		Notifier: dispatcher,
	}
	adminService := admin.NewDefaultAdminService(adminStore, tokens, config.AppConfig.JWTExpire)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Tokens:      tokens,
		Units:       handlers.NewUnitHandler(unitService, inquiryService),
		Servicing:   handlers.NewServicingHandler(catalogService, bookingService, requestService),
		Submissions: handlers.NewSubmissionHandler(submissionService),
		Admin:       handlers.NewAdminHandler(adminService),
		Storage:     handlers.NewStorageHandler(storage.FromConfig(config.AppConfig)),
	}
	router := routes.NewRouter(handlerBundle, logger)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "5000"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s (API base /api)", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if qWorker != nil {
		qWorker.Shutdown()
	}
	if qClient != nil {
		qClient.Close()
	}
	if utils.AuthCacheClient != nil {
		utils.AuthCacheClient.Close()
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}

// newSender picks SMTP delivery when mail credentials are configured.
func newSender(logger *zap.Logger) notification.Sender {
	cfg := config.AppConfig
	if cfg.EmailUser == "" || cfg.EmailPassword == "" {
		logger.Warn("Email credentials not set; admin notifications will only be logged")
		return notification.LogSender{Logger: logger.Named("mail")}
	}
	from := cfg.EmailFrom
	if from == "" {
		from = cfg.EmailUser
	}
	return notification.NewSMTPSender(cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPassword, from)
}
