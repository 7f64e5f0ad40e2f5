package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"frontdesk/config"
	"frontdesk/cron"
	"frontdesk/database"
	bookingRepo "frontdesk/database/repository/booking"
	knowledgeRepo "frontdesk/database/repository/knowledge"
	tenantRepo "frontdesk/database/repository/tenant"
	"frontdesk/handlers"
	"frontdesk/middleware"
	"frontdesk/routes"
	"frontdesk/services/dialog"
	"frontdesk/services/intelligence"
	"frontdesk/services/notification"
	"frontdesk/services/session"
	"frontdesk/services/telemetry"
	"frontdesk/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	tenants := tenantRepo.NewMongoTenantRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	knowledge := knowledgeRepo.NewMongoKnowledgeRepo()

	// Session store.
	ttl := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	store := session.NewRedisStore(utils.GetSessionCacheClient(), ttl)

	// Collaborators.
	retriever := intelligence.NewSnippetRetriever(knowledge, config.AppConfig.KnowledgeMinScore)

	var oracle intelligence.Oracle
	if config.AppConfig.GeminiAPIKey != "" {
		g, err := intelligence.NewGeminiOracle(config.AppConfig.GeminiAPIKey)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize oracle: %v", err)
		}
		oracle = g
	} else {
		logger.Warn("no Gemini API key configured, running without generative fallback")
	}

	var notifier notification.Notifier = notification.NopNotifier{}
	if utils.FCMClient != nil {
		notifier = notification.NewFCMNotifier()
	}

	recorder := telemetry.NewAsynqRecorder()
	defer recorder.Close()

	orchestrator := dialog.NewOrchestrator(store, tenants, retriever, oracle, bookings, notifier, recorder)

	handlerBundle := &handlers.HandlerBundle{
		Orchestrator:  orchestrator,
		TenantRepo:    tenants,
		BookingRepo:   bookings,
		KnowledgeRepo: knowledge,
		SessionStore:  store,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background workers.
	cron.InitTelemetryWorker(database.MongoClient)
	sweeper := cron.InitSweeper()
	defer sweeper.Stop()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
