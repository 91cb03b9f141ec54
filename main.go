// File: musebot/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"musebot/config"
	"musebot/database"
	"musebot/database/repository"
	"musebot/handlers"
	"musebot/middleware"
	"musebot/models"
	"musebot/routes"
	"musebot/services/booking"
	"musebot/services/chat"
	"musebot/services/distance"
	"musebot/services/notification"
	"musebot/services/rag"
	"musebot/store"
	"musebot/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()

	// Session storage: in-memory by default, Redis when configured.
	var sessions store.SessionStore
	if strings.EqualFold(config.AppConfig.SessionStore, "redis") {
		sessions = store.NewRedisSessionStore(utils.GetSessionCacheClient(), 30*time.Minute)
	} else {
		sessions = store.NewMemorySessionStore()
	}
	pending := store.NewMemoryPendingPaymentStore()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	bookingRepo := repository.NewMongoBookingRepo()

	// Collaborators.
	docs, err := rag.LoadDocs(config.AppConfig.DataDir)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load knowledge base: %v", err)
	}
	responder, err := rag.NewGeminiResponder(config.AppConfig.GeminiAPIKey, docs)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize responder: %v", err)
	}

	distanceSvc := distance.NewService(
		config.AppConfig.ORSBaseURL,
		config.AppConfig.ORSAPIKey,
		models.GeoPoint{Lon: config.AppConfig.MuseumLon, Lat: config.AppConfig.MuseumLat},
		logger,
	)

	mailer := notification.NewSMTPMailer(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.EmailUsername,
		config.AppConfig.EmailPassword,
		logger,
	)

	linker := booking.NewRazorpayLinker(
		config.AppConfig.RazorpayKeyID,
		config.AppConfig.RazorpaySecret,
		logger,
	)

	// Services.
	bookingSvc := &booking.Service{
		Cfg: booking.Config{
			TicketPriceINR:  config.AppConfig.TicketPriceINR,
			Currency:        "INR",
			CallbackURL:     strings.TrimSuffix(config.AppConfig.PublicBaseURL, "/") + "/payment-callback",
			ConfirmReprompt: config.AppConfig.ConfirmReprompt,
		},
		Sessions: sessions,
		Pending:  pending,
		Payments: linker,
		Logger:   logger,
	}

	reconciler := &booking.Reconciler{
		Pending:  pending,
		Bookings: bookingRepo,
		Mailer:   mailer,
		Logger:   logger,
	}

	chatSvc := chat.NewService(sessions, bookingSvc, distanceSvc, responder, logger)

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Chat:        handlers.NewChatHandler(chatSvc, logger),
		Payment:     handlers.NewPaymentHandler(reconciler, logger),
		FrontendDir: config.AppConfig.FrontendDir,
	}
	routes.RegisterRoutes(router, handlerBundle)

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
