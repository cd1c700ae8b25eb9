// File: ghtour/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ghtour/config"
	"ghtour/cron"
	"ghtour/database"
	"ghtour/database/store"
	"ghtour/handlers"
	"ghtour/routes"
	"ghtour/services/booking"
	"ghtour/services/catalog"
	"ghtour/services/events"
	"ghtour/services/guide"
	"ghtour/services/identity"
	"ghtour/services/notification"
	"ghtour/services/tasks"
	"ghtour/services/user"
	"ghtour/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Auth and push need Firebase whichever store backend is selected.
	clients, err := utils.FirebaseInit(ctx)
	if err != nil {
		logger.Fatal("main: failed to initialize firebase", zap.Error(err))
	}

	docs, err := database.InitStore(clients.Firestore)
	if err != nil {
		logger.Fatal("main: failed to initialize store", zap.Error(err))
	}

	// Catalog.
	guides := guide.NewGuideDirectory(docs, config.GuidesCollectionName(), logger)
	destinations := catalog.NewDestinationCatalog(docs, guides, logger)

	// Reminders.
	var reminders booking.ReminderScheduler
	var asynqClient *asynq.Client
	var asynqInspector *asynq.Inspector
	if config.AppConfig.RemindersEnabled {
		asynqClient = asynq.NewClient(cron.ReminderQueueRedisOpt())
		asynqInspector = asynq.NewInspector(cron.ReminderQueueRedisOpt())
		reminders = tasks.NewAsynqReminderScheduler(asynqClient, asynqInspector, config.AppConfig.ReminderLeadTime, config.Location())
	}

	// Booking events.
	var publisher booking.EventPublisher
	var kafkaPublisher *events.KafkaPublisher
	if brokers := config.Brokers(); len(brokers) > 0 {
		kafkaPublisher, err = events.NewKafkaPublisher(brokers, config.AppConfig.KafkaBookingsTopic, logger)
		if err != nil {
			logger.Error("main: booking events disabled", zap.Error(err))
		} else {
			publisher = kafkaPublisher
		}
	}

	bookingService := booking.NewBookingService(docs, reminders, publisher, logger)

	// Identity.
	var sessionCache identity.SessionCache
	var redisClients []*redis.Client
	if authCache := utils.InitAuthCache(); authCache != nil {
		sessionCache = identity.NewRedisSessionCache(authCache)
		redisClients = append(redisClients, authCache)
	}

	passwords, err := identity.NewIdentityToolkitVerifier(ctx, config.AppConfig.FirebaseAPIKey)
	if err != nil {
		logger.Fatal("main: failed to initialize password sign-in", zap.Error(err))
	}
	identityProvider := identity.NewFirebaseIdentityProvider(clients.Auth, passwords, sessionCache, logger)
	userService := user.NewUserService(clients.Auth, docs, logger)

	// Push reminders.
	var worker *asynq.Server
	if config.AppConfig.NotificationsEnabled {
		notificationService := notification.NewNotificationService(clients.Messaging, logger)
		worker = cron.InitReminderWorker(ctx, notificationService, logger)
	}

	pinger, _ := docs.(store.Pinger)
	const healthEvery = 30 * time.Second
	utils.StartHealthMonitor(ctx, redisClients, pinger, healthEvery)

	handlerBundle := &handlers.HandlerBundle{
		Identity: identityProvider,
		Auth:     &handlers.AuthHandler{Identity: identityProvider, Users: userService},
		Users:    &handlers.UserHandler{Users: userService},
		Catalog:  &handlers.CatalogHandler{Catalog: destinations},
		Guides:   &handlers.GuideHandler{Guides: guides},
		Bookings: &handlers.BookingHandler{Bookings: bookingService},
		Health:   &handlers.HealthHandler{Redis: redisClients, Store: pinger, MaxAge: healthEvery + healthEvery/2},
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if worker != nil {
		worker.Shutdown()
	}
	if asynqClient != nil {
		_ = asynqClient.Close()
	}
	if asynqInspector != nil {
		_ = asynqInspector.Close()
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Warn("Kafka publisher close failed", zap.Error(err))
		}
	}
	database.Close(shutdownCtx)
	if clients.Firestore != nil {
		_ = clients.Firestore.Close()
	}
	logger.Info("Server exiting")
}
