package main

import (
	"FocusLock/cache"
	"FocusLock/config"
	"FocusLock/controllers"
	"FocusLock/interfaces"
	"FocusLock/middlewares"
	"FocusLock/mqtt"
	"FocusLock/repositories/impl"
	"FocusLock/routes"
	"FocusLock/services"
	"FocusLock/supabase"
	"FocusLock/websocket"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	config.InitLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}

	// Initialize repositories
	deviceRepo := impl.NewDeviceRepository(db)
	scheduleRepo := impl.NewScheduleRepository(db)
	limitRepo := impl.NewUsageLimitRepository(db)
	blockRepo := impl.NewOneTimeBlockRepository(db)
	focusRepo := impl.NewFocusSessionRepository(db)

	var usageStore cache.UsageStore = cache.NewMemoryUsageStore()
	rdb, err := config.InitRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("redis")
	}
	if rdb != nil {
		defer rdb.Close()
		usageStore = cache.NewRedisUsageStore(rdb)
	} else {
		log.Warn().Msg("REDIS_URL not set, usage counters are kept in memory")
	}

	var syncService *services.SyncService
	if cfg.SupabaseURL != "" {
		client := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, supabase.Options{})
		defer client.Close()
		syncService = services.NewSyncService(client, deviceRepo, scheduleRepo, limitRepo)
	}

	// Notifiers: websocket always, FCM and MQTT when configured
	hub := websocket.NewHub()
	notifiers := services.NotifierGroup{hub}

	var tokenVerifier services.TokenVerifier
	firebaseClients, err := services.NewFirebaseClients(ctx, cfg.FirebaseCredentialsPath)
	switch {
	case err == nil:
		tokenVerifier = firebaseClients.Auth
		notifiers = append(notifiers, services.NewNotificationService(firebaseClients.Messaging, deviceRepo))
	case errors.Is(err, services.ErrFirebaseDisabled):
		log.Warn().Msg("FIREBASE_CREDENTIALS_PATH not set, Firebase login and FCM pushes are disabled")
	default:
		log.Fatal().Err(err).Msg("firebase")
	}

	if cfg.MQTTBrokerURL != "" {
		publisher, err := mqtt.NewPublisher(cfg.MQTTBrokerURL, cfg.MQTTClientID)
		if err != nil {
			log.Fatal().Err(err).Msg("mqtt")
		}
		defer publisher.Close()
		notifiers = append(notifiers, publisher)
	}

	// Initialize services
	blockingService := services.NewBlockingService(deviceRepo, scheduleRepo, limitRepo, blockRepo, focusRepo, usageStore, interfaces.LockStateNotifier(notifiers))
	reevaluator := services.NewReevaluator(blockingService, deviceRepo, blockRepo, focusRepo, syncService, services.ReevaluatorConfig{
		PruneSpec:  cfg.PruneCron,
		SyncSpec:   cfg.SyncCron,
		RetryDelay: cfg.RetryDelay,
	})
	if syncService != nil {
		syncService.Trigger = reevaluator
	}
	hub.OnReevaluate = reevaluator.Trigger

	authService := services.NewAuthService(deviceRepo, tokenVerifier, cfg.JWTSecret, cfg.TokenTTL)
	scheduleService := services.NewScheduleService(scheduleRepo, syncService, reevaluator)
	usageService := services.NewUsageService(limitRepo, deviceRepo, usageStore, syncService, reevaluator)
	oneTimeBlockService := services.NewOneTimeBlockService(blockRepo, reevaluator)
	focusService := services.NewFocusService(focusRepo, reevaluator)

	// Set services in controllers
	controllers.SetAuthService(authService)
	controllers.SetScheduleService(scheduleService)
	controllers.SetUsageService(usageService)
	controllers.SetBlockingService(blockingService)
	controllers.SetOneTimeBlockService(oneTimeBlockService)
	controllers.SetFocusService(focusService)
	controllers.SetSyncService(syncService)
	controllers.SetWebSocketHub(hub)

	go hub.Run(ctx)
	go func() {
		if err := reevaluator.Run(ctx); err != nil {
			log.Error().Err(err).Msg("reevaluator stopped")
			stop()
		}
	}()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger())
	routes.RegisterRoutes(r, middlewares.AuthMiddleware(authService), cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
