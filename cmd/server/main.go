package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"boleia/internal/config"
	"boleia/internal/handlers"
	"boleia/internal/middleware"
	"boleia/internal/services"
	"boleia/internal/utils"
	"boleia/pkg/auth"
	"boleia/pkg/cache"
	"boleia/pkg/database"
	"boleia/pkg/logger"
	"boleia/pkg/maps"
	"boleia/pkg/payment"
	"boleia/pkg/push"
	"boleia/pkg/sms"
	"boleia/pkg/storage"
	"boleia/pkg/websocket"
	"boleia/routes"

	"github.com/gin-gonic/gin"

	mongorepo "boleia/internal/repositories/mongodb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	logFormat := "text"
	if config.IsProduction() {
		logFormat = "json"
	}
	log, err := logger.NewLogger(&logger.Config{
		Level:  cfg.App.LogLevel,
		Format: logFormat,
		Output: "stdout",
	})
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	ctx := context.Background()

	mongodb, err := database.NewMongoDB(&database.Config{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to mongodb")
	}
	defer mongodb.Close()

	if err := mongodb.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Fatal("failed to ensure indexes")
	}

	redisCache, err := cache.NewRedisCache(&cache.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}

	verifier, err := auth.NewFirebaseVerifier(ctx, cfg.Firebase.CredentialsFile)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize firebase auth")
	}

	smsProvider := buildSMSProvider(cfg, log)
	pushProvider := buildPushProvider(cfg, log)
	storageProvider := buildStorageProvider(cfg, log)
	mapsProvider := buildMapsProvider(cfg, log)
	paymentProvider := buildPaymentProvider(cfg, log)

	wsHandler := websocket.NewHandler(func(ticket string) (*websocket.TicketClaims, error) {
		claims, err := utils.ValidateWSTicket(ticket, cfg.Security.WSTicketSecret)
		if err != nil {
			return nil, err
		}
		return &websocket.TicketClaims{UserID: claims.UserID, UserType: claims.UserType}, nil
	})

	// Repositories
	userRepo := mongorepo.NewUserRepository(mongodb.Database, redisCache)
	rideRepo := mongorepo.NewRideRepository(mongodb.Database, redisCache)
	accommodationRepo := mongorepo.NewAccommodationRepository(mongodb.Database, redisCache)
	roomTypeRepo := mongorepo.NewRoomTypeRepository(mongodb.Database, redisCache)
	bookingRepo := mongorepo.NewBookingRepository(mongodb.Database, redisCache)
	partnershipRepo := mongorepo.NewPartnershipRepository(mongodb.Database, redisCache)
	chatRepo := mongorepo.NewChatRepository(mongodb.Database)
	notificationRepo := mongorepo.NewNotificationRepository(mongodb.Database)

	// Services
	notificationService := services.NewNotificationService(
		notificationRepo, userRepo, pushProvider, smsProvider, cfg.SMS.DefaultFrom, wsHandler, log)
	authService := services.NewAuthService(userRepo, log)
	partnershipService := services.NewPartnershipService(
		partnershipRepo, accommodationRepo, notificationService, log)
	rideService := services.NewRideService(
		rideRepo, mapsProvider, notificationService, partnershipService, log)
	accommodationService := services.NewAccommodationService(
		accommodationRepo, roomTypeRepo, storageProvider, log)
	roomTypeService := services.NewRoomTypeService(roomTypeRepo, accommodationRepo, log)
	bookingService := services.NewBookingService(
		bookingRepo, roomTypeRepo, accommodationRepo, partnershipRepo,
		paymentProvider, notificationService, log)
	chatService := services.NewChatService(chatRepo, notificationService, wsHandler, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	rideHandler := handlers.NewRideHandler(rideService)
	accommodationHandler := handlers.NewAccommodationHandler(accommodationService)
	roomTypeHandler := handlers.NewRoomTypeHandler(roomTypeService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	partnershipHandler := handlers.NewPartnershipHandler(partnershipService)
	chatHandler := handlers.NewChatHandler(chatService, cfg.Security.WSTicketSecret)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.RateLimitMiddleware(redisCache, cfg.Security.RateLimitPerMinute))

	if len(cfg.Security.TrustedProxies) > 0 {
		if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
			log.WithError(err).Fatal("invalid trusted proxies")
		}
	}

	authRequired := middleware.AuthRequired(verifier, userRepo)

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, authHandler, authRequired)
		routes.SetupRideRoutes(v1, rideHandler, authRequired)
		routes.SetupHotelRoutes(v1, accommodationHandler, roomTypeHandler, authRequired)
		routes.SetupBookingRoutes(v1, bookingHandler, authRequired)
		routes.SetupPartnershipRoutes(v1, partnershipHandler, authRequired)
		routes.SetupChatRoutes(v1, chatHandler, wsHandler, authRequired)
		routes.SetupNotificationRoutes(v1, notificationHandler, authRequired)
	}

	if cfg.Storage.Provider == "local" {
		router.Static("/uploads", cfg.Storage.Local.BasePath)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
		})
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("port", cfg.App.Port).Info("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped unexpectedly")
		}
	}()

	<-shutdownCtx.Done()
	log.Info("shutdown signal received")

	drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(drainCtx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
	log.Info("server stopped")
}

func buildSMSProvider(cfg *config.Config, log *logger.Logger) sms.Provider {
	switch cfg.SMS.Provider {
	case "twilio":
		if cfg.SMS.Twilio.AccountSID == "" {
			log.Warn("twilio credentials missing, sms disabled")
			return nil
		}
		return sms.NewTwilioProvider(cfg.SMS.Twilio.AccountSID, cfg.SMS.Twilio.AuthToken, cfg.SMS.Twilio.FromNumber)
	case "sns":
		provider, err := sms.NewAWSSNSProvider(cfg.SMS.AWS.Region)
		if err != nil {
			log.WithError(err).Warn("sns unavailable, sms disabled")
			return nil
		}
		return provider
	default:
		log.WithField("provider", cfg.SMS.Provider).Warn("unknown sms provider, sms disabled")
		return nil
	}
}

func buildPushProvider(cfg *config.Config, log *logger.Logger) push.Provider {
	switch cfg.Push.Provider {
	case "fcm":
		if cfg.Push.FCM.CredentialsFile == "" {
			log.Warn("fcm credentials missing, push disabled")
			return nil
		}
		provider, err := push.NewFCMProvider(cfg.Push.FCM.CredentialsFile)
		if err != nil {
			log.WithError(err).Warn("fcm unavailable, push disabled")
			return nil
		}
		return provider
	case "apns":
		provider, err := push.NewAPNSProvider(&push.APNSConfig{
			KeyID:      cfg.Push.APNS.KeyID,
			TeamID:     cfg.Push.APNS.TeamID,
			Topic:      cfg.Push.APNS.BundleID,
			KeyFile:    cfg.Push.APNS.KeyFile,
			Production: cfg.Push.APNS.Production,
		})
		if err != nil {
			log.WithError(err).Warn("apns unavailable, push disabled")
			return nil
		}
		return provider
	default:
		log.WithField("provider", cfg.Push.Provider).Warn("unknown push provider, push disabled")
		return nil
	}
}

func buildStorageProvider(cfg *config.Config, log *logger.Logger) storage.Provider {
	switch cfg.Storage.Provider {
	case "local":
		provider, err := storage.NewLocalStorage(cfg.Storage.Local.BasePath, cfg.Storage.Local.BaseURL)
		if err != nil {
			log.WithError(err).Warn("local storage unavailable, uploads disabled")
			return nil
		}
		return provider
	case "s3":
		provider, err := storage.NewAWSS3Storage(cfg.Storage.AWS.Region, cfg.Storage.AWS.Bucket, cfg.Storage.AWS.CDNDomain)
		if err != nil {
			log.WithError(err).Warn("s3 unavailable, uploads disabled")
			return nil
		}
		return provider
	case "gcs":
		provider, err := storage.NewGCPStorage(cfg.Storage.GCP.Bucket, cfg.Storage.GCP.CredentialsFile, cfg.Storage.GCP.CDNDomain)
		if err != nil {
			log.WithError(err).Warn("gcs unavailable, uploads disabled")
			return nil
		}
		return provider
	default:
		log.WithField("provider", cfg.Storage.Provider).Warn("unknown storage provider, uploads disabled")
		return nil
	}
}

func buildMapsProvider(cfg *config.Config, log *logger.Logger) maps.Provider {
	if cfg.Maps.GoogleMaps.APIKey == "" {
		log.Warn("maps api key missing, falling back to straight-line distances")
		return nil
	}
	provider, err := maps.NewGoogleMapsProvider(cfg.Maps.GoogleMaps.APIKey)
	if err != nil {
		log.WithError(err).Warn("maps unavailable, falling back to straight-line distances")
		return nil
	}
	return provider
}

func buildPaymentProvider(cfg *config.Config, log *logger.Logger) payment.Provider {
	switch cfg.Payment.DefaultProvider {
	case "mpesa":
		if cfg.Payment.MPesa.APIKey == "" {
			log.Warn("mpesa credentials missing, payment capture disabled")
			return nil
		}
		return payment.NewMPesaProvider(
			cfg.Payment.MPesa.APIKey,
			cfg.Payment.MPesa.ServiceProviderCode,
			cfg.Payment.MPesa.WebhookSecret,
			cfg.Payment.MPesa.Mode,
		)
	case "stripe":
		if cfg.Payment.Stripe.SecretKey == "" {
			log.Warn("stripe credentials missing, payment capture disabled")
			return nil
		}
		return payment.NewStripeProvider(cfg.Payment.Stripe.SecretKey, cfg.Payment.Stripe.WebhookSecret)
	default:
		log.WithField("provider", cfg.Payment.DefaultProvider).Warn("unknown payment provider, payment capture disabled")
		return nil
	}
}
