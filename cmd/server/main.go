package main

import (
	"alcyxob/gym-system/internal/api"
	"alcyxob/gym-system/internal/cache"
	"alcyxob/gym-system/internal/config"
	"alcyxob/gym-system/internal/events"
	"alcyxob/gym-system/internal/logger"
	"alcyxob/gym-system/internal/repository/mongo"
	"alcyxob/gym-system/internal/service"
	"alcyxob/gym-system/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}
	logger.Init(strings.Join(cfg.Server.Services, ","), cfg.Server.Env)
	log.Info().Strs("services", cfg.Server.Services).Msg("starting gym system")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to MongoDB")
	}
	defer func() {
		log.Info().Msg("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Error().Err(err).Msg("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, appDB)
		log.Info().Msg("index creation completed")
	}()

	// --- Optional infrastructure ---
	offerCache := initCache(cfg.Redis)
	publisher := initPublisher(cfg.RabbitMQ)
	defer publisher.Close()
	fileStorage := initStorage(cfg.S3)

	// --- Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	offerRepo := mongo.NewMongoOfferRepository(appDB)
	purchaseRepo := mongo.NewMongoPurchaseRepository(appDB)
	taskRepo := mongo.NewMongoTaskRepository(appDB)
	trainingRepo := mongo.NewMongoTrainingRepository(appDB)

	// --- Services ---
	deps := api.Dependencies{
		Config:          cfg,
		AuthService:     service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration),
		UserService:     service.NewUserService(userRepo),
		GymPassService:  service.NewGymPassService(offerRepo, purchaseRepo, offerCache, publisher),
		TaskService:     service.NewTaskService(taskRepo, userRepo, fileStorage, publisher),
		TrainingService: service.NewTrainingService(trainingRepo, userRepo, publisher),
		LoginLimiter:    api.NewLoginRateLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst),
	}

	// --- HTTP ---
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	api.RegisterValidators()
	router := gin.New()
	api.SetupRoutes(router, deps)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("address", cfg.Server.Address).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen failed")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exiting")
}

func initCache(cfg config.RedisConfig) cache.Cache {
	if cfg.Address == "" {
		log.Info().Msg("redis not configured, offer cache disabled")
		return cache.Noop{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := cache.NewRedisCache(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, offer cache disabled")
		return cache.Noop{}
	}
	return c
}

func initPublisher(cfg config.RabbitMQConfig) events.Publisher {
	if cfg.URL == "" {
		log.Info().Msg("rabbitmq not configured, events disabled")
		return events.Noop{}
	}
	conn, err := events.Connect(cfg.URL, cfg.Retries, cfg.Delay)
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq unavailable, events disabled")
		return events.Noop{}
	}
	p, err := events.NewAMQPPublisher(conn, cfg.Exchange)
	if err != nil {
		log.Warn().Err(err).Msg("could not declare event exchange, events disabled")
		_ = conn.Close()
		return events.Noop{}
	}
	return p
}

func initStorage(cfg config.S3Config) storage.FileStorage {
	if cfg.BucketName == "" {
		log.Info().Msg("s3 bucket not configured, task attachments disabled")
		return storage.Disabled{}
	}
	s, err := storage.NewS3Storage(context.Background(), cfg)
	if err != nil {
		log.Warn().Err(err).Msg("s3 unavailable, task attachments disabled")
		return storage.Disabled{}
	}
	return s
}
