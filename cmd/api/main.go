package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"nutriguide/internal/catalog"
	"nutriguide/internal/config"
	"nutriguide/internal/db"
	apihttp "nutriguide/internal/http"
	"nutriguide/internal/llm"
	"nutriguide/internal/locale"
	"nutriguide/internal/profileapi"
	"nutriguide/internal/repository"
	"nutriguide/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}

	loc := locale.Default()
	if cfg.LocalePath != "" {
		loaded, err := locale.Load(cfg.LocalePath)
		if err != nil {
			logger.Warn("locale load failed, using defaults", zap.Error(err), zap.String("path", cfg.LocalePath))
		} else {
			loc = loaded
		}
	}

	profileRepo := repository.NewPgProfileRepository(pool)
	messageRepo := repository.NewPgMessageRepository(pool)

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	sessionStore := service.NewMemorySessionStore(sessionTTL)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, falling back to memory sessions", zap.Error(err))
		} else {
			sessionStore = service.NewRedisSessionStore(redisClient, sessionTTL)
		}
		cancel()
	}

	var catalogClient catalog.Client
	if cfg.StorefrontURL != "" {
		catalogClient = catalog.NewHTTPClient(cfg.StorefrontURL, cfg.StorefrontToken)
	} else {
		logger.Warn("storefront not configured, serving sample catalog")
		catalogClient = catalog.NewStaticClient(nil)
	}

	var replies llm.Client = llm.Disabled{}
	if cfg.LLMAPIKey != "" {
		replies = llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	}

	// Profiles go through the remote profile API when one is configured,
	// straight to Postgres otherwise.
	var profileStore service.ProfileStore = profileRepo
	if cfg.ProfileAPIURL != "" {
		profileStore = profileapi.NewClient(cfg.ProfileAPIURL)
	}

	parser := service.NewResponseParser(loc)
	onboarding := service.NewOnboardingMachine(logger, loc, parser, profileStore)
	matcher := service.NewComboMatcher(nil, loc)
	assistant := service.NewAssistantService(logger, loc, sessionStore, profileStore, catalogClient, onboarding, matcher, replies, messageRepo)

	userHandler := apihttp.NewUserHandler(logger, profileRepo)
	chatHandler := apihttp.NewChatHandler(logger, assistant, messageRepo)
	router := apihttp.NewRouter(logger, userHandler, chatHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
