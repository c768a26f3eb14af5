package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"doctor-ai/internal/config"
	"doctor-ai/internal/db"
	apihttp "doctor-ai/internal/http"
	"doctor-ai/internal/llm"
	"doctor-ai/internal/repository"
	"doctor-ai/internal/service"

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

	if err := db.Migrate(ctx, pool); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	// El directorio de doctores se carga una sola vez; un CSV ilegible o
	// malformado aborta el arranque.
	directory, err := repository.LoadDoctorDirectory(cfg.DoctorsCSVPath)
	if err != nil {
		logger.Fatal("load doctor directory", zap.Error(err))
	}
	logger.Info("doctor directory loaded",
		zap.String("path", cfg.DoctorsCSVPath),
		zap.Int("doctors", directory.Len()),
	)

	turnRepo := repository.NewPgTurnRepository(pool)

	var sessionCache *repository.RedisSessionCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, session cache disabled", zap.Error(err))
		} else {
			sessionCache = repository.NewRedisSessionCache(redisClient, time.Duration(cfg.SessionsCacheTTLSeconds)*time.Second)
		}
		cancel()
	}

	llmClient := llm.NewOpenAIClient(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel)
	matcher := service.NewDoctorMatcher(directory)
	chatSvc := service.NewChatService(
		logger,
		turnRepo,
		matcher,
		llmClient,
		sessionCache,
		time.Duration(cfg.LLMTimeoutSeconds)*time.Second,
		cfg.MatchLimit,
	)

	chatHandler := apihttp.NewChatHandler(logger, chatSvc, turnRepo, sessionCache)
	router := apihttp.NewRouter(logger, chatHandler)

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
