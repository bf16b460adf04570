package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Freeeeeet/study_tracker/internal/app"
	"github.com/Freeeeeet/study_tracker/internal/client/backend"
	"github.com/Freeeeeet/study_tracker/internal/client/llm"
	"github.com/Freeeeeet/study_tracker/internal/client/petrsu"
	"github.com/Freeeeeet/study_tracker/internal/config"
	"github.com/Freeeeeet/study_tracker/internal/controller"
	"github.com/Freeeeeet/study_tracker/internal/controller/handlers"
	"github.com/Freeeeeet/study_tracker/internal/controller/state"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateBot(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, "bot")
	defer logger.Sync()

	logger.Sugar().Infow("Starting study tracker bot",
		"environment", cfg.Environment,
		"api_url", cfg.Bot.APIURL,
		"token_length", len(cfg.Bot.Token))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := sessionStore(ctx, cfg, logger)
	api := backend.New(cfg.Bot.APIURL, logger)

	var hints *llm.Client
	if cfg.LLM.APIKey != "" {
		hints = llm.NewClient(llm.Config{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
		}, logger)
	} else {
		logger.Warn("LLM API key is not set, task hints are disabled")
	}

	h, err := handlers.New(handlers.Deps{
		API:      api,
		PetrSU:   petrsu.NewClient(cfg.PetrSU.BaseURL, logger),
		LLM:      hints,
		Sessions: state.NewManager(store),
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal("Failed to create handlers", zap.Error(err))
	}

	botController, err := controller.NewBotController(cfg.Bot.Token, h, api, cfg.Bot.ReminderHour, logger)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Warn("Failed to register bot commands", zap.Error(err))
	}

	logger.Info("🚀 Bot started")
	if err := botController.Start(ctx); err != nil {
		logger.Error("Bot failed", zap.Error(err))
	}
}

// sessionStore выбирает Redis, если он настроен и доступен, иначе память процесса
func sessionStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) state.SessionStore {
	if !cfg.Redis.Enabled() {
		logger.Info("Redis is not configured, sessions are kept in memory")
		return state.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis is unavailable, sessions are kept in memory",
			zap.String("addr", cfg.Redis.Addr()),
			zap.Error(err))
		return state.NewMemoryStore()
	}

	logger.Info("✅ Connected to Redis", zap.String("addr", cfg.Redis.Addr()))
	return state.NewRedisStore(client, cfg.Redis.SessionTTL)
}
