package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/hglok/raidsync/internal/common/clock"
	"github.com/hglok/raidsync/internal/common/logger"
	"github.com/hglok/raidsync/internal/config"
	"github.com/hglok/raidsync/internal/handlers/api"
	"github.com/hglok/raidsync/internal/handlers/discord"
	eventRepo "github.com/hglok/raidsync/internal/repositories/event"
	lockRepo "github.com/hglok/raidsync/internal/repositories/lock"
	participantRepo "github.com/hglok/raidsync/internal/repositories/participant"
	"github.com/hglok/raidsync/internal/services/draft"
	"github.com/hglok/raidsync/internal/services/feed"
	"github.com/hglok/raidsync/internal/services/sweeper"
)

func main() {
	// Load environment variables from .env file if present
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.L().Error(context.Background(), "failed to load config", logger.Error(err))
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)
	ctx := context.Background()
	log := logger.L()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error(ctx, "failed to connect to redis",
			logger.String("addr", cfg.RedisAddr),
			logger.Error(err))
		os.Exit(1)
	}

	locks, err := lockRepo.NewRedis(&lockRepo.Config{RedisClient: redisClient, Clock: clock.New()})
	if err != nil {
		log.Error(ctx, "failed to create lock repository", logger.Error(err))
		os.Exit(1)
	}
	events, err := eventRepo.NewRedis(&eventRepo.Config{RedisClient: redisClient})
	if err != nil {
		log.Error(ctx, "failed to create event repository", logger.Error(err))
		os.Exit(1)
	}
	participants, err := participantRepo.NewRedis(&participantRepo.Config{RedisClient: redisClient})
	if err != nil {
		log.Error(ctx, "failed to create participant repository", logger.Error(err))
		os.Exit(1)
	}

	changeFeed := feed.New(&feed.Config{BufferSize: cfg.FeedBufferSize})

	draftService, err := draft.New(&draft.Config{
		DefaultLockTTL:  cfg.DefaultLockTTL,
		EventRepo:       events,
		LockRepo:        locks,
		ParticipantRepo: participants,
		Feed:            changeFeed,
	})
	if err != nil {
		log.Error(ctx, "failed to create draft service", logger.Error(err))
		os.Exit(1)
	}

	lockSweeper, err := sweeper.New(&sweeper.Config{
		Interval: cfg.SweepInterval,
		LockRepo: locks,
		Feed:     changeFeed,
	})
	if err != nil {
		log.Error(ctx, "failed to create sweeper", logger.Error(err))
		os.Exit(1)
	}
	lockSweeper.Start(ctx)
	defer lockSweeper.Stop()

	apiHandler, err := api.New(&api.Config{
		Service:      draftService,
		Participants: participants,
		Feed:         changeFeed,
	})
	if err != nil {
		log.Error(ctx, "failed to create api handler", logger.Error(err))
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           apiHandler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info(ctx, "http server listening", logger.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "http server failed", logger.Error(err))
			os.Exit(1)
		}
	}()

	var bot *discord.Bot
	if cfg.DiscordEnabled {
		bot, err = discord.New(&discord.Config{
			Token:         cfg.DiscordToken,
			ApplicationID: cfg.DiscordApplicationID,
			GuildID:       cfg.DiscordGuildID,
			DraftService:  draftService,
		})
		if err != nil {
			log.Error(ctx, "failed to create discord bot", logger.Error(err))
			os.Exit(1)
		}
		if err := bot.Start(); err != nil {
			log.Error(ctx, "failed to start discord bot", logger.Error(err))
			os.Exit(1)
		}
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "http shutdown failed", logger.Error(err))
	}

	if bot != nil {
		if err := bot.Stop(); err != nil {
			log.Error(ctx, "discord shutdown failed", logger.Error(err))
		}
	}

	if err := redisClient.Close(); err != nil {
		log.Error(ctx, "redis close failed", logger.Error(err))
	}
}
