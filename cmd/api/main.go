package main

import (
	"context"
	"time"

	"livepoll/config"
	"livepoll/internal/handler"
	"livepoll/internal/middleware"
	livepollredis "livepoll/internal/redis"
	"livepoll/internal/repository"
	"livepoll/internal/server"
	"livepoll/internal/services"
	"livepoll/internal/websocket"
	"livepoll/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	logger.SetGlobalLogger(l)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userRepo := repository.NewUserRepository()
	sessionRepo := repository.NewSessionRepository()
	pollRepo := repository.NewPollRepository()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	publisher := services.NewRelayPublisher(hub, pollRepo, l)
	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(cfg)
	sessionService := services.NewSessionService(sessionRepo, cfg.SessionCodeLength)
	pollService := services.NewPollService(pollRepo, sessionService, publisher)

	sweeper := services.NewSweeper(
		sessionRepo,
		pollRepo,
		time.Duration(cfg.SessionTTLMin)*time.Minute,
		time.Duration(cfg.SweepIntervalSec)*time.Second,
		l,
	)
	sweeper.Start(ctx)

	// Vote throttling is enabled only when a redis host is configured.
	var voteLimiter middleware.VoteLimiter
	if cfg.RedisHost != "" {
		redisClient := livepollredis.NewClient(livepollredis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
		})
		voteLimiter = livepollredis.NewRateLimiter(redisClient, livepollredis.RateLimitConfig{
			VoteLimit:  cfg.VoteRateLimit,
			VoteWindow: time.Duration(cfg.VoteRateWindowSec) * time.Second,
		})
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Auth:    handler.NewAuthHandler(userService, authService),
		Session: handler.NewSessionHandler(sessionService),
		Poll:    handler.NewPollHandler(pollService),
		WS:      websocket.NewHandler(authService, sessionService, hub),
	}, voteLimiter)

	if err := srv.Start(); err != nil {
		l.Errorf("server exited with error: %s", err)
	}
}
