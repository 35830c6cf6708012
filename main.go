package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mernspace-auth/config"
	"mernspace-auth/database"
	"mernspace-auth/events"
	"mernspace-auth/handlers"
	"mernspace-auth/repository"
	"mernspace-auth/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger, err := config.NewLogger(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.Open(cfg.DB, logger)
	if err != nil {
		logger.Fatalf("database connection error %v", err)
	}
	logger.Info("database connected")
	if err := database.Migrate(db); err != nil {
		logger.Fatal(err)
	}
	logger.Info("migration was successful")

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		logger.Warn("redis unavailable, rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQP.URL != "" {
		p, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			logger.Warnw("rabbitmq unavailable, events will not be published", "error", err)
		} else {
			publisher = p
		}
	}
	defer publisher.Close()

	refreshTokens := repository.NewRefreshTokenRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	credentials := services.NewCredentialService(cfg.BcryptCost)
	tokens := services.NewTokenService(cfg, refreshTokens, repository.NewTxManagerGorm(db))
	users := services.NewUserService(repository.NewUserRepository(db), tenantRepo, credentials)
	tenants := services.NewTenantService(tenantRepo)
	auth := services.NewAuthService(users, credentials, tokens, publisher, logger)

	router, err := handlers.NewRouter(handlers.Deps{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		Auth:    auth,
		Users:   users,
		Tenants: tenants,
		Tokens:  tokens,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go services.RunTokenJanitor(ctx, tokens, cfg.TokenCleanupInterval, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("server is running on %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("graceful shutdown failed", "error", err)
	}
}
