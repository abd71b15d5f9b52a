package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"notekeeper/internal/auth"
	authhandler "notekeeper/internal/auth/handler"
	authservice "notekeeper/internal/auth/service"
	"notekeeper/internal/config"
	"notekeeper/internal/db"
	notehandler "notekeeper/internal/note/handler"
	noterepo "notekeeper/internal/note/repository"
	noteservice "notekeeper/internal/note/service"
	"notekeeper/internal/security"
	"notekeeper/internal/server"
	userrepo "notekeeper/internal/user/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer database.Close()

	tokens, err := security.NewTokenCodec(cfg.JWTSecret, cfg.SessionTTLDuration())
	if err != nil {
		logger.Fatal("token codec", zap.Error(err))
	}
	hasher := security.NewHasher(cfg.BcryptCost)

	users := userrepo.NewPostgresRepository(database)
	notes := noterepo.NewPostgresRepository(database)

	authSvc := authservice.NewAuthService(users, hasher, tokens)
	noteSvc := noteservice.New(notes)
	resolver := auth.NewResolver(tokens, users)

	srv := server.New(
		server.Config{Addr: cfg.HTTPAddr},
		logger,
		resolver,
		authhandler.New(authSvc, logger, tokens.TTL(), cfg.IsProduction()),
		notehandler.New(noteSvc),
	)

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("http server stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
