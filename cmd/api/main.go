package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/zoo-arcadia/arcadia-api/internal/api"
	"github.com/zoo-arcadia/arcadia-api/internal/core/ports"
	mongodb "github.com/zoo-arcadia/arcadia-api/internal/infrastructure/db/mongo"
	redisdb "github.com/zoo-arcadia/arcadia-api/internal/infrastructure/db/redis"
	"github.com/zoo-arcadia/arcadia-api/internal/infrastructure/mail"
	"github.com/zoo-arcadia/arcadia-api/internal/pkg/config"
	"github.com/zoo-arcadia/arcadia-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Arcadia API
// @version      1.0
// @description  Authentication and account lifecycle service for the Arcadia zoo platform.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWT.Secret == "" {
		if cfg.Env != "development" {
			log.Fatal().Msg("JWT_SECRET is required outside development")
		}
		log.Warn().Msg("JWT_SECRET not set, using an insecure development secret")
		cfg.JWT.Secret = "arcadia-dev-secret"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	var mailer ports.Mailer
	if cfg.SMTP.Host != "" {
		mailer, err = mail.NewSMTPMailer(mail.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("smtp client failed")
		}
	} else {
		log.Warn().Msg("SMTP_HOST not set, outbound mail disabled")
		mailer = mail.NewNopMailer(log)
	}

	e := api.NewRouter(cfg, api.Deps{
		Mongo:  db,
		Redis:  rdb,
		Mailer: mailer,
		Codes:  redisdb.NewResetCodeStore(rdb),
		Log:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("arcadia api listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
