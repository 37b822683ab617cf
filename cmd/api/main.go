// Package main is the entry point for the auth service.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/zopuu/soa-team-20/docs"
	"github.com/zopuu/soa-team-20/internal/api"
	"github.com/zopuu/soa-team-20/internal/core/domain"
	"github.com/zopuu/soa-team-20/internal/core/service"
	"github.com/zopuu/soa-team-20/internal/infrastructure/config"
	mongodb "github.com/zopuu/soa-team-20/internal/infrastructure/db/mongo"
	redisdb "github.com/zopuu/soa-team-20/internal/infrastructure/db/redis"
	"github.com/zopuu/soa-team-20/internal/pkg/password"
	"github.com/zopuu/soa-team-20/pkg/logger"
)

// @title Auth Service API
// @version 1.0
// @description Credential and session management service for the travel platform.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	accountRepo := mongodb.NewAccountRepository(db)
	if err := accountRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// Redis backs the login throttle; the service degrades gracefully
	// without it, so a failed connection is not fatal.
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, login throttling disabled")
		rdb = nil
	} else {
		defer func() { _ = rdb.Close() }()
	}

	if err := seedAdmin(ctx, accountRepo, cfg.Admin); err != nil {
		log.Fatal().Err(err).Msg("admin account seeding failed")
	}

	tokenCfg := service.TokenConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      cfg.JWT.TTL,
	}

	e := api.NewRouter(db, rdb, tokenCfg, log)

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting auth service")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// seedAdmin provisions the out-of-band Admin account when configured.
// Self-registration can only create Tourist and Guide accounts, so this is
// the sole path by which an Admin comes into existence.
func seedAdmin(ctx context.Context, repo *mongodb.AccountRepository, cfg config.AdminSeedConfig) error {
	if cfg.Username == "" || cfg.Password == "" {
		return nil
	}

	exists, err := repo.ExistsByUsername(ctx, cfg.Username)
	if err != nil || exists {
		return err
	}

	hash, err := password.Hash(cfg.Password)
	if err != nil {
		return err
	}

	_, err = repo.Insert(ctx, &domain.Account{
		Username:     cfg.Username,
		Email:        cfg.Email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Status:       domain.StatusActive,
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, domain.ErrUsernameTaken) {
		// Another replica seeded it first.
		return nil
	}
	return err
}
