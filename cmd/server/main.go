// @title                      Summer Camp API
// @version                    1.0
// @description                Classes, carts and payments for the summer camp and crowd-funding clients.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Type "Bearer" followed by a space and the token issued by POST /jwt.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/summercamp/campfund/internal/api"
	"github.com/summercamp/campfund/internal/core/domain"
	"github.com/summercamp/campfund/internal/core/ports"
	"github.com/summercamp/campfund/internal/core/service"
	"github.com/summercamp/campfund/internal/infrastructure/db/mongo"
	"github.com/summercamp/campfund/internal/infrastructure/db/redis"
	"github.com/summercamp/campfund/internal/infrastructure/http/handlers"
	"github.com/summercamp/campfund/internal/infrastructure/identity"
	"github.com/summercamp/campfund/internal/infrastructure/mail/mailgun"
	"github.com/summercamp/campfund/internal/infrastructure/payment/stripe"
	"github.com/summercamp/campfund/internal/pkg/config"
	"github.com/summercamp/campfund/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "campfund",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server exited")
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.MongoURI(),
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongo.Disconnect(mongoClient, 10*time.Second); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	checks := map[string]handlers.Check{
		"mongodb": mongo.Pinger(db),
		"redis":   nil,
	}

	var idem ports.IdempotencyStore
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		idem = redis.NewIdempotencyStore(rdb)
		checks["redis"] = redis.Pinger(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, Idempotency-Key headers are ignored")
	}

	// --- Providers ---
	var gateway ports.PaymentGateway
	if cfg.Stripe.SecretKey != "" {
		gateway = stripe.NewGateway(stripe.Config{SecretKey: cfg.Stripe.SecretKey}, logger.Component("stripe"))
	} else {
		log.Warn().Msg("PAYMENT_SECRET_KEY not set, payment intents are disabled")
	}

	var mailer ports.Mailer
	if cfg.Mailgun.APIKey != "" {
		m, err := mailgun.NewMailer(mailgun.Config{
			APIKey: cfg.Mailgun.APIKey,
			Domain: cfg.Mailgun.Domain,
			Sender: cfg.Mailgun.Sender,
		}, logger.Component("mailgun"))
		if err != nil {
			return err
		}
		mailer = m
	}

	// --- Repositories ---
	users := mongo.NewUserRepository(db)
	payments := mongo.NewPaymentRepository(db)

	verifier, err := newVerifier(cfg, users, log)
	if err != nil {
		return err
	}

	// --- Services ---
	svc := api.Services{
		Auth:    service.NewAuthService(verifier, cfg.JWTSecret, cfg.TokenTTL, logger.Component("auth")),
		Authz:   service.NewRoleAuthorizer(users, logger.Component("authz")),
		Users:   service.NewUserService(users, mongo.NewTeacherRepository(db), domain.Role(cfg.DefaultRole), logger.Component("users")),
		Classes: service.NewClassService(mongo.NewClassRepository(db), cfg.TrackSeats, logger.Component("classes")),
		Carts:   service.NewCartService(mongo.NewCartRepository(db), logger.Component("carts")),
		Payments: service.NewPaymentService(service.PaymentDeps{
			Gateway:     gateway,
			Checkout:    mongo.NewCheckoutStore(db, cfg.Mongo.Transactions, logger.Component("checkout")),
			Payments:    payments,
			Idempotency: idem,
			Mailer:      mailer,
		}, logger.Component("payments")),
	}

	e := api.NewRouter(svc, api.Options{
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger.Component("http"),
		Checks:      checks,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Str("auth_mode", verifier.Mode()).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newVerifier(cfg *config.Config, users ports.UserRepository, log zerolog.Logger) (ports.IdentityVerifier, error) {
	switch cfg.AuthMode {
	case config.AuthModeCasdoor:
		return identity.NewCasdoorVerifier(identity.CasdoorConfig{
			Endpoint:     cfg.Casdoor.Endpoint,
			ClientID:     cfg.Casdoor.ClientID,
			ClientSecret: cfg.Casdoor.ClientSecret,
			Certificate:  cfg.Casdoor.Certificate,
			Organization: cfg.Casdoor.Organization,
			Application:  cfg.Casdoor.Application,
		}, logger.Component("casdoor")), nil
	case config.AuthModeOpen:
		log.Warn().Msg("AUTH_MODE=open: POST /jwt signs tokens for any email")
		return identity.NewOpenVerifier(logger.Component("identity")), nil
	case config.AuthModePassword:
		return identity.NewPasswordVerifier(users), nil
	}
	return nil, errors.New("unknown AUTH_MODE " + cfg.AuthMode)
}
