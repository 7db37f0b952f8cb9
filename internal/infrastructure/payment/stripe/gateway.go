// Package stripe creates payment intents through the Stripe API.
package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	stripeapi "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"github.com/summercamp/campfund/internal/core/domain"
)

// Config holds the Stripe credentials. BaseURL overrides the API host and
// is only set in tests.
type Config struct {
	SecretKey  string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int64
}

// Gateway implements ports.PaymentGateway.
type Gateway struct {
	intents paymentintent.Client
	logger  zerolog.Logger
}

func NewGateway(cfg Config, logger zerolog.Logger) *Gateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	backendCfg := &stripeapi.BackendConfig{
		HTTPClient:        &http.Client{Timeout: timeout},
		MaxNetworkRetries: stripeapi.Int64(cfg.MaxRetries),
		LeveledLogger:     &stripeapi.LeveledLogger{Level: stripeapi.LevelNull},
	}
	if cfg.BaseURL != "" {
		backendCfg.URL = stripeapi.String(cfg.BaseURL)
	}

	return &Gateway{
		intents: paymentintent.Client{
			B:   stripeapi.GetBackendWithConfig(stripeapi.APIBackend, backendCfg),
			Key: cfg.SecretKey,
		},
		logger: logger,
	}
}

// CreateIntent creates a card payment intent for amountCents. Provider
// failures are wrapped in domain.ErrPaymentProvider.
func (g *Gateway) CreateIntent(ctx context.Context, amountCents int64, currency string) (*domain.PaymentIntent, error) {
	params := &stripeapi.PaymentIntentParams{
		Amount:             stripeapi.Int64(amountCents),
		Currency:           stripeapi.String(currency),
		PaymentMethodTypes: stripeapi.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := g.intents.New(params)
	if err != nil {
		var serr *stripeapi.Error
		if errors.As(err, &serr) {
			g.logger.Warn().
				Str("type", string(serr.Type)).
				Str("code", string(serr.Code)).
				Str("request_id", serr.RequestID).
				Int("status", serr.HTTPStatusCode).
				Msg("stripe rejected payment intent")
			return nil, fmt.Errorf("%w: %s", domain.ErrPaymentProvider, serr.Msg)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentProvider, err)
	}

	return &domain.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		AmountCents:  pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}
