package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/summercamp/campfund/internal/api/metrics"
	"github.com/summercamp/campfund/internal/core/domain"
	"github.com/summercamp/campfund/internal/core/ports"
)

const mailTimeout = 10 * time.Second

// PaymentDeps groups the collaborators of PaymentService. Gateway, Idempotency
// and Mailer are optional: a nil Gateway makes CreateIntent report
// ErrProviderUnavailable, a nil Idempotency store ignores Idempotency-Key
// headers and a nil Mailer skips confirmation emails.
type PaymentDeps struct {
	Gateway     ports.PaymentGateway
	Checkout    ports.CheckoutStore
	Payments    ports.PaymentRepository
	Idempotency ports.IdempotencyStore
	Mailer      ports.Mailer
}

type PaymentService struct {
	gateway  ports.PaymentGateway
	checkout ports.CheckoutStore
	payments ports.PaymentRepository
	idem     ports.IdempotencyStore
	mailer   ports.Mailer
	logger   zerolog.Logger
	now      func() time.Time
}

func NewPaymentService(deps PaymentDeps, logger zerolog.Logger) *PaymentService {
	return &PaymentService{
		gateway:  deps.Gateway,
		checkout: deps.Checkout,
		payments: deps.Payments,
		idem:     deps.Idempotency,
		mailer:   deps.Mailer,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateIntent asks the provider for a USD intent of price expressed in cents.
func (s *PaymentService) CreateIntent(ctx context.Context, price float64) (*domain.PaymentIntent, error) {
	if price <= 0 || price > domain.MaxPrice {
		return nil, fmt.Errorf("%w: price must be positive and at most %d", domain.ErrInvalidInput, domain.MaxPrice)
	}
	if s.gateway == nil {
		return nil, domain.ErrProviderUnavailable
	}

	intent, err := s.gateway.CreateIntent(ctx, domain.ToCents(price), domain.PaymentCurrency)
	if err != nil {
		metrics.PaymentIntentsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.PaymentIntentsTotal.WithLabelValues("created").Inc()
	return intent, nil
}

// Checkout records the payment and removes the paid cart entry as one unit.
// With an idempotency key, a retry replays the first result instead of
// recording the payment twice.
func (s *PaymentService) Checkout(ctx context.Context, in ports.CheckoutInput) (*domain.CheckoutResult, error) {
	p := in.Payment
	if in.CallerEmail == "" {
		return nil, domain.ErrUnauthorized
	}
	if email := strings.TrimSpace(p.Email); email != "" && !strings.EqualFold(email, in.CallerEmail) {
		return nil, domain.ErrForbidden
	}
	// history is keyed on the exact caller email
	p.Email = in.CallerEmail
	if p.CartID == "" {
		return nil, fmt.Errorf("%w: cartId is required", domain.ErrInvalidInput)
	}
	if p.Price < 0 || p.Price > domain.MaxPrice {
		return nil, fmt.Errorf("%w: price must be between 0 and %d", domain.ErrInvalidInput, domain.MaxPrice)
	}
	if p.Date.IsZero() {
		p.Date = s.now()
	}

	var key, fingerprint string
	if in.IdempotencyKey != "" && s.idem != nil {
		fingerprint = checkoutFingerprint(&p)
		key = in.CallerEmail + ":" + in.IdempotencyKey
		stored, err := s.idem.Reserve(ctx, key)
		if err != nil {
			metrics.CheckoutsTotal.WithLabelValues("in_flight").Inc()
			return nil, err
		}
		if stored != nil {
			var replay checkoutRecord
			if err := json.Unmarshal(stored, &replay); err != nil {
				return nil, fmt.Errorf("decode stored checkout: %w", err)
			}
			if replay.Result == nil {
				return nil, fmt.Errorf("decode stored checkout: no result under key %q", in.IdempotencyKey)
			}
			if replay.Fingerprint != fingerprint {
				metrics.CheckoutsTotal.WithLabelValues("key_reused").Inc()
				s.logger.Warn().Str("idempotency_key", in.IdempotencyKey).Msg("idempotency key reused with a different payment")
				return nil, domain.ErrIdempotencyKeyReused
			}
			metrics.CheckoutsTotal.WithLabelValues("replayed").Inc()
			s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Msg("idempotent checkout replay")
			return replay.Result, nil
		}
	}

	result, err := s.checkout.Complete(ctx, &p, p.CartID)
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues("error").Inc()
		if key != "" {
			if relErr := s.idem.Release(ctx, key); relErr != nil {
				s.logger.Warn().Err(relErr).Str("idempotency_key", in.IdempotencyKey).Msg("failed to release idempotency key")
			}
		}
		return nil, err
	}

	if key != "" {
		if raw, err := json.Marshal(checkoutRecord{Fingerprint: fingerprint, Result: result}); err == nil {
			if err := s.idem.Complete(ctx, key, raw); err != nil {
				s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to store checkout result")
			}
		}
	}

	metrics.CheckoutsTotal.WithLabelValues("completed").Inc()
	s.logger.Info().
		Str("email", p.Email).
		Str("cart_id", p.CartID).
		Str("transaction_id", p.TransactionID).
		Str("payment_id", result.InsertResult.InsertedID).
		Msg("checkout completed")

	s.sendConfirmation(ctx, &p)
	return result, nil
}

// checkoutRecord is what an idempotency key remembers: the first result and
// the request it answered.
type checkoutRecord struct {
	Fingerprint string                 `json:"fingerprint"`
	Result      *domain.CheckoutResult `json:"result"`
}

// checkoutFingerprint identifies the payment a key was first used for.
func checkoutFingerprint(p *domain.Payment) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%s|%d", p.Email, p.CartID, p.TransactionID, domain.ToCents(p.Price)))
	return hex.EncodeToString(sum[:])
}

// sendConfirmation never fails the checkout; the payment is already stored.
func (s *PaymentService) sendConfirmation(ctx context.Context, p *domain.Payment) {
	if s.mailer == nil {
		metrics.EmailsSentTotal.WithLabelValues("skipped").Inc()
		return
	}

	mailCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mailTimeout)
	defer cancel()

	if err := s.mailer.SendPaymentConfirmation(mailCtx, p); err != nil {
		metrics.EmailsSentTotal.WithLabelValues("failed").Inc()
		s.logger.Warn().Err(err).Str("email", p.Email).Msg("payment confirmation email failed")
		return
	}
	metrics.EmailsSentTotal.WithLabelValues("sent").Inc()
}

// History returns the payments of email, newest first.
func (s *PaymentService) History(ctx context.Context, email string) ([]*domain.Payment, error) {
	if email == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.payments.ListByEmail(ctx, email)
}
