package ports

import (
	"context"

	"github.com/summercamp/campfund/internal/core/domain"
)

// PaymentGateway creates provider-side payment intents.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (*domain.PaymentIntent, error)
}

// Mailer sends transactional email.
type Mailer interface {
	SendPaymentConfirmation(ctx context.Context, payment *domain.Payment) error
}

// IdentityProof is what a caller presents to obtain a session token.
type IdentityProof struct {
	Email    string
	Password string
	IDToken  string
}

// IdentityVerifier authenticates a caller before a token is issued. It
// returns the verified email or domain.ErrInvalidCredentials.
type IdentityVerifier interface {
	Verify(ctx context.Context, proof IdentityProof) (string, error)
	// Mode names the verification scheme, e.g. "password".
	Mode() string
}
