package ports

import (
	"context"

	"github.com/summercamp/campfund/internal/core/domain"
)

// PaymentRepository reads payment history.
type PaymentRepository interface {
	ListByEmail(ctx context.Context, email string) ([]*domain.Payment, error)
}

// CheckoutStore persists a payment and removes the paid cart entry as one
// unit: either both writes are visible afterwards or neither is.
type CheckoutStore interface {
	Complete(ctx context.Context, payment *domain.Payment, cartID string) (*domain.CheckoutResult, error)
}

// IdempotencyStore remembers results of requests carrying an idempotency key.
type IdempotencyStore interface {
	// Reserve claims key. It returns the stored result when the key already
	// completed, domain.ErrRequestInFlight while another request holds it,
	// and (nil, nil) when the caller now owns the key.
	Reserve(ctx context.Context, key string) ([]byte, error)
	Complete(ctx context.Context, key string, result []byte) error
	Release(ctx context.Context, key string) error
}
