package ports

import (
	"context"

	"github.com/summercamp/campfund/internal/core/domain"
)

// CartRepository defines persistence for cart entries.
type CartRepository interface {
	Insert(ctx context.Context, item *domain.CartItem) (domain.InsertResult, error)
	ListByEmail(ctx context.Context, email string) ([]*domain.CartItem, error)
	FindByID(ctx context.Context, id string) (*domain.CartItem, error)
	Delete(ctx context.Context, id string) (domain.DeleteResult, error)
}
