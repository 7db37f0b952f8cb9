package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/summercamp/campfund/internal/core/domain"
	"github.com/summercamp/campfund/internal/core/ports"
)

type CartService struct {
	carts  ports.CartRepository
	logger zerolog.Logger
}

func NewCartService(carts ports.CartRepository, logger zerolog.Logger) *CartService {
	return &CartService{carts: carts, logger: logger}
}

func (s *CartService) Add(ctx context.Context, item *domain.CartItem) (domain.InsertResult, error) {
	if item == nil || strings.TrimSpace(item.Email) == "" {
		return domain.InsertResult{}, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	if item.Price < 0 {
		return domain.InsertResult{}, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	return s.carts.Insert(ctx, item)
}

// ListFor returns the cart of ownerEmail on behalf of callerEmail. A caller
// may only read their own cart.
func (s *CartService) ListFor(ctx context.Context, ownerEmail, callerEmail string) ([]*domain.CartItem, error) {
	if ownerEmail == "" {
		return []*domain.CartItem{}, nil
	}
	if !strings.EqualFold(ownerEmail, callerEmail) {
		s.logger.Warn().Str("owner", ownerEmail).Str("caller", callerEmail).Msg("cart read for another user refused")
		return nil, domain.ErrForbidden
	}
	return s.carts.ListByEmail(ctx, ownerEmail)
}

func (s *CartService) ListByEmail(ctx context.Context, email string) ([]*domain.CartItem, error) {
	return s.carts.ListByEmail(ctx, email)
}

func (s *CartService) Get(ctx context.Context, id string) (*domain.CartItem, error) {
	return s.carts.FindByID(ctx, id)
}

// Remove deletes a cart entry. Deleting an absent entry is not an error; the
// result then reports zero deletions.
func (s *CartService) Remove(ctx context.Context, id string) (domain.DeleteResult, error) {
	return s.carts.Delete(ctx, id)
}
