package ports

import (
	"context"

	"github.com/summercamp/campfund/internal/core/domain"
)

// RegisterUserInput carries a registration request.
type RegisterUserInput struct {
	Name     string
	Email    string
	Photo    string
	Password string
}

// UserService defines use-case operations on users.
type UserService interface {
	// Register returns created=false when the email is already registered.
	Register(ctx context.Context, in RegisterUserInput) (result domain.InsertResult, created bool, err error)
	List(ctx context.Context) ([]*domain.User, error)
	ListTeachers(ctx context.Context) ([]*domain.User, error)
	ListPopularTeachers(ctx context.Context) ([]*domain.PopularTeacher, error)
	UpdateRole(ctx context.Context, email string, role domain.Role) (domain.UpdateResult, error)
}

// ClassService defines use-case operations on classes.
type ClassService interface {
	ListApproved(ctx context.Context) ([]*domain.Class, error)
	ListPopular(ctx context.Context) ([]*domain.Class, error)
	Create(ctx context.Context, class *domain.Class) (domain.InsertResult, error)
	Enroll(ctx context.Context, id string) (domain.UpdateResult, error)
	Review(ctx context.Context, id string, review domain.ClassReview) (domain.UpdateResult, error)
}

// CartService defines use-case operations on cart entries.
type CartService interface {
	Add(ctx context.Context, item *domain.CartItem) (domain.InsertResult, error)
	// ListFor returns ownerEmail's entries; callerEmail must match it.
	ListFor(ctx context.Context, ownerEmail, callerEmail string) ([]*domain.CartItem, error)
	ListByEmail(ctx context.Context, email string) ([]*domain.CartItem, error)
	Get(ctx context.Context, id string) (*domain.CartItem, error)
	Remove(ctx context.Context, id string) (domain.DeleteResult, error)
}

// CheckoutInput carries a payment submission.
type CheckoutInput struct {
	Payment        domain.Payment
	CallerEmail    string
	IdempotencyKey string
}

// PaymentService defines payment use cases.
type PaymentService interface {
	CreateIntent(ctx context.Context, price float64) (*domain.PaymentIntent, error)
	Checkout(ctx context.Context, in CheckoutInput) (*domain.CheckoutResult, error)
	History(ctx context.Context, email string) ([]*domain.Payment, error)
}
