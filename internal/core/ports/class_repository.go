package ports

import (
	"context"

	"github.com/summercamp/campfund/internal/core/domain"
)

// ClassFilter selects classes for listing. Zero values disable a clause.
type ClassFilter struct {
	Status      domain.ClassStatus
	MinEnrolled *int // exclusive: enrolled > MinEnrolled
	Limit       int64
}

// ClassRepository defines persistence for classes / donation items.
type ClassRepository interface {
	// List returns classes matching filter sorted by enrolled ascending.
	List(ctx context.Context, filter ClassFilter) ([]*domain.Class, error)
	FindByID(ctx context.Context, id string) (*domain.Class, error)
	Insert(ctx context.Context, class *domain.Class) (domain.InsertResult, error)
	// Enroll increments enrolled by one. With trackSeats it also decrements
	// seats and only matches classes that still have a seat.
	Enroll(ctx context.Context, id string, trackSeats bool) (domain.UpdateResult, error)
	Review(ctx context.Context, id string, review domain.ClassReview) (domain.UpdateResult, error)
}
