package ports

import (
	"context"

	"github.com/summercamp/campfund/internal/core/domain"
)

// UserRepository defines persistence for User Records.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no record matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// InsertIfAbsent inserts user unless a record with the same email exists.
	// created is false (and the result empty) when the email was already taken.
	InsertIfAbsent(ctx context.Context, user *domain.User) (result domain.InsertResult, created bool, err error)
	List(ctx context.Context) ([]*domain.User, error)
	ListByRoles(ctx context.Context, roles []domain.Role) ([]*domain.User, error)
	UpdateRole(ctx context.Context, email string, role domain.Role) (domain.UpdateResult, error)
}

// TeacherRepository reads the curated popular teachers collection.
type TeacherRepository interface {
	ListPopular(ctx context.Context, limit int64) ([]*domain.PopularTeacher, error)
}
