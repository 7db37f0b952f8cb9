package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/summercamp/campfund/internal/api/metrics"
	"github.com/summercamp/campfund/internal/core/domain"
	"github.com/summercamp/campfund/internal/core/ports"
)

type UserService struct {
	users       ports.UserRepository
	teachers    ports.TeacherRepository
	defaultRole domain.Role
	logger      zerolog.Logger
}

// NewUserService wires the user use cases. New accounts receive defaultRole;
// an unknown defaultRole falls back to student.
func NewUserService(users ports.UserRepository, teachers ports.TeacherRepository, defaultRole domain.Role, logger zerolog.Logger) *UserService {
	if !defaultRole.Valid() {
		defaultRole = domain.RoleStudent
	}
	return &UserService{users: users, teachers: teachers, defaultRole: defaultRole, logger: logger}
}

// Register inserts a User Record unless the email is already taken. The role
// is always the configured default, whatever the client sent.
func (s *UserService) Register(ctx context.Context, in ports.RegisterUserInput) (domain.InsertResult, bool, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return domain.InsertResult{}, false, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	user := &domain.User{
		Name:  in.Name,
		Email: email,
		Photo: in.Photo,
		Role:  s.defaultRole,
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return domain.InsertResult{}, false, err
		}
		user.PasswordHash = string(hash)
	}

	res, created, err := s.users.InsertIfAbsent(ctx, user)
	if err != nil {
		return domain.InsertResult{}, false, err
	}
	if !created {
		metrics.UsersRegisteredTotal.WithLabelValues("exists").Inc()
		return domain.InsertResult{}, false, nil
	}

	metrics.UsersRegisteredTotal.WithLabelValues("created").Inc()
	s.logger.Info().Str("email", email).Str("role", string(user.Role)).Msg("user registered")
	return res, true, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// ListTeachers returns users whose role marks them as class owners.
func (s *UserService) ListTeachers(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListByRoles(ctx, domain.TeacherListingRoles)
}

func (s *UserService) ListPopularTeachers(ctx context.Context) ([]*domain.PopularTeacher, error) {
	return s.teachers.ListPopular(ctx, domain.PopularLimit)
}

// UpdateRole overwrites the role of the user identified by email. Any known
// role may replace any other; there is no transition state machine.
func (s *UserService) UpdateRole(ctx context.Context, email string, role domain.Role) (domain.UpdateResult, error) {
	if strings.TrimSpace(email) == "" {
		return domain.UpdateResult{}, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	if !role.Valid() {
		return domain.UpdateResult{}, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	res, err := s.users.UpdateRole(ctx, email, role)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	s.logger.Info().Str("email", email).Str("role", string(role)).Int64("matched", res.MatchedCount).Msg("user role updated")
	return res, nil
}
