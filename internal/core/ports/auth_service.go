package ports

import (
	"context"

	"github.com/summercamp/campfund/internal/core/domain"
)

// AuthService issues session tokens.
type AuthService interface {
	IssueToken(ctx context.Context, proof IdentityProof) (string, error)
}

// Authorizer resolves the caller's User Record and checks it against the
// accepted roles. A missing record yields domain.ErrForbidden.
type Authorizer interface {
	Authorize(ctx context.Context, email string, allowed domain.RoleSet) (*domain.User, error)
}
