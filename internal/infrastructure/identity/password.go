// Package identity holds the verifiers that gate session token issuance.
package identity

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/summercamp/campfund/internal/core/domain"
	"github.com/summercamp/campfund/internal/core/ports"
)

// PasswordVerifier checks the bcrypt hash stored on the User Record.
type PasswordVerifier struct {
	users ports.UserRepository
}

func NewPasswordVerifier(users ports.UserRepository) *PasswordVerifier {
	return &PasswordVerifier{users: users}
}

func (v *PasswordVerifier) Mode() string { return "password" }

func (v *PasswordVerifier) Verify(ctx context.Context, proof ports.IdentityProof) (string, error) {
	if proof.Password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := v.users.FindByEmail(ctx, proof.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}
	// accounts created without a password cannot log in this way
	if user.PasswordHash == "" {
		return "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(proof.Password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return user.Email, nil
}
