package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/summercamp/campfund/internal/api/metrics"
	"github.com/summercamp/campfund/internal/core/domain"
	"github.com/summercamp/campfund/internal/core/ports"
	"github.com/summercamp/campfund/internal/pkg/token"
)

// AuthService issues session tokens once the caller's identity is verified.
type AuthService struct {
	verifier  ports.IdentityVerifier
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(verifier ports.IdentityVerifier, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = token.DefaultTTL
	}
	return &AuthService{verifier: verifier, jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL, logger: logger}
}

func (s *AuthService) IssueToken(ctx context.Context, proof ports.IdentityProof) (string, error) {
	mode := s.verifier.Mode()
	proof.Email = strings.TrimSpace(proof.Email)
	if proof.Email == "" {
		metrics.TokensIssuedTotal.WithLabelValues(mode, "rejected").Inc()
		return "", domain.ErrInvalidCredentials
	}

	email, err := s.verifier.Verify(ctx, proof)
	if err != nil {
		metrics.TokensIssuedTotal.WithLabelValues(mode, "rejected").Inc()
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("verify identity: %w", err)
	}

	signed, err := token.Sign(email, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	metrics.TokensIssuedTotal.WithLabelValues(mode, "issued").Inc()
	s.logger.Debug().Str("email", email).Str("mode", mode).Msg("session token issued")
	return signed, nil
}

// RoleAuthorizer resolves the caller's User Record and applies a RoleSet.
type RoleAuthorizer struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewRoleAuthorizer(users ports.UserRepository, logger zerolog.Logger) *RoleAuthorizer {
	return &RoleAuthorizer{users: users, logger: logger}
}

func (a *RoleAuthorizer) Authorize(ctx context.Context, email string, allowed domain.RoleSet) (*domain.User, error) {
	if email == "" {
		return nil, domain.ErrUnauthorized
	}

	user, err := a.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		metrics.AuthorizationDecisionsTotal.WithLabelValues("missing_user").Inc()
		a.logger.Debug().Str("email", email).Msg("guard: no user record for token subject")
		return nil, domain.ErrForbidden
	}
	if err != nil {
		return nil, fmt.Errorf("authorize %s: %w", email, err)
	}

	if !allowed.Permits(user) {
		metrics.AuthorizationDecisionsTotal.WithLabelValues("forbidden").Inc()
		return nil, domain.ErrForbidden
	}
	metrics.AuthorizationDecisionsTotal.WithLabelValues("allow").Inc()
	return user, nil
}
