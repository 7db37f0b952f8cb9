package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/summercamp/campfund/internal/core/domain"
	"github.com/summercamp/campfund/internal/core/ports"
	"github.com/summercamp/campfund/internal/pkg/token"
)

func TestAuthService_IssueToken_Success(t *testing.T) {
	svc := NewAuthService(&stubVerifier{mode: "password"}, "secret", time.Hour, zerolog.Nop())

	signed, err := svc.IssueToken(context.Background(), ports.IdentityProof{Email: " A@x.com ", Password: "pw"})
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	claims, err := token.Parse(signed, []byte("secret"))
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("expected verified email in claim, got %q", claims.Email)
	}
	if ttl := claims.ExpiresAt.Sub(time.Now()); ttl > time.Hour || ttl < 59*time.Minute {
		t.Fatalf("unexpected token lifetime: %v", ttl)
	}
}

func TestAuthService_IssueToken_RequiresEmail(t *testing.T) {
	svc := NewAuthService(&stubVerifier{mode: "open"}, "secret", time.Hour, zerolog.Nop())

	if _, err := svc.IssueToken(context.Background(), ports.IdentityProof{}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_IssueToken_VerifierRejects(t *testing.T) {
	for _, verr := range []error{domain.ErrInvalidCredentials, domain.ErrUserNotFound} {
		svc := NewAuthService(&stubVerifier{mode: "password", err: verr}, "secret", time.Hour, zerolog.Nop())

		if _, err := svc.IssueToken(context.Background(), ports.IdentityProof{Email: "a@x.com"}); err != domain.ErrInvalidCredentials {
			t.Fatalf("verifier error %v: expected ErrInvalidCredentials, got %v", verr, err)
		}
	}
}

func TestAuthService_IssueToken_VerifierFailure(t *testing.T) {
	svc := NewAuthService(&stubVerifier{mode: "casdoor", err: errBoom}, "secret", time.Hour, zerolog.Nop())

	_, err := svc.IssueToken(context.Background(), ports.IdentityProof{Email: "a@x.com"})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected wrapped verifier error, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("infrastructure failure must not be reported as bad credentials")
	}
}

func TestAuthService_DefaultTTL(t *testing.T) {
	svc := NewAuthService(&stubVerifier{mode: "open"}, "secret", 0, zerolog.Nop())
	if svc.tokenTTL != token.DefaultTTL {
		t.Fatalf("expected default ttl %v, got %v", token.DefaultTTL, svc.tokenTTL)
	}
}

func TestRoleAuthorizer_Allows(t *testing.T) {
	repo := newStubUserRepo(&domain.User{Email: "a@x.com", Role: domain.RoleAdmin})
	authz := NewRoleAuthorizer(repo, zerolog.Nop())

	user, err := authz.Authorize(context.Background(), "a@x.com", domain.AdminRoles)
	if err != nil {
		t.Fatalf("Authorize returned error: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestRoleAuthorizer_DonationVocabulary(t *testing.T) {
	repo := newStubUserRepo(
		&domain.User{Email: "donor@x.com", Role: domain.RoleDonor},
		&domain.User{Email: "verified@x.com", Role: domain.RoleVerified},
		&domain.User{Email: "pending@x.com", Role: domain.RolePending},
	)
	authz := NewRoleAuthorizer(repo, zerolog.Nop())
	ctx := context.Background()

	if _, err := authz.Authorize(ctx, "donor@x.com", domain.StudentRoles); err != nil {
		t.Fatalf("donor should pass the student guard: %v", err)
	}
	if _, err := authz.Authorize(ctx, "verified@x.com", domain.InstructorRoles); err != nil {
		t.Fatalf("verified should pass the instructor guard: %v", err)
	}
	if _, err := authz.Authorize(ctx, "pending@x.com", domain.InstructorRoles); err != domain.ErrForbidden {
		t.Fatalf("pending fundraiser should be forbidden, got %v", err)
	}
}

func TestRoleAuthorizer_WrongRole(t *testing.T) {
	repo := newStubUserRepo(&domain.User{Email: "a@x.com", Role: domain.RoleStudent})
	authz := NewRoleAuthorizer(repo, zerolog.Nop())

	if _, err := authz.Authorize(context.Background(), "a@x.com", domain.AdminRoles); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRoleAuthorizer_MissingUser(t *testing.T) {
	authz := NewRoleAuthorizer(newStubUserRepo(), zerolog.Nop())

	if _, err := authz.Authorize(context.Background(), "ghost@x.com", domain.StudentRoles); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for missing user, got %v", err)
	}
}

func TestRoleAuthorizer_RepositoryFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errBoom
	authz := NewRoleAuthorizer(repo, zerolog.Nop())

	_, err := authz.Authorize(context.Background(), "a@x.com", domain.StudentRoles)
	if !errors.Is(err, errBoom) || errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected repository error to propagate, got %v", err)
	}
}

func TestRoleAuthorizer_EmptyEmail(t *testing.T) {
	repo := newStubUserRepo()
	authz := NewRoleAuthorizer(repo, zerolog.Nop())

	if _, err := authz.Authorize(context.Background(), "", domain.StudentRoles); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if repo.lookups != 0 {
		t.Fatalf("expected no repository lookup, got %d", repo.lookups)
	}
}
