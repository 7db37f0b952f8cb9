package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/summercamp/campfund/internal/api/middleware"
	"github.com/summercamp/campfund/internal/core/domain"
)

func TestRoleHandler_Admin(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/users/admin/boss@x.com", "", "boss@x.com")
	c.SetParamNames("email")
	c.SetParamValues("Boss@X.com")
	c.Set(middleware.ContextKeyUser, &domain.User{Email: "boss@x.com", Role: domain.RoleAdmin})

	if err := NewRoleHandler().Admin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := decode[roleResponse](t, rec); got.Role != "admin" {
		t.Fatalf("unexpected role %q", got.Role)
	}
}

func TestRoleHandler_Instructor_OtherEmail(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/users/instructor/else@x.com", "", "t@x.com")
	c.SetParamNames("email")
	c.SetParamValues("else@x.com")
	c.Set(middleware.ContextKeyUser, &domain.User{Email: "t@x.com", Role: domain.RoleInstructor})

	if err := NewRoleHandler().Instructor(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRoleHandler_WithoutGuard(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/users/admin/a@x.com", "", "a@x.com")

	if err := NewRoleHandler().Admin(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRoot(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/", "", "")

	if err := Root(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "Summer Camp is running!" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}
