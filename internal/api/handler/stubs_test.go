package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/summercamp/campfund/internal/api/middleware"
	"github.com/summercamp/campfund/internal/core/domain"
	"github.com/summercamp/campfund/internal/core/ports"
)

type stubAuthService struct {
	issueFn func(ctx context.Context, proof ports.IdentityProof) (string, error)
}

func (s *stubAuthService) IssueToken(ctx context.Context, proof ports.IdentityProof) (string, error) {
	return s.issueFn(ctx, proof)
}

type stubUserService struct {
	registerFn   func(ctx context.Context, in ports.RegisterUserInput) (domain.InsertResult, bool, error)
	updateRoleFn func(ctx context.Context, email string, role domain.Role) (domain.UpdateResult, error)
	users        []*domain.User
}

func (s *stubUserService) Register(ctx context.Context, in ports.RegisterUserInput) (domain.InsertResult, bool, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserService) List(context.Context) ([]*domain.User, error) { return s.users, nil }

func (s *stubUserService) ListTeachers(context.Context) ([]*domain.User, error) {
	return s.users, nil
}

func (s *stubUserService) ListPopularTeachers(context.Context) ([]*domain.PopularTeacher, error) {
	return []*domain.PopularTeacher{}, nil
}

func (s *stubUserService) UpdateRole(ctx context.Context, email string, role domain.Role) (domain.UpdateResult, error) {
	return s.updateRoleFn(ctx, email, role)
}

type stubClassService struct {
	createFn func(ctx context.Context, class *domain.Class) (domain.InsertResult, error)
	enrollFn func(ctx context.Context, id string) (domain.UpdateResult, error)
	reviewFn func(ctx context.Context, id string, review domain.ClassReview) (domain.UpdateResult, error)
}

func (s *stubClassService) ListApproved(context.Context) ([]*domain.Class, error) {
	return []*domain.Class{}, nil
}

func (s *stubClassService) ListPopular(context.Context) ([]*domain.Class, error) {
	return []*domain.Class{}, nil
}

func (s *stubClassService) Create(ctx context.Context, class *domain.Class) (domain.InsertResult, error) {
	return s.createFn(ctx, class)
}

func (s *stubClassService) Enroll(ctx context.Context, id string) (domain.UpdateResult, error) {
	return s.enrollFn(ctx, id)
}

func (s *stubClassService) Review(ctx context.Context, id string, review domain.ClassReview) (domain.UpdateResult, error) {
	return s.reviewFn(ctx, id, review)
}

type stubCartService struct {
	listForFn func(ctx context.Context, owner, caller string) ([]*domain.CartItem, error)
	getFn     func(ctx context.Context, id string) (*domain.CartItem, error)
}

func (s *stubCartService) Add(context.Context, *domain.CartItem) (domain.InsertResult, error) {
	return domain.InsertResult{Acknowledged: true, InsertedID: "c1"}, nil
}

func (s *stubCartService) ListFor(ctx context.Context, owner, caller string) ([]*domain.CartItem, error) {
	return s.listForFn(ctx, owner, caller)
}

func (s *stubCartService) ListByEmail(context.Context, string) ([]*domain.CartItem, error) {
	return []*domain.CartItem{}, nil
}

func (s *stubCartService) Get(ctx context.Context, id string) (*domain.CartItem, error) {
	return s.getFn(ctx, id)
}

func (s *stubCartService) Remove(context.Context, string) (domain.DeleteResult, error) {
	return domain.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

type stubPaymentService struct {
	intentFn   func(ctx context.Context, price float64) (*domain.PaymentIntent, error)
	checkoutFn func(ctx context.Context, in ports.CheckoutInput) (*domain.CheckoutResult, error)
	historyFn  func(ctx context.Context, email string) ([]*domain.Payment, error)
}

func (s *stubPaymentService) CreateIntent(ctx context.Context, price float64) (*domain.PaymentIntent, error) {
	return s.intentFn(ctx, price)
}

func (s *stubPaymentService) Checkout(ctx context.Context, in ports.CheckoutInput) (*domain.CheckoutResult, error) {
	return s.checkoutFn(ctx, in)
}

func (s *stubPaymentService) History(ctx context.Context, email string) ([]*domain.Payment, error) {
	return s.historyFn(ctx, email)
}

// newContext builds an echo context for method/target with an optional JSON
// body and, when caller is non-empty, the email the Auth middleware would set.
func newContext(method, target, body, caller string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if caller != "" {
		c.Set(middleware.ContextKeyEmail, caller)
	}
	return c, rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return out
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	return he.Code
}
