package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/summercamp/campfund/internal/core/domain"
	"github.com/summercamp/campfund/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	findErr error
	lookups int
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.Email] = cloneUser(u)
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups++
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) InsertIfAbsent(_ context.Context, user *domain.User) (domain.InsertResult, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Email]; exists {
		return domain.InsertResult{}, false, nil
	}
	stored := cloneUser(user)
	stored.ID = primitive.NewObjectID()
	r.users[user.Email] = stored
	return domain.InsertResult{Acknowledged: true, InsertedID: stored.ID.Hex()}, true, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) ListByRoles(_ context.Context, roles []domain.Role) ([]*domain.User, error) {
	set := domain.NewRoleSet(roles...)
	all, _ := r.List(context.Background())
	out := make([]*domain.User, 0)
	for _, u := range all {
		if set.Permits(u) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, email string, role domain.Role) (domain.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return domain.UpdateResult{Acknowledged: true}, nil
	}
	modified := int64(0)
	if u.Role != role {
		modified = 1
	}
	u.Role = role
	return domain.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: modified}, nil
}

type stubTeacherRepo struct {
	teachers  []*domain.PopularTeacher
	lastLimit int64
}

func (r *stubTeacherRepo) ListPopular(_ context.Context, limit int64) ([]*domain.PopularTeacher, error) {
	r.lastLimit = limit
	if int64(len(r.teachers)) > limit {
		return r.teachers[:limit], nil
	}
	return r.teachers, nil
}

type stubClassRepo struct {
	classes    map[string]*domain.Class
	lastFilter ports.ClassFilter
	inserted   []*domain.Class
}

func newStubClassRepo(classes ...*domain.Class) *stubClassRepo {
	r := &stubClassRepo{classes: make(map[string]*domain.Class)}
	for _, c := range classes {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		r.classes[c.ID.Hex()] = c
	}
	return r
}

func (r *stubClassRepo) List(_ context.Context, filter ports.ClassFilter) ([]*domain.Class, error) {
	r.lastFilter = filter
	out := make([]*domain.Class, 0)
	for _, c := range r.classes {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.MinEnrolled != nil && c.Enrolled <= *filter.MinEnrolled {
			continue
		}
		out = append(out, c)
	}
	if filter.Limit > 0 && int64(len(out)) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *stubClassRepo) FindByID(_ context.Context, id string) (*domain.Class, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	c, ok := r.classes[id]
	if !ok {
		return nil, domain.ErrClassNotFound
	}
	return c, nil
}

func (r *stubClassRepo) Insert(_ context.Context, class *domain.Class) (domain.InsertResult, error) {
	class.ID = primitive.NewObjectID()
	r.classes[class.ID.Hex()] = class
	r.inserted = append(r.inserted, class)
	return domain.InsertResult{Acknowledged: true, InsertedID: class.ID.Hex()}, nil
}

func (r *stubClassRepo) Enroll(_ context.Context, id string, trackSeats bool) (domain.UpdateResult, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return domain.UpdateResult{}, domain.ErrInvalidID
	}
	c, ok := r.classes[id]
	if !ok || (trackSeats && c.Seats <= 0) {
		return domain.UpdateResult{Acknowledged: true}, nil
	}
	c.Enrolled++
	if trackSeats {
		c.Seats--
	}
	return domain.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *stubClassRepo) Review(_ context.Context, id string, review domain.ClassReview) (domain.UpdateResult, error) {
	c, ok := r.classes[id]
	if !ok {
		return domain.UpdateResult{Acknowledged: true}, nil
	}
	if review.Feedback != nil {
		c.Feedback = *review.Feedback
	}
	if review.Status != nil {
		c.Status = *review.Status
	}
	return domain.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

type stubCartRepo struct {
	items map[string]*domain.CartItem
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{items: make(map[string]*domain.CartItem)}
}

func (r *stubCartRepo) Insert(_ context.Context, item *domain.CartItem) (domain.InsertResult, error) {
	item.ID = primitive.NewObjectID()
	r.items[item.ID.Hex()] = item
	return domain.InsertResult{Acknowledged: true, InsertedID: item.ID.Hex()}, nil
}

func (r *stubCartRepo) ListByEmail(_ context.Context, email string) ([]*domain.CartItem, error) {
	out := make([]*domain.CartItem, 0)
	for _, it := range r.items {
		if it.Email == email {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *stubCartRepo) FindByID(_ context.Context, id string) (*domain.CartItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, domain.ErrCartItemNotFound
	}
	return it, nil
}

func (r *stubCartRepo) Delete(_ context.Context, id string) (domain.DeleteResult, error) {
	if _, ok := r.items[id]; !ok {
		return domain.DeleteResult{Acknowledged: true}, nil
	}
	delete(r.items, id)
	return domain.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

type stubCheckout struct {
	err      error
	payments []*domain.Payment
}

func (s *stubCheckout) Complete(_ context.Context, p *domain.Payment, _ string) (*domain.CheckoutResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	stored := *p
	stored.ID = primitive.NewObjectID()
	s.payments = append(s.payments, &stored)
	return &domain.CheckoutResult{
		InsertResult: domain.InsertResult{Acknowledged: true, InsertedID: stored.ID.Hex()},
		DeleteResult: domain.DeleteResult{Acknowledged: true, DeletedCount: 1},
	}, nil
}

func (s *stubCheckout) ListByEmail(_ context.Context, email string) ([]*domain.Payment, error) {
	out := make([]*domain.Payment, 0)
	for i := len(s.payments) - 1; i >= 0; i-- {
		if s.payments[i].Email == email {
			out = append(out, s.payments[i])
		}
	}
	return out, nil
}

// stubIdem mimics the Redis store: a nil value marks a key in flight.
type stubIdem struct {
	entries  map[string][]byte
	released []string
}

func newStubIdem() *stubIdem {
	return &stubIdem{entries: make(map[string][]byte)}
}

func (s *stubIdem) Reserve(_ context.Context, key string) ([]byte, error) {
	v, ok := s.entries[key]
	if !ok {
		s.entries[key] = nil
		return nil, nil
	}
	if v == nil {
		return nil, domain.ErrRequestInFlight
	}
	return v, nil
}

func (s *stubIdem) Complete(_ context.Context, key string, result []byte) error {
	s.entries[key] = result
	return nil
}

func (s *stubIdem) Release(_ context.Context, key string) error {
	delete(s.entries, key)
	s.released = append(s.released, key)
	return nil
}

type stubGateway struct {
	err        error
	lastAmount int64
	lastCur    string
}

func (g *stubGateway) CreateIntent(_ context.Context, amountCents int64, currency string) (*domain.PaymentIntent, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.lastAmount = amountCents
	g.lastCur = currency
	return &domain.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret", AmountCents: amountCents, Currency: currency}, nil
}

type stubMailer struct {
	err  error
	sent []string
}

func (m *stubMailer) SendPaymentConfirmation(_ context.Context, p *domain.Payment) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, p.Email)
	return nil
}

type stubVerifier struct {
	mode string
	err  error
}

func (v *stubVerifier) Verify(_ context.Context, proof ports.IdentityProof) (string, error) {
	if v.err != nil {
		return "", v.err
	}
	return strings.ToLower(proof.Email), nil
}

func (v *stubVerifier) Mode() string { return v.mode }

var errBoom = errors.New("boom")
