package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/summercamp/campfund/internal/core/domain"
	"github.com/summercamp/campfund/internal/core/ports"
)

func newPaymentService(deps PaymentDeps) *PaymentService {
	if deps.Checkout == nil {
		deps.Checkout = &stubCheckout{}
	}
	if deps.Payments == nil {
		if pr, ok := deps.Checkout.(ports.PaymentRepository); ok {
			deps.Payments = pr
		}
	}
	return NewPaymentService(deps, zerolog.Nop())
}

func TestPaymentService_CreateIntent_Cents(t *testing.T) {
	gw := &stubGateway{}
	svc := newPaymentService(PaymentDeps{Gateway: gw})

	intent, err := svc.CreateIntent(context.Background(), 19.99)
	if err != nil {
		t.Fatalf("CreateIntent returned error: %v", err)
	}
	if gw.lastAmount != 1999 || gw.lastCur != "usd" {
		t.Fatalf("expected 1999 usd, got %d %s", gw.lastAmount, gw.lastCur)
	}
	if intent.ClientSecret == "" {
		t.Fatalf("expected client secret")
	}
}

func TestPaymentService_CreateIntent_Errors(t *testing.T) {
	ctx := context.Background()

	if _, err := newPaymentService(PaymentDeps{Gateway: &stubGateway{}}).CreateIntent(ctx, 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero price, got %v", err)
	}
	if _, err := newPaymentService(PaymentDeps{}).CreateIntent(ctx, 10); err != domain.ErrProviderUnavailable {
		t.Fatalf("expected ErrProviderUnavailable without gateway, got %v", err)
	}
	gwErr := errors.Join(domain.ErrPaymentProvider, errBoom)
	if _, err := newPaymentService(PaymentDeps{Gateway: &stubGateway{err: gwErr}}).CreateIntent(ctx, 10); !errors.Is(err, domain.ErrPaymentProvider) {
		t.Fatalf("expected ErrPaymentProvider, got %v", err)
	}
}

func TestPaymentService_Checkout_Success(t *testing.T) {
	store := &stubCheckout{}
	mailer := &stubMailer{}
	svc := newPaymentService(PaymentDeps{Checkout: store, Mailer: mailer})
	fixed := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	res, err := svc.Checkout(context.Background(), ports.CheckoutInput{
		Payment:     domain.Payment{TransactionID: "pi_1", Price: 10, CartID: "cart-1"},
		CallerEmail: "a@x.com",
	})
	if err != nil {
		t.Fatalf("Checkout returned error: %v", err)
	}
	if res.InsertResult.InsertedID == "" || res.DeleteResult.DeletedCount != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(store.payments) != 1 || store.payments[0].Email != "a@x.com" || !store.payments[0].Date.Equal(fixed) {
		t.Fatalf("unexpected stored payment: %+v", store.payments)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "a@x.com" {
		t.Fatalf("expected confirmation email, got %v", mailer.sent)
	}
}

func TestPaymentService_Checkout_ForeignEmailForbidden(t *testing.T) {
	store := &stubCheckout{}
	svc := newPaymentService(PaymentDeps{Checkout: store})

	_, err := svc.Checkout(context.Background(), ports.CheckoutInput{
		Payment:     domain.Payment{Email: "victim@x.com", CartID: "cart-1"},
		CallerEmail: "a@x.com",
	})
	if err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(store.payments) != 0 {
		t.Fatalf("payment must not be stored")
	}
}

func TestPaymentService_Checkout_StoresCallerEmail(t *testing.T) {
	store := &stubCheckout{}
	svc := newPaymentService(PaymentDeps{Checkout: store})
	ctx := context.Background()

	_, err := svc.Checkout(ctx, ports.CheckoutInput{
		Payment:     domain.Payment{Email: " S@X.com ", CartID: "cart-1", Price: 5},
		CallerEmail: "s@x.com",
	})
	if err != nil {
		t.Fatalf("Checkout returned error: %v", err)
	}
	if store.payments[0].Email != "s@x.com" {
		t.Fatalf("expected the caller email to be stored, got %q", store.payments[0].Email)
	}

	history, err := svc.History(ctx, "s@x.com")
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected the payment in the caller's history, got %d entries", len(history))
	}
}

func TestPaymentService_Checkout_PriceBounds(t *testing.T) {
	store := &stubCheckout{}
	svc := newPaymentService(PaymentDeps{Checkout: store, Gateway: &stubGateway{}})
	ctx := context.Background()

	for _, price := range []float64{-1, domain.MaxPrice + 0.01, 1e300} {
		_, err := svc.Checkout(ctx, ports.CheckoutInput{
			Payment:     domain.Payment{CartID: "cart-1", Price: price},
			CallerEmail: "a@x.com",
		})
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("price %v: expected ErrInvalidInput, got %v", price, err)
		}
		if _, err := svc.CreateIntent(ctx, price); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("intent price %v: expected ErrInvalidInput, got %v", price, err)
		}
	}
	if len(store.payments) != 0 {
		t.Fatalf("no payment should be stored")
	}
}

func TestPaymentService_Checkout_RequiresCart(t *testing.T) {
	svc := newPaymentService(PaymentDeps{})
	_, err := svc.Checkout(context.Background(), ports.CheckoutInput{CallerEmail: "a@x.com"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPaymentService_Checkout_IdempotentReplay(t *testing.T) {
	store := &stubCheckout{}
	idem := newStubIdem()
	mailer := &stubMailer{}
	svc := newPaymentService(PaymentDeps{Checkout: store, Idempotency: idem, Mailer: mailer})
	in := ports.CheckoutInput{
		Payment:        domain.Payment{TransactionID: "pi_1", Price: 10, CartID: "cart-1"},
		CallerEmail:    "a@x.com",
		IdempotencyKey: "key-1",
	}

	first, err := svc.Checkout(context.Background(), in)
	if err != nil {
		t.Fatalf("first Checkout returned error: %v", err)
	}
	second, err := svc.Checkout(context.Background(), in)
	if err != nil {
		t.Fatalf("replayed Checkout returned error: %v", err)
	}

	if len(store.payments) != 1 {
		t.Fatalf("expected exactly one stored payment, got %d", len(store.payments))
	}
	if second.InsertResult.InsertedID != first.InsertResult.InsertedID {
		t.Fatalf("replay returned a different result: %+v vs %+v", second, first)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("replay must not resend the email, sent=%d", len(mailer.sent))
	}
}

func TestPaymentService_Checkout_KeyReusedForOtherCart(t *testing.T) {
	store := &stubCheckout{}
	idem := newStubIdem()
	svc := newPaymentService(PaymentDeps{Checkout: store, Idempotency: idem})
	in := ports.CheckoutInput{
		Payment:        domain.Payment{TransactionID: "pi_1", Price: 10, CartID: "cart-1"},
		CallerEmail:    "a@x.com",
		IdempotencyKey: "key-1",
	}
	if _, err := svc.Checkout(context.Background(), in); err != nil {
		t.Fatalf("first Checkout returned error: %v", err)
	}

	in.Payment.CartID = "cart-2"
	_, err := svc.Checkout(context.Background(), in)
	if err != domain.ErrIdempotencyKeyReused {
		t.Fatalf("expected ErrIdempotencyKeyReused, got %v", err)
	}
	if len(store.payments) != 1 {
		t.Fatalf("expected only the first payment, got %d", len(store.payments))
	}
	if _, held := idem.entries["a@x.com:key-1"]; !held || len(idem.released) != 0 {
		t.Fatalf("the first request's key must stay stored")
	}
}

func TestPaymentService_Checkout_InFlight(t *testing.T) {
	store := &stubCheckout{}
	idem := newStubIdem()
	idem.entries["a@x.com:key-1"] = nil
	svc := newPaymentService(PaymentDeps{Checkout: store, Idempotency: idem})

	_, err := svc.Checkout(context.Background(), ports.CheckoutInput{
		Payment:        domain.Payment{CartID: "cart-1"},
		CallerEmail:    "a@x.com",
		IdempotencyKey: "key-1",
	})
	if err != domain.ErrRequestInFlight {
		t.Fatalf("expected ErrRequestInFlight, got %v", err)
	}
	if len(store.payments) != 0 {
		t.Fatalf("payment must not be stored")
	}
}

func TestPaymentService_Checkout_FailureReleasesKey(t *testing.T) {
	idem := newStubIdem()
	svc := newPaymentService(PaymentDeps{Checkout: &stubCheckout{err: errBoom}, Idempotency: idem})

	_, err := svc.Checkout(context.Background(), ports.CheckoutInput{
		Payment:        domain.Payment{CartID: "cart-1"},
		CallerEmail:    "a@x.com",
		IdempotencyKey: "key-1",
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if len(idem.released) != 1 {
		t.Fatalf("expected the key to be released, got %v", idem.released)
	}
	if _, held := idem.entries["a@x.com:key-1"]; held {
		t.Fatalf("released key is still held")
	}
}

func TestPaymentService_Checkout_EmailFailureIsNotFatal(t *testing.T) {
	store := &stubCheckout{}
	svc := newPaymentService(PaymentDeps{Checkout: store, Mailer: &stubMailer{err: errBoom}})

	res, err := svc.Checkout(context.Background(), ports.CheckoutInput{
		Payment:     domain.Payment{CartID: "cart-1", Price: 5},
		CallerEmail: "a@x.com",
	})
	if err != nil {
		t.Fatalf("email failure must not fail checkout: %v", err)
	}
	if res == nil || len(store.payments) != 1 {
		t.Fatalf("payment should be stored, got res=%+v", res)
	}
}

func TestPaymentService_History(t *testing.T) {
	store := &stubCheckout{}
	svc := newPaymentService(PaymentDeps{Checkout: store})
	ctx := context.Background()

	for _, cart := range []string{"c1", "c2"} {
		if _, err := svc.Checkout(ctx, ports.CheckoutInput{Payment: domain.Payment{CartID: cart}, CallerEmail: "a@x.com"}); err != nil {
			t.Fatalf("Checkout returned error: %v", err)
		}
	}

	history, err := svc.History(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(history) != 2 || history[0].CartID != "c2" {
		t.Fatalf("expected newest first, got %+v", history)
	}
	if _, err := svc.History(ctx, ""); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
