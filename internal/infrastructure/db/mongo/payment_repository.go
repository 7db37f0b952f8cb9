package mongo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/summercamp/campfund/internal/api/metrics"
	"github.com/summercamp/campfund/internal/core/domain"
)

type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(collectionPayments)}
}

// ListByEmail returns the payments of email, newest first.
func (r *PaymentRepository) ListByEmail(ctx context.Context, email string) ([]*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	payments, err := findAll[domain.Payment](ctx, r.col, bson.M{"email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// CheckoutStore inserts a payment and deletes the paid cart entry. With
// transactions enabled both writes commit together; otherwise the payment
// insert is undone when the cart delete does not remove exactly one entry.
type CheckoutStore struct {
	client       *mongo.Client
	payments     *mongo.Collection
	carts        *mongo.Collection
	transactions bool
	logger       zerolog.Logger
}

func NewCheckoutStore(db *mongo.Database, transactions bool, logger zerolog.Logger) *CheckoutStore {
	return &CheckoutStore{
		client:       db.Client(),
		payments:     db.Collection(collectionPayments),
		carts:        db.Collection(collectionCart),
		transactions: transactions,
		logger:       logger,
	}
}

// Complete fails with domain.ErrCartItemNotFound when the cart entry is
// already gone, which also keeps a blind retry from paying twice.
func (s *CheckoutStore) Complete(ctx context.Context, payment *domain.Payment, cartID string) (*domain.CheckoutResult, error) {
	cartOID, err := objectID(cartID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if s.transactions {
		return s.completeInTransaction(ctx, payment, cartOID)
	}
	return s.completeWithCompensation(ctx, payment, cartOID)
}

func (s *CheckoutStore) completeInTransaction(ctx context.Context, payment *domain.Payment, cartOID any) (*domain.CheckoutResult, error) {
	sess, err := s.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	out, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		ins, err := s.payments.InsertOne(sc, payment)
		if err != nil {
			return nil, fmt.Errorf("insert payment: %w", err)
		}
		del, err := s.carts.DeleteOne(sc, bson.M{"_id": cartOID})
		if err != nil {
			return nil, fmt.Errorf("delete cart item: %w", err)
		}
		if del.DeletedCount == 0 {
			return nil, domain.ErrCartItemNotFound
		}
		return &domain.CheckoutResult{
			InsertResult: insertResult(ins),
			DeleteResult: deleteResult(del),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*domain.CheckoutResult), nil
}

func (s *CheckoutStore) completeWithCompensation(ctx context.Context, payment *domain.Payment, cartOID any) (*domain.CheckoutResult, error) {
	ins, err := s.payments.InsertOne(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	del, delErr := s.carts.DeleteOne(ctx, bson.M{"_id": cartOID})
	if delErr == nil && del.DeletedCount == 1 {
		return &domain.CheckoutResult{
			InsertResult: insertResult(ins),
			DeleteResult: deleteResult(del),
		}, nil
	}

	// undo the payment; the caller's context may already be done
	undoCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultTimeout)
	defer cancel()
	if _, err := s.payments.DeleteOne(undoCtx, bson.M{"_id": ins.InsertedID}); err != nil {
		s.logger.Error().Err(err).Interface("payment_id", ins.InsertedID).Msg("checkout compensation failed; orphan payment left behind")
	}
	metrics.CheckoutCompensationsTotal.Inc()

	if delErr != nil {
		return nil, fmt.Errorf("delete cart item: %w", delErr)
	}
	return nil, domain.ErrCartItemNotFound
}
