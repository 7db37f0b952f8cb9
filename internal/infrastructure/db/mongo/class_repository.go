package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/summercamp/campfund/internal/core/domain"
	"github.com/summercamp/campfund/internal/core/ports"
)

type ClassRepository struct {
	col *mongo.Collection
}

func NewClassRepository(db *mongo.Database) *ClassRepository {
	return &ClassRepository{col: db.Collection(collectionClasses)}
}

// List returns classes matching filter sorted by enrolled ascending.
func (r *ClassRepository) List(ctx context.Context, filter ports.ClassFilter) ([]*domain.Class, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = bson.M{"$eq": filter.Status}
	}
	if filter.MinEnrolled != nil {
		query["enrolled"] = bson.M{"$gt": *filter.MinEnrolled}
	}

	opts := options.Find().SetSort(bson.D{{Key: "enrolled", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	classes, err := findAll[domain.Class](ctx, r.col, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

func (r *ClassRepository) FindByID(ctx context.Context, id string) (*domain.Class, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Class
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&c); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrClassNotFound
		}
		return nil, fmt.Errorf("find class: %w", err)
	}
	return &c, nil
}

func (r *ClassRepository) Insert(ctx context.Context, class *domain.Class) (domain.InsertResult, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, class)
	if err != nil {
		return domain.InsertResult{}, fmt.Errorf("insert class: %w", err)
	}
	return insertResult(res), nil
}

// Enroll increments enrolled atomically. With trackSeats the filter also
// requires a free seat and the same update decrements seats.
func (r *ClassRepository) Enroll(ctx context.Context, id string, trackSeats bool) (domain.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.UpdateResult{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid}
	inc := bson.M{"enrolled": 1}
	if trackSeats {
		filter["seats"] = bson.M{"$gt": 0}
		inc["seats"] = -1
	}

	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$inc": inc})
	if err != nil {
		return domain.UpdateResult{}, fmt.Errorf("enroll class: %w", err)
	}
	return updateResult(res), nil
}

func (r *ClassRepository) Review(ctx context.Context, id string, review domain.ClassReview) (domain.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.UpdateResult{}, err
	}

	set := bson.M{}
	if review.Feedback != nil {
		set["feedback"] = *review.Feedback
	}
	if review.Status != nil {
		set["status"] = *review.Status
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return domain.UpdateResult{}, fmt.Errorf("review class: %w", err)
	}
	return updateResult(res), nil
}
