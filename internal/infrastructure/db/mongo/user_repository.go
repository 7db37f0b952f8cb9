package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/summercamp/campfund/internal/core/domain"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

// FindByEmail retrieves a user by exact email match.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// InsertIfAbsent upserts with $setOnInsert so an existing record is never
// touched. A duplicate key error means a concurrent request won the insert.
func (r *UserRepository) InsertIfAbsent(ctx context.Context, user *domain.User) (domain.InsertResult, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"email": user.Email,
		"role":  user.Role,
	}
	if user.Name != "" {
		doc["name"] = user.Name
	}
	if user.Photo != "" {
		doc["photo"] = user.Photo
	}
	if user.PasswordHash != "" {
		doc["password_hash"] = user.PasswordHash
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"email": user.Email},
		bson.M{"$setOnInsert": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.InsertResult{}, false, nil
		}
		return domain.InsertResult{}, false, fmt.Errorf("insert user: %w", err)
	}
	if res.UpsertedCount == 0 {
		return domain.InsertResult{}, false, nil
	}

	out := domain.InsertResult{Acknowledged: true}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		out.InsertedID = oid.Hex()
		user.ID = oid
	}
	return out, true, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	users, err := findAll[domain.User](ctx, r.col, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) ListByRoles(ctx context.Context, roles []domain.Role) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	users, err := findAll[domain.User](ctx, r.col, bson.M{"role": bson.M{"$in": roles}})
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return users, nil
}

// UpdateRole sets role on the user with the given email. No upsert.
func (r *UserRepository) UpdateRole(ctx context.Context, email string, role domain.Role) (domain.UpdateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return domain.UpdateResult{}, fmt.Errorf("update role: %w", err)
	}
	return updateResult(res), nil
}
