package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/summercamp/campfund/internal/core/domain"
)

// TeacherRepository reads the curated popularTeachers collection.
type TeacherRepository struct {
	col *mongo.Collection
}

func NewTeacherRepository(db *mongo.Database) *TeacherRepository {
	return &TeacherRepository{col: db.Collection(collectionPopularTeachers)}
}

func (r *TeacherRepository) ListPopular(ctx context.Context, limit int64) ([]*domain.PopularTeacher, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	teachers, err := findAll[domain.PopularTeacher](ctx, r.col, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list popular teachers: %w", err)
	}
	return teachers, nil
}
