package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/summercamp/campfund/internal/api/metrics"
	"github.com/summercamp/campfund/internal/core/domain"
	"github.com/summercamp/campfund/internal/core/ports"
)

type ClassService struct {
	classes    ports.ClassRepository
	trackSeats bool
	logger     zerolog.Logger
}

// NewClassService wires the class use cases. With trackSeats each enrollment
// also consumes a seat and is refused once none are left.
func NewClassService(classes ports.ClassRepository, trackSeats bool, logger zerolog.Logger) *ClassService {
	return &ClassService{classes: classes, trackSeats: trackSeats, logger: logger}
}

// ListApproved returns approved classes sorted by enrolled ascending.
func (s *ClassService) ListApproved(ctx context.Context) ([]*domain.Class, error) {
	return s.classes.List(ctx, ports.ClassFilter{Status: domain.ClassApproved})
}

// ListPopular returns at most PopularLimit approved classes with more than
// PopularEnrollmentThreshold enrollments.
func (s *ClassService) ListPopular(ctx context.Context) ([]*domain.Class, error) {
	threshold := domain.PopularEnrollmentThreshold
	return s.classes.List(ctx, ports.ClassFilter{
		Status:      domain.ClassApproved,
		MinEnrolled: &threshold,
		Limit:       domain.PopularLimit,
	})
}

// Create inserts a class. New classes wait for admin review unless a known
// status was supplied.
func (s *ClassService) Create(ctx context.Context, class *domain.Class) (domain.InsertResult, error) {
	if class == nil || strings.TrimSpace(class.Name) == "" {
		return domain.InsertResult{}, fmt.Errorf("%w: class name is required", domain.ErrInvalidInput)
	}
	if class.Price < 0 || class.Seats < 0 || class.Enrolled < 0 {
		return domain.InsertResult{}, fmt.Errorf("%w: price, seats and enrolled must not be negative", domain.ErrInvalidInput)
	}
	if !class.Status.Valid() {
		class.Status = domain.ClassPending
	}

	res, err := s.classes.Insert(ctx, class)
	if err != nil {
		return domain.InsertResult{}, err
	}
	s.logger.Info().Str("class_id", res.InsertedID).Str("instructor", class.InstructorEmail).Msg("class created")
	return res, nil
}

// Enroll adds one enrollment to the class. A zero match is resolved into
// ErrClassFull or ErrClassNotFound with a follow-up read.
func (s *ClassService) Enroll(ctx context.Context, id string) (domain.UpdateResult, error) {
	res, err := s.classes.Enroll(ctx, id, s.trackSeats)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	if res.MatchedCount > 0 {
		metrics.EnrollmentsTotal.WithLabelValues("enrolled").Inc()
		return res, nil
	}
	if !s.trackSeats {
		metrics.EnrollmentsTotal.WithLabelValues("not_found").Inc()
		return domain.UpdateResult{}, domain.ErrClassNotFound
	}

	if _, err := s.classes.FindByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrClassNotFound) {
			metrics.EnrollmentsTotal.WithLabelValues("not_found").Inc()
		}
		return domain.UpdateResult{}, err
	}
	metrics.EnrollmentsTotal.WithLabelValues("full").Inc()
	return domain.UpdateResult{}, domain.ErrClassFull
}

// Review applies admin feedback and/or a new status to the class.
func (s *ClassService) Review(ctx context.Context, id string, review domain.ClassReview) (domain.UpdateResult, error) {
	if review.Feedback == nil && review.Status == nil {
		return domain.UpdateResult{}, fmt.Errorf("%w: feedback or status is required", domain.ErrInvalidInput)
	}
	if review.Status != nil && !review.Status.Valid() {
		return domain.UpdateResult{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, *review.Status)
	}

	res, err := s.classes.Review(ctx, id, review)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	if res.MatchedCount == 0 {
		return res, domain.ErrClassNotFound
	}
	return res, nil
}
