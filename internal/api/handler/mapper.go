package handler

import (
	"github.com/summercamp/campfund/internal/core/domain"
	"github.com/summercamp/campfund/internal/core/ports"
)

func toClass(req createClassRequest) *domain.Class {
	return &domain.Class{
		Name:            req.Name,
		Image:           req.Image,
		InstructorName:  req.InstructorName,
		InstructorEmail: req.InstructorEmail,
		Price:           req.Price,
		Seats:           req.Seats,
		Status:          domain.ClassStatus(req.Status),
	}
}

func toClassReview(req reviewClassRequest) domain.ClassReview {
	review := domain.ClassReview{Feedback: req.Feedback}
	if req.Status != nil {
		status := domain.ClassStatus(*req.Status)
		review.Status = &status
	}
	return review
}

func toCartItem(req addCartRequest) *domain.CartItem {
	return &domain.CartItem{
		ClassID:        req.ClassID,
		Name:           req.Name,
		Image:          req.Image,
		Price:          req.Price,
		InstructorName: req.InstructorName,
		Email:          req.Email,
	}
}

func toCheckoutInput(req paymentRequest, callerEmail, idempotencyKey string) ports.CheckoutInput {
	cartID := req.CartID
	if cartID == "" {
		cartID = req.LegacyCartID
	}
	p := domain.Payment{
		Email:         req.Email,
		TransactionID: req.TransactionID,
		Price:         req.Price,
		CartID:        cartID,
		ClassID:       req.ClassID,
		ClassName:     req.ClassName,
		Status:        req.Status,
	}
	if req.Date != nil {
		p.Date = req.Date.UTC()
	}
	return ports.CheckoutInput{
		Payment:        p,
		CallerEmail:    callerEmail,
		IdempotencyKey: idempotencyKey,
	}
}
