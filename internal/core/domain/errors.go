package domain

import "errors"

var (
	ErrUnauthorized         = errors.New("unauthorized access")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrForbidden            = errors.New("forbidden access")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
	ErrClassNotFound        = errors.New("class not found")
	ErrClassFull            = errors.New("class has no seats left")
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrInvalidID            = errors.New("invalid id")
	ErrInvalidInput         = errors.New("invalid input")
	ErrRequestInFlight      = errors.New("request with this idempotency key is in progress")
	ErrIdempotencyKeyReused = errors.New("idempotency key was already used for a different request")
	ErrPaymentProvider      = errors.New("payment provider error")
	ErrProviderUnavailable  = errors.New("provider not configured")
)
