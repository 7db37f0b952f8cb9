package handler

import "time"

// errorResponse documents the envelope rendered by the API error handler.
type errorResponse struct {
	Error   bool   `json:"error"   example:"true"`
	Message string `json:"message" example:"unauthorized access"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type jwtRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password"`
	IDToken  string `json:"idToken"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type roleResponse struct {
	Role string `json:"role"`
}

// --- Users ---

// registerUserRequest carries no role: new users always get the configured
// default.
type registerUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"    validate:"required,email"`
	Photo    string `json:"photo"`
	Password string `json:"password"`
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// --- Classes ---

type createClassRequest struct {
	Name            string  `json:"name"            validate:"required"`
	Image           string  `json:"image"`
	InstructorName  string  `json:"instructorName"`
	InstructorEmail string  `json:"instructorEmail" validate:"omitempty,email"`
	Price           float64 `json:"price"           validate:"gte=0,lte=1000000"`
	Seats           int     `json:"seats"           validate:"gte=0,lte=1000000"`
	Status          string  `json:"status"          validate:"omitempty,oneof=pending approved denied"`
}

type reviewClassRequest struct {
	Feedback *string `json:"feedback"`
	Status   *string `json:"status"`
}

// --- Cart ---

type addCartRequest struct {
	ClassID        string  `json:"classId"`
	Name           string  `json:"name"  validate:"required"`
	Image          string  `json:"image"`
	Price          float64 `json:"price" validate:"gte=0,lte=1000000"`
	InstructorName string  `json:"instructorName"`
	Email          string  `json:"email" validate:"required,email"`
}

// --- Payments ---

type createIntentRequest struct {
	Price float64 `json:"price" validate:"gt=0,lte=1000000"`
}

type clientSecretResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// paymentRequest accepts the cart id as cartId, or as _id for older clients.
type paymentRequest struct {
	Email         string     `json:"email"         validate:"omitempty,email"`
	TransactionID string     `json:"transactionId"`
	Price         float64    `json:"price"         validate:"gte=0,lte=1000000"`
	Date          *time.Time `json:"date"`
	CartID        string     `json:"cartId"`
	LegacyCartID  string     `json:"_id"`
	ClassID       string     `json:"classId"`
	ClassName     string     `json:"className"`
	Status        string     `json:"status"`
}
