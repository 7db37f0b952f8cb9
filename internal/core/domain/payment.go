package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentCurrency is the only currency payment intents are created in.
const PaymentCurrency = "usd"

// MaxPrice bounds every price the API accepts, keeping cent amounts far from
// int64 overflow.
const MaxPrice = 1_000_000

// Payment records a completed checkout of one cart entry.
type Payment struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email         string             `json:"email" bson:"email"`
	TransactionID string             `json:"transactionId" bson:"transaction_id"`
	Price         float64            `json:"price" bson:"price"`
	Date          time.Time          `json:"date" bson:"date"`
	CartID        string             `json:"cartId" bson:"cart_id"`
	ClassID       string             `json:"classId,omitempty" bson:"class_id,omitempty"`
	ClassName     string             `json:"className,omitempty" bson:"class_name,omitempty"`
	Status        string             `json:"status,omitempty" bson:"status,omitempty"`
}

// PaymentIntent is the provider-side pending charge handed to the client.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
	AmountCents  int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// ToCents converts a decimal price into the smallest currency unit.
func ToCents(price float64) int64 {
	if price < 0 {
		return -ToCents(-price)
	}
	return int64(price*100 + 0.5)
}
