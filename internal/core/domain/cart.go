package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartItem is a pending selection awaiting payment.
type CartItem struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ClassID        string             `json:"classId,omitempty" bson:"class_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Image          string             `json:"image,omitempty" bson:"image,omitempty"`
	Price          float64            `json:"price" bson:"price"`
	InstructorName string             `json:"instructorName,omitempty" bson:"instructor_name,omitempty"`
	Email          string             `json:"email" bson:"email"`
}
