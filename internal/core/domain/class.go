package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClassStatus is the review state of a class or donation item.
type ClassStatus string

const (
	ClassPending  ClassStatus = "pending"
	ClassApproved ClassStatus = "approved"
	ClassDenied   ClassStatus = "denied"
)

// Valid reports whether s is a known review state.
func (s ClassStatus) Valid() bool {
	switch s {
	case ClassPending, ClassApproved, ClassDenied:
		return true
	}
	return false
}

const (
	// PopularEnrollmentThreshold is the exclusive lower bound on enrolled for
	// a class to count as popular.
	PopularEnrollmentThreshold = 5
	// PopularLimit caps the popular classes and popular teachers listings.
	PopularLimit = 6
)

// Class is a bookable class (or a donation item in the crowd-funding variant).
type Class struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name"`
	Image           string             `json:"image,omitempty" bson:"image,omitempty"`
	InstructorName  string             `json:"instructorName,omitempty" bson:"instructor_name,omitempty"`
	InstructorEmail string             `json:"instructorEmail,omitempty" bson:"instructor_email,omitempty"`
	Price           float64            `json:"price" bson:"price"`
	Seats           int                `json:"seats" bson:"seats"`
	Enrolled        int                `json:"enrolled" bson:"enrolled"`
	Status          ClassStatus        `json:"status" bson:"status"`
	Feedback        string             `json:"feedback,omitempty" bson:"feedback,omitempty"`
}

// ClassReview carries the admin-editable fields of a class. Nil fields are
// left untouched.
type ClassReview struct {
	Feedback *string
	Status   *ClassStatus
}

// PopularTeacher is an entry of the curated popular teachers showcase.
type PopularTeacher struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name    string             `json:"name" bson:"name"`
	Image   string             `json:"image,omitempty" bson:"image,omitempty"`
	Email   string             `json:"email,omitempty" bson:"email,omitempty"`
	Classes int                `json:"classes,omitempty" bson:"classes,omitempty"`
}
