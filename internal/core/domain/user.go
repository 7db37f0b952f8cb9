package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the authorization label stored on a User Record.
type Role string

const (
	RoleUnassigned Role = ""
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"

	// Donation vocabulary. Fundraisers start as pending and become verified
	// once an admin approves them.
	RoleDonor      Role = "donor"
	RoleFundraiser Role = "fundraiser"
	RolePending    Role = "pending"
	RoleVerified   Role = "verified"
)

var knownRoles = map[Role]struct{}{
	RoleStudent:    {},
	RoleInstructor: {},
	RoleAdmin:      {},
	RoleDonor:      {},
	RoleFundraiser: {},
	RolePending:    {},
	RoleVerified:   {},
}

// Valid reports whether r is one of the known role literals.
func (r Role) Valid() bool {
	_, ok := knownRoles[r]
	return ok
}

// User models a registered account. Email is the natural key.
type User struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name         string             `json:"name,omitempty" bson:"name,omitempty"`
	Email        string             `json:"email" bson:"email"`
	Photo        string             `json:"photo,omitempty" bson:"photo,omitempty"`
	Role         Role               `json:"role" bson:"role"`
	PasswordHash string             `json:"-" bson:"password_hash,omitempty"`
}
