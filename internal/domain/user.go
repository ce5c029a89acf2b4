package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is carried in the JWT and checked per endpoint.
type Role string

const (
	RoleUser     Role = "USER"
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
	RoleAdmin    Role = "ADMIN"
	RoleTrainer  Role = "TRAINER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleEmployee, RoleManager, RoleAdmin, RoleTrainer:
		return true
	}
	return false
}

// IsStaff reports whether r belongs to gym personnel allowed to look up
// other people's passes.
func (r Role) IsStaff() bool {
	return r == RoleEmployee || r == RoleManager || r == RoleAdmin
}

// User represents any account in the system: gym members and staff alike.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Surname      string             `bson:"surname" json:"surname"`
	Email        string             `bson:"email" json:"email"` // unique
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) HasRole(role Role) bool {
	return u.Role == role
}

// Ref returns the denormalized reference stored on other documents.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Surname: u.Surname}
}

// UserRef is a snapshot of a user embedded in tasks.
type UserRef struct {
	ID      primitive.ObjectID `bson:"id" json:"id"`
	Name    string             `bson:"name" json:"name"`
	Surname string             `bson:"surname" json:"surname"`
}
