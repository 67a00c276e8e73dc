package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleClient       Role = "client"
	RoleDriver       Role = "driver"
	RoleHotelManager Role = "hotel_manager"
	RoleAdmin        Role = "admin"
)

// rolePrecedence orders roles from highest to lowest. UserType is always
// the highest-precedence role a user holds.
var rolePrecedence = []Role{RoleAdmin, RoleHotelManager, RoleDriver, RoleClient}

func IsValidRole(r Role) bool {
	switch r {
	case RoleClient, RoleDriver, RoleHotelManager, RoleAdmin:
		return true
	}
	return false
}

// PrimaryRole projects a role set onto the single user_type label with
// precedence admin > hotel_manager > driver > client.
func PrimaryRole(roles []Role) Role {
	for _, candidate := range rolePrecedence {
		for _, r := range roles {
			if r == candidate {
				return candidate
			}
		}
	}
	return RoleClient
}

type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UID            string             `json:"uid" bson:"uid" validate:"required"` // Firebase subject
	Email          string             `json:"email" bson:"email" validate:"required,email"`
	FirstName      string             `json:"first_name" bson:"first_name"`
	LastName       string             `json:"last_name" bson:"last_name"`
	Phone          string             `json:"phone" bson:"phone"`
	Roles          []Role             `json:"roles" bson:"roles"`
	UserType       Role               `json:"user_type" bson:"user_type"`
	ProfilePicture string             `json:"profile_picture" bson:"profile_picture"`
	IsVerified     bool               `json:"is_verified" bson:"is_verified"`
	Language       string             `json:"language" bson:"language" default:"pt"`
	FCMToken       string             `json:"-" bson:"fcm_token"`
	LastLoginAt    *time.Time         `json:"last_login_at" bson:"last_login_at"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
	DeletedAt      *time.Time         `json:"deleted_at" bson:"deleted_at"`
}

func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RequiresRoleSetup reports whether the user still has to pick roles
// after first login.
func (u *User) RequiresRoleSetup() bool {
	return len(u.Roles) == 0
}

// SetRoles replaces the role set and keeps the user_type projection in
// sync. Duplicates are dropped, order is not preserved.
func (u *User) SetRoles(roles []Role) {
	seen := make(map[Role]bool, len(roles))
	deduped := make([]Role, 0, len(roles))
	for _, r := range roles {
		if !seen[r] {
			seen[r] = true
			deduped = append(deduped, r)
		}
	}

	u.Roles = deduped
	u.UserType = PrimaryRole(deduped)
}

func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
