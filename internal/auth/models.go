package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role identifies what a marketplace user is allowed to do.
type Role string

const (
	RoleLoadOwner    Role = "load-owner"
	RoleFleetManager Role = "fleet-manager"
	RoleDriver       Role = "driver"
)

// ValidRole reports whether a role string is one of the marketplace roles.
func ValidRole(role Role) bool {
	switch role {
	case RoleLoadOwner, RoleFleetManager, RoleDriver:
		return true
	}
	return false
}

// Claims is the JWT payload issued at login.
type Claims struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
	jwt.RegisteredClaims
}

// User is the authenticated identity extracted from a token.
type User struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role Role      `json:"role"`
}
