package auth

import (
	"traveldesk/travel-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the set of identity facts carried inside a signed token.
// Everything a request handler may trust about the caller comes from here.
type Claims struct {
	UserID int        `json:"uid"`
	Email  string     `json:"email"`
	Name   string     `json:"name"`
	Role   model.Role `json:"role"`

	jwt.RegisteredClaims
}

// IsApprover reports whether the identity carries the approver role.
func (c *Claims) IsApprover() bool {
	return c.Role == model.RoleApprover
}
