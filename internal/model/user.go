package model

import "time"

// Role decides what a user is allowed to do. Requesters can only touch
// their own travel requests, approvers can touch everything.
type Role string

const (
	RoleRequester Role = "Requester"
	RoleApprover  Role = "Approver"
)

func (r Role) Valid() bool {
	return r == RoleRequester || r == RoleApprover
}

type User struct {
	ID           int        `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"unique;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         Role       `gorm:"not null" json:"role"`
	Active       bool       `gorm:"default:true" json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`

	TravelRequests []TravelRequest     `gorm:"foreignKey:UserID" json:"-"`
	ResetCodes     []PasswordResetCode `gorm:"foreignKey:UserID" json:"-"`
}
