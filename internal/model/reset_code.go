package model

import "time"

// PasswordResetCode is a short lived 6-digit code bound to the email it
// was issued for. At most one unused, unexpired code may exist per user;
// issuing a new one invalidates everything that came before it.
type PasswordResetCode struct {
	ID        int        `gorm:"primaryKey" json:"id"`
	UserID    int        `gorm:"index;not null" json:"user_id"`
	Code      string     `gorm:"index;not null" json:"-"`
	Email     string     `gorm:"index;not null" json:"email"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `gorm:"index" json:"expires_at"`
	Used      bool       `gorm:"default:false" json:"used"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

// Active reports whether the code can still be consumed at time t.
func (rc *PasswordResetCode) Active(t time.Time) bool {
	return !rc.Used && t.Before(rc.ExpiresAt)
}
