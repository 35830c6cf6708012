package models

import "time"

// RefreshToken is one outstanding refresh-token epoch of a user session.
// The signed refresh token carries this row's ID; deleting the row revokes it.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	User      User      `gorm:"constraint:OnDelete:CASCADE;"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (t *RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
