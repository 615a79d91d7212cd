package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is an anonymous visitor scope for a cart and a wishlist
type Session struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
}

// Active reports whether the session can still be used at the given time
func (s *Session) Active(now time.Time) bool {
	return !s.Revoked && now.Before(s.ExpiresAt)
}
