package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the bearer credential behind the authenticated principal the
// booking flow requires. UserAgent and IPAddress are captured at login so
// a payment dispute can be traced back to the client that booked.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	UserAgent *string    `db:"user_agent"`
	IPAddress *string    `db:"ip_address"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

// NewSession issues a fresh session for a user. Empty client metadata is
// stored as NULL.
func NewSession(userID uuid.UUID, token uuid.UUID, userAgent, ipAddress string, ttl time.Duration) *Session {
	now := time.Now()

	session := &Session{
		BaseSimple: BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     token,
		ExpiresAt: now.Add(ttl),
	}

	if userAgent != "" {
		session.UserAgent = &userAgent
	}
	if ipAddress != "" {
		session.IPAddress = &ipAddress
	}

	return session
}
