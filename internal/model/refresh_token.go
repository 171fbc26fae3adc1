package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	GetByValue(ctx context.Context, value string) (RefreshToken, error)
	// MarkUsed atomically flips is_used on a still-unspent record.
	// Returns false when a concurrent caller already consumed it.
	MarkUsed(ctx context.Context, value string) (bool, error)
	MarkRevoked(ctx context.Context, value string) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
}

// RefreshToken is the persisted record paired with one access token.
// IsUsed and IsRevoked are monotonic: no store operation resets them.
type RefreshToken struct {
	ID         uuid.UUID
	JWTID      string
	TokenValue string
	UserID     uuid.UUID
	AddedAt    time.Time
	ExpiryAt   time.Time
	IsUsed     bool
	IsRevoked  bool
}

// Valid reports whether the record can still be redeemed.
func (t RefreshToken) Valid(now time.Time) bool {
	return !t.IsUsed && !t.IsRevoked && t.ExpiryAt.After(now)
}
