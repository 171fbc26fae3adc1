package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ConfirmationCodeDuration is a TTL for email confirmation codes.
const ConfirmationCodeDuration = time.Hour * 24

// ConfirmationStore persists one-time email confirmation codes.
type ConfirmationStore interface {
	Create(ctx context.Context, confirmation EmailConfirmation) error
	Consume(ctx context.Context, userID uuid.UUID, codeHash []byte) error
}

// EmailConfirmation describes a pending email confirmation code.
// Only a hash of the code is stored; the plain code travels in the
// confirmation link.
type EmailConfirmation struct {
	UserID    uuid.UUID
	CodeHash  []byte
	ExpiresAt time.Time
	Consumed  bool
}
