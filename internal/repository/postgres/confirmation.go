package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/avasquez/furniture-store-api/internal/model"
)

var _ model.ConfirmationStore = (*ConfirmationRepository)(nil)

type ConfirmationRepository struct {
	db *Connection
}

func NewConfirmationRepository(db *Connection) *ConfirmationRepository {
	return &ConfirmationRepository{db: db}
}

func (r *ConfirmationRepository) Create(ctx context.Context, confirmation model.EmailConfirmation) error {
	const query = `
        INSERT INTO email_confirmations (user_id, code_hash, expires_at, consumed)
        VALUES ($1, $2, $3, FALSE)
    `
	_, err := r.db.Exec(ctx, query,
		confirmation.UserID, confirmation.CodeHash, confirmation.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create email confirmation: %w", err)
	}
	return nil
}

// Consume spends a matching, unexpired code. Returns model.ErrNotFound when
// no live code matches, which callers report as a failed confirmation.
func (r *ConfirmationRepository) Consume(ctx context.Context, userID uuid.UUID, codeHash []byte) error {
	const query = `
        UPDATE email_confirmations SET consumed = TRUE
        WHERE user_id = $1 AND code_hash = $2 AND consumed = FALSE AND expires_at > NOW()
    `
	tag, err := r.db.Exec(ctx, query, userID, codeHash)
	if err != nil {
		return fmt.Errorf("failed to consume email confirmation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
