package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/avasquez/furniture-store-api/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

type RefreshTokenRepository struct {
	db *Connection
}

func NewRefreshTokenRepository(db *Connection) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token model.RefreshToken) error {
	const query = `
        INSERT INTO refresh_tokens (
            id, jwt_id, token_value, user_id, added_at, expiry_at, is_used, is_revoked
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    `

	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx, query,
		token.ID, token.JWTID, token.TokenValue, token.UserID,
		token.AddedAt, token.ExpiryAt, token.IsUsed, token.IsRevoked,
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) GetByValue(ctx context.Context, value string) (model.RefreshToken, error) {
	const query = `
        SELECT id, jwt_id, token_value, user_id, added_at, expiry_at, is_used, is_revoked
        FROM refresh_tokens WHERE token_value = $1
    `
	var rt model.RefreshToken
	err := r.db.QueryRow(ctx, query, value).Scan(
		&rt.ID, &rt.JWTID, &rt.TokenValue, &rt.UserID,
		&rt.AddedAt, &rt.ExpiryAt, &rt.IsUsed, &rt.IsRevoked,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.RefreshToken{}, model.ErrNotFound
		}
		return model.RefreshToken{}, fmt.Errorf("failed to get refresh token by value: %w", err)
	}
	return rt, nil
}

// MarkUsed is the consumption compare-and-set: concurrent redemptions of the
// same value serialize on the row, and only the first one flips is_used.
func (r *RefreshTokenRepository) MarkUsed(ctx context.Context, value string) (bool, error) {
	const query = `
        UPDATE refresh_tokens SET is_used = TRUE
        WHERE token_value = $1 AND is_used = FALSE AND is_revoked = FALSE
    `
	tag, err := r.db.Exec(ctx, query, value)
	if err != nil {
		return false, fmt.Errorf("failed to mark refresh token used: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RefreshTokenRepository) MarkRevoked(ctx context.Context, value string) error {
	const query = `
        UPDATE refresh_tokens SET is_revoked = TRUE
        WHERE token_value = $1 AND is_revoked = FALSE
    `
	if _, err := r.db.Exec(ctx, query, value); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	const query = `
        UPDATE refresh_tokens SET is_revoked = TRUE
        WHERE user_id = $1 AND is_revoked = FALSE
    `
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens by user: %w", err)
	}
	return nil
}
