package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avasquez/furniture-store-api/internal/apierrors"
	"github.com/avasquez/furniture-store-api/internal/logger"
	"github.com/avasquez/furniture-store-api/internal/model"
	"github.com/avasquez/furniture-store-api/internal/random"
)

// TokenService provides high-level operations for issuing, refreshing,
// and revoking tokens. It composes the TokenManager and RefreshTokenStore.
type TokenService struct {
	manager    model.TokenManager
	store      model.RefreshTokenStore
	users      model.UserStore
	refreshTTL time.Duration
	logger     *logger.Logger
}

func NewTokenService(
	manager model.TokenManager,
	store model.RefreshTokenStore,
	users model.UserStore,
	refreshTTL time.Duration,
	logger *logger.Logger,
) *TokenService {
	if refreshTTL <= 0 {
		refreshTTL = 6 * 30 * 24 * time.Hour
	}
	return &TokenService{
		manager:    manager,
		store:      store,
		users:      users,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// Issue mints an access token and its paired refresh record. The record is
// persisted before the pair is returned: no access token is ever handed out
// without a stored refresh record behind it.
func (s *TokenService) Issue(ctx context.Context, user model.User) (accessToken string, refreshToken string, err error) {
	access, jti, err := s.manager.GenerateAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("issue access: %w", err)
	}

	value, err := random.String(random.RefreshTokenLength)
	if err != nil {
		return "", "", fmt.Errorf("generate refresh value: %w", err)
	}

	now := time.Now()
	rt := model.RefreshToken{
		ID:         uuid.New(),
		JWTID:      jti,
		TokenValue: value,
		UserID:     user.ID,
		AddedAt:    now,
		ExpiryAt:   now.Add(s.refreshTTL),
		IsUsed:     false,
		IsRevoked:  false,
	}

	if err := s.store.Create(ctx, rt); err != nil {
		return "", "", fmt.Errorf("persist refresh: %w", err)
	}

	return access, value, nil
}

// Refresh validates the presented access+refresh pair and rotates it to a
// fresh pair. Rejection points, in order: unverifiable access token, missing
// expiry claim, unknown refresh value, already used or revoked record, jti
// mismatch, expired record. The record is marked used before the replacement
// is issued, so a crash in between burns the session rather than leaving the
// token redeemable twice.
func (s *TokenService) Refresh(ctx context.Context, accessToken string, refreshValue string) (newAccess string, newRefresh string, err error) {
	claims, err := s.manager.ParseAccessTokenIgnoreExpiry(accessToken)
	if err != nil {
		s.logger.Debug("Token service: access token failed verification",
			"error", err.Error())
		return "", "", apierrors.NewErrInvalidToken()
	}

	if claims.ExpiresAt.IsZero() {
		return "", "", apierrors.NewErrInvalidToken()
	}

	now := time.Now()

	// A pair presented before the access token even expired still goes
	// through, but failures on this path keep the message the original
	// system reported for it.
	staleErr := apierrors.NewErrInvalidToken()
	if claims.ExpiresAt.After(now) {
		staleErr = apierrors.NewErrTokenExpired()
	}

	rt, err := s.store.GetByValue(ctx, refreshValue)
	if errors.Is(err, model.ErrNotFound) {
		return "", "", staleErr
	}
	if err != nil {
		return "", "", fmt.Errorf("get refresh record: %w", err)
	}

	// Reuse detection: a consumed or revoked token is never redeemable
	// again, regardless of anything else about the pair.
	if rt.IsUsed || rt.IsRevoked {
		s.logger.Info("Token service: rejected spent refresh token",
			"user_id", rt.UserID,
			"used", rt.IsUsed,
			"revoked", rt.IsRevoked)
		return "", "", staleErr
	}

	// The access token must be the one this record was minted with.
	if rt.JWTID != claims.JTI {
		return "", "", staleErr
	}

	if rt.ExpiryAt.Before(now) {
		return "", "", staleErr
	}

	// Consume before reissuing. Exactly one concurrent caller wins the
	// compare-and-set; losers observe a spent record.
	ok, err := s.store.MarkUsed(ctx, rt.TokenValue)
	if err != nil {
		return "", "", fmt.Errorf("mark refresh used: %w", err)
	}
	if !ok {
		return "", "", apierrors.NewErrInvalidToken()
	}

	user, err := s.users.GetByID(ctx, rt.UserID)
	if err != nil {
		return "", "", fmt.Errorf("load user for reissue: %w", err)
	}

	access, refresh, err := s.Issue(ctx, user)
	if err != nil {
		return "", "", fmt.Errorf("reissue pair: %w", err)
	}

	s.logger.Info("Token service: rotated refresh token",
		"user_id", user.ID)

	return access, refresh, nil
}

// RevokeByValue marks a refresh record revoked. Revocation is monotonic.
func (s *TokenService) RevokeByValue(ctx context.Context, refreshValue string) error {
	if err := s.store.MarkRevoked(ctx, refreshValue); err != nil {
		return fmt.Errorf("revoke refresh: %w", err)
	}
	return nil
}

// RevokeAllForUser revokes every outstanding refresh record of a user.
func (s *TokenService) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	return s.store.RevokeAllByUser(ctx, userID)
}

// GetUserID resolves the user id from a bearer access token, enforcing
// signature, algorithm and expiry.
func (s *TokenService) GetUserID(ctx context.Context, token string) (uuid.UUID, error) {
	claims, err := s.manager.ParseAccessToken(token)
	if err != nil {
		return uuid.Nil, err
	}
	return claims.UserID, nil
}
