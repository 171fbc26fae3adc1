package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/avasquez/furniture-store-api/internal/apierrors"
	"github.com/avasquez/furniture-store-api/internal/logger"
	"github.com/avasquez/furniture-store-api/internal/model"
	"github.com/avasquez/furniture-store-api/internal/random"
)

const confirmationCodeLength = 40

type Auth struct {
	users         model.UserStore
	confirmations model.ConfirmationStore
	tokenService  *TokenService
	mailer        model.Mailer
	baseURL       string
	logger        *logger.Logger
}

func NewAuth(
	users model.UserStore,
	confirmations model.ConfirmationStore,
	tokenService *TokenService,
	mailer model.Mailer,
	baseURL string,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		users:         users,
		confirmations: confirmations,
		tokenService:  tokenService,
		mailer:        mailer,
		baseURL:       strings.TrimRight(baseURL, "/"),
		logger:        logger,
	}
}

// Register creates an unconfirmed user and mails a confirmation link.
// No tokens are issued until the email is confirmed.
func (a *Auth) Register(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	a.logger.Debug("Auth service: starting user registration",
		"email", email)

	if violations := validatePassword(password); len(violations) > 0 {
		return apierrors.NewErrUserCreationFailed(violations...)
	}

	existing, err := a.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return fmt.Errorf("failed to get user by email: %w", err)
	}
	if existing.ID != uuid.Nil {
		a.logger.Info("Auth service: email already in use",
			"email", email)
		return apierrors.NewErrEmailAlreadyInUse()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:             uuid.New(),
		Email:          email,
		PasswordHash:   hash,
		EmailConfirmed: false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := a.users.Create(ctx, user)
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := a.sendConfirmationEmail(ctx, created); err != nil {
		a.logger.Error("Auth service: failed to send confirmation email",
			"email", email,
			"error", err.Error())
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	a.logger.Info("Auth service: user registered, confirmation email sent",
		"email", email,
		"user_id", created.ID)

	return nil
}

// Login verifies credentials for a confirmed user and issues a token pair.
// Unknown user and wrong password collapse into the same error.
func (a *Auth) Login(ctx context.Context, email, password string) (accessToken string, refreshToken string, err error) {
	email = normalizeEmail(email)
	a.logger.Debug("Auth service: starting user login",
		"email", email)

	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return "", "", apierrors.NewErrInvalidCredentials()
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if !user.EmailConfirmed {
		return "", "", apierrors.NewErrEmailNotConfirmed()
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return "", "", apierrors.NewErrInvalidCredentials()
	}

	access, refresh, err := a.tokenService.Issue(ctx, user)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"email", email,
		"user_id", user.ID)

	return access, refresh, nil
}

// ConfirmEmail decodes a URL-safe confirmation code, consumes it and marks
// the user's email confirmed. Returns a human-readable status string.
func (a *Auth) ConfirmEmail(ctx context.Context, userID uuid.UUID, urlSafeCode string) (string, error) {
	a.logger.Debug("Auth service: confirming email",
		"user_id", userID)

	code, err := base64.RawURLEncoding.DecodeString(urlSafeCode)
	if err != nil {
		return "", fmt.Errorf("failed to decode confirmation code: %w", err)
	}

	codeHash := sha256.Sum256(code)
	if err := a.confirmations.Consume(ctx, userID, codeHash[:]); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "Your email could not be confirmed, please try again later.", nil
		}
		return "", fmt.Errorf("failed to consume confirmation code: %w", err)
	}

	if err := a.users.SetEmailConfirmed(ctx, userID); err != nil {
		return "", fmt.Errorf("failed to mark email confirmed: %w", err)
	}

	a.logger.Info("Auth service: email confirmed",
		"user_id", userID)

	return "Thank you for confirming your email.", nil
}

func (a *Auth) sendConfirmationEmail(ctx context.Context, user model.User) error {
	code, err := random.String(confirmationCodeLength)
	if err != nil {
		return fmt.Errorf("failed to generate confirmation code: %w", err)
	}

	codeHash := sha256.Sum256([]byte(code))
	confirmation := model.EmailConfirmation{
		UserID:    user.ID,
		CodeHash:  codeHash[:],
		ExpiresAt: time.Now().Add(model.ConfirmationCodeDuration),
	}
	if err := a.confirmations.Create(ctx, confirmation); err != nil {
		return fmt.Errorf("failed to store confirmation code: %w", err)
	}

	link := fmt.Sprintf("%s/api/authentication/confirm-email?userId=%s&code=%s",
		a.baseURL, user.ID, base64.RawURLEncoding.EncodeToString([]byte(code)))

	body := fmt.Sprintf(
		"<p>Please confirm your email address by <a href=%q>clicking here</a>.</p>", link)

	return a.mailer.Send(ctx, user.Email, "Confirm your email", body)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// validatePassword returns the policy violations verbatim; they surface
// inside the UserCreationFailed error list.
func validatePassword(password string) []string {
	var violations []string
	if len(password) < 8 {
		violations = append(violations, "Passwords must be at least 8 characters.")
	}
	var hasDigit, hasLetter bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLetter(r):
			hasLetter = true
		}
	}
	if !hasDigit {
		violations = append(violations, "Passwords must have at least one digit ('0'-'9').")
	}
	if !hasLetter {
		violations = append(violations, "Passwords must have at least one letter.")
	}
	return violations
}
