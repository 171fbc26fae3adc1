package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/avasquez/furniture-store-api/internal/model"
)

// Config holds signing parameters. Issuer and audience validation are off by
// default, matching the deployment this server was built for; a stricter
// deployment flips the flags without touching the verifier.
type Config struct {
	Secret           string
	AccessTTL        time.Duration
	ValidateIssuer   bool
	Issuer           string
	ValidateAudience bool
	Audience         string
}

// Claims represents JWT claims with the user's email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	cfg *Config
}

const expectedAlg = "HS256"

// NewJWT creates a new JWT token manager with the provided configuration.
func NewJWT(cfg *Config) model.TokenManager {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = time.Hour
	}
	return &JWT{cfg: cfg}
}

// GenerateAccessToken creates a short-lived access token with a fresh jti.
func (j *JWT) GenerateAccessToken(user model.User) (string, string, error) {
	now := time.Now()
	jti := uuid.NewString()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.cfg.AccessTTL)),
		},
		Email: user.Email,
	}
	if j.cfg.ValidateIssuer {
		claims.Issuer = j.cfg.Issuer
	}
	if j.cfg.ValidateAudience {
		claims.Audience = jwt.ClaimStrings{j.cfg.Audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(j.cfg.Secret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, jti, nil
}

// ParseAccessToken validates signature, algorithm and expiry.
func (j *JWT) ParseAccessToken(tokenString string) (model.AccessClaims, error) {
	return j.parse(tokenString, false)
}

// ParseAccessTokenIgnoreExpiry validates signature and algorithm only.
func (j *JWT) ParseAccessTokenIgnoreExpiry(tokenString string) (model.AccessClaims, error) {
	return j.parse(tokenString, true)
}

func (j *JWT) parse(tokenString string, ignoreExpiry bool) (model.AccessClaims, error) {
	claims := &Claims{}

	opts := []jwt.ParserOption{}
	if ignoreExpiry {
		opts = append(opts, jwt.WithoutClaimsValidation())
	} else {
		if j.cfg.ValidateIssuer {
			opts = append(opts, jwt.WithIssuer(j.cfg.Issuer))
		}
		if j.cfg.ValidateAudience {
			opts = append(opts, jwt.WithAudience(j.cfg.Audience))
		}
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return model.AccessClaims{}, fmt.Errorf("failed to parse access token: %w", err)
	}
	if !token.Valid {
		return model.AccessClaims{}, fmt.Errorf("access token is invalid")
	}

	// Re-check the declared algorithm after cryptographic verification.
	// Guards against algorithm-substitution tokens.
	if alg, _ := token.Header["alg"].(string); alg != expectedAlg {
		return model.AccessClaims{}, fmt.Errorf("unexpected algorithm header %q", alg)
	}

	if ignoreExpiry {
		if j.cfg.ValidateIssuer && claims.Issuer != j.cfg.Issuer {
			return model.AccessClaims{}, fmt.Errorf("issuer mismatch")
		}
		if j.cfg.ValidateAudience && !containsAudience(claims.Audience, j.cfg.Audience) {
			return model.AccessClaims{}, fmt.Errorf("audience mismatch")
		}
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.AccessClaims{}, fmt.Errorf("failed to parse subject claim: %w", err)
	}

	out := model.AccessClaims{
		UserID: userID,
		Email:  claims.Email,
		JTI:    claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}

	return out, nil
}

func containsAudience(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}
