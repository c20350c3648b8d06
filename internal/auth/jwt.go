package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionExpiry is how long an issued session token stays valid. Tokens are
// self-contained: once issued they cannot be revoked, only outlived.
const SessionExpiry = 24 * time.Hour

// Claims is the JWT payload for session tokens.
type Claims struct {
	UserID   int64  `json:"user_id,string"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService signs and validates session tokens. The secret is set once at
// startup and never mutated; the service is stateless beyond it.
type TokenService struct {
	secret        []byte
	sessionExpiry time.Duration
}

// NewTokenService creates a TokenService with the given HMAC secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret:        []byte(secret),
		sessionExpiry: SessionExpiry,
	}
}

// GenerateSessionToken creates a signed JWT carrying the user's identity.
func (ts *TokenService) GenerateSessionToken(userID int64, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.sessionExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ValidateSessionToken parses and validates a session token, returning the
// claims. It fails on signature mismatch, malformed payload, or expiry.
func (ts *TokenService) ValidateSessionToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
