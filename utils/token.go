package utils

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"canteen/pkg/apperr"
)

// Claims carried inside access tokens.
type Claims struct {
	UserID uint   `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies bearer tokens. It is built once at startup
// from config; the secret is never re-read from the environment mid-request.
// Verification is pure — no state, no side effects.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) Generate(userID uint, role string) (string, error) {
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Authorize verifies a raw "Bearer <token>" header value and returns the
// caller's user id and role. apperr.ErrMissingToken when no credential was
// supplied, apperr.ErrInvalidToken when verification fails.
func (m *TokenManager) Authorize(raw string) (uint, string, error) {
	if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
		return 0, "", apperr.ErrMissingToken
	}
	return m.AuthorizeToken(strings.TrimPrefix(raw, "Bearer "))
}

// AuthorizeToken verifies a bare token. Websocket clients pass it as a query
// parameter without the Bearer prefix.
func (m *TokenManager) AuthorizeToken(tokenStr string) (uint, string, error) {
	if tokenStr == "" {
		return 0, "", apperr.ErrMissingToken
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return 0, "", apperr.ErrInvalidToken
	}
	return claims.UserID, claims.Role, nil
}
