// Package auth provides JWT session tokens, password hashing, and the
// middleware that guards protected routes.
//
// Tokens are stateless — everything the server needs (user ID, username,
// expiry) travels inside the signed token, so there is no session table and
// no revocation list. Logout is purely a client-side action: the client
// discards the token, and it dies on its own after seven days.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

// TokenTTL is how long an issued session token stays valid.
const TokenTTL = 7 * 24 * time.Hour

const issuer = "news-channel"

// Identity is what a verified token resolves to. Handlers only ever see this
// pair — the token itself never leaves the middleware.
type Identity struct {
	UserID   int64
	Username string
}

// TokenService signs and verifies session tokens.
//
// It holds the HMAC secret used for both operations. The secret is injected
// once at construction (from configuration) and is never logged.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload. The userId/username claim names match the wire
// format the frontend already decodes, so they are part of the API contract.
type claims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Generate creates and signs a session token for the given user.
//
// Signing algorithm is HS256 (HMAC-SHA256) — symmetric, same key signs and
// verifies, which suits a single-server deployment. Each token carries a
// unique jti so two logins in the same second still produce distinct tokens.
func (s *TokenService) Generate(userID int64, username string) (string, error) {
	return s.GenerateWithDuration(userID, username, TokenTTL)
}

// GenerateWithDuration creates a token with a custom expiry duration.
// Used in tests to mint already-expired tokens.
func (s *TokenService) GenerateWithDuration(userID int64, username string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        xid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string and returns the identity it
// encodes.
//
// The error is deliberately uniform: expired, tampered, and malformed tokens
// all come back as the same failure, so a caller probing the API cannot tell
// WHY a token was rejected. Restricting the accepted algorithms to HS256
// blocks algorithm-confusion attacks (a token signed with "none" is refused).
func (s *TokenService) Validate(tokenStr string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.New("auth: invalid token")
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return nil, errors.New("auth: invalid token")
	}
	if c.UserID == 0 {
		return nil, errors.New("auth: invalid token")
	}

	return &Identity{UserID: c.UserID, Username: c.Username}, nil
}
