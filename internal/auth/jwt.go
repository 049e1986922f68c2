// Package auth provides session tokens, password hashing, GitHub OAuth and
// the HTTP middleware that ties them together.
//
// Sessions are stateless JWTs carried in an HttpOnly cookie: the token's
// Subject claim holds the internal profile id, and the HMAC signature means
// no session table is needed. Middleware validates the cookie and places the
// session in the request context; everything downstream reads it from there.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "promptnexus"

// SessionTTL is how long a sign-in lasts before the user must authenticate
// again.
const SessionTTL = 7 * 24 * time.Hour

// Session is the authenticated subject a token encodes. The email travels in
// the token so the server can recreate a missing profile row without another
// round trip to the identity provider.
type Session struct {
	UserID string
	Email  string
}

// TokenService signs and verifies session JWTs with a shared HMAC secret.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService. The secret should be at least 32
// bytes of random data in production; anything under 16 is rejected outright.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

type claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Generate issues a session token, valid for SessionTTL.
func (s *TokenService) Generate(sess Session) (string, error) {
	return s.GenerateWithDuration(sess, SessionTTL)
}

// GenerateWithDuration issues a token with a custom lifetime. Tests use this
// to mint already-expired tokens.
func (s *TokenService) GenerateWithDuration(sess Session, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		Email: sess.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.UserID,
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

// Validate verifies a token string and returns the session it encodes.
// Expired, tampered or foreign-issuer tokens fail; pinning the accepted
// algorithms to HS256 blocks algorithm-confusion tokens.
func (s *TokenService) Validate(tokenStr string) (Session, error) {
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
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, fmt.Errorf("auth: token expired")
		}
		return Session{}, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return Session{}, fmt.Errorf("auth: invalid token claims")
	}

	if c.Subject == "" {
		return Session{}, fmt.Errorf("auth: token has no subject")
	}

	return Session{UserID: c.Subject, Email: c.Email}, nil
}
