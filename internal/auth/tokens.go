// Package auth issues and verifies admin session credentials and gates the
// admin section behind them.
package auth

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// SessionCookie carries the signed session token.
const SessionCookie = "admin_session"

// SessionTTL bounds how long a login stays valid.
const SessionTTL = 24 * time.Hour

// ErrInvalidToken covers every way a credential can fail verification:
// bad signature, wrong algorithm, expired, malformed.
var ErrInvalidToken = errors.New("invalid session token")

// TokenService mints and verifies HS256 session tokens.
type TokenService struct {
	secret []byte
}

// NewTokenService builds a token service around the shared signing secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue signs a session token for the given user id.
func (t *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.StandardClaims{
		Subject:   userID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(SessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks the token cryptographically and returns the user id it was
// issued for. Presence of a cookie alone never passes; the signature and
// expiry are checked on every request.
func (t *TokenService) Verify(tokenString string) (string, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
