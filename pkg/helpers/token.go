package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the uniform failure for expired, tampered, or otherwise
// unparsable tokens. Callers only ever distinguish valid from invalid.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and verifies the three bearer tokens the API uses:
// a session token after login, and short-lived email tokens for address
// verification and password reset.
type TokenManager struct {
	Secret     []byte
	SessionTTL time.Duration
	EmailTTL   time.Duration
}

func NewTokenManager(secret string, sessionTTL, emailTTL time.Duration) *TokenManager {
	return &TokenManager{
		Secret:     []byte(secret),
		SessionTTL: sessionTTL,
		EmailTTL:   emailTTL,
	}
}

type Claims struct {
	UserID string `json:"uid,omitempty"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a login token carrying the user id and email.
func (m *TokenManager) GenerateSessionToken(userID, email string) (string, time.Time, error) {
	return m.sign(&Claims{UserID: userID, Email: email}, m.SessionTTL)
}

// GenerateEmailToken signs a short-lived token carrying only the email
// claim, used for both verification and password-reset links.
func (m *TokenManager) GenerateEmailToken(email string) (string, time.Time, error) {
	return m.sign(&Claims{Email: email}, m.EmailTTL)
}

func (m *TokenManager) sign(claims *Claims, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// ParseToken verifies signature and expiry. Any failure is reported as
// ErrInvalidToken without detail.
func (m *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.Secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
