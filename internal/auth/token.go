package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Verification failure kinds. Callers depend on the distinction: an expired
// access token means "go refresh", anything else means "log in again".
var (
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
)

// Claims is the decoded credential payload. A Claims value must only ever
// be obtained through TokenCodec.Verify; it is never trusted otherwise.
type Claims struct {
	SubjectID string `json:"userId"`
	IsAdmin   bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies HS256 session tokens for one credential
// class. Access and refresh tokens each get their own codec with an
// independent secret.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec builds a codec for the given secret and lifetime.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for the subject with expiry = now + TTL.
func (c *TokenCodec) Issue(subjectID string, isAdmin bool) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(c.ttl)
	claims := &Claims{
		SubjectID: subjectID,
		IsAdmin:   isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify checks signature and expiry and decodes the claims. Failures map
// to exactly one of ErrMalformedToken, ErrInvalidSignature, ErrTokenExpired.
func (c *TokenCodec) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidSignature
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrInvalidSignature):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformedToken
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformedToken
	}
	return claims, nil
}
