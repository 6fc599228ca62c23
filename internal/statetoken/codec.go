package statetoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/falsedev/TechStruck_Go/internal/domain"
)

// Claims is the state token payload: the subject who initiated the link
// plus the standard expiry claim.
type Claims struct {
	jwt.RegisteredClaims
	SubjectID int64 `json:"id"`
}

// Codec issues and verifies signed, expiring state tokens.
// Tokens are HS256 JWTs; verification is pure computation with no
// residual state (tokens are not single-use).
type Codec struct {
	secret []byte
}

// NewCodec creates a codec using the process-wide signing secret
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Issue builds a signed state token binding subjectID to an expiry of now+ttl
func (c *Codec) Issue(subjectID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		SubjectID: subjectID,
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign state token: %w", err)
	}
	return signed, nil
}

// Verify checks the MAC and expiry of a state token and returns the
// embedded subject ID. The HMAC comparison inside the JWT library is
// constant-time. Returns domain.ErrStateExpired for stale tokens and
// domain.ErrInvalidSignature for anything tampered or foreign.
func (c *Codec) Verify(tokenString string) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, domain.ErrStateExpired
		}
		return 0, fmt.Errorf("%w: %s", domain.ErrInvalidSignature, err)
	}

	if !token.Valid {
		return 0, domain.ErrInvalidSignature
	}

	return claims.SubjectID, nil
}
