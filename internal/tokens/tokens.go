package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenExpired lets callers tell an expired token apart from a
// malformed or forged one.
var ErrTokenExpired = jwt.ErrTokenExpired

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies the access/refresh token pair. Secrets are
// process-wide configuration; rotating them invalidates every
// outstanding token.
type Codec struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func (c *Codec) IssueAccessToken(id, role string) (string, error) {
	return sign(id, role, c.AccessSecret, time.Now().Add(c.AccessTTL))
}

func (c *Codec) IssueRefreshToken(id, role string) (string, error) {
	return sign(id, role, c.RefreshSecret, time.Now().Add(c.RefreshTTL))
}

func (c *Codec) ParseAccessToken(tokenStr string) (*Claims, error) {
	return claimsFromToken(tokenStr, c.AccessSecret)
}

func (c *Codec) ParseRefreshToken(tokenStr string) (*Claims, error) {
	return claimsFromToken(tokenStr, c.RefreshSecret)
}

func sign(id, role string, secret []byte, exp time.Time) (string, error) {
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func claimsFromToken(tokenStr string, secret []byte) (*Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return &claims, nil
}
