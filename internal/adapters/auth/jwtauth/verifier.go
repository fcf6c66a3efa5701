// Package jwtauth verifica tokens HS256 firmados con un secreto compartido (AUTH_MODE=jwt).
package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"child-care-tracker/internal/ports/auth"
)

var (
	ErrNoSecret     = errors.New("jwt secret is empty")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims: el user id va en "sub".
type Claims struct {
	jwt.RegisteredClaims
	Email    string `json:"email,omitempty"`
	TenantID string `json:"tenant_id,omitempty"`
}

type Verifier struct {
	secret []byte
	opts   []jwt.ParserOption
}

type Option func(*Verifier)

func WithIssuer(iss string) Option {
	return func(v *Verifier) {
		if iss = strings.TrimSpace(iss); iss != "" {
			v.opts = append(v.opts, jwt.WithIssuer(iss))
		}
	}
}

func WithAudience(aud string) Option {
	return func(v *Verifier) {
		if aud = strings.TrimSpace(aud); aud != "" {
			v.opts = append(v.opts, jwt.WithAudience(aud))
		}
	}
}

func NewVerifier(secret string, opts ...Option) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrNoSecret
	}
	v := &Verifier{
		secret: []byte(secret),
		opts: []jwt.ParserOption{
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(30 * time.Second),
		},
	}
	for _, o := range opts {
		o(v)
	}
	return v, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, v.opts...)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub := strings.TrimSpace(claims.Subject)
	if sub == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing sub", ErrInvalidToken)
	}
	return auth.Claims{
		UserID:   sub,
		Email:    claims.Email,
		TenantID: claims.TenantID,
	}, nil
}

// Sign emite un token HS256 (CLI y tests).
func Sign(secret, userID string, ttl time.Duration, now time.Time) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", ErrNoSecret
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
