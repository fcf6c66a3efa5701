package jwtauth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_RoundTrip(t *testing.T) {
	v, err := NewVerifier("s3cret")
	require.NoError(t, err)

	tok, err := Sign("s3cret", "u-1", time.Hour, time.Now())
	require.NoError(t, err)

	claims, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
}

func TestVerify_Rejects(t *testing.T) {
	v, err := NewVerifier("s3cret")
	require.NoError(t, err)

	wrongKey, err := Sign("other", "u-1", time.Hour, time.Now())
	require.NoError(t, err)
	expired, err := Sign("s3cret", "u-1", time.Minute, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	noSub, err := Sign("s3cret", "", time.Hour, time.Now())
	require.NoError(t, err)
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u-1"}).
		SignedString([]byte("s3cret"))
	require.NoError(t, err)

	cases := map[string]string{
		"empty":     "",
		"garbage":   "not.a.jwt",
		"wrong key": wrongKey,
		"expired":   expired,
		"no sub":    noSub,
		"no exp":    noExp,
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerify_Issuer(t *testing.T) {
	v, err := NewVerifier("s3cret", WithIssuer("child-care"))
	require.NoError(t, err)

	tok, err := Sign("s3cret", "u-1", time.Hour, time.Now())
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewVerifier_EmptySecret(t *testing.T) {
	_, err := NewVerifier(" ")
	assert.ErrorIs(t, err, ErrNoSecret)
}
