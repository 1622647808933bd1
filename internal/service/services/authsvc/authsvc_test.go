package authsvc

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newService(t *testing.T) *AuthService {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	return MustNewAuthService(
		WithAdminCredentials("admin@example.com", string(hash)),
		WithSecret("signing-key"),
		WithTokenTTL(time.Hour),
	)
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	svc := newService(t)

	signed, err := svc.Login(context.Background(), "admin@example.com", "s3cret-pass")
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(_ *jwt.Token) (interface{}, error) {
		return []byte("signing-key"), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)
	require.True(t, token.Valid)

	sub, err := token.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", sub)

	exp, err := token.Claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, time.Minute)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newService(t)

	_, err := svc.Login(context.Background(), "admin@example.com", "guess")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newService(t)

	_, err := svc.Login(context.Background(), "intruder@example.com", "s3cret-pass")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
