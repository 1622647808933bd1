package authsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService authenticates the panel admin against configured credentials
// and issues short-lived JWTs.
type AuthService struct {
	adminEmail   string
	passwordHash []byte
	secret       []byte
	tokenTTL     time.Duration
}

// option is a function that configures the AuthService.
type option func(*AuthService)

// MustNewAuthService creates a new AuthService.
func MustNewAuthService(opts ...option) *AuthService {
	s := &AuthService{
		tokenTTL: 12 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithAdminCredentials sets the admin login and its bcrypt password hash.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAdminCredentials(email, passwordHash string) option {
	return func(s *AuthService) {
		s.adminEmail = email
		s.passwordHash = []byte(passwordHash)
	}
}

// WithSecret sets the token signing key.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithSecret(secret string) option {
	return func(s *AuthService) {
		s.secret = []byte(secret)
	}
}

// WithTokenTTL sets how long issued tokens stay valid.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithTokenTTL(ttl time.Duration) option {
	return func(s *AuthService) {
		s.tokenTTL = ttl
	}
}

// Login checks the credentials and returns a signed token. Wrong email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	_, span := otel.Tracer("service").Start(ctx, "AuthService.Login")
	defer span.End()

	if email != s.adminEmail {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": email,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
