package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type actorKey struct{}

// NewAuthMiddleware rejects requests without a valid bearer token and stores
// the token subject in the request context.
func NewAuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)

				return
			}

			token, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				http.Error(w, "invalid token", http.StatusUnauthorized)

				return
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				http.Error(w, "invalid token", http.StatusUnauthorized)

				return
			}

			ctx := context.WithValue(r.Context(), actorKey{}, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Actor returns the authenticated admin subject, or "" outside the
// middleware.
func Actor(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey{}).(string)

	return actor
}
