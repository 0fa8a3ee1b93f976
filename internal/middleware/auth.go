package middleware

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"poddock/internal/db"
)

type contextKey string

// UserContextKey is the key for the authenticated admin user in the context.
const UserContextKey = contextKey("user")

var jwtSecret string

// secret reads JWT_SECRET lazily so a .env loaded at startup is seen.
func secret() string {
	if jwtSecret == "" {
		jwtSecret = os.Getenv("JWT_SECRET")
	}
	return jwtSecret
}

// SetTestSecret overrides the JWT secret for tests.
func SetTestSecret(s string) {
	jwtSecret = s
}

// AuthMiddleware validates the bearer token and loads the admin user (and
// with it the plan tier) into the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header is required", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Authorization header format must be 'Bearer <token>'", http.StatusUnauthorized)
			return
		}

		key := secret()
		if key == "" {
			log.Println("JWT_SECRET is not set")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(key), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		user, err := db.GetAdminUserByID(claims.Subject)
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
