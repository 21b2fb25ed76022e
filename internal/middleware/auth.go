package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/davebaumann/whoptix-saas-sub000/internal/utils"
)

type contextKey string

// UserContextKey carries the validated session claims.
const UserContextKey contextKey = "user"

// SessionCookieName is the cookie holding the signed session token.
const SessionCookieName = "whoptix_session"

// Auth verifies the signed session token, cookie first with a Bearer header
// fallback for non-browser clients.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := ""

			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				tokenString = cookie.Value
			} else if authHeader := r.Header.Get("Authorization"); authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && parts[0] == "Bearer" {
					tokenString = parts[1]
				}
			}

			if tokenString == "" {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			claims, err := utils.ValidateToken(tokenString, jwtSecret)
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFrom returns the session claims stored by Auth, if any.
func ClaimsFrom(r *http.Request) (jwt.MapClaims, bool) {
	claims, ok := r.Context().Value(UserContextKey).(jwt.MapClaims)
	return claims, ok
}

// RequireRole gates a route on the session role claim.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r)
			if !ok || claims["role"] != role {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
