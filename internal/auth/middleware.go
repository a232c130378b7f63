package auth

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	httperrors "bellezza/internal/errors"
)

type contextKey string

const (
	ContextStaffID contextKey = "staff_id"
	ContextEmail   contextKey = "email"
	ContextRole    contextKey = "role"
)

// StaffAuthMiddleware guards the admin subrouter. It expects a Bearer token
// signed with JWT_SECRET and puts the staff claims on the request context.
func StaffAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			httperrors.WriteJSON(w, httperrors.ErrUnauthorized("missing bearer token"))
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			httperrors.WriteJSON(w, httperrors.ErrUnauthorized("invalid or expired token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperrors.WriteJSON(w, httperrors.ErrUnauthorized("invalid token claims"))
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, ContextStaffID, claims["staff_id"])
		ctx = context.WithValue(ctx, ContextEmail, claims["email"])
		ctx = context.WithValue(ctx, ContextRole, claims["role"])
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole wraps a handler so only accounts with the given role pass.
func RequireRole(role string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if got, _ := r.Context().Value(ContextRole).(string); got != role {
			httperrors.WriteJSON(w, httperrors.NewHTTPError(http.StatusForbidden, "insufficient permissions"))
			return
		}
		next(w, r)
	}
}
