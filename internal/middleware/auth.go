package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/optima-app/api-server-go/internal/model"
	"github.com/optima-app/api-server-go/internal/repository"
	"github.com/optima-app/api-server-go/internal/token"
)

type contextKey string

const AdminContextKey contextKey = "admin"

// GetAdmin returns the authenticated admin injected by AuthMiddleware, or
// nil outside a protected route.
func GetAdmin(ctx context.Context) *model.Admin {
	if admin, ok := ctx.Value(AdminContextKey).(*model.Admin); ok {
		return admin
	}
	return nil
}

// AuthMiddleware is the authorization gate for admin routes: extract bearer
// token, validate it, resolve the admin, then hand off. Exactly two failure
// shapes are observable — missing token vs invalid token — so callers learn
// nothing about why validation failed. An admin deleted after issuance also
// reads as invalid.
type AuthMiddleware struct {
	issuer    *token.Issuer
	adminRepo repository.AdminRepository
}

func NewAuthMiddleware(issuer *token.Issuer, adminRepo repository.AdminRepository) *AuthMiddleware {
	return &AuthMiddleware{issuer: issuer, adminRepo: adminRepo}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bearer := extractBearer(r)
		if bearer == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"message": "Token is missing",
			})
			return
		}

		adminID, err := m.issuer.Validate(bearer)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"message": "Token is invalid",
			})
			return
		}

		admin, err := m.adminRepo.FindByID(r.Context(), adminID)
		if err != nil {
			log.Error().Err(err).Msg("auth middleware: store error resolving admin")
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"success": false,
				"message": "Authentication failed",
			})
			return
		}

		if admin == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"message": "Token is invalid",
			})
			return
		}

		ctx := context.WithValue(r.Context(), AdminContextKey, admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
