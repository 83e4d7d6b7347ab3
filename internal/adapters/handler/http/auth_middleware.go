package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/healcome/fitness/internal/core/domain"
	"github.com/healcome/fitness/internal/core/ports"
)

type principalKey struct{}

// UserIDFromContext returns the authenticated user ID the middleware bound
// to the request.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(principalKey{}).(uuid.UUID)
	return id, ok
}

type AuthMiddleware struct {
	service ports.AuthService
	cookies *CookieManager
}

func NewAuthMiddleware(service ports.AuthService, cookies *CookieManager) *AuthMiddleware {
	return &AuthMiddleware{service: service, cookies: cookies}
}

// RequireAuth guards a route subtree. Fast path: a valid access cookie, no
// store access. Slow path: silent renewal through the refresh cookie, which
// rotates the session and re-sets both cookies on the response. Every
// failure denies; downstream handlers only ever run with a bound principal.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(accessCookieName); err == nil && cookie.Value != "" {
			userID, err := m.service.VerifyAccess(r.Context(), cookie.Value)
			if err == nil {
				next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
				return
			}
			// Expired or invalid access token: fall through to the
			// refresh path.
		}

		refresh, err := r.Cookie(refreshCookieName)
		if err != nil || refresh.Value == "" {
			writeError(w, http.StatusUnauthorized, "not logged in, please log in again")
			return
		}

		creds, err := m.service.Refresh(r.Context(), refresh.Value)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidSession):
				// Terminal: the secret matched no session. No fallback.
				m.cookies.clear(w)
				writeError(w, http.StatusForbidden, "invalid session, please log in again")
			case errors.Is(err, domain.ErrUserNotFound):
				m.cookies.clear(w)
				writeError(w, http.StatusUnauthorized, "not logged in, please log in again")
			default:
				// Store failure: deny, never authenticate on error.
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}

		m.cookies.setAccess(w, creds.AccessToken)
		m.cookies.setRefresh(w, creds.RefreshToken)
		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), creds.UserID)))
	})
}

func withUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, principalKey{}, userID)
}
