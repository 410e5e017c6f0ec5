package transport

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	authapp "github.com/cargomarket/backend/application/auth"
	"github.com/cargomarket/backend/constant"
	utilsContext "github.com/cargomarket/backend/utils/context"
	"github.com/cargomarket/backend/utils/errors"
)

// registrationPaths are the only endpoints a registration-scoped token may
// reach: finishing the profile and reading it back.
var registrationPaths = map[string]bool{
	"/auth/register": true,
	"/auth/me":       true,
	"/auth/logout":   true,
}

// resetPaths are the only endpoints a reset-scoped token may reach.
var resetPaths = map[string]bool{
	"/auth/reset-password": true,
	"/auth/logout":         true,
}

// AuthMiddleware validates the bearer token against its live session and
// enforces the token scope. Registration and reset tokens are confined to
// their own flows; /admin/ routes additionally require the admin flag.
func AuthMiddleware(authApp authapp.AuthApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if isPublicPath(path) {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			token := strings.TrimPrefix(auth, "Bearer ")

			userID, scope, err := authApp.ValidateToken(r.Context(), token)
			if err != nil {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			if err := checkScope(scope, path); err != nil {
				writeError(w, err)
				return
			}

			if strings.HasPrefix(path, "/admin/") {
				user, err := authApp.Me(r.Context(), userID)
				if err != nil {
					writeError(w, err)
					return
				}
				if !user.IsAdmin {
					writeError(w, errors.SetCustomError(constant.ErrForbidden))
					return
				}
			}

			ctx := utilsContext.WithUserID(r.Context(), userID)
			ctx = utilsContext.WithTokenScope(ctx, scope)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func checkScope(scope, path string) error {
	switch scope {
	case constant.TokenScopeFull:
		return nil
	case constant.TokenScopeRegistration:
		if registrationPaths[path] {
			return nil
		}
	case constant.TokenScopeReset:
		if resetPaths[path] {
			return nil
		}
	}
	return errors.SetCustomError(constant.ErrInvalidTokenScope)
}

// isPublicPath defines which endpoints are public (no auth required)
func isPublicPath(path string) bool {
	if strings.HasPrefix(path, "/swagger/") {
		return true
	}
	switch path {
	case "/auth/check-phone", "/auth/verify-phone", "/auth/login",
		"/auth/refresh", "/auth/restore/verify", "/geo/directory", "/health":
		return true
	}
	return false
}
