package auth

import (
	"net/http"
	"strings"

	"github.com/redmonkez12/bookmark-api/internal/httputil"
	"github.com/redmonkez12/bookmark-api/internal/identity"
	"github.com/redmonkez12/bookmark-api/internal/logging"
)

// Middleware handles authentication for protected routes
type Middleware struct {
	tokenService TokenService
}

func NewMiddleware(tokenService TokenService) *Middleware {
	return &Middleware{tokenService: tokenService}
}

// RequireAuth validates the bearer token and stores the caller's identity
// on the request context. Every failure gets the same 401 response.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.GetLoggerFromContext(r.Context())

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			logger.Debug("rejected request: missing or malformed authorization header")
			unauthorized(w)
			return
		}

		claims, err := m.tokenService.VerifyToken(token)
		if err != nil {
			logger.Debug("rejected request: token verification failed", "error", err.Error())
			unauthorized(w)
			return
		}

		ctx := identity.WithUser(r.Context(), claims.UserID, claims.Email)
		ctx = logging.WithLogger(ctx, logger.WithFields(map[string]any{"user_id": claims.UserID.String()}))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter) {
	httputil.RespondErrorWithCode(w, "unauthorized", httputil.CodeUnauthorized, http.StatusUnauthorized)
}
