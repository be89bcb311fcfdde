package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/redmonkez12/bookmark-api/internal/auth"
	"github.com/redmonkez12/bookmark-api/internal/bookmark"
	"github.com/redmonkez12/bookmark-api/internal/config"
	"github.com/redmonkez12/bookmark-api/internal/httputil"
	"github.com/redmonkez12/bookmark-api/internal/logging"
	"github.com/redmonkez12/bookmark-api/internal/user"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth           *auth.Handler
	AuthMiddleware *auth.Middleware
	User           *user.Handler
	Bookmark       *bookmark.Handler
	DB             Pinger
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, h Handlers, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.Server.TrustedOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders: []string{"Content-Length", "X-Request-Id"},
			MaxAge:         300,
		}))
	}

	r.Use(SecurityHeaders(cfg.Server.IsDevelopment()))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Compress(5))

	r.Get("/health", handleHealth(h.DB))

	// Swagger UI is only mounted in development.
	if cfg.Server.IsDevelopment() {
		logger.Info("swagger UI enabled", "path", "/swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Auth.Signup)
		r.Post("/signin", h.Auth.Signin)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.AuthMiddleware.RequireAuth)

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", h.User.GetMe)
			r.Patch("/", h.User.Edit)
		})

		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", h.Bookmark.List)
			r.Post("/", h.Bookmark.Create)
			r.Get("/{id}", h.Bookmark.Get)
			r.Patch("/{id}", h.Bookmark.Edit)
			r.Delete("/{id}", h.Bookmark.Delete)
		})
	})

	return r
}

// handleHealth reports whether the API and its database are up
// @Summary      Health check
// @Description  Check if the API is running and the database answers
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} map[string]string
// @Router       /health [get]
func handleHealth(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.PingContext(ctx); err != nil {
				logging.GetLoggerFromContext(r.Context()).Error("health check: database unreachable", "error", err.Error())
				httputil.RespondJSON(w, map[string]string{"status": "database unavailable"}, http.StatusServiceUnavailable)
				return
			}
		}

		httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
	}
}
