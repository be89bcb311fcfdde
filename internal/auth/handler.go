package auth

import (
	"errors"
	"net"
	"net/http"

	"github.com/redmonkez12/bookmark-api/internal/httputil"
	"github.com/redmonkez12/bookmark-api/internal/logging"
	"github.com/redmonkez12/bookmark-api/internal/ratelimit"
	"github.com/redmonkez12/bookmark-api/internal/user"
)

const (
	purposeSignup = "signup"
	purposeSignin = "signin"
)

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service     *Service
	rateLimiter *ratelimit.Limiter
}

// NewHandler builds the auth handlers. rateLimiter may be nil to disable
// rate limiting.
func NewHandler(service *Service, rateLimiter *ratelimit.Limiter) *Handler {
	return &Handler{
		service:     service,
		rateLimiter: rateLimiter,
	}
}

// AuthRequest is the body of signup and signin.
type AuthRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required"`
}

// Signup handles account creation
// @Summary      Sign up
// @Description  Create an account and receive an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body AuthRequest true "Credentials"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid request or validation error"
// @Failure      403 {object} httputil.ErrorResponse "Credentials taken"
// @Failure      429 {object} httputil.ErrorResponse "Too many requests"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if !h.allow(w, r, purposeSignup) {
		return
	}

	var req AuthRequest
	if !httputil.DecodeAndValidate(w, r, &req) {
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	resp, err := h.service.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			logger.Warn("signup failed: email already exists")
			httputil.RespondErrorWithCode(w, "credentials taken", httputil.CodeCredentialsTaken, http.StatusForbidden)
			return
		}
		logger.Error("signup failed: internal error", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to sign up", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("user signed up")
	httputil.RespondJSON(w, resp, http.StatusCreated)
}

// Signin handles user login
// @Summary      Sign in
// @Description  Authenticate with email and password and receive an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body AuthRequest true "Credentials"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid request or validation error"
// @Failure      403 {object} httputil.ErrorResponse "Credentials incorrect"
// @Failure      429 {object} httputil.ErrorResponse "Too many requests"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /auth/signin [post]
func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if !h.allow(w, r, purposeSignin) {
		return
	}

	var req AuthRequest
	if !httputil.DecodeAndValidate(w, r, &req) {
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	resp, err := h.service.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn("signin failed: invalid credentials")
			httputil.RespondErrorWithCode(w, "credentials incorrect", httputil.CodeInvalidCredentials, http.StatusForbidden)
			return
		}
		logger.Error("signin failed: internal error", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to sign in", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	if h.rateLimiter != nil {
		if err := h.rateLimiter.Reset(r.Context(), getClientIP(r), purposeSignin); err != nil {
			logger.Warn("failed to reset signin rate limit", "error", err.Error())
		}
	}

	logger.Info("user signed in")
	httputil.RespondJSON(w, resp, http.StatusOK)
}

// allow counts the request against the per-IP limit for purpose. Redis
// failures are logged and the request goes through.
func (h *Handler) allow(w http.ResponseWriter, r *http.Request, purpose string) bool {
	if h.rateLimiter == nil {
		return true
	}

	logger := logging.GetLoggerFromContext(r.Context())
	ip := getClientIP(r)

	allowed, err := h.rateLimiter.Allow(r.Context(), ip, purpose)
	if err != nil {
		logger.Error("failed to apply IP rate limit", "error", err.Error())
		return true
	}
	if !allowed {
		logger.Warn("IP rate limit exceeded", "ip", ip, "purpose", purpose)
		httputil.RespondErrorWithCode(w, "too many requests, please try again later", httputil.CodeTooManyRequests, http.StatusTooManyRequests)
		return false
	}
	return true
}

// getClientIP returns the host part of RemoteAddr. The router's RealIP
// middleware has already applied X-Forwarded-For / X-Real-IP.
func getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
