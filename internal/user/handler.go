package user

import (
	"errors"
	"net/http"

	"github.com/redmonkez12/bookmark-api/internal/httputil"
	"github.com/redmonkez12/bookmark-api/internal/identity"
	"github.com/redmonkez12/bookmark-api/internal/logging"
)

// Handler contains HTTP handlers for the /users endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetMe returns the authenticated user
// @Summary      Current user
// @Description  Return the profile of the user the bearer token belongs to
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} User
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Router       /users/me [get]
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := identity.UserID(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "unauthorized", httputil.CodeUnauthorized, http.StatusUnauthorized)
		return
	}

	u, err := h.service.GetMe(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.Warn("token references a missing user", "user_id", userID)
			httputil.RespondErrorWithCode(w, "unauthorized", httputil.CodeUnauthorized, http.StatusUnauthorized)
			return
		}
		logger.Error("get current user failed", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to get user", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, u, http.StatusOK)
}

// Edit updates the authenticated user's profile
// @Summary      Edit current user
// @Description  Partially update email, first name and last name
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body EditUserRequest true "Fields to change"
// @Success      200 {object} User
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Failure      403 {object} httputil.ErrorResponse "Email already taken"
// @Router       /users [patch]
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := identity.UserID(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "unauthorized", httputil.CodeUnauthorized, http.StatusUnauthorized)
		return
	}

	var req EditUserRequest
	if !httputil.DecodeAndValidate(w, r, &req) {
		return
	}

	u, err := h.service.Edit(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEmail):
			logger.Warn("edit user failed: email already taken", "user_id", userID)
			httputil.RespondErrorWithCode(w, "credentials taken", httputil.CodeCredentialsTaken, http.StatusForbidden)
		case errors.Is(err, ErrNotFound):
			httputil.RespondErrorWithCode(w, "unauthorized", httputil.CodeUnauthorized, http.StatusUnauthorized)
		default:
			logger.Error("edit user failed: internal error", "error", err.Error())
			httputil.RespondErrorWithCode(w, "failed to update user", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	logger.Info("user updated", "user_id", userID)
	httputil.RespondJSON(w, u, http.StatusOK)
}
