package bookmark

import (
	"errors"
	"net/http"

	"github.com/redmonkez12/bookmark-api/internal/httputil"
	"github.com/redmonkez12/bookmark-api/internal/identity"
	"github.com/redmonkez12/bookmark-api/internal/logging"
)

// Handler contains HTTP handlers for the /bookmarks endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List returns the caller's bookmarks
// @Summary      List bookmarks
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Bookmark
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Router       /bookmarks [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := identity.UserID(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "unauthorized", httputil.CodeUnauthorized, http.StatusUnauthorized)
		return
	}

	bookmarks, err := h.service.List(r.Context(), userID)
	if err != nil {
		logger.Error("list bookmarks failed", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to list bookmarks", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, bookmarks, http.StatusOK)
}

// Create adds a bookmark owned by the caller
// @Summary      Create bookmark
// @Tags         bookmarks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateBookmarkRequest true "Bookmark"
// @Success      201 {object} Bookmark
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Router       /bookmarks [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := identity.UserID(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "unauthorized", httputil.CodeUnauthorized, http.StatusUnauthorized)
		return
	}

	var req CreateBookmarkRequest
	if !httputil.DecodeAndValidate(w, r, &req) {
		return
	}

	b, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		logger.Error("create bookmark failed", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to create bookmark", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("bookmark created", "bookmark_id", b.ID)
	httputil.RespondJSON(w, b, http.StatusCreated)
}

// Get returns one of the caller's bookmarks, or null
// @Summary      Get bookmark
// @Description  Returns null when the bookmark does not exist or is not owned by the caller
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Bookmark ID" format(uuid)
// @Success      200 {object} Bookmark
// @Failure      400 {object} httputil.ErrorResponse "Invalid id"
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Router       /bookmarks/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := identity.UserID(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "unauthorized", httputil.CodeUnauthorized, http.StatusUnauthorized)
		return
	}

	id, ok := httputil.URLParamUUID(w, r, "id")
	if !ok {
		return
	}

	b, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondJSON(w, nil, http.StatusOK)
			return
		}
		logger.Error("get bookmark failed", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to get bookmark", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, b, http.StatusOK)
}

// Edit partially updates one of the caller's bookmarks
// @Summary      Edit bookmark
// @Tags         bookmarks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Bookmark ID" format(uuid)
// @Param        request body EditBookmarkRequest true "Fields to change"
// @Success      200 {object} Bookmark
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Failure      403 {object} httputil.ErrorResponse "Access to resource denied"
// @Router       /bookmarks/{id} [patch]
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := identity.UserID(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "unauthorized", httputil.CodeUnauthorized, http.StatusUnauthorized)
		return
	}

	id, ok := httputil.URLParamUUID(w, r, "id")
	if !ok {
		return
	}

	var req EditBookmarkRequest
	if !httputil.DecodeAndValidate(w, r, &req) {
		return
	}

	b, err := h.service.Edit(r.Context(), userID, id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.Warn("edit bookmark denied", "bookmark_id", id)
			httputil.RespondErrorWithCode(w, "access to resource denied", httputil.CodeAccessDenied, http.StatusForbidden)
			return
		}
		logger.Error("edit bookmark failed", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to update bookmark", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, b, http.StatusOK)
}

// Delete removes one of the caller's bookmarks
// @Summary      Delete bookmark
// @Tags         bookmarks
// @Security     BearerAuth
// @Param        id path string true "Bookmark ID" format(uuid)
// @Success      204
// @Failure      400 {object} httputil.ErrorResponse "Invalid id"
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Failure      403 {object} httputil.ErrorResponse "Access to resource denied"
// @Router       /bookmarks/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := identity.UserID(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "unauthorized", httputil.CodeUnauthorized, http.StatusUnauthorized)
		return
	}

	id, ok := httputil.URLParamUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.Warn("delete bookmark denied", "bookmark_id", id)
			httputil.RespondErrorWithCode(w, "access to resource denied", httputil.CodeAccessDenied, http.StatusForbidden)
			return
		}
		logger.Error("delete bookmark failed", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to delete bookmark", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("bookmark deleted", "bookmark_id", id)
	httputil.RespondNoContent(w)
}
