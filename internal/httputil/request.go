package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/redmonkez12/bookmark-api/internal/validation"
)

const maxBodyBytes = 1 << 20

// DecodeAndValidate decodes the JSON request body into dst and runs the
// struct validator on it. On failure the error response is already written
// and false is returned. An empty body is validated as an empty object.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		RespondErrorWithCode(w, "invalid request body", CodeInvalidRequestBody, http.StatusBadRequest)
		return false
	}

	if err := validation.Struct(dst); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			RespondValidationError(w, verrs)
			return false
		}
		RespondErrorWithCode(w, "invalid request body", CodeInvalidRequestBody, http.StatusBadRequest)
		return false
	}

	return true
}

// URLParamUUID parses a UUID path parameter. On failure a 400 is written.
func URLParamUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		RespondErrorWithCode(w, "validation failed (uuid is expected)", CodeInvalidID, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
