package httpx

import (
	"encoding/json"
	"net/http"

	apperrors "share-adage-backend/pkg/errors"

	"go.uber.org/zap"
)

// ErrorBody is the JSON shape returned for every failed request.
type ErrorBody struct {
	ErrorCode int    `json:"errorCode"`
	Phrase    string `json:"phrase"`
	Message   string `json:"message"`
}

// RespondJSON sends a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondCreated sends a 201 response with the given body.
func RespondCreated(w http.ResponseWriter, data interface{}) {
	RespondJSON(w, http.StatusCreated, data)
}

// RespondError maps an error to an HTTP response. Application errors carry
// their own status and message; anything else becomes a generic 500 with no
// internal detail leaked to the caller.
func RespondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		if status >= 500 {
			logger.Error(appErr.Message, zap.String("type", string(appErr.Type)), zap.Error(err))
		} else {
			logger.Warn(appErr.Message, zap.String("type", string(appErr.Type)))
		}
		RespondJSON(w, status, ErrorBody{
			ErrorCode: status,
			Phrase:    http.StatusText(status),
			Message:   appErr.Message,
		})
		return
	}

	logger.Error("unhandled error", zap.Error(err))
	RespondJSON(w, http.StatusInternalServerError, ErrorBody{
		ErrorCode: http.StatusInternalServerError,
		Phrase:    http.StatusText(http.StatusInternalServerError),
		Message:   "",
	})
}

// DecodeJSON decodes a JSON request body into v.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return apperrors.NewValidationError("request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.NewValidationError("invalid request body").WithCause(err)
	}
	return nil
}
