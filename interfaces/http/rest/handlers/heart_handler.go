package handlers

import (
	"net/http"

	"share-adage-backend/application/services"
	"share-adage-backend/interfaces/http/rest/middleware"
	"share-adage-backend/pkg/httpx"

	apperrors "share-adage-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HeartHandler handles heart-related HTTP requests
type HeartHandler struct {
	hearts *services.HeartService
	logger *zap.Logger
}

// NewHeartHandler creates a new heart handler
func NewHeartHandler(hearts *services.HeartService, logger *zap.Logger) *HeartHandler {
	return &HeartHandler{hearts: hearts, logger: logger}
}

// Send handles POST /user/heart/{userId}
func (h *HeartHandler) Send(w http.ResponseWriter, r *http.Request) {
	senderID, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.RespondError(w, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	if err := h.hearts.Send(r.Context(), senderID, chi.URLParam(r, "userId")); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{})
}

// ListHistory handles GET /user/heart
func (h *HeartHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.RespondError(w, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	rows, err := h.hearts.ListHistory(r.Context(), userID)
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, rows)
}

// DeleteHistoryRequest is the request body for deleting one ledger row.
type DeleteHistoryRequest struct {
	Key string `json:"key"`
}

// DeleteHistory handles DELETE /user/heart
func (h *HeartHandler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.RespondError(w, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	var req DeleteHistoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}

	if err := h.hearts.DeleteHistory(r.Context(), userID, req.Key); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{})
}
