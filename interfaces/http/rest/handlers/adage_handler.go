package handlers

import (
	"net/http"
	"strconv"
	"time"

	"share-adage-backend/application/services"
	"share-adage-backend/domain/adage"
	"share-adage-backend/interfaces/http/rest/middleware"
	"share-adage-backend/pkg/httpx"
	"share-adage-backend/pkg/validate"

	apperrors "share-adage-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdageHandler handles adage-related HTTP requests
type AdageHandler struct {
	adages *services.AdageService
	logger *zap.Logger
}

// NewAdageHandler creates a new adage handler
func NewAdageHandler(adages *services.AdageService, logger *zap.Logger) *AdageHandler {
	return &AdageHandler{adages: adages, logger: logger}
}

// CreateAdageRequest is the request body for creating an adage. The episode
// text is optional; when present, episode creation is cascaded.
type CreateAdageRequest struct {
	Title   string `json:"title" validate:"required"`
	Episode string `json:"episode,omitempty"`
}

// CreateAdageResponse echoes the created record plus the inline episode.
type CreateAdageResponse struct {
	adage.TitleRecord
	Episode string `json:"episode"`
}

// Create handles POST /adage
func (h *AdageHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.RespondError(w, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}
	h.create(w, r, adage.Registered(userID))
}

// CreateByGuest handles POST /adage/guest
func (h *AdageHandler) CreateByGuest(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, adage.NewGuest())
}

func (h *AdageHandler) create(w http.ResponseWriter, r *http.Request, author adage.Author) {
	var req CreateAdageRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.RespondError(w, h.logger, apperrors.NewValidationError(err.Error()))
		return
	}

	record, err := h.adages.Create(r.Context(), author, req.Title, req.Episode)
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.RespondCreated(w, CreateAdageResponse{TitleRecord: *record, Episode: req.Episode})
}

// ListMonthly handles GET /adage. The month defaults to the current one.
func (h *AdageHandler) ListMonthly(w http.ResponseWriter, r *http.Request) {
	month := int(time.Now().Month())
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httpx.RespondError(w, h.logger, apperrors.NewValidationError("month must be a number"))
			return
		}
		month = parsed
	}

	adages, err := h.adages.ListMonthly(r.Context(), month)
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, adages)
}

// Get handles GET /adage/{adageId}
func (h *AdageHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.adages.Get(r.Context(), chi.URLParam(r, "adageId"))
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, detail)
}

// Like handles PATCH /adage/{adageId}
func (h *AdageHandler) Like(w http.ResponseWriter, r *http.Request) {
	adageID := chi.URLParam(r, "adageId")
	if err := h.adages.Like(r.Context(), adageID); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"adageId": adageID})
}
