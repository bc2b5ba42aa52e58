package handlers

import (
	"net/http"

	"share-adage-backend/application/services"
	"share-adage-backend/domain/adage"
	"share-adage-backend/interfaces/http/rest/middleware"
	"share-adage-backend/pkg/httpx"

	apperrors "share-adage-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EpisodeHandler handles episode-related HTTP requests
type EpisodeHandler struct {
	episodes *services.EpisodeService
	logger   *zap.Logger
}

// NewEpisodeHandler creates a new episode handler
func NewEpisodeHandler(episodes *services.EpisodeService, logger *zap.Logger) *EpisodeHandler {
	return &EpisodeHandler{episodes: episodes, logger: logger}
}

// PostEpisodeRequest is the request body for posting an episode. The userId
// is the literal "guest" for anonymous posts. Required-field checks are the
// service's: a missing adageId or episode is rejected with 403, which
// existing clients depend on.
type PostEpisodeRequest struct {
	AdageID string `json:"adageId"`
	Episode string `json:"episode"`
	UserID  string `json:"userId"`
}

// Post handles POST /episode
func (h *EpisodeHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req PostEpisodeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}

	record, err := h.episodes.Post(r.Context(), req.AdageID, adage.ParseAuthor(req.UserID), req.Episode)
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.RespondCreated(w, record)
}

// Get handles GET /episode/{adageId}/{userId}
func (h *EpisodeHandler) Get(w http.ResponseWriter, r *http.Request) {
	text, err := h.episodes.Get(r.Context(), chi.URLParam(r, "adageId"), chi.URLParam(r, "userId"))
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"episode": text})
}

// LikeFromGuest handles PATCH /episode/{adageId}/{userId}
func (h *EpisodeHandler) LikeFromGuest(w http.ResponseWriter, r *http.Request) {
	adageID := chi.URLParam(r, "adageId")
	err := h.episodes.LikeFromGuest(r.Context(), adageID, chi.URLParam(r, "userId"))
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"episodeId": adageID})
}

// LikeFromUser handles PATCH /episode/{adageId}/{userId}/{senderUserId}
func (h *EpisodeHandler) LikeFromUser(w http.ResponseWriter, r *http.Request) {
	adageID := chi.URLParam(r, "adageId")
	err := h.episodes.LikeFromUser(
		r.Context(),
		adageID,
		chi.URLParam(r, "userId"),
		chi.URLParam(r, "senderUserId"),
	)
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"episodeId": adageID})
}

// DeleteEpisodeRequest is the request body for deleting an episode. The
// caller can only delete their own episode; the author comes from the token.
type DeleteEpisodeRequest struct {
	AdageID string `json:"adageId"`
}

// Delete handles DELETE /episode
func (h *EpisodeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.RespondError(w, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	var req DeleteEpisodeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}

	if err := h.episodes.Delete(r.Context(), req.AdageID, userID); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{})
}
