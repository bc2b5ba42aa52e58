package handlers

import (
	"net/http"

	"share-adage-backend/application/services"
	"share-adage-backend/interfaces/http/rest/middleware"
	"share-adage-backend/pkg/httpx"
	"share-adage-backend/pkg/validate"

	apperrors "share-adage-backend/pkg/errors"

	"go.uber.org/zap"
)

// UserHandler handles account-related HTTP requests
type UserHandler struct {
	users  *services.UserService
	logger *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *services.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// SignUpRequest is the request body for registering an account.
type SignUpRequest struct {
	LoginID  string `json:"loginId" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignUp handles POST /user
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.RespondError(w, h.logger, apperrors.NewValidationError(err.Error()))
		return
	}

	record, err := h.users.SignUp(r.Context(), req.LoginID, req.Password)
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.RespondCreated(w, record)
}

// ConfirmRequest is the request body for confirming a sign-up.
type ConfirmRequest struct {
	LoginID string `json:"loginId" validate:"required"`
	Code    string `json:"code" validate:"required"`
}

// Confirm handles POST /user/confirm
func (h *UserHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.RespondError(w, h.logger, apperrors.NewValidationError(err.Error()))
		return
	}

	resent, err := h.users.Confirm(r.Context(), req.LoginID, req.Code)
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.RespondCreated(w, map[string]interface{}{
		"loginId":    req.LoginID,
		"codeResent": resent,
	})
}

// LoginRequest is the request body for logging in.
type LoginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

// Login handles POST /user/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}

	result, err := h.users.Login(r.Context(), req.LoginID, req.Password)
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.RespondCreated(w, result)
}

// ResetCodeRequest is the request body for requesting a reset code.
type ResetCodeRequest struct {
	LoginID string `json:"loginId"`
}

// SendResetPasswordCode handles POST /user/reset/code
func (h *UserHandler) SendResetPasswordCode(w http.ResponseWriter, r *http.Request) {
	var req ResetCodeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}

	if err := h.users.SendResetPasswordCode(r.Context(), req.LoginID); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{})
}

// ResetPasswordRequest is the request body for completing a reset.
type ResetPasswordRequest struct {
	LoginID  string `json:"loginId"`
	Code     string `json:"code"`
	Password string `json:"password"`
}

// ResetPassword handles POST /user/reset
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}

	if err := h.users.ResetPassword(r.Context(), req.LoginID, req.Code, req.Password); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{})
}

// DeleteUserRequest is the request body for deleting an account.
type DeleteUserRequest struct {
	LoginID     string `json:"loginId"`
	AccessToken string `json:"accessToken"`
}

// Delete handles DELETE /user
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.RespondError(w, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	var req DeleteUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}

	if err := h.users.Delete(r.Context(), userID, req.LoginID, req.AccessToken); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{})
}

// RenameRequest is the request body for changing the display name.
type RenameRequest struct {
	UserName string `json:"userName" validate:"required,max=20"`
}

// Rename handles PATCH /user/name
func (h *UserHandler) Rename(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.RespondError(w, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	var req RenameRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.RespondError(w, h.logger, apperrors.NewValidationError(err.Error()))
		return
	}

	if err := h.users.Rename(r.Context(), userID, req.UserName); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, map[string]string{"userName": req.UserName})
}

// Profile handles GET /user/profile
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.RespondError(w, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	profile, err := h.users.Profile(r.Context(), userID)
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, profile)
}

// ListEpisodes handles GET /user/episode
func (h *UserHandler) ListEpisodes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.RespondError(w, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	episodes, err := h.users.ListAuthoredEpisodes(r.Context(), userID)
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, episodes)
}
