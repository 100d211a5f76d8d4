package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	userdomain "family-talk-go/internal/domain/user"
	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	UserName string `json:"user_name"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	UserID     int64  `json:"userId"`
	InviteCode string `json:"invite_code"`
}

type userResponse struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	UserName   string    `json:"user_name"`
	FamilyID   *string   `json:"family_id"`
	InviteCode *string   `json:"invite_code"`
	CreatedAt  time.Time `json:"created_at"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
		return
	}

	created, err := h.Users.Register(r.Context(), req.Email, req.Password, req.UserName)
	if err != nil {
		if errors.Is(err, userdomain.ErrEmailTaken) {
			h.log.BusinessError("users.register: email taken", err, "email", req.Email)
			writeError(w, http.StatusConflict, "email_taken", "email already registered")
			return
		}
		h.log.InternalError("users.register: create failed", err, "email", req.Email)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	code := ""
	if created.InviteCode != nil {
		code = *created.InviteCode
	}
	writeJSON(w, http.StatusOK, registerResponse{UserID: created.ID, InviteCode: code})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
		return
	}

	u, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userdomain.ErrInvalidCredentials) {
			h.log.BusinessError("users.login: invalid credentials", err, "email", req.Email)
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "email or password is incorrect")
			return
		}
		h.log.InternalError("users.login: login failed", err, "email", req.Email)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": toUserResponse(u)})
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(chi.URLParam(r, "email"))
	if email == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "email is required")
		return
	}

	u, err := h.Users.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
			return
		}
		h.log.InternalError("users.get: lookup failed", err, "email", email)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// InviteQR renders the user's invite code as a PNG QR image for sharing.
func (h *Handlers) InviteQR(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(chi.URLParam(r, "email"))
	if email == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "email is required")
		return
	}

	u, err := h.Users.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
			return
		}
		h.log.InternalError("users.invite_qr: lookup failed", err, "email", email)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	if u.InviteCode == nil || *u.InviteCode == "" {
		writeError(w, http.StatusNotFound, "invite_code_missing", "user has no invite code")
		return
	}

	png, err := qrcode.Encode(*u.InviteCode, qrcode.Medium, 256)
	if err != nil {
		h.log.InternalError("users.invite_qr: encode failed", err, "email", email)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func toUserResponse(u *userdomain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Email:      u.Email,
		UserName:   u.UserName,
		FamilyID:   u.FamilyID,
		InviteCode: u.InviteCode,
		CreatedAt:  u.CreatedAt,
	}
}
