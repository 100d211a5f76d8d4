package handler

import (
	"errors"
	"net/http"
	"strings"

	familydomain "family-talk-go/internal/domain/family"
	"github.com/go-chi/chi/v5"
)

type createFamilyRequest struct {
	FamilyID   string `json:"family_id" validate:"required"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email" validate:"required,email"`
}

type joinFamilyRequest struct {
	FamilyID string `json:"family_id" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

type leaveFamilyRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type familyKeyResponse struct {
	FamilyID string `json:"family_id"`
}

type familyResponse struct {
	FamilyID   string `json:"family_id"`
	FamilyName string `json:"family_name"`
}

func (h *Handlers) CreateFamily(w http.ResponseWriter, r *http.Request) {
	var req createFamilyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
		return
	}

	resolved, err := h.Families.Create(r.Context(), req.FamilyID, req.FamilyName, req.Email)
	if err != nil {
		if errors.Is(err, familydomain.ErrInvalidFamilyID) {
			h.log.BusinessError("families.create: unusable family id", err, "family_id", req.FamilyID)
			writeError(w, http.StatusBadRequest, "invalid_family_id", "family id must contain letters or digits")
			return
		}
		h.log.InternalError("families.create: create failed", err, "family_id", req.FamilyID, "email", req.Email)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, familyKeyResponse{FamilyID: resolved})
}

func (h *Handlers) JoinFamily(w http.ResponseWriter, r *http.Request) {
	var req joinFamilyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
		return
	}

	resolved, err := h.Families.Join(r.Context(), req.FamilyID, req.Email)
	if err != nil {
		if errors.Is(err, familydomain.ErrInvalidCode) {
			h.log.BusinessError("families.join: code did not resolve", err, "code", req.FamilyID, "email", req.Email)
			writeError(w, http.StatusNotFound, "invalid_code", "code does not match a family or invite code")
			return
		}
		h.log.InternalError("families.join: join failed", err, "code", req.FamilyID, "email", req.Email)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, familyKeyResponse{FamilyID: resolved})
}

func (h *Handlers) LeaveFamily(w http.ResponseWriter, r *http.Request) {
	var req leaveFamilyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
		return
	}

	if err := h.Families.Leave(r.Context(), req.Email); err != nil {
		h.log.InternalError("families.leave: leave failed", err, "email", req.Email)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) GetFamily(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(chi.URLParam(r, "family_id"))
	if key == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "family_id is required")
		return
	}

	found, err := h.Families.GetByKey(r.Context(), key)
	if err != nil {
		if errors.Is(err, familydomain.ErrFamilyNotFound) {
			writeError(w, http.StatusNotFound, "family_not_found", "family not found")
			return
		}
		h.log.InternalError("families.get: lookup failed", err, "family_id", key)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, familyResponse{FamilyID: found.Key, FamilyName: found.Name})
}
