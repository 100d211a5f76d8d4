package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type postMessageRequest struct {
	UserName string `json:"user_name"`
	// Older clients send "mood", newer ones "emotion"; either works.
	Mood     string `json:"mood"`
	Emotion  string `json:"emotion"`
	Comment  string `json:"comment"`
	FamilyID string `json:"family_id" validate:"required"`
	UserID   *int64 `json:"user_id"`
}

type messageResponse struct {
	ID        int64     `json:"id"`
	UserName  string    `json:"user_name"`
	Emotion   string    `json:"emotion"`
	Comment   string    `json:"comment"`
	FamilyID  string    `json:"family_id"`
	UserID    *int64    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handlers) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req postMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
		return
	}

	emotion := req.Emotion
	if emotion == "" {
		emotion = req.Mood
	}
	if emotion == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "emotion is required")
		return
	}

	id, err := h.Messages.Post(r.Context(), req.UserName, emotion, req.Comment, req.FamilyID, req.UserID)
	if err != nil {
		h.log.InternalError("messages.post: save failed", err, "family_id", req.FamilyID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"id": id})
}

func (h *Handlers) ListMessages(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "family_id")

	messages, err := h.Messages.ListByFamily(r.Context(), familyID)
	if err != nil {
		h.log.InternalError("messages.list: query failed", err, "family_id", familyID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]messageResponse, 0, len(messages))
	for _, m := range messages {
		response = append(response, messageResponse{
			ID:        m.ID,
			UserName:  m.UserName,
			Emotion:   m.Emotion,
			Comment:   m.Comment,
			FamilyID:  m.FamilyID,
			UserID:    m.UserID,
			CreatedAt: m.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, response)
}
