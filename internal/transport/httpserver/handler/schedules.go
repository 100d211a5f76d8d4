package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	scheduledomain "family-talk-go/internal/domain/schedule"
	"github.com/go-chi/chi/v5"
)

type createScheduleRequest struct {
	FamilyID   string                       `json:"family_id" validate:"required"`
	SenderName string                       `json:"sender_name" validate:"required"`
	MeetupType string                       `json:"meetup_type" validate:"required"`
	TimeRanges scheduledomain.TimeRangeList `json:"time_ranges" validate:"required,min=1"`
	SenderID   int64                        `json:"sender_id" validate:"required"`
}

type saveResponseRequest struct {
	UserID            int64                       `json:"user_id" validate:"required"`
	UserName          string                      `json:"user_name"`
	SelectedTimeSlots scheduledomain.TimeSlotList `json:"selected_time_slots" validate:"required,min=1"`
}

type scheduleResponse struct {
	ID            int64                        `json:"id"`
	FamilyID      string                       `json:"family_id"`
	SenderName    string                       `json:"sender_name"`
	SenderID      int64                        `json:"sender_id"`
	MeetupType    string                       `json:"meetup_type"`
	TimeRanges    scheduledomain.TimeRangeList `json:"time_ranges"`
	FinalSchedule scheduledomain.FinalSchedule `json:"final_schedule"`
	Status        string                       `json:"status"`
	CreatedAt     time.Time                    `json:"created_at"`
}

type responseResponse struct {
	ID                int64                       `json:"id"`
	ScheduleID        int64                       `json:"schedule_id"`
	UserID            int64                       `json:"user_id"`
	UserName          string                      `json:"user_name"`
	SelectedTimeSlots scheduledomain.TimeSlotList `json:"selected_time_slots"`
	CreatedAt         time.Time                   `json:"created_at"`
}

func (h *Handlers) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req createScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
		return
	}

	id, err := h.Schedules.Create(r.Context(), req.FamilyID, req.SenderName, req.MeetupType, req.TimeRanges, req.SenderID)
	if err != nil {
		if errors.Is(err, scheduledomain.ErrInvalidMeetupType) {
			writeError(w, http.StatusBadRequest, "invalid_meetup_type", "meetup_type must be one of meal, tea, house, others")
			return
		}
		h.log.InternalError("schedules.create: save failed", err, "family_id", req.FamilyID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handlers) ListSchedules(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "family_id")

	schedules, err := h.Schedules.ListByFamily(r.Context(), familyID)
	if err != nil {
		h.log.InternalError("schedules.list: query failed", err, "family_id", familyID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]scheduleResponse, 0, len(schedules))
	for _, s := range schedules {
		response = append(response, toScheduleResponse(s))
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) SaveScheduleResponse(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := parseIDParam(r, "schedule_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "schedule_id must be a number")
		return
	}

	var req saveResponseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
		return
	}

	isComplete, err := h.Schedules.SaveResponse(r.Context(), scheduleID, req.UserID, req.UserName, req.SelectedTimeSlots)
	if err != nil {
		switch {
		case errors.Is(err, scheduledomain.ErrScheduleNotFound):
			h.log.BusinessError("schedules.respond: schedule not found", err, "schedule_id", scheduleID)
			writeError(w, http.StatusNotFound, "schedule_not_found", "schedule not found")
		case errors.Is(err, scheduledomain.ErrIncompleteSchedule):
			h.log.InternalError("schedules.respond: schedule row is missing family or sender", err, "schedule_id", scheduleID)
			writeError(w, http.StatusInternalServerError, "schedule_incomplete", "schedule record is incomplete")
		default:
			h.log.InternalError("schedules.respond: save failed", err, "schedule_id", scheduleID, "user_id", req.UserID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]bool{"isComplete": isComplete})
}

func (h *Handlers) ListScheduleResponses(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := parseIDParam(r, "schedule_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "schedule_id must be a number")
		return
	}

	responses, err := h.Schedules.ListResponses(r.Context(), scheduleID)
	if err != nil {
		h.log.InternalError("schedules.responses: query failed", err, "schedule_id", scheduleID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	result := make([]responseResponse, 0, len(responses))
	for _, resp := range responses {
		result = append(result, responseResponse{
			ID:                resp.ID,
			ScheduleID:        resp.ScheduleID,
			UserID:            resp.UserID,
			UserName:          resp.UserName,
			SelectedTimeSlots: resp.SelectedTimeSlots,
			CreatedAt:         resp.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, result)
}

// GetFinalSchedule returns the live aggregation of every responder's
// selection, or JSON null before anyone has answered.
func (h *Handlers) GetFinalSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := parseIDParam(r, "schedule_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "schedule_id must be a number")
		return
	}

	final, err := h.Schedules.FinalSchedule(r.Context(), scheduleID)
	if err != nil {
		h.log.InternalError("schedules.final: aggregation failed", err, "schedule_id", scheduleID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, final)
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	return strconv.ParseInt(raw, 10, 64)
}

func toScheduleResponse(s scheduledomain.Schedule) scheduleResponse {
	return scheduleResponse{
		ID:            s.ID,
		FamilyID:      s.FamilyID,
		SenderName:    s.SenderName,
		SenderID:      s.SenderID,
		MeetupType:    s.MeetupType,
		TimeRanges:    s.TimeRanges,
		FinalSchedule: s.FinalSchedule,
		Status:        s.Status,
		CreatedAt:     s.CreatedAt,
	}
}
