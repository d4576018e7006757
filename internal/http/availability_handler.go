package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/example/meeting-scheduler/internal/application"
	"github.com/example/meeting-scheduler/internal/metrics"
	"github.com/example/meeting-scheduler/internal/persistence"
	"github.com/example/meeting-scheduler/internal/scheduler"
)

type availabilityService interface {
	CheckUserAvailability(ctx context.Context, userID int64, start, end time.Time) (bool, []persistence.Event, error)
	UserDaySchedule(ctx context.Context, userID int64, day time.Time) (application.DaySchedule, error)
	RoomDaySchedule(ctx context.Context, roomID int64, day time.Time) (application.DaySchedule, error)
	FindCommonSlots(ctx context.Context, userIDs []int64, duration time.Duration, windowStart, windowEnd time.Time) ([]scheduler.Interval, error)
	AvailableRooms(ctx context.Context, start, end time.Time, minCapacity int) ([]persistence.Room, error)
}

type AvailabilityHandler struct {
	service   availabilityService
	recorder  metrics.Recorder
	responder responder
	logger    *slog.Logger
}

func NewAvailabilityHandler(service availabilityService, recorder metrics.Recorder, logger *slog.Logger) *AvailabilityHandler {
	base := defaultLogger(logger)
	return &AvailabilityHandler{service: service, recorder: recorder, responder: newResponder(base), logger: base}
}

func (h *AvailabilityHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AvailabilityHandler", operation, attrs...)
}

// CheckUser answers whether a user is free for the interval given by the
// start and end query parameters.
func (h *AvailabilityHandler) CheckUser(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidUserID)
		return
	}

	start, end, ok := intervalParams(r)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidInterval)
		return
	}

	logger := h.log(r.Context(), "CheckUser", "user_id", userID)

	available, conflicts, err := h.service.CheckUserAvailability(r.Context(), userID, start, end)
	if err != nil {
		logger.ErrorContext(r.Context(), "availability check failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, availabilityResponse{
		Available: available,
		Conflicts: toEventDTOs(conflicts),
	})
}

// UserDay serves a user's free/busy breakdown for the date query parameter.
func (h *AvailabilityHandler) UserDay(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidUserID)
		return
	}

	day, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
		return
	}

	logger := h.log(r.Context(), "UserDay", "user_id", userID)

	schedule, err := h.service.UserDaySchedule(r.Context(), userID, day)
	if err != nil {
		logger.ErrorContext(r.Context(), "free/busy lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toDayScheduleResponse(schedule))
}

// RoomDay serves a room's free/busy breakdown for the date query parameter.
func (h *AvailabilityHandler) RoomDay(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	roomID, ok := RoomIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRoomID)
		return
	}

	day, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
		return
	}

	logger := h.log(r.Context(), "RoomDay", "room_id", roomID)

	schedule, err := h.service.RoomDaySchedule(r.Context(), roomID, day)
	if err != nil {
		logger.ErrorContext(r.Context(), "free/busy lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toDayScheduleResponse(schedule))
}

type slotSearchRequest struct {
	ParticipantIDs  []int64 `json:"participant_ids"`
	DurationMinutes int     `json:"duration_minutes"`
	WindowStart     string  `json:"window_start"`
	WindowEnd       string  `json:"window_end"`
}

// CommonSlots searches for slots where every listed participant is free.
func (h *AvailabilityHandler) CommonSlots(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req slotSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "CommonSlots", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode slot search", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	windowStart, err := time.Parse(time.RFC3339, req.WindowStart)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidInterval)
		return
	}
	windowEnd, err := time.Parse(time.RFC3339, req.WindowEnd)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidInterval)
		return
	}

	logger := h.log(r.Context(), "CommonSlots", "participants", len(req.ParticipantIDs))

	slots, err := h.service.FindCommonSlots(r.Context(), req.ParticipantIDs,
		time.Duration(req.DurationMinutes)*time.Minute, windowStart, windowEnd)
	if err != nil {
		logger.ErrorContext(r.Context(), "slot search failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	if h.recorder != nil {
		h.recorder.RecordSlotSearch(len(slots))
	}
	logger.With("result_count", len(slots)).InfoContext(r.Context(), "slots searched")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, slotSearchResponse{Slots: toIntervalDTOs(slots)})
}

// AvailableRooms lists the rooms free for the interval given by the start
// and end query parameters, optionally filtered by minimum capacity.
func (h *AvailabilityHandler) AvailableRooms(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	start, end, ok := intervalParams(r)
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidInterval)
		return
	}

	minCapacity := 0
	if value := r.URL.Query().Get("capacity"); value != "" {
		capacity, err := strconv.Atoi(value)
		if err != nil || capacity < 0 {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidCapacity)
			return
		}
		minCapacity = capacity
	}

	logger := h.log(r.Context(), "AvailableRooms", "min_capacity", minCapacity)

	rooms, err := h.service.AvailableRooms(r.Context(), start, end, minCapacity)
	if err != nil {
		logger.ErrorContext(r.Context(), "room search failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(rooms)).InfoContext(r.Context(), "available rooms listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listRoomsResponse{Rooms: toRoomDTOs(rooms)})
}

func intervalParams(r *http.Request) (time.Time, time.Time, bool) {
	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

type availabilityResponse struct {
	Available bool       `json:"available"`
	Conflicts []eventDTO `json:"conflicts,omitempty"`
}

type slotSearchResponse struct {
	Slots []intervalDTO `json:"slots"`
}
