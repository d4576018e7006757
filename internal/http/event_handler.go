package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/meeting-scheduler/internal/application"
	"github.com/example/meeting-scheduler/internal/metrics"
	"github.com/example/meeting-scheduler/internal/persistence"
)

type eventService interface {
	CreateEvent(ctx context.Context, params application.CreateEventParams) (persistence.Event, error)
	GetEvent(ctx context.Context, id int64) (persistence.Event, error)
	ListUserEvents(ctx context.Context, userID int64, from, until *time.Time) ([]persistence.Event, error)
	UpdateEvent(ctx context.Context, id int64, params application.UpdateEventParams) (persistence.Event, error)
	CancelEvent(ctx context.Context, id int64) (bool, error)
}

type EventHandler struct {
	service   eventService
	recorder  metrics.Recorder
	responder responder
	logger    *slog.Logger
}

func NewEventHandler(service eventService, recorder metrics.Recorder, logger *slog.Logger) *EventHandler {
	base := defaultLogger(logger)
	return &EventHandler{service: service, recorder: recorder, responder: newResponder(base), logger: base}
}

func (h *EventHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "EventHandler", operation, attrs...)
}

type eventRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	OrganizerID int64   `json:"organizer_id"`
	AttendeeIDs []int64 `json:"attendee_ids"`
	RoomID      *int64  `json:"room_id"`
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode event request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidInterval)
		return
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidInterval)
		return
	}

	logger := h.log(r.Context(), "Create", "organizer_id", req.OrganizerID)

	event, err := h.service.CreateEvent(r.Context(), application.CreateEventParams{
		Title:       req.Title,
		Description: req.Description,
		Start:       start,
		End:         end,
		OrganizerID: req.OrganizerID,
		AttendeeIDs: req.AttendeeIDs,
		RoomID:      req.RoomID,
	})
	if err != nil {
		if errors.Is(err, application.ErrRoomUnavailable) && h.recorder != nil {
			h.recorder.RecordBookingRejected()
		}
		logger.ErrorContext(r.Context(), "event creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	if h.recorder != nil {
		h.recorder.RecordEventCreated()
	}
	logger.With("event_id", event.ID).InfoContext(r.Context(), "event created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, eventResponse{Event: toEventDTO(event)})
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, ok := EventIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}

	logger := h.log(r.Context(), "Get", "event_id", eventID)

	event, err := h.service.GetEvent(r.Context(), eventID)
	if err != nil {
		logger.ErrorContext(r.Context(), "event lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, eventResponse{Event: toEventDTO(event)})
}

// ListForUser serves a user's events, optionally bounded by the inclusive
// from and until query parameters (RFC 3339).
func (h *EventHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidUserID)
		return
	}

	from, ok := optionalTimeParam(r, "from")
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidInterval)
		return
	}
	until, ok := optionalTimeParam(r, "until")
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidInterval)
		return
	}

	logger := h.log(r.Context(), "ListForUser", "user_id", userID)

	events, err := h.service.ListUserEvents(r.Context(), userID, from, until)
	if err != nil {
		logger.ErrorContext(r.Context(), "event list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(events)).InfoContext(r.Context(), "events listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listEventsResponse{Events: toEventDTOs(events)})
}

type eventUpdateRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Start           *string `json:"start"`
	End             *string `json:"end"`
	ParticipantMode string  `json:"participant_mode"`
	ParticipantIDs  []int64 `json:"participant_ids"`
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, ok := EventIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}

	var req eventUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "event_id", eventID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode event update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	params := application.UpdateEventParams{
		Title:          req.Title,
		Description:    req.Description,
		ParticipantOp:  persistence.ParticipantOp(req.ParticipantMode),
		ParticipantIDs: req.ParticipantIDs,
	}
	if req.Start != nil {
		start, err := time.Parse(time.RFC3339, *req.Start)
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidInterval)
			return
		}
		params.Start = &start
	}
	if req.End != nil {
		end, err := time.Parse(time.RFC3339, *req.End)
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidInterval)
			return
		}
		params.End = &end
	}

	logger := h.log(r.Context(), "Update", "event_id", eventID)

	event, err := h.service.UpdateEvent(r.Context(), eventID, params)
	if err != nil {
		if errors.Is(err, application.ErrRoomUnavailable) && h.recorder != nil {
			h.recorder.RecordBookingRejected()
		}
		logger.ErrorContext(r.Context(), "event update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "event updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, eventResponse{Event: toEventDTO(event)})
}

// Delete cancels an event. Cancelling an already-cancelled event succeeds
// with the same 204.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	eventID, ok := EventIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEventID)
		return
	}

	logger := h.log(r.Context(), "Delete", "event_id", eventID)

	deleted, err := h.service.CancelEvent(r.Context(), eventID)
	if err != nil {
		logger.ErrorContext(r.Context(), "event cancel failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	if deleted {
		logger.InfoContext(r.Context(), "event cancelled")
	}
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func optionalTimeParam(r *http.Request, name string) (*time.Time, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, false
	}
	return &t, true
}

type eventResponse struct {
	Event eventDTO `json:"event"`
}

type listEventsResponse struct {
	Events []eventDTO `json:"events"`
}
