package http

import (
	"time"

	"github.com/example/meeting-scheduler/internal/application"
	"github.com/example/meeting-scheduler/internal/persistence"
	"github.com/example/meeting-scheduler/internal/scheduler"
)

type userDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toUserDTO(user persistence.User) userDTO {
	return userDTO{ID: user.ID, Name: user.Name, Email: user.Email}
}

func toUserDTOs(users []persistence.User) []userDTO {
	if len(users) == 0 {
		return nil
	}
	out := make([]userDTO, 0, len(users))
	for _, user := range users {
		out = append(out, toUserDTO(user))
	}
	return out
}

type roomDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	IsVirtual bool   `json:"is_virtual"`
}

func toRoomDTO(room persistence.Room) roomDTO {
	return roomDTO{ID: room.ID, Name: room.Name, Capacity: room.Capacity, IsVirtual: room.IsVirtual}
}

func toRoomDTOs(rooms []persistence.Room) []roomDTO {
	if len(rooms) == 0 {
		return nil
	}
	out := make([]roomDTO, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, toRoomDTO(room))
	}
	return out
}

type participantDTO struct {
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	IsOrganizer bool   `json:"is_organizer"`
}

type eventDTO struct {
	ID           int64            `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	Start        string           `json:"start"`
	End          string           `json:"end"`
	RoomID       *int64           `json:"room_id,omitempty"`
	RoomName     *string          `json:"room_name,omitempty"`
	Participants []participantDTO `json:"participants,omitempty"`
}

func toEventDTO(event persistence.Event) eventDTO {
	dto := eventDTO{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Start:       event.Start.UTC().Format(time.RFC3339),
		End:         event.End.UTC().Format(time.RFC3339),
		RoomID:      event.RoomID,
		RoomName:    event.RoomName,
	}
	for _, p := range event.Participants {
		dto.Participants = append(dto.Participants, participantDTO{
			UserID:      p.UserID,
			Name:        p.Name,
			Email:       p.Email,
			IsOrganizer: p.IsOrganizer,
		})
	}
	return dto
}

func toEventDTOs(events []persistence.Event) []eventDTO {
	if len(events) == 0 {
		return nil
	}
	out := make([]eventDTO, 0, len(events))
	for _, event := range events {
		out = append(out, toEventDTO(event))
	}
	return out
}

type intervalDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func toIntervalDTO(interval scheduler.Interval) intervalDTO {
	return intervalDTO{
		Start: interval.Start.UTC().Format(time.RFC3339),
		End:   interval.End.UTC().Format(time.RFC3339),
	}
}

func toIntervalDTOs(intervals []scheduler.Interval) []intervalDTO {
	if len(intervals) == 0 {
		return nil
	}
	out := make([]intervalDTO, 0, len(intervals))
	for _, interval := range intervals {
		out = append(out, toIntervalDTO(interval))
	}
	return out
}

type busyDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Title string `json:"title"`
}

type dayScheduleResponse struct {
	Date   string        `json:"date"`
	Window intervalDTO   `json:"window"`
	Busy   []busyDTO     `json:"busy"`
	Free   []intervalDTO `json:"free"`
	Events []eventDTO    `json:"events,omitempty"`
}

func toDayScheduleResponse(schedule application.DaySchedule) dayScheduleResponse {
	resp := dayScheduleResponse{
		Date:   schedule.Day.Format("2006-01-02"),
		Window: toIntervalDTO(schedule.Window),
		Free:   toIntervalDTOs(schedule.Free),
		Events: toEventDTOs(schedule.Events),
	}
	for _, b := range schedule.Busy {
		resp.Busy = append(resp.Busy, busyDTO{
			Start: b.Start.UTC().Format(time.RFC3339),
			End:   b.End.UTC().Format(time.RFC3339),
			Title: b.Title,
		})
	}
	return resp
}
