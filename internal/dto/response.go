package dto

import (
	"sort"
	"time"

	"course-manager/internal/models"
)

// EventResponse is the projection handed to the presentation layer.
// Tag ids are sorted ascending so the projection is stable across calls.
type EventResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	StartDatetime   time.Time `json:"start_datetime"`
	EndDatetime     time.Time `json:"end_datetime"`
	MaxParticipants int       `json:"max_participants"`
	MinAge          int       `json:"min_age"`
	Info            string    `json:"info,omitempty"`
	OrganizerID     uint      `json:"organizer_id"`
	OrganizerName   string    `json:"organizer_name"`
	RoomID          uint      `json:"room_id"`
	RoomName        string    `json:"room_name"`
	TagIDs          []uint    `json:"tag_ids"`
}

type RoomResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
	Info     string `json:"info,omitempty"`
}

type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type UserResponse struct {
	ID          uint   `json:"id"`
	Firstname   string `json:"firstname"`
	Surname     string `json:"surname"`
	Age         int    `json:"age"`
	Email       string `json:"email"`
	IsOrganizer bool   `json:"is_organizer"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToEventResponse(e *models.Event) EventResponse {
	resp := EventResponse{
		ID:              e.ID,
		Name:            e.Name,
		StartDatetime:   e.StartDatetime,
		EndDatetime:     e.EndDatetime,
		MaxParticipants: e.MaxParticipants,
		MinAge:          e.MinAge,
		Info:            e.Info,
		OrganizerID:     e.OrganizerID,
		RoomID:          e.RoomID,
		TagIDs:          make([]uint, 0, len(e.Tags)),
	}
	if e.Organizer != nil {
		resp.OrganizerName = e.Organizer.DisplayName()
	}
	if e.Room != nil {
		resp.RoomName = e.Room.Name
	}
	for _, tag := range e.Tags {
		resp.TagIDs = append(resp.TagIDs, tag.ID)
	}
	sort.Slice(resp.TagIDs, func(i, j int) bool { return resp.TagIDs[i] < resp.TagIDs[j] })
	return resp
}

func ToEventResponses(events []models.Event) []EventResponse {
	resp := make([]EventResponse, len(events))
	for i := range events {
		resp[i] = ToEventResponse(&events[i])
	}
	return resp
}

func ToRoomResponse(r *models.Room) RoomResponse {
	return RoomResponse{
		ID:       r.ID,
		Name:     r.Name,
		Location: r.Location,
		Capacity: r.Capacity,
		Info:     r.Info,
	}
}

func ToTagResponse(t *models.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name}
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Firstname:   u.Firstname,
		Surname:     u.Surname,
		Age:         u.Age,
		Email:       u.Email,
		IsOrganizer: u.IsOrganizer,
	}
}
