package dto

import (
	"time"

	"course-manager/internal/service"
)

// EventRequest is used for both create and full-replace update.
type EventRequest struct {
	Name            string    `json:"name" validate:"required,max=100"`
	StartDatetime   time.Time `json:"start_datetime" validate:"required"`
	EndDatetime     time.Time `json:"end_datetime" validate:"required,gtfield=StartDatetime"`
	MaxParticipants int       `json:"max_participants" validate:"required,gte=1"`
	MinAge          int       `json:"min_age" validate:"gte=0"`
	Info            string    `json:"info"`
	OrganizerID     uint      `json:"organizer_id" validate:"required"`
	RoomID          uint      `json:"room_id" validate:"required"`
	TagIDs          []uint    `json:"tag_ids"`
}

func (r EventRequest) ToInput() service.EventInput {
	return service.EventInput{
		Name:            r.Name,
		StartDatetime:   r.StartDatetime,
		EndDatetime:     r.EndDatetime,
		MaxParticipants: r.MaxParticipants,
		MinAge:          r.MinAge,
		Info:            r.Info,
		OrganizerID:     r.OrganizerID,
		RoomID:          r.RoomID,
		TagIDs:          r.TagIDs,
	}
}

type EnrollRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}

type RoomRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Location string `json:"location" validate:"required,max=100"`
	Capacity int    `json:"capacity" validate:"required,gte=1"`
	Info     string `json:"info"`
}

type TagRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

type UserRegistrationRequest struct {
	Firstname   string `json:"firstname" validate:"required,max=50"`
	Surname     string `json:"surname" validate:"required,max=50"`
	Age         int    `json:"age" validate:"gte=0"`
	Email       string `json:"email" validate:"required,email,max=100"`
	Password    string `json:"password" validate:"required,min=8,max=255"`
	IsOrganizer bool   `json:"is_organizer"`
}

type UserUpdateRequest struct {
	Firstname   *string `json:"firstname,omitempty" validate:"omitempty,max=50"`
	Surname     *string `json:"surname,omitempty" validate:"omitempty,max=50"`
	Age         *int    `json:"age,omitempty" validate:"omitempty,gte=0"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email,max=100"`
	Password    *string `json:"password,omitempty" validate:"omitempty,min=8,max=255"`
	IsOrganizer *bool   `json:"is_organizer,omitempty"`
}

func (r UserUpdateRequest) ToInput() service.UserUpdateInput {
	return service.UserUpdateInput{
		Firstname:   r.Firstname,
		Surname:     r.Surname,
		Age:         r.Age,
		Email:       r.Email,
		Password:    r.Password,
		IsOrganizer: r.IsOrganizer,
	}
}
