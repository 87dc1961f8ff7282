package models

import "time"

type Event struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:100;not null" json:"name"`
	StartDatetime   time.Time `gorm:"not null;index:idx_events_room_window,priority:2" json:"start_datetime"`
	EndDatetime     time.Time `gorm:"not null" json:"end_datetime"`
	MaxParticipants int       `gorm:"not null" json:"max_participants"`
	MinAge          int       `gorm:"not null;default:0" json:"min_age"`
	Info            string    `json:"info,omitempty"`
	OrganizerID     uint      `gorm:"not null;index" json:"organizer_id"`
	RoomID          uint      `gorm:"not null;index:idx_events_room_window,priority:1" json:"room_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Organizer    *User  `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	Room         *Room  `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Participants []User `gorm:"many2many:event_participants" json:"participants,omitempty"`
	Tags         []Tag  `gorm:"many2many:event_tags" json:"tags,omitempty"`
}
