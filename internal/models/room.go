package models

import "time"

type Room struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Location  string    `gorm:"size:100;not null" json:"location"`
	Capacity  int       `gorm:"not null" json:"capacity"`
	Info      string    `json:"info,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
