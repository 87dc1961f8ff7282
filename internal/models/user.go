package models

import "time"

// User carries the password as an opaque string; credential handling
// belongs to an external auth service.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Firstname   string    `gorm:"size:50;not null" json:"firstname"`
	Surname     string    `gorm:"size:50;not null" json:"surname"`
	Age         int       `gorm:"not null;default:0" json:"age"`
	Email       string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password    string    `gorm:"size:255;not null" json:"-"`
	IsOrganizer bool      `gorm:"not null;default:false" json:"is_organizer"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DisplayName is the projection name: first and last name joined by a space.
func (u *User) DisplayName() string {
	return u.Firstname + " " + u.Surname
}
