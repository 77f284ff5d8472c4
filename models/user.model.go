package models

import (
	"time"
)

// User is the profile record created after a successful signup with the
// external identity provider. The app trusts the client-supplied uid/email.
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UID   string `gorm:"unique;not null;size:128" json:"uid"`
	Name  string `gorm:"size:100" json:"name"`
	Email string `gorm:"not null;size:100;index" json:"email"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
