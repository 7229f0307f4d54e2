package models

import (
	"time"
)

// Account is an authenticated principal (landlord or tenant). The ledger
// core only ever sees the Username string; everything else exists for the
// auth layer.
type Account struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	FullName string `gorm:"column:full_name;size:255" json:"full_name"`
	Username string `gorm:"column:username;size:128;uniqueIndex" json:"username"`

	// bcrypt hash, never serialized.
	Password string `gorm:"column:password;size:255" json:"-"`

	// Opaque API token issued at login.
	Token string `gorm:"column:token;size:128;index" json:"-"`
}
