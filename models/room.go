package models

import (
	"time"
)

// Room is a landlord's listing. Rooms are immutable after creation and are
// never deleted; only the Booked flag changes, driven by the agreement
// lifecycle.
type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`

	Name    string `gorm:"column:name;type:varchar(255)" json:"name"`
	Address string `gorm:"column:address;type:varchar(255)" json:"address"`

	// Integral minor units of a single currency.
	RentPerMonth    int64 `gorm:"column:rent_per_month" json:"rent_per_month"`
	SecurityDeposit int64 `gorm:"column:security_deposit" json:"security_deposit"`

	// Landlord is the principal that listed the room.
	Landlord string `gorm:"column:landlord;size:128;index" json:"landlord"`

	// Booked is true while an active agreement references this room.
	Booked bool `gorm:"column:booked;default:false" json:"booked"`
}
