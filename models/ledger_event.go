package models

import (
	"time"

	"gorm.io/datatypes"
)

// Ledger event types, one per state transition the core performs.
const (
	EventRoomAdded           = "RoomAdded"
	EventAgreementSigned     = "AgreementSigned"
	EventRentPaid            = "RentPaid"
	EventAgreementCompleted  = "AgreementCompleted"
	EventAgreementTerminated = "AgreementTerminated"
)

// LedgerEvent is an append-only fact recorded in the same transaction as the
// state change it describes. Downstream observers read these; the core never
// updates or deletes them.
type LedgerEvent struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`

	Type string `gorm:"column:type;size:64;index" json:"type"`

	RoomID      *uint `gorm:"column:room_id;index" json:"room_id,omitempty"`
	AgreementID *uint `gorm:"column:agreement_id;index" json:"agreement_id,omitempty"`

	// Actor is the principal whose operation produced the event.
	Actor string `gorm:"column:actor;size:128" json:"actor"`

	// Payload carries the remaining fields of the fact (amounts, totals,
	// settlement beneficiary) as JSON.
	Payload datatypes.JSON `gorm:"column:payload" json:"payload,omitempty"`
}
