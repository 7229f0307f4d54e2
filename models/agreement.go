package models

import (
	"time"
)

// Agreement statuses. Transitions are one-way: an agreement leaves Active
// exactly once, to Completed or Terminated, and never comes back.
const (
	AgreementActive     = "Active"
	AgreementCompleted  = "Completed"
	AgreementTerminated = "Terminated"
)

// Deposit settlement outcomes recorded on closure.
const (
	DepositToTenant   = "tenant"
	DepositToLandlord = "landlord"
)

// Agreement is a signed, time-locked rental agreement against a room. Room
// fields are snapshotted at signing so the agreement stays a faithful record
// of what was signed. Closed agreements are retained forever.
type Agreement struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`

	RoomID      uint   `gorm:"column:room_id;index" json:"room_id"`
	RoomName    string `gorm:"column:room_name;type:varchar(255)" json:"room_name"`
	RoomAddress string `gorm:"column:room_address;type:varchar(255)" json:"room_address"`

	RentPerMonth    int64 `gorm:"column:rent_per_month" json:"rent_per_month"`
	SecurityDeposit int64 `gorm:"column:security_deposit" json:"security_deposit"`

	// LockPeriod is the binding duration in seconds, counted from SignedAt.
	LockPeriod int64 `gorm:"column:lockperiod" json:"lockperiod"`

	LandlordAddress string `gorm:"column:landlord_address;size:128;index" json:"landlord_address"`
	TenantAddress   string `gorm:"column:tenant_address;size:128;index" json:"tenant_address"`

	SignedAt      time.Time `gorm:"column:signed_at" json:"signed_at"`
	RentPaidTotal int64     `gorm:"column:rent_paid_total;default:0" json:"rent_paid_total"`

	Status string `gorm:"column:status;size:32;index" json:"status"`

	// Set on closure only.
	ClosedAt         *time.Time `gorm:"column:closed_at" json:"closed_at,omitempty"`
	DepositSettledTo string     `gorm:"column:deposit_settled_to;size:16" json:"deposit_settled_to,omitempty"`
}

// LockEnd is the instant the lock period runs out. Payments are accepted up
// to and including this instant; normal completion is allowed from it onward.
func (a Agreement) LockEnd() time.Time {
	return a.SignedAt.Add(time.Duration(a.LockPeriod) * time.Second)
}

// IsActive reports whether the agreement still accepts rent and closure.
func (a Agreement) IsActive() bool {
	return a.Status == AgreementActive
}
