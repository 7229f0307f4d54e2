package services

import "errors"

// Rejection errors returned by the ledger services. Every rejection is
// synchronous and leaves state unchanged; controllers map these to HTTP
// statuses. Wrapped DB failures are anything not matching one of these.
var (
	ErrInvalidArgument   = errors.New("invalid_argument")
	ErrRoomNotFound      = errors.New("room_not_found")
	ErrAgreementNotFound = errors.New("agreement_not_found")

	// Signing rejections.
	ErrRoomUnavailable = errors.New("room_unavailable")
	ErrOwnRoom         = errors.New("landlord_own_room")

	// Caller lacks the role the operation requires.
	ErrNotTenant      = errors.New("not_the_tenant")
	ErrNotParticipant = errors.New("not_a_participant")

	// Lifecycle rejections.
	ErrAgreementClosed  = errors.New("agreement_closed")
	ErrWrongRentAmount  = errors.New("wrong_rent_amount")
	ErrLockPeriodOver   = errors.New("lock_period_over")
	ErrLockPeriodActive = errors.New("lock_period_active")

	// Auth layer.
	ErrUsernameTaken      = errors.New("username_taken")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidToken       = errors.New("invalid_token")
)
