package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"rental-ledger/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AgreementService owns the agreement ledger and its state machine. All
// mutating operations are serialized by the service mutex and applied inside
// a transaction, so a rejection never leaves partial state and two callers
// can never both sign the same room.
//
// Lock-period expiry is evaluated lazily: the clock is read once at the
// start of each operation and there are no background transitions.
type AgreementService struct {
	DB *gorm.DB

	// Now supplies the operation clock. Defaults to time.Now; tests swap in
	// a fixed clock.
	Now func() time.Time

	mu sync.Mutex
}

func NewAgreementService(db *gorm.DB) *AgreementService {
	return &AgreementService{DB: db, Now: time.Now}
}

// Sign creates an Active agreement between the calling tenant and the
// room's landlord, snapshots the room's listing fields, and marks the room
// booked. A room with a live agreement cannot be signed again until that
// agreement closes.
func (s *AgreementService) Sign(tenant string, roomID uint, lockPeriodSeconds int64) (models.Agreement, error) {
	tenant = strings.TrimSpace(tenant)
	if tenant == "" || lockPeriodSeconds <= 0 {
		return models.Agreement{}, ErrInvalidArgument
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now().UTC()

	var agreement models.Agreement
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("failed to load room %d: %w", roomID, err)
		}
		if room.Booked {
			return ErrRoomUnavailable
		}
		if tenant == room.Landlord {
			return ErrOwnRoom
		}

		agreement = models.Agreement{
			ReferenceCode:   uuid.NewString(),
			RoomID:          room.ID,
			RoomName:        room.Name,
			RoomAddress:     room.Address,
			RentPerMonth:    room.RentPerMonth,
			SecurityDeposit: room.SecurityDeposit,
			LockPeriod:      lockPeriodSeconds,
			LandlordAddress: room.Landlord,
			TenantAddress:   tenant,
			SignedAt:        now,
			RentPaidTotal:   0,
			Status:          models.AgreementActive,
		}
		if err := tx.Create(&agreement).Error; err != nil {
			return fmt.Errorf("failed to create agreement: %w", err)
		}

		if err := tx.Model(&models.Room{}).Where("id = ?", room.ID).
			Update("booked", true).Error; err != nil {
			return fmt.Errorf("failed to mark room %d booked: %w", room.ID, err)
		}

		agreementID := agreement.ID
		return appendEvent(tx, models.EventAgreementSigned, tenant, &room.ID, &agreementID, map[string]interface{}{
			"agreement_id": agreementID,
			"room_id":      room.ID,
			"tenant":       tenant,
			"lockperiod":   lockPeriodSeconds,
		})
	})
	if err != nil {
		return models.Agreement{}, err
	}
	return agreement, nil
}

// PayRent records one full monthly rent payment by the tenant while the
// agreement is Active and the clock is still inside the lock window.
// Partial and over-payments are rejected outright. Returns the new running
// total.
func (s *AgreementService) PayRent(caller string, agreementID uint, amount int64) (int64, error) {
	caller = strings.TrimSpace(caller)
	if caller == "" || amount < 0 {
		return 0, ErrInvalidArgument
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now().UTC()

	var total int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		agreement, err := loadAgreement(tx, agreementID)
		if err != nil {
			return err
		}
		if !agreement.IsActive() {
			return ErrAgreementClosed
		}
		if caller != agreement.TenantAddress {
			return ErrNotTenant
		}
		if amount != agreement.RentPerMonth {
			return ErrWrongRentAmount
		}
		if now.After(agreement.LockEnd()) {
			return ErrLockPeriodOver
		}

		total = agreement.RentPaidTotal + amount
		if err := tx.Model(&models.Agreement{}).Where("id = ?", agreement.ID).
			Update("rent_paid_total", total).Error; err != nil {
			return fmt.Errorf("failed to record rent payment: %w", err)
		}

		// Rent accrues to the landlord; actual fund movement belongs to an
		// external payment collaborator, the ledger keeps the fact.
		return appendEvent(tx, models.EventRentPaid, caller, &agreement.RoomID, &agreement.ID, map[string]interface{}{
			"agreement_id":    agreement.ID,
			"amount":          amount,
			"rent_paid_total": total,
			"landlord":        agreement.LandlordAddress,
		})
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Complete closes an agreement normally once the lock period has run out.
// Either party may complete. The security deposit is released in full to
// the tenant.
func (s *AgreementService) Complete(caller string, agreementID uint) (models.Agreement, error) {
	return s.close(caller, agreementID, false)
}

// Terminate closes an agreement early, before the lock period runs out.
// Either party may terminate. The security deposit is forfeited in full to
// the landlord.
func (s *AgreementService) Terminate(caller string, agreementID uint) (models.Agreement, error) {
	return s.close(caller, agreementID, true)
}

// close is the single terminal transition. The lock window decides which
// closure is allowed: completion from lock end onward, termination strictly
// before it.
func (s *AgreementService) close(caller string, agreementID uint, early bool) (models.Agreement, error) {
	caller = strings.TrimSpace(caller)
	if caller == "" {
		return models.Agreement{}, ErrInvalidArgument
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now().UTC()

	var closed models.Agreement
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		agreement, err := loadAgreement(tx, agreementID)
		if err != nil {
			return err
		}
		if !agreement.IsActive() {
			return ErrAgreementClosed
		}
		if caller != agreement.TenantAddress && caller != agreement.LandlordAddress {
			return ErrNotParticipant
		}

		lockRunning := now.Before(agreement.LockEnd())
		if early && !lockRunning {
			return ErrLockPeriodOver
		}
		if !early && lockRunning {
			return ErrLockPeriodActive
		}

		status := models.AgreementCompleted
		eventType := models.EventAgreementCompleted
		settledTo := models.DepositToTenant
		beneficiary := agreement.TenantAddress
		if early {
			status = models.AgreementTerminated
			eventType = models.EventAgreementTerminated
			settledTo = models.DepositToLandlord
			beneficiary = agreement.LandlordAddress
		}

		if err := tx.Model(&models.Agreement{}).Where("id = ?", agreement.ID).
			Updates(map[string]interface{}{
				"status":             status,
				"closed_at":          now,
				"deposit_settled_to": settledTo,
			}).Error; err != nil {
			return fmt.Errorf("failed to close agreement %d: %w", agreement.ID, err)
		}

		if err := tx.Model(&models.Room{}).Where("id = ?", agreement.RoomID).
			Update("booked", false).Error; err != nil {
			return fmt.Errorf("failed to release room %d: %w", agreement.RoomID, err)
		}

		closed = agreement
		closed.Status = status
		closed.ClosedAt = &now
		closed.DepositSettledTo = settledTo

		return appendEvent(tx, eventType, caller, &agreement.RoomID, &agreement.ID, map[string]interface{}{
			"agreement_id":        agreement.ID,
			"security_deposit":    agreement.SecurityDeposit,
			"deposit_settled_to":  settledTo,
			"deposit_beneficiary": beneficiary,
		})
	})
	if err != nil {
		return models.Agreement{}, err
	}
	return closed, nil
}

// GetByID returns the agreement or ErrAgreementNotFound.
func (s *AgreementService) GetByID(id uint) (models.Agreement, error) {
	agreement, err := loadAgreement(s.DB, id)
	if err != nil {
		return models.Agreement{}, err
	}
	return agreement, nil
}

// GetAll returns every agreement, open and closed, in id order.
func (s *AgreementService) GetAll() ([]models.Agreement, error) {
	var agreements []models.Agreement
	if err := s.DB.Order("id ASC").Find(&agreements).Error; err != nil {
		return nil, fmt.Errorf("failed to list agreements: %w", err)
	}
	return agreements, nil
}

// GetByRoom returns the full agreement history of one room, newest first.
func (s *AgreementService) GetByRoom(roomID uint) ([]models.Agreement, error) {
	var agreements []models.Agreement
	if err := s.DB.Where("room_id = ?", roomID).Order("id DESC").Find(&agreements).Error; err != nil {
		return nil, fmt.Errorf("failed to list agreements for room %d: %w", roomID, err)
	}
	return agreements, nil
}

func loadAgreement(db *gorm.DB, id uint) (models.Agreement, error) {
	var agreement models.Agreement
	if err := db.First(&agreement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Agreement{}, ErrAgreementNotFound
		}
		return models.Agreement{}, fmt.Errorf("failed to load agreement %d: %w", id, err)
	}
	return agreement, nil
}
