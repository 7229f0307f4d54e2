package services

import (
	"encoding/json"
	"fmt"

	"rental-ledger/models"

	"gorm.io/gorm"
)

// EventService exposes the append-only event stream to observers.
type EventService struct {
	DB *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{DB: db}
}

// List returns the newest events first. limit <= 0 means no limit.
func (s *EventService) List(limit int) ([]models.LedgerEvent, error) {
	var events []models.LedgerEvent
	q := s.DB.Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// appendEvent records a state-transition fact inside the caller's
// transaction, so the fact and the mutation commit or roll back together.
func appendEvent(tx *gorm.DB, typ, actor string, roomID, agreementID *uint, payload map[string]interface{}) error {
	ev := models.LedgerEvent{
		Type:        typ,
		Actor:       actor,
		RoomID:      roomID,
		AgreementID: agreementID,
	}
	if len(payload) > 0 {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode event payload: %w", err)
		}
		ev.Payload = raw
	}
	if err := tx.Create(&ev).Error; err != nil {
		return fmt.Errorf("failed to append %s event: %w", typ, err)
	}
	return nil
}
