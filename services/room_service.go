package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"rental-ledger/models"

	"gorm.io/gorm"
)

// RoomService owns the room registry: listing rooms and looking them up.
// Rooms are append-only; ids come from the autoincrement column and are
// never reused.
type RoomService struct {
	DB *gorm.DB

	mu sync.Mutex
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// AddRoomInput carries the listing fields supplied by the landlord.
type AddRoomInput struct {
	Name            string
	Address         string
	RentPerMonth    int64
	SecurityDeposit int64
}

// AddRoom lists a new room owned by the calling landlord and records the
// RoomAdded fact. Validation happens before any write; a rejected call
// leaves the registry untouched.
func (s *RoomService) AddRoom(landlord string, in AddRoomInput) (models.Room, error) {
	landlord = strings.TrimSpace(landlord)
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)

	if landlord == "" || in.Name == "" || in.Address == "" {
		return models.Room{}, ErrInvalidArgument
	}
	if in.RentPerMonth < 0 || in.SecurityDeposit < 0 {
		return models.Room{}, ErrInvalidArgument
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	room := models.Room{
		Name:            in.Name,
		Address:         in.Address,
		RentPerMonth:    in.RentPerMonth,
		SecurityDeposit: in.SecurityDeposit,
		Landlord:        landlord,
		Booked:          false,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			return fmt.Errorf("failed to create room: %w", err)
		}
		roomID := room.ID
		return appendEvent(tx, models.EventRoomAdded, landlord, &roomID, nil, map[string]interface{}{
			"room_id":  roomID,
			"landlord": landlord,
		})
	})
	if err != nil {
		return models.Room{}, err
	}
	return room, nil
}

// GetByID returns the room or ErrRoomNotFound.
func (s *RoomService) GetByID(id uint) (models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, ErrRoomNotFound
		}
		return models.Room{}, fmt.Errorf("failed to load room %d: %w", id, err)
	}
	return room, nil
}

// GetAll returns every listed room in id order.
func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}
