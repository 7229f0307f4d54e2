package services_test

import (
	"testing"
	"time"

	"rental-ledger/models"
	"rental-ledger/services"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	err = db.AutoMigrate(
		&models.Account{},
		&models.Room{},
		&models.Agreement{},
		&models.LedgerEvent{},
	)
	assert.NoError(t, err)
	return db
}

// fakeClock pins the operation clock so lock-window behavior is exact.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestAddRoomAssignsSequentialIDs(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewRoomService(db)

	first, err := svc.AddRoom("owner", services.AddRoomInput{
		Name: "Room 101", Address: "Address 123", RentPerMonth: 100, SecurityDeposit: 200,
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, "owner", first.Landlord)
	assert.False(t, first.Booked)

	second, err := svc.AddRoom("owner", services.AddRoomInput{
		Name: "Room 102", Address: "Address 123", RentPerMonth: 150, SecurityDeposit: 300,
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(2), second.ID)

	third, err := svc.AddRoom("someone-else", services.AddRoomInput{
		Name: "Room 201", Address: "Address 456", RentPerMonth: 0, SecurityDeposit: 0,
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(3), third.ID)
	assert.Equal(t, "someone-else", third.Landlord)
}

func TestAddRoomRejectsBadInput(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewRoomService(db)

	cases := []struct {
		name     string
		landlord string
		in       services.AddRoomInput
	}{
		{"empty name", "owner", services.AddRoomInput{Name: "", Address: "Address 123", RentPerMonth: 100, SecurityDeposit: 200}},
		{"empty address", "owner", services.AddRoomInput{Name: "Room 101", Address: "   ", RentPerMonth: 100, SecurityDeposit: 200}},
		{"empty landlord", "", services.AddRoomInput{Name: "Room 101", Address: "Address 123", RentPerMonth: 100, SecurityDeposit: 200}},
		{"negative rent", "owner", services.AddRoomInput{Name: "Room 101", Address: "Address 123", RentPerMonth: -1, SecurityDeposit: 200}},
		{"negative deposit", "owner", services.AddRoomInput{Name: "Room 101", Address: "Address 123", RentPerMonth: 100, SecurityDeposit: -5}},
	}

	for _, tc := range cases {
		_, err := svc.AddRoom(tc.landlord, tc.in)
		assert.ErrorIs(t, err, services.ErrInvalidArgument, tc.name)
	}

	// rejected calls leave the registry untouched
	var count int64
	assert.NoError(t, db.Model(&models.Room{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestAddRoomEmitsRoomAdded(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewRoomService(db)

	room, err := svc.AddRoom("owner", services.AddRoomInput{
		Name: "Room 101", Address: "Address 123", RentPerMonth: 100, SecurityDeposit: 200,
	})
	assert.NoError(t, err)

	var events []models.LedgerEvent
	assert.NoError(t, db.Find(&events).Error)
	assert.Len(t, events, 1)
	assert.Equal(t, models.EventRoomAdded, events[0].Type)
	assert.Equal(t, "owner", events[0].Actor)
	assert.NotNil(t, events[0].RoomID)
	assert.Equal(t, room.ID, *events[0].RoomID)
	assert.Nil(t, events[0].AgreementID)
}

func TestGetRoomNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewRoomService(db)

	_, err := svc.GetByID(42)
	assert.ErrorIs(t, err, services.ErrRoomNotFound)
}
