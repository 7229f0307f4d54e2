package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rental-ledger/controllers"
	"rental-ledger/models"
	"rental-ledger/routes"
	"rental-ledger/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(
		&models.Account{},
		&models.Room{},
		&models.Agreement{},
		&models.LedgerEvent{},
	))

	accountService := services.NewAccountService(db)
	roomService := services.NewRoomService(db)
	agreementService := services.NewAgreementService(db)
	eventService := services.NewEventService(db)

	return routes.SetupRouter(
		controllers.NewAuthController(accountService),
		controllers.NewRoomController(roomService),
		controllers.NewAgreementController(agreementService),
		controllers.NewEventController(eventService),
		accountService,
	)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	out := map[string]interface{}{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w, out
}

func registerAndLogin(t *testing.T, r *gin.Engine, username string) string {
	w, _ := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"full_name": username, "username": username, "password": "secret123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w, out := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username, "password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	token, _ := out["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)
	w, out := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", out["status"])
}

func TestLedgerEndToEnd(t *testing.T) {
	r := setupRouter(t)

	ownerToken := registerAndLogin(t, r, "owner")
	tenantToken := registerAndLogin(t, r, "tenant")

	// mutating operations require a bearer token
	w, _ := doJSON(t, r, http.MethodPost, "/api/rooms", "", gin.H{
		"name": "Room 101", "address": "Address 123", "rent_per_month": 100, "security_deposit": 200,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// landlord lists a room
	w, room := doJSON(t, r, http.MethodPost, "/api/rooms", ownerToken, gin.H{
		"name": "Room 101", "address": "Address 123", "rent_per_month": 100, "security_deposit": 200,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(1), room["id"])
	assert.Equal(t, "owner", room["landlord"])

	// the landlord cannot rent their own room
	w, _ = doJSON(t, r, http.MethodPost, "/api/agreements", ownerToken, gin.H{
		"room_id": 1, "lockperiod": 86400,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// tenant signs
	w, agreement := doJSON(t, r, http.MethodPost, "/api/agreements", tenantToken, gin.H{
		"room_id": 1, "lockperiod": 86400,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(1), agreement["id"])
	assert.Equal(t, "Room 101", agreement["room_name"])
	assert.Equal(t, float64(100), agreement["rent_per_month"])
	assert.Equal(t, float64(200), agreement["security_deposit"])
	assert.Equal(t, float64(86400), agreement["lockperiod"])
	assert.Equal(t, "owner", agreement["landlord_address"])
	assert.Equal(t, "tenant", agreement["tenant_address"])
	assert.Equal(t, models.AgreementActive, agreement["status"])

	// the room now shows booked and cannot be signed again
	w, roomOut := doJSON(t, r, http.MethodGet, "/api/rooms/1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, roomOut["booked"])

	w, _ = doJSON(t, r, http.MethodPost, "/api/agreements", tenantToken, gin.H{
		"room_id": 1, "lockperiod": 86400,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// partial rent is rejected, exact rent accepted
	w, _ = doJSON(t, r, http.MethodPost, "/api/agreements/1/rent", tenantToken, gin.H{"amount": 50})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, payment := doJSON(t, r, http.MethodPost, "/api/agreements/1/rent", tenantToken, gin.H{"amount": 100})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(100), payment["rent_paid_total"])

	// only the tenant pays
	w, _ = doJSON(t, r, http.MethodPost, "/api/agreements/1/rent", ownerToken, gin.H{"amount": 100})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// completion before the lock period ends is rejected
	w, _ = doJSON(t, r, http.MethodPost, "/api/agreements/1/complete", tenantToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// early termination forfeits the deposit to the landlord
	w, closed := doJSON(t, r, http.MethodPost, "/api/agreements/1/terminate", tenantToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.AgreementTerminated, closed["status"])
	assert.Equal(t, models.DepositToLandlord, closed["deposit_settled_to"])

	w, roomOut = doJSON(t, r, http.MethodGet, "/api/rooms/1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, roomOut["booked"])

	// anything further on the closed agreement is rejected
	w, _ = doJSON(t, r, http.MethodPost, "/api/agreements/1/rent", tenantToken, gin.H{"amount": 100})
	assert.Equal(t, http.StatusConflict, w.Code)

	// history and events are readable without auth
	w, _ = doJSON(t, r, http.MethodGet, "/api/rooms/1/agreements", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, events := doJSON(t, r, http.MethodGet, "/api/events", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, events["success"])
	facts, _ := events["data"].([]interface{})
	assert.Len(t, facts, 4) // RoomAdded, AgreementSigned, RentPaid, AgreementTerminated
}

func TestUnknownIDsReturnNotFound(t *testing.T) {
	r := setupRouter(t)
	token := registerAndLogin(t, r, "tenant")

	w, _ := doJSON(t, r, http.MethodGet, "/api/rooms/9", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/agreements/9", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/agreements", token, gin.H{
		"room_id": 9, "lockperiod": 86400,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
