package controllers

import (
	"net/http"

	"rental-ledger/services"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type AddRoomRequest struct {
	Name            string `json:"name" binding:"required"`
	Address         string `json:"address" binding:"required"`
	RentPerMonth    int64  `json:"rent_per_month"`
	SecurityDeposit int64  `json:"security_deposit"`
}

// ---------------------------
// Controller
// ---------------------------

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

// CreateRoom (POST /api/rooms) lists a room owned by the authenticated
// principal.
func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		respondMissingPrincipal(c)
		return
	}

	var req AddRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "error.invalidPayload",
				"message": "invalid request payload",
				"details": err.Error(),
			},
		})
		return
	}

	room, err := ctrl.RoomSvc.AddRoom(principal, services.AddRoomInput{
		Name:            req.Name,
		Address:         req.Address,
		RentPerMonth:    req.RentPerMonth,
		SecurityDeposit: req.SecurityDeposit,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, room)
}

// GetRooms (GET /api/rooms)
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoomByID (GET /api/rooms/:id)
func (ctrl *RoomController) GetRoomByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	room, err := ctrl.RoomSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}
