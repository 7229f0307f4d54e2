package controllers

import (
	"net/http"
	"strconv"

	"rental-ledger/services"
	"rental-ledger/utils"

	"github.com/gin-gonic/gin"
)

type EventController struct {
	EventSvc *services.EventService
}

func NewEventController(svc *services.EventService) *EventController {
	return &EventController{EventSvc: svc}
}

// GetEvents (GET /api/events?limit=N) — the observer surface over the
// append-only event stream, newest first.
func (ctrl *EventController) GetEvents(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.JSONError(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	events, err := ctrl.EventSvc.List(limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, events)
}
