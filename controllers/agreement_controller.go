package controllers

import (
	"net/http"

	"rental-ledger/services"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type SignAgreementRequest struct {
	RoomID uint `json:"room_id" binding:"required"`
	// Binding duration in seconds, starting at signing.
	LockPeriod int64 `json:"lockperiod" binding:"required"`
}

type PayRentRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

// ---------------------------
// Controller
// ---------------------------

type AgreementController struct {
	AgreementSvc *services.AgreementService
}

func NewAgreementController(svc *services.AgreementService) *AgreementController {
	return &AgreementController{AgreementSvc: svc}
}

// SignAgreement (POST /api/agreements) — the authenticated principal becomes
// the tenant.
func (ctrl *AgreementController) SignAgreement(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		respondMissingPrincipal(c)
		return
	}

	var req SignAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "error.invalidPayload",
				"message": "invalid request payload: room_id and lockperiod are required",
				"details": err.Error(),
			},
		})
		return
	}

	agreement, err := ctrl.AgreementSvc.Sign(principal, req.RoomID, req.LockPeriod)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, agreement)
}

// GetAgreements (GET /api/agreements)
func (ctrl *AgreementController) GetAgreements(c *gin.Context) {
	agreements, err := ctrl.AgreementSvc.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, agreements)
}

// GetAgreementByID (GET /api/agreements/:id)
func (ctrl *AgreementController) GetAgreementByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	agreement, err := ctrl.AgreementSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, agreement)
}

// GetRoomAgreements (GET /api/rooms/:id/agreements) — full history, newest
// first.
func (ctrl *AgreementController) GetRoomAgreements(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	agreements, err := ctrl.AgreementSvc.GetByRoom(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, agreements)
}

// PayRent (POST /api/agreements/:id/rent)
func (ctrl *AgreementController) PayRent(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		respondMissingPrincipal(c)
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req PayRentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "error.invalidPayload",
				"message": "invalid request payload: amount is required",
				"details": err.Error(),
			},
		})
		return
	}

	total, err := ctrl.AgreementSvc.PayRent(principal, id, req.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"agreement_id":    id,
		"amount":          req.Amount,
		"rent_paid_total": total,
	})
}

// CompleteAgreement (POST /api/agreements/:id/complete) — normal end-of-term
// closure, deposit released to the tenant.
func (ctrl *AgreementController) CompleteAgreement(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		respondMissingPrincipal(c)
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	agreement, err := ctrl.AgreementSvc.Complete(principal, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, agreement)
}

// TerminateAgreement (POST /api/agreements/:id/terminate) — early exit,
// deposit forfeited to the landlord.
func (ctrl *AgreementController) TerminateAgreement(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		respondMissingPrincipal(c)
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	agreement, err := ctrl.AgreementSvc.Terminate(principal, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, agreement)
}
