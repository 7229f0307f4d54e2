package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"rental-ledger/services"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Helper: principal from context (set by middleware.RequirePrincipal)
// ---------------------------

func currentPrincipal(c *gin.Context) (string, bool) {
	v, ok := c.Get("principal")
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

func respondMissingPrincipal(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "error.unauthenticated",
			"message": "a valid bearer token is required",
		},
	})
}

// ---------------------------
// Helper: numeric :id param
// ---------------------------

func parseIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "error.invalidId",
				"message": "id must be a positive integer",
			},
		})
		return 0, false
	}
	return uint(id), true
}

// ---------------------------
// Helper: map service rejections to HTTP statuses
// ---------------------------

type rejection struct {
	status  int
	code    string
	message string
}

var rejections = []struct {
	err error
	rejection
}{
	{services.ErrInvalidArgument, rejection{http.StatusBadRequest, "error.invalidArgument", "invalid or missing input"}},
	{services.ErrRoomNotFound, rejection{http.StatusNotFound, "error.roomNotFound", "room not found"}},
	{services.ErrAgreementNotFound, rejection{http.StatusNotFound, "error.agreementNotFound", "agreement not found"}},
	{services.ErrRoomUnavailable, rejection{http.StatusConflict, "error.roomUnavailable", "room already has an active agreement"}},
	{services.ErrOwnRoom, rejection{http.StatusUnprocessableEntity, "error.ownRoom", "a landlord cannot rent their own room"}},
	{services.ErrNotTenant, rejection{http.StatusForbidden, "error.notTenant", "only the tenant can pay rent"}},
	{services.ErrNotParticipant, rejection{http.StatusForbidden, "error.notParticipant", "only the tenant or the landlord can close the agreement"}},
	{services.ErrAgreementClosed, rejection{http.StatusConflict, "error.agreementClosed", "agreement is no longer active"}},
	{services.ErrWrongRentAmount, rejection{http.StatusUnprocessableEntity, "error.wrongRentAmount", "payment must equal the monthly rent exactly"}},
	{services.ErrLockPeriodOver, rejection{http.StatusGone, "error.lockPeriodOver", "the lock period has ended"}},
	{services.ErrLockPeriodActive, rejection{http.StatusConflict, "error.lockPeriodActive", "the lock period has not ended yet"}},
	{services.ErrUsernameTaken, rejection{http.StatusConflict, "error.usernameTaken", "username already exists"}},
	{services.ErrInvalidCredentials, rejection{http.StatusUnauthorized, "error.invalidCredentials", "invalid credentials"}},
	{services.ErrInvalidToken, rejection{http.StatusUnauthorized, "error.invalidToken", "invalid or expired token"}},
}

func respondServiceError(c *gin.Context, err error) {
	for _, r := range rejections {
		if errors.Is(err, r.err) {
			c.JSON(r.status, gin.H{
				"error": gin.H{"code": r.code, "message": r.message},
			})
			return
		}
	}

	log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{"code": "error.internal", "message": "internal error"},
	})
}
