package controllers

import (
	"net/http"

	"rental-ledger/services"

	"github.com/gin-gonic/gin"
)

type registerPayload struct {
	FullName string `json:"full_name"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	AccountSvc *services.AccountService
}

func NewAuthController(svc *services.AccountService) *AuthController {
	return &AuthController{AccountSvc: svc}
}

// Register (POST /api/auth/register)
func (ctrl *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "error.invalidPayload",
				"message": "username and password are required",
				"details": err.Error(),
			},
		})
		return
	}

	account, err := ctrl.AccountSvc.Register(payload.FullName, payload.Username, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       account.ID,
		"username": account.Username,
	})
}

// Login (POST /api/auth/login) issues a fresh bearer token.
func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "error.invalidPayload",
				"message": "username and password are required",
				"details": err.Error(),
			},
		})
		return
	}

	account, err := ctrl.AccountSvc.Login(payload.Username, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    account.Token,
		"username": account.Username,
	})
}
