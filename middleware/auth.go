package middleware

import (
	"net/http"
	"strings"

	"rental-ledger/services"

	"github.com/gin-gonic/gin"
)

// RequirePrincipal resolves "Authorization: Bearer <token>" to an account
// and stores the principal (the account username) in the context. The
// ledger services never read ambient identity; controllers pull it from
// here and pass it down explicitly.
func RequirePrincipal(accounts *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		token := ""
		if strings.HasPrefix(strings.ToLower(header), "bearer ") {
			token = strings.TrimSpace(header[len("bearer "):])
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "error.unauthenticated",
					"message": "a bearer token is required",
				},
			})
			return
		}

		account, err := accounts.ByToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "error.invalidToken",
					"message": "invalid or expired token",
				},
			})
			return
		}

		c.Set("principal", account.Username)
		c.Next()
	}
}
