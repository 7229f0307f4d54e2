package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rental-ledger/controllers"
	"rental-ledger/middleware"
	"rental-ledger/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers onto the gin engine. Mutating ledger
// operations sit behind the principal middleware; reads are open.
func SetupRouter(
	ac *controllers.AuthController,
	rc *controllers.RoomController,
	agc *controllers.AgreementController,
	ec *controllers.EventController,
	accounts *services.AccountService,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRequired := middleware.RequirePrincipal(accounts)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", ac.Register)
			auth.POST("/login", ac.Login)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.GET("/:id", rc.GetRoomByID)
			rooms.GET("/:id/agreements", agc.GetRoomAgreements)
			rooms.POST("", authRequired, rc.CreateRoom)
		}

		agreements := api.Group("/agreements")
		{
			agreements.GET("", agc.GetAgreements)
			agreements.GET("/:id", agc.GetAgreementByID)
			agreements.POST("", authRequired, agc.SignAgreement)
			agreements.POST("/:id/rent", authRequired, agc.PayRent)
			agreements.POST("/:id/complete", authRequired, agc.CompleteAgreement)
			agreements.POST("/:id/terminate", authRequired, agc.TerminateAgreement)
		}

		api.GET("/events", ec.GetEvents)
	}

	return r
}
