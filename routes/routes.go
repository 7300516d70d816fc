package routes

import (
	"net/http"
	"time"

	"tripplanner/handlers"
	"tripplanner/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the credential endpoints.
func RegisterAuthRoutes(r *gin.Engine, ah *handlers.AuthHandler) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", ah.LoginHandler)
		api.POST("/signup", ah.SignupHandler)
	}
}

// RegisterTripRoutes registers the trip-planning endpoints. Everything here
// requires a bearer token.
func RegisterTripRoutes(r *gin.Engine, th *handlers.TripHandler) {
	api := r.Group("/api/trips")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("/submit", th.SubmitTripHandler)
		api.GET("/status/:requestId", th.TripStatusHandler)
		api.GET("/history", th.TripHistoryHandler)
		api.POST("/find", th.FindUserTripHandler)
	}
}

// RegisterRoutes assembles the full route table with CORS for browser
// clients and a health endpoint.
func RegisterRoutes(r *gin.Engine, ah *handlers.AuthHandler, th *handlers.TripHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	RegisterAuthRoutes(r, ah)
	RegisterTripRoutes(r, th)
}
