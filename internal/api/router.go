package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/flighttrack-backend-go/internal/handler"
	"github.com/jengzang/flighttrack-backend-go/internal/middleware"
)

// SetupRouter builds the HTTP router around the flights handler.
func SetupRouter(flights *handler.FlightsHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Flight Tracker API is running",
		})
	})

	api := r.Group("/api/v1")
	// The flights endpoint fans out to rate-limited upstreams; keep
	// clients from hammering it.
	api.Use(middleware.RateLimit(30, time.Minute))
	{
		api.GET("/flights", flights.GetFlights)
	}

	return r
}
