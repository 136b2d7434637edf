package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tidyhome/database"
	"tidyhome/handlers"
	"tidyhome/utils"
)

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(
	r *gin.Engine,
	bookingHandler *handlers.BookingHandler,
	catalogHandler *handlers.CatalogHandler,
	cleanerHandler *handlers.CleanerHandler,
) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, bookingHandler)
	RegisterCatalogRoutes(r, catalogHandler)
	RegisterCleanerRoutes(r, cleanerHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.HealthCheck(database.MongoClient))
	})
}

// RegisterCatalogRoutes registers service catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine, h *handlers.CatalogHandler) {
	api := r.Group("/api/services")
	{
		api.GET("", h.ListServices)
		api.GET("/:id", h.GetService)
		api.PUT("/:id", h.UpdateService)
	}
}

// RegisterCleanerRoutes registers staff roster endpoints.
func RegisterCleanerRoutes(r *gin.Engine, h *handlers.CleanerHandler) {
	api := r.Group("/api/cleaners")
	{
		api.POST("", h.CreateCleaner)
		api.GET("/:id", h.GetCleaner)
		api.POST("/:id/time-off", h.AddTimeOff)
	}
}
