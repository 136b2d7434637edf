package routes

import (
	"github.com/gin-gonic/gin"

	"tidyhome/handlers"
)

// RegisterBookingRoutes registers all endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	booking := r.Group("/api/bookings")
	{
		booking.POST("", h.CreateBooking)
		booking.GET("/:id", h.GetBooking)
		booking.PUT("/:id/reassign", h.ReassignCleaner)
		booking.PUT("/:id/cancel", h.CancelBooking)
		booking.PUT("/:id/start", h.StartBooking)
		booking.PUT("/:id/complete", h.CompleteBooking)
	}

	r.GET("/api/availability", h.GetAvailability)
}
