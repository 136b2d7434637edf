package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tidyhome/models"
	"tidyhome/services/booking"
	"tidyhome/utils"
)

// BookingHandler exposes the booking core over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ReassignCleaner handles PUT /api/bookings/:id/reassign.
func (h *BookingHandler) ReassignCleaner(c *gin.Context) {
	var req struct {
		CleanerID string `json:"cleanerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Service.ReassignCleaner(c.Request.Context(), c.Param("id"), req.CleanerID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBooking handles PUT /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	b, err := h.Service.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// StartBooking handles PUT /api/bookings/:id/start.
func (h *BookingHandler) StartBooking(c *gin.Context) {
	b, err := h.Service.StartBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CompleteBooking handles PUT /api/bookings/:id/complete.
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	b, err := h.Service.CompleteBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetAvailability handles GET /api/availability?date=YYYY-MM-DD&durationHours=N.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	durationHours, err := strconv.Atoi(c.DefaultQuery("durationHours", "2"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid durationHours", err.Error())
		return
	}

	slots, err := h.Service.GetAvailability(c.Request.Context(), date, durationHours)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// writeServiceError maps the core's error taxonomy onto HTTP statuses.
func (h *BookingHandler) writeServiceError(c *gin.Context, err error) {
	var (
		validationErr  *booking.ValidationError
		conflictErr    *booking.ConflictError
		notFoundErr    *booking.NotFoundError
		persistenceErr *booking.PersistenceError
	)
	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, "validation failed", validationErr.Error())
	case errors.As(err, &conflictErr):
		utils.JSONError(c, http.StatusConflict, "slot conflict", conflictErr.Error())
	case errors.As(err, &notFoundErr):
		utils.JSONError(c, http.StatusNotFound, "not found", notFoundErr.Error())
	case errors.As(err, &persistenceErr):
		h.Logger.Error("storage failure", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "storage unavailable", "please retry later")
	default:
		h.Logger.Error("unexpected error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "")
	}
}
