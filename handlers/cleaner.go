package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cleanerRepo "tidyhome/database/repository/cleaner"
	"tidyhome/models"
	"tidyhome/utils"
)

// CleanerHandler exposes staff management of the cleaner roster.
type CleanerHandler struct {
	Repo cleanerRepo.CleanerRepository
}

func NewCleanerHandler(repo cleanerRepo.CleanerRepository) *CleanerHandler {
	return &CleanerHandler{Repo: repo}
}

// CreateCleaner handles POST /api/cleaners.
func (h *CleanerHandler) CreateCleaner(c *gin.Context) {
	var cl models.Cleaner
	if err := c.ShouldBindJSON(&cl); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if cl.ID == "" {
		cl.ID = uuid.New().String()
	}
	cl.CreatedAt = time.Now()

	if err := h.Repo.Create(c.Request.Context(), &cl); err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "failed to create cleaner", err.Error())
		return
	}
	c.JSON(http.StatusCreated, cl)
}

// GetCleaner handles GET /api/cleaners/:id.
func (h *CleanerHandler) GetCleaner(c *gin.Context) {
	cl, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, cleanerRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "cleaner not found", c.Param("id"))
			return
		}
		utils.JSONError(c, http.StatusServiceUnavailable, "failed to load cleaner", err.Error())
		return
	}
	c.JSON(http.StatusOK, cl)
}

// AddTimeOff handles POST /api/cleaners/:id/time-off. Blocked dates are
// consulted by the availability index before working hours.
func (h *CleanerHandler) AddTimeOff(c *gin.Context) {
	var entry models.TimeOffEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if _, err := time.Parse("2006-01-02", entry.Date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", entry.Date)
		return
	}

	if err := h.Repo.AddTimeOff(c.Request.Context(), c.Param("id"), entry); err != nil {
		if errors.Is(err, cleanerRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "cleaner not found", c.Param("id"))
			return
		}
		utils.JSONError(c, http.StatusServiceUnavailable, "failed to add time off", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
