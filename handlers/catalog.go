package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogRepo "tidyhome/database/repository/catalog"
	"tidyhome/models"
	"tidyhome/services/catalog"
	"tidyhome/utils"
)

// CatalogHandler exposes the service catalog.
type CatalogHandler struct {
	Service catalog.CatalogService
}

func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{Service: svc}
}

// ListServices handles GET /api/services.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.Service.ListServices(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "failed to list services", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// GetService handles GET /api/services/:id.
func (h *CatalogHandler) GetService(c *gin.Context) {
	svc, err := h.Service.ResolveService(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "service not found", c.Param("id"))
			return
		}
		utils.JSONError(c, http.StatusServiceUnavailable, "failed to load service", err.Error())
		return
	}
	c.JSON(http.StatusOK, svc)
}

// UpdateService handles PUT /api/services/:id (staff catalog management).
// Edits only affect future bookings; existing bookings keep frozen prices.
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	svc.ID = c.Param("id")

	if err := h.Service.UpdateService(c.Request.Context(), &svc); err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "failed to update service", err.Error())
		return
	}
	c.JSON(http.StatusOK, svc)
}
