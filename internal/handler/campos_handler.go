package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Campos-App/internal/application"
	"Campos-App/model"
)

// CamposHandler catalog HTTP endpoints.
type CamposHandler struct {
	camposService application.CamposService
}

func NewCamposHandler(camposService application.CamposService) *CamposHandler {
	return &CamposHandler{camposService: camposService}
}

// GetCampos GET /api/campos?refresh=true
func (h *CamposHandler) GetCampos(c *gin.Context) {
	forceRefresh := c.Query("refresh") == "true"

	campos, err := h.camposService.FetchCampos(c.Request.Context(), forceRefresh)
	if err != nil {
		// A stale catalog alongside the error means the cache saved us.
		if len(campos) > 0 {
			c.JSON(http.StatusOK, model.CamposListResponse{
				Campos: campos,
				Count:  len(campos),
				Stale:  true,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.CamposListResponse{Campos: campos, Count: len(campos)})
}

// GetCampoByID GET /api/campos/:id
func (h *CamposHandler) GetCampoByID(c *gin.Context) {
	campo, err := h.camposService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if campo == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "campo not found",
		})
		return
	}

	c.JSON(http.StatusOK, campo)
}

// GetContribuciones GET /api/campos/:id/contribuciones?refresh=true
func (h *CamposHandler) GetContribuciones(c *gin.Context) {
	forceRefresh := c.Query("refresh") == "true"

	contribuciones, err := h.camposService.LoadExtras(c.Request.Context(), c.Param("id"), forceRefresh)
	if err != nil {
		if len(contribuciones) > 0 {
			c.JSON(http.StatusOK, model.ContribucionesResponse{
				Contribuciones: contribuciones,
				Stale:          true,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.ContribucionesResponse{Contribuciones: contribuciones})
}

// UpdateCampo PUT /api/campos/:id
func (h *CamposHandler) UpdateCampo(c *gin.Context) {
	var req model.UpdateCampoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "invalid JSON format: " + err.Error(),
		})
		return
	}

	if err := h.camposService.UpdateCampo(c.Request.Context(), c.Param("id"), req.ToUpdate()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
