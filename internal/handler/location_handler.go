package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Campos-App/internal/application"
	domain "Campos-App/internal/domain/model"
	"Campos-App/internal/infrastructure/location"
	"Campos-App/model"
)

// LocationHandler platform glue over HTTP: feeds fixes into the region
// monitor and toggles the automatic check-in engine.
type LocationHandler struct {
	monitor       *location.Monitor
	geofence      *application.GeofenceService
	camposService application.CamposService
}

func NewLocationHandler(
	monitor *location.Monitor,
	geofence *application.GeofenceService,
	camposService application.CamposService,
) *LocationHandler {
	return &LocationHandler{
		monitor:       monitor,
		geofence:      geofence,
		camposService: camposService,
	}
}

// UpdatePosition POST /api/location
func (h *LocationHandler) UpdatePosition(c *gin.Context) {
	var req model.PositionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "invalid JSON format: " + err.Error(),
		})
		return
	}

	fix := domain.Position{
		LatLng:         domain.LatLng{Lat: req.Lat, Lng: req.Lng},
		AccuracyMeters: req.AccuracyMeters,
	}
	if !fix.LatLng.Valid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "invalid_coordinate",
			"message": "lat/lng out of range",
		})
		return
	}

	h.monitor.UpdatePosition(fix)
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// SetAutoCheckin POST /api/geofence
func (h *LocationHandler) SetAutoCheckin(c *gin.Context) {
	var req model.AutoCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "invalid JSON format: " + err.Error(),
		})
		return
	}

	var campos []domain.Campo
	if req.Enabled {
		var err error
		campos, err = h.camposService.FetchCampos(c.Request.Context(), false)
		if err != nil && len(campos) == 0 {
			respondError(c, err)
			return
		}
	}

	h.geofence.SetAutoCheckin(c.Request.Context(), req.Enabled, campos)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "enabled": req.Enabled})
}
