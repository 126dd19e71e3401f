package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Campos-App/internal/application"
	domain "Campos-App/internal/domain/model"
	"Campos-App/model"
)

// VisitasHandler visit ledger HTTP endpoints.
type VisitasHandler struct {
	camposService application.CamposService
	visitsService application.VisitsService
}

func NewVisitasHandler(camposService application.CamposService, visitsService application.VisitsService) *VisitasHandler {
	return &VisitasHandler{
		camposService: camposService,
		visitsService: visitsService,
	}
}

// MarkVisit POST /api/campos/:id/visita
//
// With a position in the body the proximity rule is enforced against it;
// without one a one-shot fix is requested first.
func (h *VisitasHandler) MarkVisit(c *gin.Context) {
	campo, ok := h.loadCampo(c)
	if !ok {
		return
	}

	var req model.MarkVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "invalid JSON format: " + err.Error(),
		})
		return
	}

	var err error
	if req.Lat != nil && req.Lng != nil {
		position := domain.Position{
			LatLng: domain.LatLng{Lat: *req.Lat, Lng: *req.Lng},
		}
		if req.AccuracyMeters != nil {
			position.AccuracyMeters = *req.AccuracyMeters
		}
		err = h.visitsService.MarkVisitedWithPosition(c.Request.Context(), campo, position)
	} else {
		err = h.visitsService.MarkVisitWithProximityCheck(c.Request.Context(), campo)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.VisitResponse{Status: "visited"})
}

// UnmarkVisit DELETE /api/campos/:id/visita
func (h *VisitasHandler) UnmarkVisit(c *gin.Context) {
	if err := h.visitsService.UnmarkVisited(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.VisitResponse{Status: "unvisited"})
}

// GetVisitStatus GET /api/campos/:id/visita
func (h *VisitasHandler) GetVisitStatus(c *gin.Context) {
	visited, err := h.visitsService.IsVisited(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.VisitStatusResponse{Visited: visited})
}

func (h *VisitasHandler) loadCampo(c *gin.Context) (*domain.Campo, bool) {
	campo, err := h.camposService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if campo == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "campo not found",
		})
		return nil, false
	}
	return campo, true
}
