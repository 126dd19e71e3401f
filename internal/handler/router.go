package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Campos-App/internal/infrastructure/auth"
)

// Handlers everything the router mounts.
type Handlers struct {
	Campos   *CamposHandler
	Visitas  *VisitasHandler
	Progress *ProgressHandler
	Perfil   *PerfilHandler
	Location *LocationHandler
}

// NewRouter wires the HTTP surface.
func NewRouter(h Handlers, sessions *auth.SessionProvider) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "Campos-App"})
	})

	api := router.Group("/api")
	api.Use(SessionMiddleware(sessions))
	{
		api.GET("/campos", h.Campos.GetCampos)
		api.GET("/campos/:id", h.Campos.GetCampoByID)
		api.PUT("/campos/:id", h.Campos.UpdateCampo)
		api.GET("/campos/:id/contribuciones", h.Campos.GetContribuciones)

		api.GET("/campos/:id/visita", h.Visitas.GetVisitStatus)
		api.POST("/campos/:id/visita", h.Visitas.MarkVisit)
		api.DELETE("/campos/:id/visita", h.Visitas.UnmarkVisit)

		api.GET("/progress", h.Progress.GetProgress)
		api.GET("/progress/latest", h.Progress.GetLatestProgress)
		api.POST("/progress/recompute", h.Progress.Recompute)
		api.POST("/progress/daily-reward", h.Progress.ClaimDailyReward)

		api.GET("/perfil", h.Perfil.GetPerfil)
		api.PUT("/perfil", h.Perfil.UpdatePerfil)

		api.POST("/location", h.Location.UpdatePosition)
		api.POST("/geofence", h.Location.SetAutoCheckin)
	}

	return router
}
