package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "Campos-App/internal/domain/model"
	"Campos-App/internal/domain/repository"
	"Campos-App/model"
)

// PerfilHandler user profile HTTP endpoints.
type PerfilHandler struct {
	perfilesRepo repository.PerfilesRepository
	auth         repository.AuthProvider
}

func NewPerfilHandler(perfilesRepo repository.PerfilesRepository, auth repository.AuthProvider) *PerfilHandler {
	return &PerfilHandler{perfilesRepo: perfilesRepo, auth: auth}
}

// GetPerfil GET /api/perfil
func (h *PerfilHandler) GetPerfil(c *gin.Context) {
	userID, ok := h.auth.CurrentUserID()
	if !ok {
		respondError(c, domain.ErrNoAuthenticatedUser)
		return
	}

	perfil, err := h.perfilesRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if perfil == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "perfil not found",
		})
		return
	}

	c.JSON(http.StatusOK, model.PerfilResponse{
		ID:        perfil.ID,
		Nombre:    perfil.Nombre,
		Apellidos: perfil.Apellidos,
		IsAdmin:   perfil.IsAdmin,
	})
}

// UpdatePerfil PUT /api/perfil
func (h *PerfilHandler) UpdatePerfil(c *gin.Context) {
	userID, ok := h.auth.CurrentUserID()
	if !ok {
		respondError(c, domain.ErrNoAuthenticatedUser)
		return
	}

	var req model.UpdatePerfilRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "invalid JSON format: " + err.Error(),
		})
		return
	}

	// is_admin is never writable through this endpoint.
	existing, err := h.perfilesRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	perfil := &domain.Perfil{
		ID:        userID,
		Nombre:    req.Nombre,
		Apellidos: req.Apellidos,
	}
	if existing != nil {
		perfil.IsAdmin = existing.IsAdmin
	}

	if err := h.perfilesRepo.Upsert(c.Request.Context(), perfil); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.PerfilResponse{
		ID:        perfil.ID,
		Nombre:    perfil.Nombre,
		Apellidos: perfil.Apellidos,
		IsAdmin:   perfil.IsAdmin,
	})
}
