package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Campos-App/internal/application"
	domain "Campos-App/internal/domain/model"
	"Campos-App/internal/domain/repository"
	"Campos-App/internal/usecase"
	"Campos-App/model"
)

// ProgressHandler derived progress and the daily reward.
type ProgressHandler struct {
	progress usecase.ProgressUsecase
	store    *application.ProgressStore
	auth     repository.AuthProvider
}

func NewProgressHandler(progress usecase.ProgressUsecase, store *application.ProgressStore, auth repository.AuthProvider) *ProgressHandler {
	return &ProgressHandler{progress: progress, store: store, auth: auth}
}

// GetProgress GET /api/progress
//
// Always recomputes from the ledger; the response is the fresh snapshot.
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID, ok := h.auth.CurrentUserID()
	if !ok {
		respondError(c, domain.ErrNoAuthenticatedUser)
		return
	}

	snapshot, err := h.progress.Recompute(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewProgressResponse(snapshot))
}

// Recompute POST /api/progress/recompute
//
// Same work as GetProgress under an explicit refresh verb, for platform
// glue that re-derives progress after background ledger changes.
func (h *ProgressHandler) Recompute(c *gin.Context) {
	h.GetProgress(c)
}

// GetLatestProgress GET /api/progress/latest
//
// Serves the last published snapshot without touching the remote store.
// 204 until the first recompute of this process.
func (h *ProgressHandler) GetLatestProgress(c *gin.Context) {
	latest := h.store.Latest()
	if latest == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, model.ProgressResponse{
		Level:               latest.Level,
		CurrentXP:           latest.XP,
		XPToNextLevel:       latest.XPToNextLevel,
		CamposVisitados:     latest.CamposVisitados,
		ProvinciasVisitadas: latest.ProvinciasVisitadas,
		DiasConsecutivos:    latest.DiasConsecutivos,
		DailyXP:             latest.DailyXP,
		HasClaimedToday:     latest.HasClaimedToday,
	})
}

// ClaimDailyReward POST /api/progress/daily-reward
func (h *ProgressHandler) ClaimDailyReward(c *gin.Context) {
	userID, ok := h.auth.CurrentUserID()
	if !ok {
		respondError(c, domain.ErrNoAuthenticatedUser)
		return
	}

	snapshot, err := h.progress.ClaimDailyReward(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.NewProgressResponse(snapshot))
}
