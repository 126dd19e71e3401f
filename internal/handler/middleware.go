package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"Campos-App/internal/domain/model"
	"Campos-App/internal/infrastructure/auth"
)

// UserHeader carries the authenticated user id, injected by the API
// gateway in front of this service.
const UserHeader = "X-User-ID"

// SessionMiddleware binds the request's user onto the session provider.
// Requests without a header fall back to the bootstrap user, if any.
func SessionMiddleware(sessions *auth.SessionProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader(UserHeader); userID != "" {
			if _, err := uuid.Parse(userID); err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"error":   "invalid_user",
					"message": "X-User-ID must be a UUID",
				})
				return
			}
			sessions.SetCurrentUser(userID)
		}
		c.Next()
	}
}

// respondError maps the core error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrNoAuthenticatedUser):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "no_authenticated_user",
			"message": "sign in before using visit or progress operations",
		})
	case errors.Is(err, model.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "permission_denied",
			"message": err.Error(),
		})
	case errors.Is(err, model.ErrTooFarAway):
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "too_far_away",
			"message": err.Error(),
		})
	case errors.Is(err, model.ErrAlreadyClaimed):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "already_claimed",
			"message": "today's reward was already claimed",
		})
	case errors.Is(err, model.ErrPositionUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "position_unavailable",
			"message": err.Error(),
		})
	case errors.Is(err, model.ErrRemoteUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "remote_unavailable",
			"message": err.Error(),
		})
	case errors.Is(err, model.ErrInvalidCoordinate):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "invalid_coordinate",
			"message": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
	}
}
