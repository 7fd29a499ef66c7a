package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmreg/internal/domain/models"
)

// respondError maps the domain error taxonomy onto HTTP responses. The
// failed action is named so the client can surface a meaningful
// notification.
func respondError(c *gin.Context, logger *zap.Logger, action string, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  action + " blocked by validation",
			"fields": verr.Fields,
		})
	case errors.Is(err, models.ErrAuth):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": action + " failed: not found"})
	case errors.Is(err, models.ErrPersistence):
		logger.Error("remote write rejected", zap.String("action", action), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": action + " failed"})
	default:
		logger.Error("unexpected failure", zap.String("action", action), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": action + " failed"})
	}
}
