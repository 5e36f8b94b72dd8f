package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"teams-api/internal/application"
)

const serviceName = "teams-api"

// HealthHandler ヘルスチェックのハンドラー
type HealthHandler struct {
	teamsService application.TeamsService
}

// NewHealthHandler HealthHandlerの新しいインスタンスを作成
func NewHealthHandler(teamsService application.TeamsService) *HealthHandler {
	return &HealthHandler{
		teamsService: teamsService,
	}
}

// Check GET /api/health
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.teamsService.HealthCheck(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": serviceName,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
	})
}
