package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tuanvy6922/caketeaadmin/internal/database"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// HealthChecker reports backing store health
type HealthChecker interface {
	Health(ctx context.Context) *database.HealthStatus
}

// HealthHandler serves liveness and readiness
type HealthHandler struct {
	checker HealthChecker
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	body := gin.H{
		"status":    "healthy",
		"service":   "caketea-admin",
		"version":   Version,
		"timestamp": time.Now().UTC(),
	}

	if h.checker == nil {
		c.JSON(http.StatusOK, body)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	db := h.checker.Health(ctx)
	body["database"] = db
	if !db.Healthy {
		body["status"] = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, body)
}
