package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tuanvy6922/caketeaadmin/internal/services"
	"github.com/tuanvy6922/caketeaadmin/pkg/lambda"
)

// DashboardHandler serves the home screen overview
type DashboardHandler struct {
	dashboardService services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// @Summary Dashboard overview
// @Description Revenue buckets, daily revenue series, top products and status counts over all orders
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.Dashboard
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// HandleDashboard serves the dashboard for Lambda
func (h *DashboardHandler) HandleDashboard(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	dashboard, err := h.dashboardService.GetDashboard(ctx)
	if err != nil {
		return lambdaError(err), nil
	}
	return jsonResponse(http.StatusOK, dashboard), nil
}
