package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tuanvy6922/caketeaadmin/internal/middleware"
	"github.com/tuanvy6922/caketeaadmin/internal/services"
	"github.com/tuanvy6922/caketeaadmin/pkg/lambda"
)

// DefaultHeartbeat is how often an idle order stream sends a keepalive event
const DefaultHeartbeat = 15 * time.Second

// OrderHandler handles order listing and order updates
type OrderHandler struct {
	orderService services.OrderService
	loc          *time.Location
	heartbeat    time.Duration
}

// NewOrderHandler creates a new order handler. Day parameters are read in loc.
func NewOrderHandler(orderService services.OrderService, loc *time.Location) *OrderHandler {
	if loc == nil {
		loc = time.Local
	}
	return &OrderHandler{
		orderService: orderService,
		loc:          loc,
		heartbeat:    DefaultHeartbeat,
	}
}

// @Summary List orders
// @Description Filter, paginate and total the order list
// @Tags orders
// @Produce json
// @Param query query string false "Case-insensitive match on customer name or order ID"
// @Param status query string false "Order status or 'all'"
// @Param staff query string false "Assigned staff email or 'all'"
// @Param date query string false "Date preset" Enums(all, today, yesterday, week, month)
// @Param start query string false "First day of range (YYYY-MM-DD)"
// @Param end query string false "Last day of range (YYYY-MM-DD)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(6)
// @Success 200 {object} models.OrderPage
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	req, err := parseListQuery(c.Query, h.loc)
	if err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}

	page, err := h.orderService.ListOrders(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// @Summary Get an order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// @Summary Change order status
// @Description Completed and cancelled orders cannot change status
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body services.UpdateStatusRequest true "New status"
// @Success 200 {object} models.Order
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req services.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	req.Actor = middleware.Actor(c)

	order, err := h.orderService.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// @Summary Change delivery status
// @Description Delivery status is locked once the order is cancelled
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body services.UpdateDeliveryRequest true "New delivery status"
// @Success 200 {object} models.Order
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/delivery [patch]
func (h *OrderHandler) UpdateDeliveryStatus(c *gin.Context) {
	var req services.UpdateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	req.Actor = middleware.Actor(c)

	order, err := h.orderService.UpdateDeliveryStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// @Summary Assign an order
// @Description An empty staff_id clears the assignment
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body services.AssignStaffRequest true "Staff email"
// @Success 200 {object} models.Order
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/assignee [patch]
func (h *OrderHandler) AssignStaff(c *gin.Context) {
	var req services.AssignStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	req.Actor = middleware.Actor(c)

	order, err := h.orderService.AssignStaff(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// StreamOrders pushes order pages over server-sent events. The token may
// arrive as an access_token query value; request logs redact it, but any
// proxy in front of the service still sees the raw URL.
//
// @Summary Stream order pages
// @Description Server-sent events. An "orders" event carries the current page
// @Description after every change to the order set. Browsers cannot set headers on
// @Description EventSource, so the token may travel as access_token. Request logs
// @Description redact it, but proxies in front of the service may still record the
// @Description full URL. Prefer the Authorization header wherever the client allows.
// @Tags orders
// @Produce text/event-stream
// @Param query query string false "Case-insensitive match on customer name or order ID"
// @Param status query string false "Order status or 'all'"
// @Param staff query string false "Assigned staff email or 'all'"
// @Param date query string false "Date preset"
// @Param page query int false "Page number"
// @Param access_token query string false "JWT when the Authorization header cannot be set"
// @Success 200 {object} models.OrderPage
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/stream [get]
func (h *OrderHandler) StreamOrders(c *gin.Context) {
	req, err := parseListQuery(c.Query, h.loc)
	if err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	pages, err := h.orderService.Subscribe(ctx, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case page, ok := <-pages:
			if !ok {
				return false
			}
			c.SSEvent("orders", page)
			return true
		case t := <-heartbeat.C:
			c.SSEvent("ping", t.Unix())
			return true
		case <-ctx.Done():
			return false
		}
	})
}

// Lambda-compatible handler methods

// HandleList handles order listing for Lambda
func (h *OrderHandler) HandleList(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	listReq, err := parseListQuery(func(key string) string { return req.QueryParams[key] }, h.loc)
	if err != nil {
		return jsonResponse(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid query parameters",
			Message: err.Error(),
		}), nil
	}

	page, err := h.orderService.ListOrders(ctx, listReq)
	if err != nil {
		return lambdaError(err), nil
	}
	return jsonResponse(http.StatusOK, page), nil
}

// HandleGet handles single order lookup for Lambda
func (h *OrderHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	order, err := h.orderService.GetOrder(ctx, req.PathParams["id"])
	if err != nil {
		return lambdaError(err), nil
	}
	return jsonResponse(http.StatusOK, order), nil
}
