package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
	"github.com/tuanvy6922/caketeaadmin/internal/services"
)

// CustomerHandler handles the ordering app's user directory
type CustomerHandler struct {
	customerService services.CustomerService
}

// NewCustomerHandler creates a new user directory handler
func NewCustomerHandler(customerService services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// @Summary Search app users
// @Tags users
// @Produce json
// @Param query query string false "Match on name, email or phone"
// @Param state query string false "Available or Blocked"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(10)
// @Success 200 {object} models.CustomerPage
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *CustomerHandler) SearchCustomers(c *gin.Context) {
	page, pageSize, err := paging(c.Query)
	if err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}

	result, err := h.customerService.SearchCustomers(c.Request.Context(), &services.SearchCustomersRequest{
		Query:    c.Query("query"),
		State:    models.CustomerState(c.Query("state")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Get an app user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.Customer
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// @Summary Edit an app user
// @Description Administrator accounts cannot be edited
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body services.UpdateCustomerRequest true "Profile"
// @Success 200 {object} models.Customer
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var req services.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// @Summary Block or unblock an app user
// @Description Administrator accounts cannot be blocked
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body services.SetCustomerStateRequest true "New state"
// @Success 200 {object} models.Customer
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/state [patch]
func (h *CustomerHandler) SetCustomerState(c *gin.Context) {
	var req services.SetCustomerStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	customer, err := h.customerService.SetCustomerState(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}
