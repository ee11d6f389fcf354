package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
	"github.com/tuanvy6922/caketeaadmin/internal/services"
)

// StaffHandler handles the staff directory
type StaffHandler struct {
	staffService services.StaffService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffService services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// @Summary Search staff
// @Tags staff
// @Produce json
// @Param query query string false "Match on name, email or phone"
// @Param state query string false "Active or Inactive"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(6)
// @Success 200 {object} models.StaffPage
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /staff [get]
func (h *StaffHandler) SearchStaff(c *gin.Context) {
	page, err := optionalInt(c.Query("page"), "page")
	if err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}
	pageSize, err := optionalInt(c.Query("page_size"), "page_size")
	if err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}

	result, err := h.staffService.SearchStaff(c.Request.Context(), &services.SearchStaffRequest{
		Query:    c.Query("query"),
		State:    models.StaffState(c.Query("state")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Get a staff member
// @Tags staff
// @Produce json
// @Param id path string true "Staff email"
// @Success 200 {object} models.Staff
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /staff/{id} [get]
func (h *StaffHandler) GetStaff(c *gin.Context) {
	staff, err := h.staffService.GetStaff(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, staff)
}

// @Summary Create or update a staff member
// @Tags staff
// @Accept json
// @Produce json
// @Param id path string true "Staff email"
// @Param request body services.SaveStaffRequest true "Staff profile"
// @Success 200 {object} models.Staff
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /staff/{id} [put]
func (h *StaffHandler) SaveStaff(c *gin.Context) {
	var req services.SaveStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	staff, err := h.staffService.SaveStaff(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, staff)
}

// @Summary Activate or deactivate a staff member
// @Tags staff
// @Accept json
// @Produce json
// @Param id path string true "Staff email"
// @Param request body services.SetStaffStateRequest true "New state"
// @Success 200 {object} models.Staff
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /staff/{id}/state [patch]
func (h *StaffHandler) SetStaffState(c *gin.Context) {
	var req services.SetStaffStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	staff, err := h.staffService.SetStaffState(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, staff)
}
