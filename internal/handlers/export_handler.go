package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tuanvy6922/caketeaadmin/internal/middleware"
	"github.com/tuanvy6922/caketeaadmin/internal/services"
)

// ExportHandler handles spreadsheet exports of the order list
type ExportHandler struct {
	exportService services.ExportService
	loc           *time.Location
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService services.ExportService, loc *time.Location) *ExportHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ExportHandler{exportService: exportService, loc: loc}
}

// @Summary Export orders
// @Description Writes the filtered order list to an Excel workbook and stores it
// @Tags exports
// @Produce json
// @Param query query string false "Case-insensitive match on customer name or order ID"
// @Param status query string false "Order status or 'all'"
// @Param staff query string false "Assigned staff email or 'all'"
// @Param date query string false "Date preset"
// @Param start query string false "First day of range (YYYY-MM-DD)"
// @Param end query string false "Last day of range (YYYY-MM-DD)"
// @Success 201 {object} services.ExportResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/export [post]
func (h *ExportHandler) ExportOrders(c *gin.Context) {
	listReq, err := parseListQuery(c.Query, h.loc)
	if err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}

	result, err := h.exportService.ExportOrders(c.Request.Context(), &services.ExportRequest{
		Criteria: listReq.Criteria,
		Actor:    middleware.Actor(c),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Location", "/api/v1/exports/"+result.Name)
	c.JSON(http.StatusCreated, result)
}

// @Summary List exports
// @Description Stored workbooks, newest first
// @Tags exports
// @Produce json
// @Success 200 {array} storage.FileMetadata
// @Security BearerAuth
// @Router /exports [get]
func (h *ExportHandler) ListExports(c *gin.Context) {
	files, err := h.exportService.ListExports(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, files)
}

// @Summary Download an export
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param name path string true "Workbook name"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /exports/{name} [get]
func (h *ExportHandler) DownloadExport(c *gin.Context) {
	name := c.Param("name")
	data, meta, err := h.exportService.GetExport(c.Request.Context(), name)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Data(http.StatusOK, meta.ContentType, data)
}
