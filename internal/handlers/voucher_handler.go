package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tuanvy6922/caketeaadmin/internal/services"
)

// VoucherHandler handles discount codes
type VoucherHandler struct {
	voucherService services.VoucherService
}

// NewVoucherHandler creates a new voucher handler
func NewVoucherHandler(voucherService services.VoucherService) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService}
}

// @Summary Search vouchers
// @Description Latest end date first, with per-code usage on orders that were not cancelled
// @Tags vouchers
// @Produce json
// @Param query query string false "Case-insensitive match on code"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(5)
// @Success 200 {object} models.VoucherPage
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /vouchers [get]
func (h *VoucherHandler) SearchVouchers(c *gin.Context) {
	page, pageSize, err := paging(c.Query)
	if err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}

	result, err := h.voucherService.SearchVouchers(c.Request.Context(), &services.SearchVouchersRequest{
		Query:    c.Query("query"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Get a voucher
// @Tags vouchers
// @Produce json
// @Param id path string true "Voucher ID"
// @Success 200 {object} models.Voucher
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /vouchers/{id} [get]
func (h *VoucherHandler) GetVoucher(c *gin.Context) {
	voucher, err := h.voucherService.GetVoucher(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, voucher)
}

// @Summary Create a voucher
// @Tags vouchers
// @Accept json
// @Produce json
// @Param request body services.CreateVoucherRequest true "Voucher with a percent discount"
// @Success 201 {object} models.Voucher
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /vouchers [post]
func (h *VoucherHandler) CreateVoucher(c *gin.Context) {
	var req services.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	voucher, err := h.voucherService.CreateVoucher(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, voucher)
}

// @Summary Enable or disable a voucher
// @Tags vouchers
// @Accept json
// @Produce json
// @Param id path string true "Voucher ID"
// @Param request body services.SetVoucherActiveRequest true "Active flag"
// @Success 200 {object} models.Voucher
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /vouchers/{id}/active [patch]
func (h *VoucherHandler) SetVoucherActive(c *gin.Context) {
	var req services.SetVoucherActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	voucher, err := h.voucherService.SetVoucherActive(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, voucher)
}

// @Summary Delete a voucher
// @Tags vouchers
// @Param id path string true "Voucher ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /vouchers/{id} [delete]
func (h *VoucherHandler) DeleteVoucher(c *gin.Context) {
	if err := h.voucherService.DeleteVoucher(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Price a subtotal with a voucher
// @Description Rejected vouchers answer 409 with the reason
// @Tags vouchers
// @Accept json
// @Produce json
// @Param request body services.QuoteVoucherRequest true "Code and subtotal"
// @Success 200 {object} models.VoucherQuote
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /vouchers/quote [post]
func (h *VoucherHandler) QuoteVoucher(c *gin.Context) {
	var req services.QuoteVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	quote, err := h.voucherService.QuoteVoucher(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
