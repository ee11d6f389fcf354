package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
	"github.com/tuanvy6922/caketeaadmin/internal/services"
)

// CatalogHandler handles categories and products
type CatalogHandler struct {
	catalogService services.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// @Summary List categories
// @Description Newest first
// @Tags categories
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(5)
// @Success 200 {object} models.CategoryPage
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	page, pageSize, err := paging(c.Query)
	if err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}

	result, err := h.catalogService.ListCategories(c.Request.Context(), &services.ListCategoriesRequest{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} models.Category
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{id} [get]
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	category, err := h.catalogService.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body services.SaveCategoryRequest true "Category name"
// @Success 201 {object} models.Category
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req services.SaveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// @Summary Rename a category
// @Description Products filed under the old name move to the new one
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body services.SaveCategoryRequest true "New name"
// @Success 200 {object} models.Category
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{id} [put]
func (h *CatalogHandler) RenameCategory(c *gin.Context) {
	var req services.SaveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	category, err := h.catalogService.RenameCategory(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// @Summary Delete a category
// @Description Refused while products are filed under it
// @Tags categories
// @Param id path string true "Category ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.catalogService.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Search products
// @Description Newest first. The query matches name or category.
// @Tags products
// @Produce json
// @Param query query string false "Case-insensitive match on name or category"
// @Param category query string false "Exact category name"
// @Param status query string false "active or inactive"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(10)
// @Success 200 {object} models.ProductPage
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /products [get]
func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	page, pageSize, err := paging(c.Query)
	if err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}

	result, err := h.catalogService.SearchProducts(c.Request.Context(), &services.SearchProductsRequest{
		Query:    c.Query("query"),
		Category: c.Query("category"),
		Status:   models.ProductStatus(c.Query("status")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param request body services.CreateProductRequest true "Product data"
// @Success 201 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// @Summary Update a product
// @Description Only the fields present in the body change
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body services.UpdateProductRequest true "Fields to change"
// @Success 200 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /products/{id} [patch]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// @Summary Delete a product
// @Tags products
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalogService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
