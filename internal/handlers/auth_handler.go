package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tuanvy6922/caketeaadmin/internal/middleware"
	"github.com/tuanvy6922/caketeaadmin/internal/models"
	"github.com/tuanvy6922/caketeaadmin/internal/services"
)

// AuthHandler issues staff access tokens
type AuthHandler struct {
	authService  *middleware.AuthService
	staffService services.StaffService
	adminKey     string
	logger       *logrus.Logger
}

// NewAuthHandler creates a new authentication handler. Token issuing is
// disabled when adminKey is empty.
func NewAuthHandler(authService *middleware.AuthService, staffService services.StaffService, adminKey string, logger *logrus.Logger) *AuthHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &AuthHandler{
		authService:  authService,
		staffService: staffService,
		adminKey:     adminKey,
		logger:       logger,
	}
}

// TokenRequest asks for a token on behalf of a staff member
type TokenRequest struct {
	Email    string `json:"email" binding:"required,email"`
	AdminKey string `json:"admin_key" binding:"required"`
}

// TokenResponse carries a signed token
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Staff     UserInfo  `json:"staff"`
}

// UserInfo represents the authenticated staff member
type UserInfo struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

// @Summary Issue a token
// @Description Issues a JWT for an active staff member. Guarded by the shared admin key.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Staff email and admin key"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /auth/token [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	if h.adminKey == "" || subtle.ConstantTimeCompare([]byte(req.AdminKey), []byte(h.adminKey)) != 1 {
		h.logger.WithFields(logrus.Fields{
			"email":     req.Email,
			"client_ip": c.ClientIP(),
		}).Warn("Token request rejected")
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "Unauthorized",
			Message: "invalid admin key",
		})
		return
	}

	staff, err := h.staffService.GetStaff(c.Request.Context(), strings.ToLower(req.Email))
	if err != nil {
		writeError(c, err)
		return
	}
	h.issue(c, staff)
}

// @Summary Refresh a token
// @Description Issues a new token for the caller if they are still active
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} TokenResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	staff, err := h.staffService.GetStaff(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	h.issue(c, staff)
}

// @Summary Current staff member
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserInfo
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized", Message: "no claims in context"})
		return
	}
	c.JSON(http.StatusOK, UserInfo{ID: claims.StaffID, Name: claims.Name, Roles: claims.Roles})
}

func (h *AuthHandler) issue(c *gin.Context, staff *models.Staff) {
	if !staff.IsActive() {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "Forbidden",
			Message: "staff member is inactive",
		})
		return
	}

	token, err := h.authService.GenerateToken(staff)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.authService.TokenDuration()),
		Staff: UserInfo{
			ID:    staff.ID,
			Name:  staff.FullName,
			Roles: staff.Roles(),
		},
	})
}
