package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/tuanvy6922/caketeaadmin/internal/adapters/storage"
	"github.com/tuanvy6922/caketeaadmin/internal/billing"
	"github.com/tuanvy6922/caketeaadmin/internal/middleware"
	"github.com/tuanvy6922/caketeaadmin/internal/repositories"
	"github.com/tuanvy6922/caketeaadmin/internal/services"
	"github.com/tuanvy6922/caketeaadmin/pkg/lambda"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []middleware.ValidationError `json:"details,omitempty"`
}

// errorStatus maps a service error to its HTTP status and response body
func errorStatus(err error) (int, ErrorResponse) {
	switch {
	case services.IsValidation(err), repositories.IsValidation(err), storage.IsInvalidKey(err):
		resp := ErrorResponse{Error: "Validation failed", Message: err.Error()}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			resp.Details = middleware.FormatValidationErrors(verrs)
		}
		return http.StatusBadRequest, resp
	case repositories.IsNotFound(err), storage.IsNotFound(err):
		return http.StatusNotFound, ErrorResponse{Error: "Not found", Message: err.Error()}
	case billing.IsPolicyViolation(err), billing.IsVoucherRejected(err),
		errors.Is(err, services.ErrStaffInactive), errors.Is(err, services.ErrProtectedAccount),
		repositories.IsConflict(err), repositories.IsDuplicate(err):
		return http.StatusConflict, ErrorResponse{Error: "Conflict", Message: err.Error()}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "Internal server error", Message: err.Error()}
	}
}

func writeError(c *gin.Context, err error) {
	status, resp := errorStatus(err)
	_ = c.Error(err)
	c.JSON(status, resp)
}

func badRequest(c *gin.Context, title string, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: title, Message: err.Error()})
}

func jsonResponse(status int, body interface{}) *lambda.Response {
	data, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(`{"error":"Failed to marshal response"}`)
	}
	return &lambda.Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       data,
	}
}

func lambdaError(err error) *lambda.Response {
	status, resp := errorStatus(err)
	return jsonResponse(status, resp)
}
