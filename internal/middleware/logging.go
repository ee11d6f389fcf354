package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDKey is the key used to store request ID in context
const RequestIDKey = "request_id"

// CorrelationIDKey is the key used to store correlation ID in context
const CorrelationIDKey = "correlation_id"

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// CorrelationID middleware adds correlation ID for distributed tracing
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader("X-Correlation-ID")
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		c.Set(CorrelationIDKey, correlationID)
		c.Header("X-Correlation-ID", correlationID)
		c.Next()
	}
}

// StructuredLogger logs one entry per request with its context
func StructuredLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := logrus.Fields{
			"request_id":     c.GetString(RequestIDKey),
			"correlation_id": c.GetString(CorrelationIDKey),
			"method":         c.Request.Method,
			"path":           path,
			"status_code":    status,
			"latency_ms":     float64(latency.Nanoseconds()) / 1000000,
			"client_ip":      c.ClientIP(),
			"user_agent":     c.Request.UserAgent(),
			"response_size":  c.Writer.Size(),
		}

		if raw != "" {
			fields["query"] = stripToken(raw)
		}
		if staffID := c.GetString(StaffIDKey); staffID != "" {
			fields["staff_id"] = staffID
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		entry := logger.WithFields(fields)
		switch {
		case status >= 500:
			entry.Error("Server error")
		case status >= 400:
			entry.Warn("Client error")
		default:
			entry.Info("Request completed")
		}
	}
}

// AuditLogger records who changed what on write requests
func AuditLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		c.Next()

		fields := logrus.Fields{
			"audit":       true,
			"request_id":  c.GetString(RequestIDKey),
			"staff_id":    c.GetString(StaffIDKey),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
			"client_ip":   c.ClientIP(),
		}

		switch c.Request.Method {
		case http.MethodPost:
			fields["operation"] = "CREATE"
		case http.MethodPut, http.MethodPatch:
			fields["operation"] = "UPDATE"
		case http.MethodDelete:
			fields["operation"] = "DELETE"
		}

		if resource, id := resourceFromPath(c.Request.URL.Path); resource != "" {
			fields["resource_type"] = resource
			if id != "" {
				fields["resource_id"] = id
			}
		}

		logger.WithFields(fields).Info("Audit log")
	}
}

// PerformanceMonitor logs requests slower than threshold
func PerformanceMonitor(logger *logrus.Logger, threshold time.Duration) gin.HandlerFunc {
	if threshold == 0 {
		threshold = time.Second
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		// event streams stay open until the client leaves
		if latency <= threshold || strings.HasSuffix(c.Request.URL.Path, "/stream") {
			return
		}

		logger.WithFields(logrus.Fields{
			"performance_alert": true,
			"request_id":        c.GetString(RequestIDKey),
			"method":            c.Request.Method,
			"path":              c.Request.URL.Path,
			"latency_ms":        float64(latency.Nanoseconds()) / 1000000,
			"threshold_ms":      float64(threshold.Nanoseconds()) / 1000000,
			"status_code":       c.Writer.Status(),
		}).Warn("Slow request detected")
	}
}

var resourceTypes = map[string]string{
	"orders":  "order",
	"staff":   "staff",
	"exports": "export",
	"auth":    "token",
}

// resourceFromPath maps /api/v1/orders/abc/status to ("order", "abc")
func resourceFromPath(path string) (string, string) {
	parts := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	for i, part := range parts {
		resource, ok := resourceTypes[part]
		if !ok {
			continue
		}
		if i+1 < len(parts) {
			return resource, parts[i+1]
		}
		return resource, ""
	}
	return "", ""
}

// stripToken hides an access_token query value from logs
func stripToken(raw string) string {
	parts := strings.Split(raw, "&")
	for i, part := range parts {
		if strings.HasPrefix(part, "access_token=") {
			parts[i] = "access_token=REDACTED"
		}
	}
	return strings.Join(parts, "&")
}
