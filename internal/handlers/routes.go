package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tuanvy6922/caketeaadmin/internal/middleware"
	"github.com/tuanvy6922/caketeaadmin/internal/models"
	"github.com/tuanvy6922/caketeaadmin/internal/services"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	OrderService     services.OrderService
	DashboardService services.DashboardService
	StaffService     services.StaffService
	ExportService    services.ExportService
	CatalogService   services.CatalogService
	CustomerService  services.CustomerService
	VoucherService   services.VoucherService
	AuthService      *middleware.AuthService
	Health           HealthChecker
	Location         *time.Location
	AdminKey         string
	Logger           *logrus.Logger
}

// MiddlewareConfig holds settings for the global middleware chain
type MiddlewareConfig struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	SlowRequest    time.Duration
	MaxBodyBytes   int64
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	orderHandler := NewOrderHandler(config.OrderService, config.Location)
	dashboardHandler := NewDashboardHandler(config.DashboardService)
	staffHandler := NewStaffHandler(config.StaffService)
	exportHandler := NewExportHandler(config.ExportService, config.Location)
	authHandler := NewAuthHandler(config.AuthService, config.StaffService, config.AdminKey, config.Logger)
	healthHandler := NewHealthHandler(config.Health)
	catalogHandler := NewCatalogHandler(config.CatalogService)
	customerHandler := NewCustomerHandler(config.CustomerService)
	voucherHandler := NewVoucherHandler(config.VoucherService)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", healthHandler.Health)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/token", authHandler.IssueToken)

			authProtected := auth.Group("")
			authProtected.Use(middleware.Authentication(config.AuthService))
			{
				authProtected.POST("/refresh", authHandler.RefreshToken)
				authProtected.GET("/me", authHandler.GetCurrentUser)
			}
		}

		api := v1.Group("")
		api.Use(middleware.Authentication(config.AuthService))
		api.Use(middleware.Authorization(models.RoleStaff, models.RoleAdmin))
		{
			orders := api.Group("/orders")
			{
				orders.GET("", orderHandler.ListOrders)
				orders.GET("/stream", orderHandler.StreamOrders)
				orders.POST("/export", exportHandler.ExportOrders)
				orders.GET("/:id", orderHandler.GetOrder)
				orders.PATCH("/:id/status", orderHandler.UpdateStatus)
				orders.PATCH("/:id/delivery", orderHandler.UpdateDeliveryStatus)
				orders.PATCH("/:id/assignee", orderHandler.AssignStaff)
			}

			exports := api.Group("/exports")
			{
				exports.GET("", exportHandler.ListExports)
				exports.GET("/:name", exportHandler.DownloadExport)
			}

			api.GET("/dashboard", dashboardHandler.GetDashboard)

			staff := api.Group("/staff")
			{
				staff.GET("", staffHandler.SearchStaff)
				staff.GET("/:id", staffHandler.GetStaff)

				admin := staff.Group("")
				admin.Use(middleware.Authorization(models.RoleAdmin))
				{
					admin.PUT("/:id", staffHandler.SaveStaff)
					admin.PATCH("/:id/state", staffHandler.SetStaffState)
				}
			}

			categories := api.Group("/categories")
			{
				categories.GET("", catalogHandler.ListCategories)
				categories.GET("/:id", catalogHandler.GetCategory)

				admin := categories.Group("")
				admin.Use(middleware.Authorization(models.RoleAdmin))
				{
					admin.POST("", catalogHandler.CreateCategory)
					admin.PUT("/:id", catalogHandler.RenameCategory)
					admin.DELETE("/:id", catalogHandler.DeleteCategory)
				}
			}

			products := api.Group("/products")
			{
				products.GET("", catalogHandler.SearchProducts)
				products.GET("/:id", catalogHandler.GetProduct)

				admin := products.Group("")
				admin.Use(middleware.Authorization(models.RoleAdmin))
				{
					admin.POST("", catalogHandler.CreateProduct)
					admin.PATCH("/:id", catalogHandler.UpdateProduct)
					admin.DELETE("/:id", catalogHandler.DeleteProduct)
				}
			}

			users := api.Group("/users")
			{
				users.GET("", customerHandler.SearchCustomers)
				users.GET("/:id", customerHandler.GetCustomer)

				admin := users.Group("")
				admin.Use(middleware.Authorization(models.RoleAdmin))
				{
					admin.PUT("/:id", customerHandler.UpdateCustomer)
					admin.PATCH("/:id/state", customerHandler.SetCustomerState)
				}
			}

			vouchers := api.Group("/vouchers")
			{
				vouchers.GET("", voucherHandler.SearchVouchers)
				vouchers.POST("/quote", voucherHandler.QuoteVoucher)
				vouchers.GET("/:id", voucherHandler.GetVoucher)

				admin := vouchers.Group("")
				admin.Use(middleware.Authorization(models.RoleAdmin))
				{
					admin.POST("", voucherHandler.CreateVoucher)
					admin.PATCH("/:id/active", voucherHandler.SetVoucherActive)
					admin.DELETE("/:id", voucherHandler.DeleteVoucher)
				}
			}
		}
	}
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, logger *logrus.Logger, config *MiddlewareConfig) {
	if config.SlowRequest == 0 {
		config.SlowRequest = time.Second
	}
	if config.MaxBodyBytes == 0 {
		config.MaxBodyBytes = 10 * 1024 * 1024
	}

	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.CORS(config.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestSizeLimit(config.MaxBodyBytes))
	router.Use(middleware.ContentTypeValidation("application/json"))
	router.Use(middleware.RequestValidation())
	router.Use(middleware.RateLimiter(logger, config.RateLimitRPS, config.RateLimitBurst))
	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.PerformanceMonitor(logger, config.SlowRequest))
	router.Use(middleware.AuditLogger(logger))
}
