package router

import (
	"leave-service/internal/handler"
	"leave-service/internal/middleware"
	"leave-service/pkg/logger"
	"leave-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// New builds the Echo instance with the full middleware chain and route
// table
func New(log *zap.Logger) *echo.Echo {
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Token issuance - public by nature
	api := e.Group("/api")
	api.POST("/login", handler.Login)
	api.POST("/token", handler.Login)
	api.POST("/token/refresh", handler.RefreshToken)

	// Authenticated routes
	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware)

	auth.GET("/profile", handler.GetProfile)

	// Leave requests - visibility scoping is inside the handlers
	auth.GET("/leave", handler.ListLeaveRequests)
	auth.POST("/leave", handler.CreateLeaveRequest)
	auth.GET("/leave/:id", handler.GetLeaveRequest)
	auth.PUT("/leave/:id", handler.UpdateLeaveRequest)
	auth.DELETE("/leave/:id", handler.DeleteLeaveRequest)

	// Decision actions - admin only
	decisions := api.Group("/leave")
	decisions.Use(middleware.AuthMiddleware, middleware.RequireAdmin)
	decisions.POST("/:id/approve", handler.ApproveLeaveRequest)
	decisions.POST("/:id/reject", handler.RejectLeaveRequest)

	// Leave type catalogue - reads for everyone, writes for admins
	auth.GET("/leave-types", handler.ListLeaveTypes)
	leaveTypes := api.Group("/leave-types")
	leaveTypes.Use(middleware.AuthMiddleware, middleware.RequireAdmin)
	leaveTypes.POST("", handler.CreateLeaveType)
	leaveTypes.PUT("/:id", handler.UpdateLeaveType)
	leaveTypes.DELETE("/:id", handler.DeleteLeaveType)

	// Employee provisioning - admin only
	employees := api.Group("/employees")
	employees.Use(middleware.AuthMiddleware, middleware.RequireAdmin)
	employees.POST("", handler.CreateEmployee)
	employees.GET("", handler.ListEmployees)

	return e
}
