package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maghsala/maghsala-api/internal/config"
	domainRepo "github.com/maghsala/maghsala-api/internal/domain/repository"
	"github.com/maghsala/maghsala-api/internal/presentation/http/handler"
	"github.com/maghsala/maghsala-api/internal/presentation/http/middleware"
	"github.com/maghsala/maghsala-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	Laundry      *handler.LaundryHandler
	Branch       *handler.BranchHandler
	Customer     *handler.CustomerHandler
	Catalog      *handler.CatalogHandler
	Invoice      *handler.InvoiceHandler
	CashDrawer   *handler.CashDrawerHandler
	Audit        *handler.AuditHandler
	Report       *handler.ReportHandler
	Subscription *handler.SubscriptionHandler
	User         *handler.UserHandler
	Printer      *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-laundry rate limiter
		rateLimiter := middleware.NewLaundryRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/google", h.Auth.GoogleLogin)
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile routes
	protected.GET("/auth/me", h.Auth.Me)
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.PUT("/auth/password", h.Auth.ChangePassword)

	// Subscription plans are visible to any authenticated user
	protected.GET("/plans", h.Subscription.ListPlans)

	// Everything below requires a laundry on the token
	scoped := protected.Group("")
	scoped.Use(middleware.RequireLaundry())

	registerLaundryRoutes(scoped, h)
	registerBranchRoutes(scoped, h)
	registerCustomerRoutes(scoped, h)
	registerCatalogRoutes(scoped, h)
	registerInvoiceRoutes(scoped, h, deps)
	registerCashDrawerRoutes(scoped, h)
	registerReportRoutes(scoped, h)
	registerAuditRoutes(scoped, h)
	registerSubscriptionRoutes(scoped, h)
	registerUserRoutes(scoped, h)
	registerPrinterRoutes(scoped, h)
}

func registerLaundryRoutes(scoped *gin.RouterGroup, h *Handlers) {
	laundry := scoped.Group("/laundry")
	{
		laundry.GET("", h.Laundry.Get)
		laundry.PUT("", middleware.RequirePermission("manage-laundry"), h.Laundry.Update)
		laundry.PUT("/settings", middleware.RequirePermission("manage-laundry"), h.Laundry.UpdateSettings)
	}
}

func registerBranchRoutes(scoped *gin.RouterGroup, h *Handlers) {
	branches := scoped.Group("/branches")
	{
		branches.GET("", h.Branch.List)
		branches.POST("", middleware.RequirePermission("manage-branches"), h.Branch.Create)
		branches.GET("/:id", h.Branch.Get)
		branches.PUT("/:id", middleware.RequirePermission("manage-branches"), h.Branch.Update)
		branches.DELETE("/:id", middleware.RequirePermission("manage-branches"), h.Branch.Delete)
	}
}

func registerCustomerRoutes(scoped *gin.RouterGroup, h *Handlers) {
	customers := scoped.Group("/customers")
	customers.Use(middleware.RequirePermission("manage-customers"))
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerCatalogRoutes(scoped *gin.RouterGroup, h *Handlers) {
	services := scoped.Group("/services")
	{
		services.GET("", h.Catalog.ListServices)
		services.POST("", middleware.RequirePermission("manage-services"), h.Catalog.CreateService)
		services.GET("/:id", h.Catalog.GetService)
		services.PUT("/:id", middleware.RequirePermission("manage-services"), h.Catalog.UpdateService)
		services.DELETE("/:id", middleware.RequirePermission("manage-services"), h.Catalog.DeleteService)
	}

	categories := scoped.Group("/service-categories")
	{
		categories.GET("", h.Catalog.ListCategories)
		categories.POST("", middleware.RequirePermission("manage-services"), h.Catalog.CreateCategory)
		categories.DELETE("/:id", middleware.RequirePermission("manage-services"), h.Catalog.DeleteCategory)
	}
}

func registerInvoiceRoutes(scoped *gin.RouterGroup, h *Handlers, deps *Deps) {
	invoices := scoped.Group("/invoices")
	invoices.Use(middleware.RequirePermission("manage-invoices"))
	{
		invoices.GET("", h.Invoice.List)
		// Invoice creation uses idempotency middleware so a flaky POS
		// connection cannot ring the same sale twice
		invoices.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Invoice.Create)
		invoices.GET("/stats/overview", h.Invoice.Stats)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PUT("/:id/status", h.Invoice.UpdateStatus)
		invoices.POST("/:id/pay", h.Invoice.RecordPayment)
		invoices.POST("/:id/discount", middleware.RequirePermission("apply-discounts"), h.Invoice.ApplyDiscount)
		invoices.POST("/:id/cancel", middleware.RequirePermission("cancel-invoices"), h.Invoice.Cancel)
	}
}

func registerCashDrawerRoutes(scoped *gin.RouterGroup, h *Handlers) {
	sessions := scoped.Group("/cash-sessions")
	sessions.Use(middleware.RequirePermission("manage-cash-sessions"))
	{
		sessions.GET("", h.CashDrawer.List)
		sessions.POST("/open", h.CashDrawer.Open)
		sessions.POST("/close", h.CashDrawer.Close)
		sessions.GET("/current", h.CashDrawer.Current)
		sessions.GET("/current/expected", h.CashDrawer.Expected)
	}
}

func registerReportRoutes(scoped *gin.RouterGroup, h *Handlers) {
	reports := scoped.Group("/reports")
	reports.Use(middleware.RequirePermission("view-reports"))
	{
		reports.GET("/sales", h.Report.SalesSummary)
		reports.GET("/top-services", h.Report.TopServices)
		reports.GET("/top-customers", h.Report.TopCustomers)
	}
}

func registerAuditRoutes(scoped *gin.RouterGroup, h *Handlers) {
	audit := scoped.Group("/audit-logs")
	audit.Use(middleware.RequirePermission("view-audit-logs"))
	{
		audit.GET("", h.Audit.List)
		audit.GET("/flagged", h.Audit.Flagged)
	}
}

func registerSubscriptionRoutes(scoped *gin.RouterGroup, h *Handlers) {
	subscription := scoped.Group("/subscription")
	subscription.Use(middleware.RequirePermission("manage-laundry"))
	{
		subscription.GET("", h.Subscription.Current)
		subscription.POST("", h.Subscription.Subscribe)
	}
}

func registerUserRoutes(scoped *gin.RouterGroup, h *Handlers) {
	users := scoped.Group("/staff")
	users.Use(middleware.RequirePermission("manage-users"))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerPrinterRoutes(scoped *gin.RouterGroup, h *Handlers) {
	printer := scoped.Group("/printer")
	{
		printer.GET("/status", h.Printer.Status)
		printer.POST("/test", h.Printer.TestPrint)
		printer.POST("/print", h.Printer.PrintReceipt)
	}
}
